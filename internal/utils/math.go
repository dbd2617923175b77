package utils

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
	"math/rand"
)

// IntSource draws a uniform integer in [min, max]
type IntSource func(min, max int) (int, error)

// RandomInt returns a random integer between min and max (inclusive)
func RandomInt(min, max int) int {
	if min > max {
		return min
	}
	return rand.Intn(max-min+1) + min //nolint:gosec // Cosmetic randomness, not game outcome
}

// SecureRandomInt returns a random integer between min and max (inclusive) using crypto/rand
func SecureRandomInt(min, max int) (int, error) {
	if min > max {
		return 0, fmt.Errorf("min cannot be greater than max")
	}
	diff := big.NewInt(int64(max - min + 1))
	n, err := crand.Int(crand.Reader, diff)
	if err != nil {
		return 0, err
	}
	return int(n.Int64()) + min, nil
}

// Shuffle permutes values in place with a Fisher-Yates pass driven by rng
func Shuffle(values []int, rng IntSource) error {
	for i := len(values) - 1; i > 0; i-- {
		j, err := rng(0, i)
		if err != nil {
			return err
		}
		values[i], values[j] = values[j], values[i]
	}
	return nil
}

// Chance returns true with probability p, resolved to 1/10000 steps
func Chance(p float64, rng IntSource) (bool, error) {
	if p <= 0 {
		return false, nil
	}
	if p >= 1 {
		return true, nil
	}
	n, err := rng(1, ChanceResolution)
	if err != nil {
		return false, err
	}
	return n <= int(p*ChanceResolution), nil
}

// ChanceResolution is the granularity of Chance
const ChanceResolution = 10000

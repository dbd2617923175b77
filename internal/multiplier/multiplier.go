// Package multiplier derives a round's payout multiplier from the bonuses it collected.
//
// Ordinary bonuses add their excess over 1x. Bonuses of exactly 2x double the pot:
// c of them contribute 2^c - 1 on top of the additive part.
package multiplier

import (
	"math/big"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
)

var (
	one    = decimal.NewFromInt(1)
	two    = decimal.NewFromInt(2)
	scale  = decimal.NewFromInt(domain.BasisPointScale)
	minors = decimal.New(1, domain.LedgerDecimals)
)

// Accumulate computes the multiplier for the full list of collected bonuses.
// It is pure and order independent.
func Accumulate(bonuses []float64) decimal.Decimal {
	counts := make(map[string]int64)
	values := make(map[string]decimal.Decimal)
	for _, b := range bonuses {
		v := decimal.NewFromFloat(b)
		key := v.String()
		counts[key]++
		values[key] = v
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sum := decimal.Zero
	var doubles int64
	for _, k := range keys {
		v, n := values[k], counts[k]
		if v.Equal(two) {
			doubles += n
			continue
		}
		sum = sum.Add(v.Sub(one).Mul(decimal.NewFromInt(n)))
	}

	result := one.Add(sum)
	if doubles > 0 {
		result = result.Add(two.Pow(decimal.NewFromInt(doubles))).Sub(one)
	}
	return result
}

// BasisPoints encodes m as integer hundredths, truncating any remainder
func BasisPoints(m decimal.Decimal) uint64 {
	if m.IsNegative() {
		return 0
	}
	return uint64(m.Mul(scale).Floor().IntPart())
}

// Profit is the stake scaled by the multiplier
func Profit(stake, m decimal.Decimal) decimal.Decimal {
	return stake.Mul(m)
}

// ToMinor converts a coin amount to ledger minor units, truncating below one unit
func ToMinor(amount decimal.Decimal) uint64 {
	if amount.IsNegative() {
		return 0
	}
	return uint64(amount.Mul(minors).Floor().IntPart())
}

// FromMinor converts ledger minor units to a coin amount
func FromMinor(minor uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(minor), -domain.LedgerDecimals)
}

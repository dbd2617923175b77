package board

import (
	_ "embed"
	"fmt"
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/utils"
)

//go:embed difficulties.yaml
var defaultDifficultiesYAML []byte

// Tier holds the board parameters of one difficulty
type Tier struct {
	Hazards      int     `yaml:"hazards" json:"hazards"`
	Bonuses      int     `yaml:"bonuses" json:"bonuses"`
	MinMult      float64 `yaml:"min_mult" json:"min_mult"`
	MaxMult      float64 `yaml:"max_mult" json:"max_mult"`
	DoubleChance float64 `yaml:"double_chance" json:"double_chance"`
}

// Table maps every difficulty to its tier
type Table map[domain.Difficulty]Tier

// TierInfo is a tier as shown to players
type TierInfo struct {
	Difficulty domain.Difficulty `json:"difficulty"`
	Label      string            `json:"label"`
	Tier
}

// DefaultDifficulties returns the built-in table
func DefaultDifficulties() Table {
	table, err := parseDifficulties(defaultDifficultiesYAML)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", ErrContextLoadDifficulties, err))
	}
	return table
}

// LoadDifficulties reads a table from a YAML file. An empty path returns the built-in table.
func LoadDifficulties(path string) (Table, error) {
	if path == "" {
		return DefaultDifficulties(), nil
	}
	var table Table
	if err := utils.LoadYAML(path, &table); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLoadDifficulties, err)
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLoadDifficulties, err)
	}
	return table, nil
}

func parseDifficulties(data []byte) (Table, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Validate checks that every difficulty is present and fits on the path
func (t Table) Validate() error {
	for _, d := range domain.Difficulties {
		tier, ok := t[d]
		if !ok {
			return fmt.Errorf("%s: %s is missing", ErrContextInvalidTier, d)
		}
		if err := tier.validate(); err != nil {
			return fmt.Errorf("%s: %s: %w", ErrContextInvalidTier, d, err)
		}
	}
	return nil
}

func (t Tier) validate() error {
	switch {
	case t.Hazards < 0 || t.Bonuses < 0:
		return fmt.Errorf("hazards and bonuses must not be negative")
	case t.Hazards+t.Bonuses > domain.PathLength-1:
		return fmt.Errorf("%d special cells do not fit on a path of %d", t.Hazards+t.Bonuses, domain.PathLength)
	case t.MinMult < 1 || t.MinMult > t.MaxMult:
		return fmt.Errorf("bonus range [%.2f, %.2f] is invalid", t.MinMult, t.MaxMult)
	case t.DoubleChance < 0 || t.DoubleChance > 1:
		return fmt.Errorf("double_chance must be within [0, 1]")
	case t.DoubleChance > 0 && !t.Contains(DoubleBonus):
		return fmt.Errorf("double_chance requires %.2f within the bonus range", DoubleBonus)
	}
	return nil
}

// Contains reports whether v lies within the tier's bonus range
func (t Tier) Contains(v float64) bool {
	return v >= t.MinMult && v <= t.MaxMult
}

func (t Tier) hundredths() (int, int) {
	return int(math.Round(t.MinMult * 100)), int(math.Round(t.MaxMult * 100))
}

// Info lists the tiers from easiest to hardest
func (t Table) Info() []TierInfo {
	title := cases.Title(language.English)
	infos := make([]TierInfo, 0, len(domain.Difficulties))
	for _, d := range domain.Difficulties {
		tier, ok := t[d]
		if !ok {
			continue
		}
		infos = append(infos, TierInfo{
			Difficulty: d,
			Label:      title.String(string(d)),
			Tier:       tier,
		})
	}
	return infos
}

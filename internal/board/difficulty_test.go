package board

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
)

func TestDefaultDifficulties(t *testing.T) {
	table := DefaultDifficulties()

	expected := map[domain.Difficulty]Tier{
		domain.DifficultyEasy:   {Hazards: 1, Bonuses: 4, MinMult: 1.01, MaxMult: 2.00, DoubleChance: 0.25},
		domain.DifficultyMedium: {Hazards: 3, Bonuses: 4, MinMult: 1.11, MaxMult: 4.00, DoubleChance: 0.25},
		domain.DifficultyHard:   {Hazards: 5, Bonuses: 4, MinMult: 1.38, MaxMult: 7.50},
		domain.DifficultyExpert: {Hazards: 7, Bonuses: 4, MinMult: 3.82, MaxMult: 10.00},
		domain.DifficultyMaster: {Hazards: 9, Bonuses: 4, MinMult: 17.64, MaxMult: 18.00},
	}
	for d, tier := range expected {
		assert.Equal(t, tier, table[d], "tier %s", d)
	}
}

func TestLoadDifficulties(t *testing.T) {
	write := func(t *testing.T, content string) string {
		path := filepath.Join(t.TempDir(), "difficulties.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
		return path
	}

	t.Run("empty path uses built-in table", func(t *testing.T) {
		table, err := LoadDifficulties("")
		require.NoError(t, err)
		assert.Len(t, table, len(domain.Difficulties))
	})

	t.Run("loads override file", func(t *testing.T) {
		path := write(t, string(defaultDifficultiesYAML))
		table, err := LoadDifficulties(path)
		require.NoError(t, err)
		assert.Equal(t, 9, table[domain.DifficultyMaster].Hazards)
	})

	t.Run("rejects missing tier", func(t *testing.T) {
		path := write(t, "easy:\n  hazards: 1\n  bonuses: 1\n  min_mult: 1.1\n  max_mult: 1.5\n")
		_, err := LoadDifficulties(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "medium is missing")
	})

	t.Run("rejects double chance outside range", func(t *testing.T) {
		table := DefaultDifficulties()
		tier := table[domain.DifficultyHard]
		tier.DoubleChance = 0.5
		table[domain.DifficultyHard] = tier
		err := table.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "double_chance")
	})

	t.Run("rejects overfull path", func(t *testing.T) {
		table := DefaultDifficulties()
		tier := table[domain.DifficultyMaster]
		tier.Hazards = domain.PathLength
		table[domain.DifficultyMaster] = tier
		assert.Error(t, table.Validate())
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		table := DefaultDifficulties()
		tier := table[domain.DifficultyEasy]
		tier.MinMult, tier.MaxMult = 3, 2
		table[domain.DifficultyEasy] = tier
		assert.Error(t, table.Validate())
	})
}

func TestTableInfo(t *testing.T) {
	infos := DefaultDifficulties().Info()

	require.Len(t, infos, len(domain.Difficulties))
	assert.Equal(t, domain.DifficultyEasy, infos[0].Difficulty)
	assert.Equal(t, "Easy", infos[0].Label)
	assert.Equal(t, "Master", infos[4].Label)
	assert.Equal(t, 17.64, infos[4].MinMult)
}

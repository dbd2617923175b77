package board

import (
	"fmt"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/utils"
)

// Generator produces boards and paths. Every call draws fresh randomness.
type Generator struct {
	table Table
	size  int
	rng   utils.IntSource // Injectable for testing
}

// NewGenerator creates a generator over the given difficulty table
func NewGenerator(table Table) *Generator {
	return &Generator{
		table: table,
		size:  domain.BoardSize,
		rng:   utils.SecureRandomInt,
	}
}

// Tiers returns the difficulty table in display order
func (g *Generator) Tiers() []TierInfo {
	return g.table.Info()
}

// Tier returns the parameters of d
func (g *Generator) Tier(d domain.Difficulty) (Tier, error) {
	tier, ok := g.table[d]
	if !ok {
		return Tier{}, fmt.Errorf("%w: %q", domain.ErrUnknownDifficulty, d)
	}
	return tier, nil
}

// GeneratePath returns the outer ring of the board, clockwise from the top-left corner.
// The returned slice is never shared between calls.
func (g *Generator) GeneratePath() domain.Path {
	return ring(g.size)
}

func ring(size int) domain.Path {
	last := size - 1
	path := make(domain.Path, 0, 4*last)
	for x := 0; x <= last; x++ {
		path = append(path, domain.Coord{X: x, Y: 0})
	}
	for y := 1; y <= last; y++ {
		path = append(path, domain.Coord{X: last, Y: y})
	}
	for x := last - 1; x >= 0; x-- {
		path = append(path, domain.Coord{X: x, Y: last})
	}
	for y := last - 1; y >= 1; y-- {
		path = append(path, domain.Coord{X: 0, Y: y})
	}
	return path
}

// GenerateBoard lays out hazards and bonuses for d on random path cells
func (g *Generator) GenerateBoard(d domain.Difficulty) (*domain.Board, error) {
	tier, err := g.Tier(d)
	if err != nil {
		return nil, err
	}

	cells := make([][]domain.BoardCell, g.size)
	for y := range cells {
		cells[y] = make([]domain.BoardCell, g.size)
		for x := range cells[y] {
			cells[y][x] = domain.BoardCell{Kind: domain.CellEmpty}
		}
	}

	path := ring(g.size)
	candidates := make([]int, 0, len(path)-1)
	for i := range path {
		if i != StartIndex {
			candidates = append(candidates, i)
		}
	}
	if err := utils.Shuffle(candidates, g.rng); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextDrawLayout, err)
	}

	for i, idx := range candidates[:tier.Hazards+tier.Bonuses] {
		c := path[idx]
		if i < tier.Hazards {
			cells[c.Y][c.X] = domain.BoardCell{Kind: domain.CellHazard}
			continue
		}
		value, err := g.bonusValue(tier)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextDrawBonus, err)
		}
		cells[c.Y][c.X] = domain.BoardCell{Kind: domain.CellBonus, Bonus: value}
	}

	return &domain.Board{Size: g.size, Cells: cells}, nil
}

// bonusValue draws a bonus quantized to hundredths within the tier's range
func (g *Generator) bonusValue(tier Tier) (float64, error) {
	double, err := utils.Chance(tier.DoubleChance, g.rng)
	if err != nil {
		return 0, err
	}
	if double {
		return DoubleBonus, nil
	}
	lo, hi := tier.hundredths()
	h, err := g.rng(lo, hi)
	if err != nil {
		return 0, err
	}
	return float64(h) / 100, nil
}

// Preview generates a board/path pair for display. It is never used to play.
func (g *Generator) Preview(d domain.Difficulty) (*domain.Preview, error) {
	b, err := g.GenerateBoard(d)
	if err != nil {
		return nil, err
	}
	return &domain.Preview{Difficulty: d, Board: b, Path: g.GeneratePath()}, nil
}

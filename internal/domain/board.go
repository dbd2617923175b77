package domain

// CellKind is the type of a board cell
type CellKind string

const (
	CellEmpty  CellKind = "empty"
	CellHazard CellKind = "hazard"
	CellBonus  CellKind = "bonus"
)

// BoardCell is one square of the board. Bonus is only set on bonus cells.
type BoardCell struct {
	Kind  CellKind `json:"kind"`
	Bonus float64  `json:"bonus,omitempty"`
}

// Coord addresses a board cell
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Board is an immutable N x N grid indexed as Cells[y][x]
type Board struct {
	Size  int           `json:"size"`
	Cells [][]BoardCell `json:"cells"`
}

// At returns the cell at c
func (b *Board) At(c Coord) BoardCell {
	return b.Cells[c.Y][c.X]
}

// Path is the cyclic traversal order of the token
type Path []Coord

// Index wraps i onto the path
func (p Path) Index(i int) int {
	n := len(p)
	return ((i % n) + n) % n
}

// Steps returns every path index visited when moving n cells forward from start,
// ending with the landing index.
func (p Path) Steps(start, n int) []int {
	steps := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		steps = append(steps, p.Index(start+i))
	}
	return steps
}

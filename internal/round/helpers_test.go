package round

import (
	"context"
	"errors"
	"sync"

	"github.com/osse101/SnakeCrawl_Go/internal/board"
	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/event"
	"github.com/osse101/SnakeCrawl_Go/internal/worker"
)

// testBoard returns an empty board on the standard ring with the given
// path indexes replaced by cells.
func testBoard(cells map[int]domain.BoardCell) (*domain.Board, domain.Path) {
	path := board.NewGenerator(board.DefaultDifficulties()).GeneratePath()
	b := &domain.Board{Size: domain.BoardSize, Cells: make([][]domain.BoardCell, domain.BoardSize)}
	for y := range b.Cells {
		b.Cells[y] = make([]domain.BoardCell, domain.BoardSize)
		for x := range b.Cells[y] {
			b.Cells[y][x] = domain.BoardCell{Kind: domain.CellEmpty}
		}
	}
	for idx, cell := range cells {
		c := path[idx]
		b.Cells[c.Y][c.X] = cell
	}
	return b, path
}

// fixedBoards hands out the same layout for every round
type fixedBoards struct {
	layout map[int]domain.BoardCell
	err    error
}

func (f *fixedBoards) GenerateBoard(d domain.Difficulty) (*domain.Board, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, _ := testBoard(f.layout)
	return b, nil
}

func (f *fixedBoards) GeneratePath() domain.Path {
	_, p := testBoard(nil)
	return p
}

func (f *fixedBoards) Preview(d domain.Difficulty) (*domain.Preview, error) {
	if !d.IsValid() {
		return nil, domain.ErrUnknownDifficulty
	}
	b, p := testBoard(f.layout)
	return &domain.Preview{Difficulty: d, Board: b, Path: p}, nil
}

func (f *fixedBoards) Tiers() []board.TierInfo {
	return board.DefaultDifficulties().Info()
}

// scriptedDice returns the queued values in order
type scriptedDice struct {
	mu     sync.Mutex
	values []int
}

var errDiceExhausted = errors.New("dice script exhausted")

func newDice(values ...int) *scriptedDice {
	return &scriptedDice{values: values}
}

func (d *scriptedDice) Next(min, max int) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.values) == 0 {
		return 0, errDiceExhausted
	}
	v := d.values[0]
	d.values = d.values[1:]
	return v, nil
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, evt event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func (p *recordingPublisher) ofType(t event.Type) []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []event.Event
	for _, e := range p.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// inlineJobs runs every job synchronously and keeps it
type inlineJobs struct {
	mu   sync.Mutex
	jobs []worker.Job
	errs []error
}

func (q *inlineJobs) Enqueue(job worker.Job) error {
	err := job.Process(context.Background())
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	q.errs = append(q.errs, err)
	return nil
}

// markerProfiles keeps the active-round marker in memory
type markerProfiles struct {
	mu     sync.Mutex
	active map[string]bool
}

func (p *markerProfiles) Label(ctx context.Context, player string) string {
	return "Viper"
}

func (p *markerProfiles) SetActive(ctx context.Context, player string, active bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == nil {
		p.active = make(map[string]bool)
	}
	p.active[player] = active
	return nil
}

func (p *markerProfiles) isActive(player string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active[player]
}

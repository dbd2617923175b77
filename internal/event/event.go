package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// MetadataKeyPlayer tags an event with the player it concerns
const MetadataKeyPlayer = "player"

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Player returns the player the event concerns, or ""
func (e Event) Player() string {
	p, _ := e.GetMetadataValue(MetadataKeyPlayer).(string)
	return p
}

// Round and settlement event types
const (
	RoundStarted       Type = domain.EventTypeRoundStarted
	RoundStep          Type = domain.EventTypeRoundStep
	RoundLanded        Type = domain.EventTypeRoundLanded
	RoundLost          Type = domain.EventTypeRoundLost
	RoundCashedOut     Type = domain.EventTypeRoundCashedOut
	SettlementDeclined Type = domain.EventTypeSettlementDeclined
	SettlementFailed   Type = domain.EventTypeSettlementFailed
	BalanceUpdated     Type = domain.EventTypeBalanceUpdated
)

// RoundTypes lists every event a round emits
var RoundTypes = []Type{RoundStarted, RoundStep, RoundLanded, RoundLost, RoundCashedOut, SettlementDeclined, SettlementFailed}

// Typed event payloads for type safety

// RoundPayloadV1 is a snapshot of the public round fields
type RoundPayloadV1 struct {
	RoundID    string             `json:"round_id"`
	Player     string             `json:"player"`
	Difficulty domain.Difficulty  `json:"difficulty"`
	Stake      string             `json:"stake"`
	Multiplier string             `json:"multiplier"`
	Profit     string             `json:"profit"`
	Position   int                `json:"position"`
	Rolls      int                `json:"rolls"`
	Status     domain.RoundStatus `json:"status"`
	Dice       [2]int             `json:"dice"`
	Landing    *domain.BoardCell  `json:"landing,omitempty"`
	Timestamp  int64              `json:"timestamp"`
}

// StepPayloadV1 reveals one cell the token passes during a move
type StepPayloadV1 struct {
	RoundID string       `json:"round_id"`
	Player  string       `json:"player"`
	Step    int          `json:"step"`
	Of      int          `json:"of"`
	Index   int          `json:"index"`
	Cell    domain.Coord `json:"cell"`
}

// SettlementPayloadV1 describes a settlement attempt's outcome
type SettlementPayloadV1 struct {
	RoundID      string                   `json:"round_id"`
	Player       string                   `json:"player"`
	Outcome      domain.SettlementOutcome `json:"outcome"`
	Won          bool                     `json:"won"`
	MultiplierBP uint64                   `json:"multiplier_bp"`
	Profit       string                   `json:"profit"`
	TxID         string                   `json:"tx_id,omitempty"`
	Message      string                   `json:"message,omitempty"`
	Timestamp    int64                    `json:"timestamp"`
}

// BalancePayloadV1 carries a refreshed balance
type BalancePayloadV1 struct {
	Player  string `json:"player"`
	Minor   uint64 `json:"minor"`
	Display string `json:"display"`
}

// NewRoundPayload snapshots r
func NewRoundPayload(r domain.Round, landing *domain.BoardCell) RoundPayloadV1 {
	return RoundPayloadV1{
		RoundID:    r.ID.String(),
		Player:     r.Player,
		Difficulty: r.Difficulty,
		Stake:      r.Stake.String(),
		Multiplier: r.Multiplier.String(),
		Profit:     r.Profit.String(),
		Position:   r.Position,
		Rolls:      r.Rolls,
		Status:     r.Status,
		Dice:       r.LastDice,
		Landing:    landing,
		Timestamp:  time.Now().Unix(),
	}
}

// Type-safe event constructors

func newPlayerEvent(t Type, player string, payload interface{}) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     t,
		Payload:  payload,
		Metadata: Metadata{MetadataKeyPlayer: player},
	}
}

// NewRoundEvent creates a round lifecycle event (started, landed, lost, cashed out)
func NewRoundEvent(t Type, r domain.Round, landing *domain.BoardCell) Event {
	return newPlayerEvent(t, r.Player, NewRoundPayload(r, landing))
}

// NewStepEvent creates a movement reveal event
func NewStepEvent(r domain.Round, step, of, index int) Event {
	return newPlayerEvent(RoundStep, r.Player, StepPayloadV1{
		RoundID: r.ID.String(),
		Player:  r.Player,
		Step:    step,
		Of:      of,
		Index:   index,
		Cell:    r.Path[r.Path.Index(index)],
	})
}

// NewSettlementEvent creates the event matching res.Outcome
func NewSettlementEvent(r domain.Round, req domain.SettlementRequest, res domain.SettlementResult) Event {
	t := RoundCashedOut
	switch res.Outcome {
	case domain.SettlementDeclined:
		t = SettlementDeclined
	case domain.SettlementFailed:
		t = SettlementFailed
	}
	return newPlayerEvent(t, r.Player, SettlementPayloadV1{
		RoundID:      r.ID.String(),
		Player:       r.Player,
		Outcome:      res.Outcome,
		Won:          req.Won,
		MultiplierBP: req.MultiplierBasisPoints,
		Profit:       r.Profit.String(),
		TxID:         res.TxID,
		Message:      res.Message(),
		Timestamp:    time.Now().Unix(),
	})
}

// NewBalanceEvent creates a balance refresh event
func NewBalanceEvent(b domain.Balance) Event {
	return newPlayerEvent(BalanceUpdated, b.Player, BalancePayloadV1{
		Player:  b.Player,
		Minor:   b.Minor,
		Display: b.Display,
	})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Publisher accepts events
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Bus defines the interface for an event bus
type Bus interface {
	Publisher
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber of the event type synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeMany subscribes one handler to several event types
func SubscribeMany(b Bus, types []Type, handler Handler) {
	for _, t := range types {
		b.Subscribe(t, handler)
	}
}

package metrics

import (
	"context"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/event"
	"github.com/osse101/SnakeCrawl_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every round and balance event
func (e *EventMetricsCollector) Register(bus event.Bus) {
	types := append(append([]event.Type{}, event.RoundTypes...), event.BalanceUpdated)
	event.SubscribeMany(bus, types, e.HandleEvent)
}

// HandleEvent processes events and updates metrics. Payloads are decoded by
// event type, so replayed events carrying plain maps are counted too.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.RoundStarted, event.RoundLanded, event.RoundLost:
		p, err := event.DecodePayload[event.RoundPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnknownPayload, "type", evt.Type, "error", err)
			return nil
		}
		switch evt.Type {
		case event.RoundStarted:
			RoundsStarted.WithLabelValues(string(p.Difficulty)).Inc()
		case event.RoundLanded:
			RollsTotal.Inc()
		case event.RoundLost:
			RollsTotal.Inc()
			RoundsLost.WithLabelValues(string(p.Difficulty)).Inc()
		}

	case event.RoundCashedOut, event.SettlementDeclined, event.SettlementFailed:
		p, err := event.DecodePayload[event.SettlementPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnknownPayload, "type", evt.Type, "error", err)
			return nil
		}
		SettlementsTotal.WithLabelValues(string(p.Outcome)).Inc()
		if p.Outcome == domain.SettlementSettled {
			CashoutMultiplier.Observe(float64(p.MultiplierBP) / domain.BasisPointScale)
		}

	case event.BalanceUpdated:
		BalanceRefreshes.Inc()

	default:
		// round.step and unknown types are counted by EventsPublished only
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

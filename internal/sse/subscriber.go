package sse

import (
	"context"

	"github.com/osse101/SnakeCrawl_Go/internal/event"
	"github.com/osse101/SnakeCrawl_Go/internal/logger"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// StreamedTypes lists every bus event forwarded to clients
func StreamedTypes() []event.Type {
	return append(append([]event.Type{}, event.RoundTypes...), event.BalanceUpdated)
}

// Subscribe registers the forwarding handler for every streamed type
func (s *Subscriber) Subscribe() {
	types := StreamedTypes()
	event.SubscribeMany(s.bus, types, s.forward)
	logger.Info(LogMsgSubscribed, "types", types)
}

func (s *Subscriber) forward(ctx context.Context, evt event.Event) error {
	s.hub.Broadcast(string(evt.Type), evt.Player(), evt.Payload)
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", evt.Type, "player", evt.Player())
	return nil
}

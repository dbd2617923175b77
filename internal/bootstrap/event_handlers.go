package bootstrap

import (
	"log/slog"

	"github.com/osse101/SnakeCrawl_Go/internal/event"
	"github.com/osse101/SnakeCrawl_Go/internal/metrics"
	"github.com/osse101/SnakeCrawl_Go/internal/sse"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus event.Bus
	Hub      *sse.Hub
}

// RegisterEventHandlers subscribes the metrics collector and, when a hub is
// given, the SSE bridge to the bus.
func RegisterEventHandlers(deps EventHandlerDependencies) {
	metrics.NewEventMetricsCollector().Register(deps.EventBus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.Hub != nil {
		sse.NewSubscriber(deps.Hub, deps.EventBus).Subscribe()
		slog.Info(LogMsgSSESubscriberRegistered)
	}
}

package eventbus

import (
	"context"
	"log/slog"

	"github.com/davecgh/go-spew/spew"

	"github.com/0wem/weblarek/modules/shared/events"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	MaxDepth:                4,
}

// LogEvents subscribes an observer that writes every envelope to logger at
// debug level. Release the returned subscription to stop logging.
func LogEvents(bus *InMemoryEventBus, logger *slog.Logger) events.Subscription {
	return bus.SubscribeAll(func(ctx context.Context, envelope events.Envelope) {
		if !logger.Enabled(ctx, slog.LevelDebug) {
			return
		}
		logger.DebugContext(ctx, "event",
			slog.String("event_id", envelope.ID),
			slog.String("event_type", envelope.Type.String()),
			slog.String("payload", dumpConfig.Sdump(envelope.Payload)),
		)
	})
}

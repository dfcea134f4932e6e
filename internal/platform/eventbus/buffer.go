package eventbus

import (
	"context"
	"fmt"
	"sync"

	"github.com/0wem/weblarek/modules/shared/events"
)

const defaultMaxRounds = 10

// Buffer holds the events of one order placement attempt until the attempt
// is ready to commit. Use one Buffer per transaction attempt.
//
// Flush delivers in rounds: a round hands every buffered event to its
// handlers, and events those handlers publish make up the next round.
type Buffer struct {
	registry  HandlerRegistry
	maxRounds int

	mu      sync.Mutex
	pending []events.Event
}

// NewBuffer dispatches through registry. maxRounds <= 0 selects the default.
func NewBuffer(registry HandlerRegistry, maxRounds int) *Buffer {
	if maxRounds <= 0 {
		maxRounds = defaultMaxRounds
	}
	return &Buffer{registry: registry, maxRounds: maxRounds}
}

func (b *Buffer) Publish(_ context.Context, event events.Event) error {
	if event == nil {
		return ErrNilEvent
	}
	b.mu.Lock()
	b.pending = append(b.pending, event)
	b.mu.Unlock()
	return nil
}

// PublishAll buffers evts in order, stopping at the first nil.
func (b *Buffer) PublishAll(ctx context.Context, evts []events.Event) error {
	for _, e := range evts {
		if err := b.Publish(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// Len is the number of events waiting for the next round.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Flush runs rounds until nothing is pending. The first handler error
// aborts the flush; the caller rolls the attempt back.
func (b *Buffer) Flush(ctx context.Context) error {
	for round := 0; ; round++ {
		batch := b.take()
		if len(batch) == 0 {
			return nil
		}
		if round == b.maxRounds {
			return fmt.Errorf("%w: %d rounds, %s still pending",
				ErrEventProcessingDepthExceeded, round, batch[0].EventType())
		}
		for _, e := range batch {
			for _, h := range b.registry.HandlersFor(e.EventType()) {
				if err := h.Handle(ctx, e); err != nil {
					return fmt.Errorf("handler failed for event %s: %w", e.EventType(), err)
				}
			}
		}
	}
}

func (b *Buffer) take() []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	batch := b.pending
	b.pending = nil
	return batch
}

var _ events.Publisher = (*Buffer)(nil)

// Package domain holds building blocks shared by module domains.
package domain

import (
	"slices"

	"github.com/0wem/weblarek/modules/shared/events"
)

// Events records what an aggregate did until the application layer pulls
// it for dispatch. Embed it in the aggregate.
type Events struct {
	recorded []events.Event
}

func (e *Events) Record(event events.Event) {
	e.recorded = append(e.recorded, event)
}

// PullEvents returns the recorded events and forgets them.
func (e *Events) PullEvents() []events.Event {
	out := e.recorded
	e.recorded = nil
	return out
}

// PendingEvents is a copy of what PullEvents would return.
func (e *Events) PendingEvents() []events.Event {
	return slices.Clone(e.recorded)
}

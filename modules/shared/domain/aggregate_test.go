package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/0wem/weblarek/modules/shared/domain"
	"github.com/0wem/weblarek/modules/shared/events/contracts"
)

func TestEvents_PullForgets(t *testing.T) {
	var rec domain.Events
	assert.Empty(t, rec.PullEvents())

	rec.Record(contracts.OrderPlaced{OrderID: "a"})
	rec.Record(contracts.OrderPlaced{OrderID: "b"})
	assert.Len(t, rec.PendingEvents(), 2)

	pulled := rec.PullEvents()
	assert.Equal(t, contracts.OrderPlaced{OrderID: "a"}, pulled[0])
	assert.Len(t, pulled, 2)
	assert.Empty(t, rec.PendingEvents())
	assert.Empty(t, rec.PullEvents())
}

func TestEvents_PendingIsACopy(t *testing.T) {
	var rec domain.Events
	rec.Record(contracts.OrderPlaced{OrderID: "a"})

	pending := rec.PendingEvents()
	pending[0] = contracts.OrderPlaced{OrderID: "changed"}

	assert.Equal(t, contracts.OrderPlaced{OrderID: "a"}, rec.PullEvents()[0])
}

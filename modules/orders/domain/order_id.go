package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// OrderID uniquely identifies a placed order.
type OrderID struct {
	value uuid.UUID
}

func NewOrderID() OrderID {
	return OrderID{value: uuid.New()}
}

func ParseOrderID(s string) (OrderID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return OrderID{}, fmt.Errorf("%w: %q", ErrInvalidOrderID, s)
	}
	return OrderID{value: id}, nil
}

func (id OrderID) String() string { return id.value.String() }

func (id OrderID) IsZero() bool { return id.value == uuid.Nil }

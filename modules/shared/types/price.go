package types

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Price is a product price: either a decimal amount or the priceless
// sentinel meaning "not for sale". The zero value is priceless.
// Immutable value object - all operations return new instances.
type Price struct {
	amount decimal.Decimal
	priced bool
}

// Priceless is the "not for sale" sentinel. It is displayed distinctly from
// a zero price and counts as 0 in totals.
var Priceless = Price{}

func NewPrice(amount decimal.Decimal) Price {
	return Price{amount: amount, priced: true}
}

func PriceFromInt(amount int64) Price {
	return NewPrice(decimal.NewFromInt(amount))
}

func (p Price) IsPriceless() bool { return !p.priced }

// Amount returns the numeric amount, zero for a priceless value.
func (p Price) Amount() decimal.Decimal {
	if !p.priced {
		return decimal.Zero
	}
	return p.amount
}

// Add sums two prices treating priceless as 0. The result is always priced.
func (p Price) Add(other Price) Price {
	return NewPrice(p.Amount().Add(other.Amount()))
}

func (p Price) Equals(other Price) bool {
	if p.priced != other.priced {
		return false
	}
	return !p.priced || p.amount.Equal(other.amount)
}

func (p Price) String() string {
	if !p.priced {
		return "priceless"
	}
	return p.amount.String()
}

// MarshalJSON encodes the price as a bare number, or null when priceless.
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.priced {
		return []byte("null"), nil
	}
	return []byte(p.amount.String()), nil
}

// UnmarshalJSON accepts a number, a quoted number or null.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = Priceless
		return nil
	}
	data = bytes.Trim(data, `"`)
	amount, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPrice, data)
	}
	*p = NewPrice(amount)
	return nil
}

// TotalPrice sums item prices treating priceless as 0.
// It is the single derivation of a total; nothing caches its result.
func TotalPrice(items []Product) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Amount())
	}
	return total
}

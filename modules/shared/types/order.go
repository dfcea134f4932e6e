package types

import "github.com/shopspring/decimal"

// Order is built at submit time from the buyer profile and the cart.
// It is never stored by the storefront: it is sent and discarded.
type Order struct {
	Buyer Profile
	Items []Product
	Total decimal.Decimal
}

// NewOrder snapshots the profile and items and computes the total.
func NewOrder(buyer Profile, items []Product) Order {
	snapshot := make([]Product, len(items))
	copy(snapshot, items)
	return Order{
		Buyer: buyer,
		Items: snapshot,
		Total: TotalPrice(snapshot),
	}
}

// Payload is the POST /order/ request body.
func (o Order) Payload() OrderPayload {
	return OrderPayload{
		Payment: o.Buyer.Payment,
		Email:   o.Buyer.Email,
		Phone:   o.Buyer.Phone,
		Address: o.Buyer.Address,
		Total:   NewPrice(o.Total),
		Items:   ProductIDs(o.Items),
	}
}

// OrderPayload is the order wire format shared by the storefront client and
// the order API.
type OrderPayload struct {
	Payment Payment  `json:"payment"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
	Total   Price    `json:"total"`
	Items   []string `json:"items"`
}

// OrderResult is the order API's success response.
type OrderResult struct {
	ID    string `json:"id"`
	Total Price  `json:"total"`
}

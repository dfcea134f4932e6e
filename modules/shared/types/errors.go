package types

import "errors"

// Sentinel errors for malformed values crossing a wire boundary.
// Define errors in the types package where the validated types live.
var (
	ErrInvalidPrice   = errors.New("invalid price")
	ErrUnknownPayment = errors.New("unknown payment method")
)

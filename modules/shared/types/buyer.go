package types

import "fmt"

// Payment is the buyer's payment method.
type Payment string

const (
	PaymentCard Payment = "card"
	PaymentCash Payment = "cash"
)

func (p Payment) String() string { return string(p) }

func (p Payment) IsValid() bool {
	switch p {
	case PaymentCard, PaymentCash:
		return true
	default:
		return false
	}
}

func ParsePayment(s string) (Payment, error) {
	p := Payment(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPayment, s)
	}
	return p, nil
}

// Field names a single buyer profile field. The values double as form
// input names and as order:change keys.
type Field string

const (
	FieldPayment Field = "payment"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldAddress Field = "address"
)

func (f Field) String() string { return string(f) }

// PhoneDigits keeps the ASCII digits of a phone number, dropping
// separators and any other characters.
func PhoneDigits(phone string) string {
	digits := make([]byte, 0, len(phone))
	for i := 0; i < len(phone); i++ {
		if c := phone[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}
	return string(digits)
}

// Profile is a snapshot of buyer data. Fields are always defined;
// the empty string is the valid "not yet entered" value.
type Profile struct {
	Payment Payment `json:"payment"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address string  `json:"address"`
}

// DefaultProfile is the profile of a fresh or cleared buyer.
func DefaultProfile() Profile {
	return Profile{Payment: PaymentCard}
}

// Patch is a partial profile update. Nil fields are left untouched.
type Patch struct {
	Payment *Payment
	Email   *string
	Phone   *string
	Address *string
}

// Apply returns p with the patch fields merged over it.
func (p Profile) Apply(patch Patch) Profile {
	if patch.Payment != nil {
		p.Payment = *patch.Payment
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	return p
}

// Validation is the per-field validation result carried by form:validate.
type Validation struct {
	Payment bool `json:"payment"`
	Email   bool `json:"email"`
	Phone   bool `json:"phone"`
	Address bool `json:"address"`
}

// Valid reports whether every field passed.
func (v Validation) Valid() bool {
	return v.Payment && v.Email && v.Phone && v.Address
}

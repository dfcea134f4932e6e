package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/0wem/weblarek/modules/shared/types"
)

const (
	// MinPhoneDigits is the number of digit characters a phone needs.
	// Separators such as "+", "(", "-" and spaces do not count.
	MinPhoneDigits = 10
	// MinAddressLength is exclusive: an address must be longer than this.
	MinAddressLength = 5
)

// Validate evaluates every field rule against profile. It is pure: the Buyer
// methods call it to build their form:validate payload, and any other
// consumer may call it directly.
func Validate(profile types.Profile) types.Validation {
	return types.Validation{
		Payment: ValidPayment(profile.Payment),
		Email:   ValidEmail(profile.Email),
		Phone:   ValidPhone(profile.Phone),
		Address: ValidAddress(profile.Address),
	}
}

func ValidPayment(p types.Payment) bool { return p.IsValid() }

func ValidEmail(email string) bool { return strings.Contains(email, "@") }

func ValidPhone(phone string) bool { return CountDigits(phone) >= MinPhoneDigits }

func ValidAddress(address string) bool {
	return utf8.RuneCountInString(address) > MinAddressLength
}

// CountDigits counts the ASCII digits in s.
func CountDigits(s string) int { return len(types.PhoneDigits(s)) }

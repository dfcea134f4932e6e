package view

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/0wem/weblarek/modules/shared/types"
)

const (
	PricelessLabel = "Бесценно"
	currencyUnit   = "синапсов"
)

var printer = message.NewPrinter(language.Russian)

// FormatAmount renders an amount in synapses, e.g. "750 синапсов".
func FormatAmount(amount decimal.Decimal) string {
	if amount.IsInteger() {
		return printer.Sprintf("%d %s", amount.IntPart(), currencyUnit)
	}
	return amount.String() + " " + currencyUnit
}

// FormatPrice renders a product price. Priceless shows as "Бесценно",
// distinct from a zero price.
func FormatPrice(price types.Price) string {
	if price.IsPriceless() {
		return PricelessLabel
	}
	return FormatAmount(price.Amount())
}

var categoryClasses = map[types.Category]string{
	types.CategorySoftSkill:  "card__category_soft",
	types.CategoryHardSkill:  "card__category_hard",
	types.CategoryOther:      "card__category_other",
	types.CategoryAdditional: "card__category_additional",
	types.CategoryButton:     "card__category_button",
}

// CategoryClass maps a category to its badge modifier class. Unknown
// categories get the "other" badge.
func CategoryClass(category types.Category) string {
	if class, ok := categoryClasses[category]; ok {
		return class
	}
	return categoryClasses[types.CategoryOther]
}

// ImageURL resolves a product image path against the CDN origin. Absolute
// URLs are returned unchanged.
func ImageURL(cdn, image string) string {
	if image == "" || cdn == "" || strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	return strings.TrimRight(cdn, "/") + "/" + strings.TrimLeft(image, "/")
}

// FormatPhone reformats phone input as "+7 (XXX) XXX-XX-XX". A leading 7
// or 8 is read as the country code when the input already starts with
// "+7" or carries eleven digits or more; otherwise every digit belongs to
// the national number. Digits past the ten national ones are dropped.
func FormatPhone(input string) string {
	d := types.PhoneDigits(input)
	if d != "" && (strings.HasPrefix(strings.TrimSpace(input), "+7") || len(d) >= 11 && (d[0] == '7' || d[0] == '8')) {
		d = d[1:]
	}
	d = d[:min(len(d), 10)]

	switch n := len(d); {
	case n == 0:
		return ""
	case n <= 3:
		return "+7 (" + d
	case n <= 6:
		return "+7 (" + d[:3] + ") " + d[3:]
	case n <= 8:
		return "+7 (" + d[:3] + ") " + d[3:6] + "-" + d[6:]
	default:
		return "+7 (" + d[:3] + ") " + d[3:6] + "-" + d[6:8] + "-" + d[8:]
	}
}

package valueobject

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Naira represents an amount of Nigerian Naira. Prices on the platform are
// whole-Naira integers; there are no kobo amounts anywhere in the domain.
type Naira int64

var nairaPrinter = message.NewPrinter(language.English)

// String formats the amount with the Naira symbol, thousands separators and
// zero decimal places, e.g. 15000 -> "₦15,000".
func (n Naira) String() string {
	return nairaPrinter.Sprintf("₦%d", int64(n))
}

// Int64 returns the raw whole-Naira amount.
func (n Naira) Int64() int64 {
	return int64(n)
}

// IsNegative reports whether the amount is below zero.
func (n Naira) IsNegative() bool {
	return n < 0
}

// Mul multiplies the amount by a quantity.
func (n Naira) Mul(quantity int) Naira {
	return Naira(int64(n) * int64(quantity))
}

// FormatNaira formats a whole-Naira amount for display.
func FormatNaira(amount int64) string {
	return Naira(amount).String()
}

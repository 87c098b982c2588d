// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

package economy

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter formats amounts of money for display, e.g. "1,250.00 coins".
type Formatter struct {
	singular string
	plural   string
	printer  *message.Printer
}

// NewFormatter returns a formatter for the specified locale (a BCP 47 tag
// such as "en-US") and currency names. Unknown locales fall back to
// English.
func NewFormatter(locale, singular, plural string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}

	if len(plural) == 0 {
		plural = singular
	}

	return &Formatter{singular, plural, message.NewPrinter(tag)}
}

// DefaultFormatter returns an English formatter counting coins.
func DefaultFormatter() *Formatter {
	return NewFormatter("en", "coin", "coins")
}

// Format returns amount with two decimals, locale specific grouping and the
// currency name.
func (formatter *Formatter) Format(amount float64) string {
	name := formatter.plural
	if amount == 1 {
		name = formatter.singular
	}

	if len(name) == 0 {
		return formatter.printer.Sprintf("%.2f", amount)
	}

	return formatter.printer.Sprintf("%.2f %s", amount, name)
}

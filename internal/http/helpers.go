package http

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"accounting/internal/core"
)

// currencyFormatter renders money with a fixed symbol and locale grouping.
type currencyFormatter struct {
	symbol  string
	printer *message.Printer
}

func newCurrencyFormatter(symbol, locale string) currencyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return currencyFormatter{symbol: symbol, printer: message.NewPrinter(tag)}
}

// Format renders a signed amount, e.g. "₹1,200.00" or "-₹800.00".
func (f currencyFormatter) Format(m core.Money) string {
	s := f.symbol + f.printer.Sprint(number.Decimal(m.Abs().Units(), number.Scale(2)))
	if m.IsNegative() {
		return "-" + s
	}
	return s
}

// FormatAbs renders the magnitude only; the sign is conveyed by colour.
func (f currencyFormatter) FormatAbs(m core.Money) string {
	return f.Format(m.Abs())
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol is appended to formatted amounts.
const CurrencySymbol = "₫"

var vndPrinter = message.NewPrinter(language.Vietnamese)

// FormatVND renders an amount with Vietnamese digit grouping:
// 20000000 becomes "20.000.000₫". Fractional amounts keep two decimals.
func FormatVND(amount decimal.Decimal) string {
	if amount.IsInteger() {
		return vndPrinter.Sprintf("%d", amount.IntPart()) + CurrencySymbol
	}
	return vndPrinter.Sprintf("%.2f", amount.Round(2).InexactFloat64()) + CurrencySymbol
}

// FormatPrice renders an optional amount, empty when absent.
func FormatPrice(amount decimal.NullDecimal) string {
	if !amount.Valid {
		return ""
	}
	return FormatVND(amount.Decimal)
}

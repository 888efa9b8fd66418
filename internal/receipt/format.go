package receipt

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/iho/goreceipts/internal/domain"
)

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

var shortMonthNames = [...]string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun",
	"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
}

// UnspecifiedDate is printed in place of an unset date.
const UnspecifiedDate = "Fecha no especificada"

// ShortDate formats d as DD-Mmm-YYYY, e.g. "05-Ene-2025".
func ShortDate(d civil.Date) string {
	if domain.IsZeroDate(d) || !d.IsValid() {
		return ""
	}
	return fmt.Sprintf("%02d-%s-%04d", d.Day, shortMonthNames[d.Month-1], d.Year)
}

// LongDate formats d as "05 de Enero de 2025".
func LongDate(d civil.Date) string {
	if domain.IsZeroDate(d) || !d.IsValid() {
		return UnspecifiedDate
	}
	return fmt.Sprintf("%02d de %s de %d", d.Day, monthNames[d.Month-1], d.Year)
}

// IssueDate formats the date a receipt is issued on, with a lowercase month
// as in "05 de enero de 2025".
func IssueDate(d civil.Date) string {
	if domain.IsZeroDate(d) || !d.IsValid() {
		return UnspecifiedDate
	}
	return fmt.Sprintf("%02d de %s de %d", d.Day, strings.ToLower(monthNames[d.Month-1]), d.Year)
}

// ReceiptNumber builds the human-readable receipt identifier YYYYMMDD-NNN.
func ReceiptNumber(today civil.Date, n int) string {
	if n < 0 {
		n = -n
	}
	return fmt.Sprintf("%04d%02d%02d-%03d", today.Year, int(today.Month), today.Day, n%1000)
}

// amountPrinter formats numbers with es-MX symbols: "," groups thousands
// and "." marks decimals.
var amountPrinter = message.NewPrinter(language.MustParse("es-MX"))

// FormatAmount renders an amount as "$ 1,234.56 MXN".
func FormatAmount(amount decimal.Decimal) string {
	cents := amount.Round(2).InexactFloat64()
	return "$ " + amountPrinter.Sprint(number.Decimal(cents, number.Scale(2))) + " MXN"
}

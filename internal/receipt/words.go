package receipt

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	onesWords = [...]string{"", "uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho", "nueve"}

	teensWords = [...]string{
		"diez", "once", "doce", "trece", "catorce",
		"quince", "dieciséis", "diecisiete", "dieciocho", "diecinueve",
	}
	tensWords = [...]string{
		"", "", "veinte", "treinta", "cuarenta",
		"cincuenta", "sesenta", "setenta", "ochenta", "noventa",
	}
	hundredsWords = [...]string{
		"", "ciento", "doscientos", "trescientos", "cuatrocientos",
		"quinientos", "seiscientos", "setecientos", "ochocientos", "novecientos",
	}
)

// AmountWords spells out a non-negative integer in Spanish.
//
// Tens and ones are joined with "y" for every value from 21 up
// ("veinte y uno"), matching the wording used on printed receipts.
func AmountWords(n int64) string {
	switch n {
	case 0:
		return "cero"
	case 100:
		return "cien"
	case 1000:
		return "mil"
	}

	if n < 0 {
		return "menos " + AmountWords(-n)
	}

	var parts []string

	if n >= 1_000_000 {
		millions := n / 1_000_000
		if millions == 1 {
			parts = append(parts, "un millón")
		} else {
			parts = append(parts, AmountWords(millions)+" millones")
		}
		n %= 1_000_000
	}

	if n >= 1000 {
		thousands := n / 1000
		if thousands == 1 {
			parts = append(parts, "mil")
		} else {
			parts = append(parts, AmountWords(thousands)+" mil")
		}
		n %= 1000
	}

	if n > 0 {
		parts = append(parts, belowThousand(n))
	}

	return strings.Join(parts, " ")
}

func belowThousand(n int64) string {
	if n == 100 {
		return "cien"
	}

	var parts []string

	if n >= 100 {
		parts = append(parts, hundredsWords[n/100])
		n %= 100
	}

	switch {
	case n >= 20:
		w := tensWords[n/10]
		if n%10 != 0 {
			w += " y " + onesWords[n%10]
		}
		parts = append(parts, w)
	case n >= 10:
		parts = append(parts, teensWords[n-10])
	case n > 0:
		parts = append(parts, onesWords[n])
	}

	return strings.Join(parts, " ")
}

// AmountInWords renders the legal-text form of an amount:
// "(mil quinientos pesos 50/100 M.N.)". Cents are never spelled out.
func AmountInWords(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	whole := rounded.IntPart()
	cents := rounded.Sub(decimal.NewFromInt(whole)).Mul(decimal.NewFromInt(100)).IntPart()

	return fmt.Sprintf("(%s pesos %02d/100 M.N.)", AmountWords(whole), cents)
}

package textutil

import (
	"math"
	"strconv"
	"strings"

	"github.com/manav03panchal/controleplus/internal/errors"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

func digits(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == max {
				break
			}
		}
	}
	return b.String()
}

// FormatPhone formats up to 11 digits as a Brazilian phone number,
// "(62) 99999-8888" for mobiles and "(62) 3333-4444" for landlines.
// Partial input is formatted progressively.
func FormatPhone(s string) string {
	d := digits(s, 11)
	switch {
	case len(d) > 10:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	case len(d) > 6:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	case len(d) > 2:
		return "(" + d[:2] + ") " + d[2:]
	case len(d) > 0:
		return "(" + d
	}
	return ""
}

// FormatCNPJ formats up to 14 digits as XX.XXX.XXX/XXXX-XX.
func FormatCNPJ(s string) string {
	d := digits(s, 14)
	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 5:
		return d[:2] + "." + d[2:]
	case len(d) <= 8:
		return d[:2] + "." + d[2:5] + "." + d[5:]
	case len(d) <= 12:
		return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:]
	}
	return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
}

// FormatCEP formats up to 8 digits as XXXXX-XXX.
func FormatCEP(s string) string {
	d := digits(s, 8)
	if len(d) > 5 {
		return d[:5] + "-" + d[5:]
	}
	return d
}

// WhatsAppLink returns the wa.me link for a Brazilian phone, or "#" when
// phone is empty.
func WhatsAppLink(phone string) string {
	if phone == "" {
		return "#"
	}
	return "https://wa.me/55" + digits(phone, math.MaxInt)
}

// FormatDecimal formats v with two decimals and Brazilian separators,
// e.g. 1234.5 becomes "1.234,50".
func FormatDecimal(v float64) string {
	p := message.NewPrinter(Locale)
	return p.Sprint(number.Decimal(v, number.Scale(2)))
}

// FormatCurrency formats v as Brazilian reais, e.g. "R$ 1.234,56".
func FormatCurrency(v float64) string {
	if v < 0 {
		return "-R$ " + FormatDecimal(-v)
	}
	return "R$ " + FormatDecimal(v)
}

// FormatCurrencyPtr formats an optional amount; nil formats as "".
func FormatCurrencyPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatCurrency(*v)
}

// ParseDecimalBR parses a Brazilian formatted amount such as "1.234,56" or
// "R$ 300". Every "." is a thousands separator and "," is the decimal mark.
// Blank input yields nil.
func ParseDecimalBR(s string) (*float64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "R$")
	clean = strings.Join(strings.Fields(clean), "")
	if clean == "" {
		return nil, nil
	}
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.Replace(clean, ",", ".", 1)

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, errors.NewUserErrorWithField("value", s,
			"invalid amount",
			"Use the Brazilian format, e.g. 1.500,00").
			WithCause(errors.ErrInvalidValue)
	}
	return &v, nil
}

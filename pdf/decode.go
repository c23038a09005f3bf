package pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/statements"
	"github.com/shopspring/decimal"
)

// German statements print dates day-first and numbers with a decimal comma
// and dot thousands separators ("1.370,000"). The decoders below normalize
// those shapes; anything that still does not parse is a decode error, never
// a panic.

const dayFormat = "02.01.2006"
const clockFormat = "15:04:05"

// decodeField decodes one captured group according to its declared kind.
func decodeField(kind FieldKind, capture string) (any, error) {
	switch kind {
	case Text:
		return strings.TrimSpace(capture), nil
	case Number:
		return parseNumber(capture)
	case Day:
		return parseDay(capture)
	case Clock:
		return parseClock(capture)
	case Currency:
		code := strings.TrimSpace(capture)
		if err := statements.ValidateCurrency(code); err != nil {
			return nil, err
		}
		return code, nil
	default:
		return nil, fmt.Errorf("unknown field kind %d", kind)
	}
}

// parseNumber reads a localized decimal number.
//
// "1.234,56" and "234,56" are German; a capture with a dot but no comma is
// read as an already-normalized decimal point.
func parseNumber(s string) (decimal.Decimal, error) {
	n := strings.TrimSpace(s)
	switch {
	case strings.Contains(n, ","):
		n = strings.ReplaceAll(n, ".", "")
		n = strings.ReplaceAll(n, ",", ".")
	case strings.Count(n, ".") > 1:
		// several dots can only be thousands separators
		n = strings.ReplaceAll(n, ".", "")
	}
	d, err := decimal.NewFromString(n)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("not a number: %q", s)
	}
	return d, nil
}

// parseDay reads a day-first German date, or an ISO-8601 one.
func parseDay(s string) (statements.Date, error) {
	v := strings.TrimSpace(s)
	if t, err := time.Parse(dayFormat, v); err == nil {
		return statements.DateOf(t), nil
	}
	if d, err := statements.ParseDate(v); err == nil {
		return d, nil
	}
	return statements.Date{}, fmt.Errorf("not a date: %q", s)
}

// parseClock reads a time of day as an offset from midnight.
func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse(clockFormat, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not a time of day: %q", s)
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

// Package normalizer handles money and date parsing for accounting exports.
// Converts Dr/Cr amount notation and the several date encodings the desktop
// package emits into canonical values. All three format parsers route their
// amounts and dates through this package so the sign and date conventions are
// uniform regardless of source format.
package normalizer

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

var ErrInvalidDate = errors.New("invalid date format")

// ParseSignedAmount converts amount text into a signed decimal.
// "Dr 1000" is +1000 (debit positive), "Cr 1000" is -1000 (credit negative),
// bare numeric text is parsed as-is. Unparsable or empty input is zero —
// a bad amount is a data problem for the record, never a parse failure.
func ParseSignedAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}

	negate := false
	fields := strings.Fields(raw)
	if len(fields) > 1 {
		switch strings.ToLower(fields[0]) {
		case "dr":
			raw = strings.Join(fields[1:], "")
		case "cr":
			negate = true
			raw = strings.Join(fields[1:], "")
		}
	}

	// A leading letter after Dr/Cr handling means non-numeric text
	// ("abc", "N/A"), not an amount with decoration.
	if r := []rune(raw); unicode.IsLetter(r[0]) {
		return decimal.Zero
	}

	// Keep digits, decimal point and sign; strip currency symbols,
	// thousands separators and stray spaces.
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' || r == '-' {
			return r
		}
		return -1
	}, raw)

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	if negate {
		value = value.Neg()
	}
	return value
}

// Date formats seen in spreadsheet and CSV exports.
var dateFormats = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"2-1-2006",
	"2/1/2006",
	"02-Jan-2006",
	"2-Jan-2006",
	"2006-01-02 15:04:05",
}

// ParseDate converts date text into a time.Time.
// An 8-digit token is always YYYYMMDD (the accounting package's native
// encoding) and is parsed as explicit year/month/day; anything else goes
// through the known spreadsheet/CSV formats.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDate
	}

	if len(raw) == 8 && isAllDigits(raw) {
		t, err := time.ParseInLocation("20060102", raw, time.UTC)
		if err != nil {
			return time.Time{}, ErrInvalidDate
		}
		return t, nil
	}

	for _, format := range dateFormats {
		if t, err := time.ParseInLocation(format, raw, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrInvalidDate
}

// serialEpoch is day 1 of the spreadsheet serial-date scheme.
var serialEpoch = time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC)

// SerialDate converts a spreadsheet serial-date number to a time.Time
// using date = epoch(1899-12-31) + (serial - 1) days.
// Does not correct for the 1900 leap-year bug in the serial scheme.
func SerialDate(serial float64) time.Time {
	return serialEpoch.AddDate(0, 0, int(serial)-1)
}

// SerialDateText parses a numeric cell value and converts it via SerialDate.
func SerialDateText(raw string) (time.Time, bool) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return time.Time{}, false
	}
	return SerialDate(serial), true
}

// CleanName normalizes a record name: trims and collapses internal runs
// of whitespace to single spaces.
func CleanName(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

package normalizer

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseSignedAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Dr 1000", "1000"},
		{"Cr 1000", "-1000"},
		{"dr 250.50", "250.5"},
		{"CR 99.99", "-99.99"},
		{"Dr 1,00,000", "100000"}, // Indian digit grouping
		{"500", "500"},
		{"-500", "-500"},
		{"1234.56", "1234.56"},
		{"", "0"},
		{"   ", "0"},
		{"not a number", "0"},
		{"Dr abc", "0"},
		{"abc123", "0"},
		{"N/A", "0"},
	}

	for _, tc := range tests {
		got := ParseSignedAmount(tc.input)
		want, _ := decimal.NewFromString(tc.expected)
		if !got.Equal(want) {
			t.Errorf("ParseSignedAmount(%q) = %s, want %s", tc.input, got, want)
		}
	}
}

func TestParseDate_YYYYMMDD(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"20240401", "2024-04-01"},
		{"20231231", "2023-12-31"},
		{"19990115", "1999-01-15"},
	}

	for _, tc := range tests {
		got, err := ParseDate(tc.input)
		if err != nil {
			t.Errorf("ParseDate(%q) error: %v", tc.input, err)
			continue
		}
		if gotStr := got.Format("2006-01-02"); gotStr != tc.expected {
			t.Errorf("ParseDate(%q) = %s, want %s", tc.input, gotStr, tc.expected)
		}
	}
}

func TestParseDate_Flexible(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2024-04-01", "2024-04-01"},
		{"01-04-2024", "2024-04-01"},
		{"01/04/2024", "2024-04-01"},
		{"1-Apr-2024", "2024-04-01"},
	}

	for _, tc := range tests {
		got, err := ParseDate(tc.input)
		if err != nil {
			t.Errorf("ParseDate(%q) error: %v", tc.input, err)
			continue
		}
		if gotStr := got.Format("2006-01-02"); gotStr != tc.expected {
			t.Errorf("ParseDate(%q) = %s, want %s", tc.input, gotStr, tc.expected)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "  ", "99999999", "not-a-date"} {
		if _, err := ParseDate(input); err == nil {
			t.Errorf("ParseDate(%q): expected error", input)
		}
	}
}

func TestSerialDate(t *testing.T) {
	tests := []struct {
		serial   float64
		expected string
	}{
		{1, "1899-12-31"},
		{2, "1900-01-01"},
		{45383, "2024-04-01"},
	}

	for _, tc := range tests {
		got := SerialDate(tc.serial)
		if gotStr := got.Format("2006-01-02"); gotStr != tc.expected {
			t.Errorf("SerialDate(%v) = %s, want %s", tc.serial, gotStr, tc.expected)
		}
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  Cash  ", "Cash"},
		{"Sundry   Creditors", "Sundry Creditors"},
		{"ABC\tTraders\n", "ABC Traders"},
	}

	for _, tc := range tests {
		if got := CleanName(tc.input); got != tc.expected {
			t.Errorf("CleanName(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

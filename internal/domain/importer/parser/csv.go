package parser

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/FACorreiaa/tally-bridge/internal/domain/common"
	"github.com/FACorreiaa/tally-bridge/internal/domain/importer/normalizer"
)

// parseCSV parses a delimited-text export. Rows are streamed so memory
// use is bounded by the accumulated record lists, not the raw file size.
// Each row carries a Type column that buckets it into one of the four
// record kinds.
func (p *Parser) parseCSV(data []byte) (*ParsedDataSet, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, common.NewFatalInput("empty or corrupted file")
	}

	// BOMOverride strips any of the three BOMs while keeping the read
	// streaming.
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	reader := csv.NewReader(transform.NewReader(bytes.NewReader(data), decoder))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, common.NewFatalInput("empty or corrupted file")
		}
		return nil, &common.ParseError{Format: "CSV", Hint: diagnosticHint(err), Err: err}
	}

	ds := &ParsedDataSet{}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &common.ParseError{Format: "CSV", Hint: diagnosticHint(err), Err: err}
		}

		if isRowEmpty(row) {
			continue
		}

		rec := newRecord(headers, row)
		switch rowKind(rec.get("type", "recordtype")) {
		case "group":
			ds.Groups = append(ds.Groups, groupFromRecord(rec))
		case "ledger":
			ds.Ledgers = append(ds.Ledgers, ledgerFromRecord(rec))
		case "stock":
			ds.StockItems = append(ds.StockItems, stockItemFromRecord(rec))
		case "voucher":
			ds.Vouchers = append(ds.Vouchers, voucherFromRecord(rec, normalizer.ParseDate))
		default:
			ds.UnrecognizedRows++
		}
	}

	return ds, nil
}

// rowKind buckets a Type cell by case-insensitive substring match.
func rowKind(typ string) string {
	lower := strings.ToLower(typ)
	switch {
	case strings.Contains(lower, "group"):
		return "group"
	case strings.Contains(lower, "ledger"):
		return "ledger"
	case strings.Contains(lower, "stock"):
		return "stock"
	case strings.Contains(lower, "voucher"):
		return "voucher"
	default:
		return ""
	}
}

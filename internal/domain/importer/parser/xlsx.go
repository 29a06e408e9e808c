package parser

import (
	"bytes"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/tally-bridge/internal/domain/common"
	"github.com/FACorreiaa/tally-bridge/internal/domain/importer/normalizer"
)

// Expected sheet names in a spreadsheet export. Absence of a sheet means
// zero records of that kind.
const (
	sheetGroups     = "Groups"
	sheetLedgers    = "Ledgers"
	sheetStockItems = "Stock Items"
	sheetVouchers   = "Vouchers"
)

// oleMagic is the compound-document signature of legacy BIFF .xls
// workbooks, which the xlsx reader cannot open.
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// parseXLSX parses a spreadsheet export.
func (p *Parser) parseXLSX(data []byte) (*ParsedDataSet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		hint := diagnosticHint(err)
		if bytes.HasPrefix(data, oleMagic) {
			hint = "legacy .xls workbook not supported, re-export as .xlsx"
		}
		return nil, &common.ParseError{Format: "spreadsheet", Hint: hint, Err: err}
	}
	defer f.Close()

	ds := &ParsedDataSet{}

	for _, rec := range sheetRecords(f, sheetGroups) {
		ds.Groups = append(ds.Groups, groupFromRecord(rec))
	}
	for _, rec := range sheetRecords(f, sheetLedgers) {
		ds.Ledgers = append(ds.Ledgers, ledgerFromRecord(rec))
	}
	for _, rec := range sheetRecords(f, sheetStockItems) {
		ds.StockItems = append(ds.StockItems, stockItemFromRecord(rec))
	}
	for _, rec := range sheetRecords(f, sheetVouchers) {
		ds.Vouchers = append(ds.Vouchers, voucherFromRecord(rec, parseSheetDate))
	}

	return ds, nil
}

// sheetRecords reads a named sheet into field records. Row 1 is the
// header row; empty rows are skipped. A missing sheet yields nil.
func sheetRecords(f *excelize.File, name string) []record {
	sheet := findSheet(f, name)
	if sheet == "" {
		return nil
	}

	// Raw cell values keep native date cells as serial numbers instead
	// of losing them to the workbook's display format.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil || len(rows) < 2 {
		return nil
	}

	headers := rows[0]
	recs := make([]record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}
		recs = append(recs, newRecord(headers, row))
	}
	return recs
}

// findSheet matches a sheet name case-insensitively against the workbook.
func findSheet(f *excelize.File, name string) string {
	for _, s := range f.GetSheetList() {
		if normalizeKey(s) == normalizeKey(name) {
			return s
		}
	}
	return ""
}

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// parseSheetDate handles the spreadsheet date shapes: native date cells
// come through as formatted text, numeric cells are serial dates.
func parseSheetDate(raw string) (time.Time, error) {
	if t, err := normalizer.ParseDate(raw); err == nil {
		return t, nil
	}
	if t, ok := normalizer.SerialDateText(raw); ok {
		return t, nil
	}
	return time.Time{}, normalizer.ErrInvalidDate
}

// Package parser turns accounting-package export files (XML, spreadsheet,
// delimited text) into the canonical ParsedDataSet. The three format
// parsers share one field mapper and the normalizer package, so identical
// source data yields an identical dataset regardless of format.
package parser

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/FACorreiaa/tally-bridge/internal/domain/common"
)

// Parser dispatches uploads to the right format parser by file extension.
type Parser struct {
	logger *slog.Logger
}

// New creates a parser.
func New(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse parses file bytes into a ParsedDataSet. The filename is used only
// for its extension. Unsupported extensions are a FatalInputError; the
// caller sees no partial result on any error from here.
func (p *Parser) Parse(filename string, data []byte) (*ParsedDataSet, error) {
	var (
		ds  *ParsedDataSet
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xml":
		ds, err = p.parseXML(data)
	case ".xlsx", ".xls":
		ds, err = p.parseXLSX(data)
	case ".csv":
		ds, err = p.parseCSV(data)
	default:
		return nil, common.NewFatalInput("unsupported file format %q: expected .xml, .xlsx, .xls or .csv", ext)
	}
	if err != nil {
		return nil, err
	}

	ds.deriveOpeningBalances()

	p.logger.Info("parsed export file",
		"file", filename,
		"groups", len(ds.Groups),
		"ledgers", len(ds.Ledgers),
		"stock_items", len(ds.StockItems),
		"vouchers", len(ds.Vouchers),
		"unrecognized_rows", ds.UnrecognizedRows,
	)

	return ds, nil
}

// diagnosticHint classifies a low-level parse failure into a human hint.
func diagnosticHint(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "invalid utf-8"),
		strings.Contains(msg, "illegal character"),
		strings.Contains(msg, "encoding"):
		return "likely encoding/BOM issue"
	case strings.Contains(msg, "unexpected eof"),
		strings.Contains(msg, "eof"),
		strings.Contains(msg, "truncated"):
		return "likely truncated upload"
	case strings.Contains(msg, "syntax error"):
		return "malformed markup, re-export the file"
	default:
		return ""
	}
}

package parser

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/tally-bridge/internal/domain/importer/classify"
)

// Group is an account group from the export.
type Group struct {
	Name   string
	Parent string
	Nature classify.Nature
}

// Ledger is a ledger account from the export. OpeningBalance is signed:
// debit positive, credit negative.
type Ledger struct {
	Name           string
	GroupName      string
	Address        string
	State          string
	Pincode        string
	GSTIN          string
	PAN            string
	Email          string
	Phone          string
	OpeningBalance decimal.Decimal
	IsDefault      bool
}

// StockItem is an inventory item from the export.
type StockItem struct {
	Name         string
	GroupName    string
	Unit         string
	HSNCode      string
	GSTRate      decimal.Decimal
	OpeningQty   decimal.Decimal
	OpeningValue decimal.Decimal
}

// VoucherEntry is one ledger line of a voucher.
type VoucherEntry struct {
	LedgerName string
	Amount     decimal.Decimal
	IsDebit    bool
}

// Voucher is a transaction voucher from the export.
type Voucher struct {
	Type        classify.VoucherType
	Number      string
	Date        time.Time
	PartyName   string
	Narration   string
	Entries     []VoucherEntry
	TotalAmount decimal.Decimal
}

// OpeningBalance is derived from ledgers with a nonzero opening balance;
// it is never authored independently in the export.
type OpeningBalance struct {
	LedgerName string
	Amount     decimal.Decimal
	IsDebit    bool
}

// ParsedDataSet is the canonical output of all three format parsers.
// Built once per uploaded file and discarded after orchestration.
type ParsedDataSet struct {
	Groups          []Group
	Ledgers         []Ledger
	StockItems      []StockItem
	Vouchers        []Voucher
	OpeningBalances []OpeningBalance

	// UnrecognizedRows counts CSV rows whose Type column matched none of
	// the known record kinds. They are dropped, but the count is surfaced
	// so silent data loss is visible.
	UnrecognizedRows int
}

// deriveOpeningBalances rebuilds the OpeningBalances list from the parsed
// ledgers. Runs after format parsing so every format gets the same
// derivation.
func (ds *ParsedDataSet) deriveOpeningBalances() {
	ds.OpeningBalances = ds.OpeningBalances[:0]
	for _, l := range ds.Ledgers {
		if l.OpeningBalance.IsZero() {
			continue
		}
		ds.OpeningBalances = append(ds.OpeningBalances, OpeningBalance{
			LedgerName: l.Name,
			Amount:     l.OpeningBalance,
			IsDebit:    l.OpeningBalance.Sign() >= 0,
		})
	}
}

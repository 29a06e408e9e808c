package parser

import (
	"strings"
	"time"

	"github.com/FACorreiaa/tally-bridge/internal/domain/importer/classify"
	"github.com/FACorreiaa/tally-bridge/internal/domain/importer/normalizer"
)

// record is a parsed row or element keyed by normalized field name.
// Normalization makes the three formats' spelling variants converge:
// "Opening Balance", "OPENING_BALANCE" and "OpeningBalance" all key as
// "openingbalance".
type record map[string]string

// normalizeKey lowercases a header or tag name and strips separators.
func normalizeKey(key string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(key) {
		switch r {
		case ' ', '_', '-', '.', '/':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// newRecord zips a header row and a data row into a record.
// Extra cells without a header are ignored; missing cells stay absent.
func newRecord(headers, cells []string) record {
	rec := make(record, len(headers))
	for i, h := range headers {
		key := normalizeKey(h)
		if key == "" || i >= len(cells) {
			continue
		}
		rec[key] = strings.TrimSpace(cells[i])
	}
	return rec
}

// get returns the first non-empty value among the given normalized keys.
func (r record) get(keys ...string) string {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != "" {
			return v
		}
	}
	return ""
}

// Accepted spellings per canonical field, already normalized.
var (
	nameKeys      = []string{"name", "ledgername", "itemname", "groupname"}
	parentKeys    = []string{"parent", "parentgroup", "under"}
	groupKeys     = []string{"group", "groupname", "parent", "under"}
	openingKeys   = []string{"openingbalance", "opening", "opbalance"}
	unitKeys      = []string{"unit", "baseunits", "uom"}
	hsnKeys       = []string{"hsn", "hsncode"}
	gstRateKeys   = []string{"gstrate", "taxrate"}
	qtyKeys       = []string{"openingqty", "openingquantity", "openingstock", "qty"}
	valueKeys     = []string{"openingvalue", "openingamount", "value"}
	vtypeKeys     = []string{"vouchertype", "vouchertypename", "vchtype"}
	numberKeys    = []string{"vouchernumber", "number", "voucherno", "vchno"}
	dateKeys      = []string{"date", "voucherdate"}
	partyKeys     = []string{"party", "partyname", "partyledgername"}
	narrationKeys = []string{"narration", "description", "remarks"}
	ledgerKeys    = []string{"ledger", "ledgername"}
	amountKeys    = []string{"amount"}
	totalKeys     = []string{"total", "totalamount"}
)

// groupFromRecord builds a Group; the nature is always inferred from the
// group name, the exports never carry it explicitly.
func groupFromRecord(rec record) Group {
	name := normalizer.CleanName(rec.get(nameKeys...))
	return Group{
		Name:   name,
		Parent: normalizer.CleanName(rec.get(parentKeys...)),
		Nature: classify.ClassifyNature(name),
	}
}

func ledgerFromRecord(rec record) Ledger {
	return Ledger{
		Name:           normalizer.CleanName(rec.get(nameKeys...)),
		GroupName:      normalizer.CleanName(rec.get(groupKeys...)),
		Address:        rec.get("address"),
		State:          rec.get("state", "statename"),
		Pincode:        rec.get("pincode", "pin"),
		GSTIN:          rec.get("gstin", "gstregistrationnumber"),
		PAN:            rec.get("pan", "incometaxnumber"),
		Email:          rec.get("email"),
		Phone:          rec.get("phone", "phonenumber", "mobile"),
		OpeningBalance: normalizer.ParseSignedAmount(rec.get(openingKeys...)),
	}
}

func stockItemFromRecord(rec record) StockItem {
	return StockItem{
		Name:         normalizer.CleanName(rec.get(nameKeys...)),
		GroupName:    normalizer.CleanName(rec.get(groupKeys...)),
		Unit:         rec.get(unitKeys...),
		HSNCode:      rec.get(hsnKeys...),
		GSTRate:      normalizer.ParseSignedAmount(rec.get(gstRateKeys...)),
		OpeningQty:   normalizer.ParseSignedAmount(rec.get(qtyKeys...)),
		OpeningValue: normalizer.ParseSignedAmount(rec.get(valueKeys...)),
	}
}

// voucherFromRecord builds a Voucher from a flat row. Tabular exports
// carry one ledger line per voucher row; the entry's side follows the
// amount's sign.
func voucherFromRecord(rec record, dateParser func(string) (time.Time, error)) Voucher {
	v := Voucher{
		Type:        classify.MapVoucherType(rec.get(vtypeKeys...)),
		Number:      rec.get(numberKeys...),
		PartyName:   normalizer.CleanName(rec.get(partyKeys...)),
		Narration:   rec.get(narrationKeys...),
		TotalAmount: normalizer.ParseSignedAmount(rec.get(totalKeys...)),
	}

	if raw := rec.get(dateKeys...); raw != "" {
		if t, err := dateParser(raw); err == nil {
			v.Date = t
		}
	}

	if ledger := normalizer.CleanName(rec.get(ledgerKeys...)); ledger != "" {
		amount := normalizer.ParseSignedAmount(rec.get(amountKeys...))
		v.Entries = append(v.Entries, VoucherEntry{
			LedgerName: ledger,
			Amount:     amount,
			IsDebit:    amount.Sign() >= 0,
		})
		if v.TotalAmount.IsZero() {
			v.TotalAmount = amount.Abs()
		}
	}

	return v
}

package parser

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/FACorreiaa/tally-bridge/internal/domain/common"
	"github.com/FACorreiaa/tally-bridge/internal/domain/importer/decode"
	"github.com/FACorreiaa/tally-bridge/internal/domain/importer/normalizer"
)

// element is a generic XML tree node. Tag and attribute names are stored
// normalized, and children are always a list — the source format's
// single-object-vs-array ambiguity does not survive past this point.
type element struct {
	name     string
	attrs    map[string]string
	text     string
	children []*element
}

// parseElementTree decodes XML text into an element tree under a
// synthetic root.
func parseElementTree(text string) (*element, error) {
	dec := xml.NewDecoder(strings.NewReader(text))

	root := &element{name: ""}
	stack := []*element{root}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{
				name:  normalizeKey(t.Name.Local),
				attrs: make(map[string]string, len(t.Attr)),
			}
			for _, a := range t.Attr {
				el.attrs[normalizeKey(a.Name.Local)] = strings.TrimSpace(a.Value)
			}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, el)
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			stack[len(stack)-1].text += string(t)
		}
	}

	return root, nil
}

// first returns the first child matching any of the given normalized names.
func (e *element) first(names ...string) *element {
	for _, c := range e.children {
		for _, n := range names {
			if c.name == n {
				return c
			}
		}
	}
	return nil
}

// childList returns all children matching any of the given names.
// A single occurrence is a one-element list.
func (e *element) childList(names ...string) []*element {
	var out []*element
	for _, c := range e.children {
		for _, n := range names {
			if c.name == n {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// value resolves a field from an attribute or a leaf child element,
// whichever the source used.
func (e *element) value(names ...string) string {
	for _, n := range names {
		if v, ok := e.attrs[n]; ok && v != "" {
			return v
		}
	}
	if c := e.first(names...); c != nil {
		return strings.TrimSpace(c.text)
	}
	return ""
}

// record flattens an element's attributes and leaf children into a field
// record so the tabular builders apply to XML too.
func (e *element) record() record {
	rec := make(record, len(e.attrs)+len(e.children))
	for k, v := range e.attrs {
		rec[k] = v
	}
	for _, c := range e.children {
		if len(c.children) > 0 {
			continue
		}
		if v := strings.TrimSpace(c.text); v != "" {
			rec[c.name] = v
		}
	}
	return rec
}

// parseXML parses a decoded accounting XML export.
func (p *Parser) parseXML(data []byte) (*ParsedDataSet, error) {
	text, err := decode.XMLText(data, p.logger)
	if err != nil {
		return nil, err
	}

	root, err := parseElementTree(text)
	if err != nil {
		return nil, &common.ParseError{Format: "XML", Hint: diagnosticHint(err), Err: err}
	}

	ds := &ParsedDataSet{}

	// A missing message collection means an empty export, not an error.
	for _, msg := range messageElements(root) {
		for _, g := range msg.childList("group") {
			ds.Groups = append(ds.Groups, groupFromRecord(g.record()))
		}
		for _, l := range msg.childList("ledger") {
			ds.Ledgers = append(ds.Ledgers, ledgerFromRecord(l.record()))
		}
		for _, s := range msg.childList("stockitem") {
			ds.StockItems = append(ds.StockItems, stockItemFromRecord(s.record()))
		}
		for _, v := range msg.childList("voucher") {
			ds.Vouchers = append(ds.Vouchers, voucherFromElement(v))
		}
	}

	return ds, nil
}

// messageElements walks the fixed envelope path
// Envelope -> Body -> ImportData -> RequestData and returns the message
// wrappers found there.
func messageElements(root *element) []*element {
	envelope := root.first("envelope")
	if envelope == nil {
		return nil
	}
	body := envelope.first("body")
	if body == nil {
		return nil
	}
	importData := body.first("importdata")
	if importData == nil {
		return nil
	}
	requestData := importData.first("requestdata")
	if requestData == nil {
		return nil
	}
	return requestData.childList("tallymessage", "message")
}

// voucherFromElement builds a Voucher from a voucher element, including
// its ledger entry children.
func voucherFromElement(el *element) Voucher {
	v := voucherFromRecord(el.record(), normalizer.ParseDate)

	entryWrappers := el.childList("allledgerentrieslist", "ledgerentrieslist", "ledgerentries")
	for _, wrapper := range entryWrappers {
		v.Entries = append(v.Entries, entryFromElement(wrapper))
	}
	for _, entry := range el.childList("entry", "ledgerentry") {
		v.Entries = append(v.Entries, entryFromElement(entry))
	}

	if v.TotalAmount.IsZero() {
		for _, e := range v.Entries {
			if e.IsDebit {
				v.TotalAmount = v.TotalAmount.Add(e.Amount)
			}
		}
	}
	return v
}

func entryFromElement(el *element) VoucherEntry {
	rec := el.record()
	amount := normalizer.ParseSignedAmount(rec.get("amount"))
	isDebit := amount.Sign() >= 0
	if v := rec.get("isdeemedpositive"); v != "" {
		isDebit = strings.EqualFold(v, "yes")
	}
	return VoucherEntry{
		LedgerName: normalizer.CleanName(rec.get("ledgername", "ledger")),
		Amount:     amount,
		IsDebit:    isDebit,
	}
}

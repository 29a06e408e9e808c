// Package classify maps free-text accounting names onto canonical enums.
// The source package lets users name groups and voucher types freely, so
// classification is heuristic: an ordered substring rule table, most
// specific rules first, first match wins. The ordering is load-bearing —
// "Sundry Creditors" must classify via its own rule before the generic
// "creditor" fallback fires.
package classify

import "strings"

// Nature is the accounting classification of a group or ledger.
type Nature string

const (
	NatureAsset     Nature = "asset"
	NatureLiability Nature = "liability"
	NatureIncome    Nature = "income"
	NatureExpense   Nature = "expense"
)

// VoucherType is the canonical voucher kind.
type VoucherType string

const (
	VoucherSales      VoucherType = "Sales"
	VoucherPurchase   VoucherType = "Purchase"
	VoucherPayment    VoucherType = "Payment"
	VoucherReceipt    VoucherType = "Receipt"
	VoucherJournal    VoucherType = "Journal"
	VoucherContra     VoucherType = "Contra"
	VoucherDebitNote  VoucherType = "Debit Note"
	VoucherCreditNote VoucherType = "Credit Note"
)

type natureRule struct {
	patterns []string // any substring match fires the rule
	exclude  []string // unless one of these also matches
	nature   Nature
}

// natureRules is evaluated top to bottom, first match wins.
var natureRules = []natureRule{
	{patterns: []string{"sundry creditor"}, nature: NatureLiability},
	{patterns: []string{"sundry debtor"}, nature: NatureAsset},
	{patterns: []string{"capital"}, nature: NatureLiability},
	{patterns: []string{
		"current asset", "fixed asset", "bank", "cash", "deposits",
		"loans & advances", "loans and advances", "stock-in-hand", "inventory",
	}, nature: NatureAsset},
	{patterns: []string{
		"current liabilit", "duties & taxes", "duties and taxes",
		"provisions", "loan", "outstanding", "payable",
	}, nature: NatureLiability},
	{patterns: []string{
		"direct income", "indirect income", "sales account", "revenue", "income",
	}, nature: NatureIncome},
	{patterns: []string{
		"direct expense", "indirect expense", "purchase account", "expenses",
	}, nature: NatureExpense},
	{patterns: []string{"asset"}, nature: NatureAsset},
	{patterns: []string{"liabilit"}, nature: NatureLiability},
	{patterns: []string{"sales"}, exclude: []string{"creditor", "debtor"}, nature: NatureIncome},
	{patterns: []string{"purchase"}, exclude: []string{"creditor", "debtor"}, nature: NatureExpense},
	{patterns: []string{"branch", "division"}, nature: NatureAsset},
	{patterns: []string{"creditor"}, nature: NatureLiability},
	{patterns: []string{"debtor"}, nature: NatureAsset},
}

func (r natureRule) matches(name string) bool {
	for _, ex := range r.exclude {
		if strings.Contains(name, ex) {
			return false
		}
	}
	for _, p := range r.patterns {
		if strings.Contains(name, p) {
			return true
		}
	}
	return false
}

// ClassifyNature infers the accounting nature of a group name.
// Unmatched names default to expense.
func ClassifyNature(name string) Nature {
	lower := strings.ToLower(name)
	for _, rule := range natureRules {
		if rule.matches(lower) {
			return rule.nature
		}
	}
	return NatureExpense
}

type voucherRule struct {
	patterns []string
	vtype    VoucherType
}

// voucherRules is evaluated top to bottom, first match wins.
var voucherRules = []voucherRule{
	{patterns: []string{"sales", "invoice"}, vtype: VoucherSales},
	{patterns: []string{"purchase", "bill"}, vtype: VoucherPurchase},
	{patterns: []string{"payment"}, vtype: VoucherPayment},
	{patterns: []string{"receipt"}, vtype: VoucherReceipt},
	{patterns: []string{"journal"}, vtype: VoucherJournal},
	{patterns: []string{"contra"}, vtype: VoucherContra},
	{patterns: []string{"debit note"}, vtype: VoucherDebitNote},
	{patterns: []string{"credit note"}, vtype: VoucherCreditNote},
}

// MapVoucherType maps a free-text voucher type name onto the canonical
// enum. Unmatched names default to Journal.
func MapVoucherType(name string) VoucherType {
	lower := strings.ToLower(name)
	for _, rule := range voucherRules {
		for _, p := range rule.patterns {
			if strings.Contains(lower, p) {
				return rule.vtype
			}
		}
	}
	return VoucherJournal
}

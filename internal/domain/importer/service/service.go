// Package service orchestrates an import run: it walks a parsed dataset
// in dependency order, resolves references against the target store and
// applies create-or-skip semantics. One bad record never aborts a batch;
// only input-stage failures reject the whole run.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/FACorreiaa/tally-bridge/internal/domain/common"
	"github.com/FACorreiaa/tally-bridge/internal/domain/importer/filestore"
	"github.com/FACorreiaa/tally-bridge/internal/domain/importer/parser"
	"github.com/FACorreiaa/tally-bridge/internal/domain/importer/repository"
	"github.com/FACorreiaa/tally-bridge/pkg/observability"
)

// DefaultMaxVouchers bounds orchestration latency on oversized exports.
const DefaultMaxVouchers = 1000

// Options selects which record kinds to import and the voucher cap.
type Options struct {
	ImportGroups     bool
	ImportLedgers    bool
	ImportStockItems bool
	ImportVouchers   bool
	MaxVouchers      int
}

// DefaultOptions imports every kind with the default voucher cap.
func DefaultOptions() Options {
	return Options{
		ImportGroups:     true,
		ImportLedgers:    true,
		ImportStockItems: true,
		ImportVouchers:   true,
		MaxVouchers:      DefaultMaxVouchers,
	}
}

// RecordError is one record that could not be resolved or created.
// Accumulated per kind; never fatal for the batch.
type RecordError struct {
	Record  string `json:"record"`
	Message string `json:"error"`
}

// KindResult accumulates the outcome for one record kind.
type KindResult struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []RecordError `json:"errors"`
}

// Summary carries pre-cap totals as parsed from the file.
type Summary struct {
	TotalGroups      int `json:"totalGroups"`
	TotalLedgers     int `json:"totalLedgers"`
	TotalStockItems  int `json:"totalStockItems"`
	TotalVouchers    int `json:"totalVouchers"`
	UnrecognizedRows int `json:"unrecognizedRows,omitempty"`
}

// ImportResult is the outcome of one import run.
type ImportResult struct {
	Groups     KindResult `json:"groups"`
	Ledgers    KindResult `json:"ledgers"`
	StockItems KindResult `json:"stockItems"`
	Vouchers   KindResult `json:"vouchers"`
	Summary    Summary    `json:"summary"`
}

// ImportService runs imports against the target store.
type ImportService struct {
	repos  *repository.Repositories
	files  filestore.FileStore
	parser *parser.Parser
	logger *slog.Logger
}

// NewImportService creates an import service.
func NewImportService(repos *repository.Repositories, files filestore.FileStore, logger *slog.Logger) *ImportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportService{
		repos:  repos,
		files:  files,
		parser: parser.New(logger),
		logger: logger,
	}
}

// ImportFile reads an upload from the file store, imports it, and on
// success deletes the upload best-effort. A deletion failure is logged,
// never surfaced.
func (s *ImportService) ImportFile(ctx context.Context, tenantID uuid.UUID, filename string, opts Options) (*ImportResult, error) {
	data, err := s.files.Read(filename)
	if err != nil {
		observability.ImportRuns.WithLabelValues("rejected").Inc()
		return nil, common.NewFatalInput("failed to read upload: %v", err)
	}

	result, err := s.Import(ctx, tenantID, filename, data, opts)
	if err != nil {
		return nil, err
	}

	if err := s.files.Remove(filename); err != nil {
		s.logger.Warn("failed to delete upload after import", "file", filename, "error", err)
	}

	return result, nil
}

// Import parses file bytes and merges the dataset into the store.
// Parse-stage failures reject the run; record-level failures accumulate
// in the result and the run continues.
func (s *ImportService) Import(ctx context.Context, tenantID uuid.UUID, filename string, data []byte, opts Options) (*ImportResult, error) {
	if opts.MaxVouchers <= 0 {
		opts.MaxVouchers = DefaultMaxVouchers
	}

	ds, err := s.parser.Parse(filename, data)
	if err != nil {
		observability.ImportRuns.WithLabelValues("rejected").Inc()
		return nil, err
	}

	result := &ImportResult{
		Summary: Summary{
			TotalGroups:      len(ds.Groups),
			TotalLedgers:     len(ds.Ledgers),
			TotalStockItems:  len(ds.StockItems),
			TotalVouchers:    len(ds.Vouchers),
			UnrecognizedRows: ds.UnrecognizedRows,
		},
	}

	// Dependency order: groups before ledgers and stock items, vouchers
	// last. Records in one run may reference records created earlier in
	// the same run, so processing is strictly sequential.
	if opts.ImportGroups {
		s.importGroups(ctx, tenantID, ds.Groups, &result.Groups)
	}
	if opts.ImportLedgers {
		s.importLedgers(ctx, tenantID, ds.Ledgers, &result.Ledgers)
	}
	if opts.ImportStockItems {
		s.importStockItems(ctx, tenantID, ds.StockItems, &result.StockItems)
	}
	if opts.ImportVouchers {
		s.importVouchers(ctx, tenantID, ds.Vouchers, opts.MaxVouchers, &result.Vouchers)
	}

	recordMetrics(result)
	observability.ImportRuns.WithLabelValues("completed").Inc()

	s.logger.Info("import run completed",
		"tenant", tenantID,
		"file", filename,
		"groups_imported", result.Groups.Imported,
		"ledgers_imported", result.Ledgers.Imported,
		"stock_items_imported", result.StockItems.Imported,
		"vouchers_imported", result.Vouchers.Imported,
		"errors", len(result.Groups.Errors)+len(result.Ledgers.Errors)+
			len(result.StockItems.Errors)+len(result.Vouchers.Errors),
	)

	return result, nil
}

func (s *ImportService) importGroups(ctx context.Context, tenantID uuid.UUID, groups []parser.Group, out *KindResult) {
	for _, g := range groups {
		if g.Name == "" {
			out.fail("(unnamed group)", "group has no name")
			continue
		}

		existing, err := s.repos.Groups.FindByName(ctx, tenantID, g.Name)
		if err != nil {
			out.fail(g.Name, err.Error())
			continue
		}
		if existing != nil {
			out.Skipped++
			continue
		}

		rec := &repository.GroupRecord{
			TenantID: tenantID,
			Name:     g.Name,
			Parent:   g.Parent,
			Nature:   string(g.Nature),
		}
		if err := s.repos.Groups.Create(ctx, rec); err != nil {
			out.fail(g.Name, err.Error())
			continue
		}
		out.Imported++
	}
}

func (s *ImportService) importLedgers(ctx context.Context, tenantID uuid.UUID, ledgers []parser.Ledger, out *KindResult) {
	for _, l := range ledgers {
		if l.Name == "" {
			out.fail("(unnamed ledger)", "ledger has no name")
			continue
		}

		group, err := s.repos.Groups.FindByName(ctx, tenantID, l.GroupName)
		if err != nil {
			out.fail(l.Name, err.Error())
			continue
		}
		if group == nil {
			out.fail(l.Name, fmt.Sprintf("Group %q not found", l.GroupName))
			continue
		}

		existing, err := s.repos.Ledgers.FindByName(ctx, tenantID, l.Name)
		if err != nil {
			out.fail(l.Name, err.Error())
			continue
		}
		if existing != nil {
			out.Skipped++
			continue
		}

		rec := &repository.LedgerRecord{
			TenantID:       tenantID,
			Name:           l.Name,
			GroupID:        group.ID,
			Address:        l.Address,
			State:          l.State,
			Pincode:        l.Pincode,
			GSTIN:          l.GSTIN,
			PAN:            l.PAN,
			Email:          l.Email,
			Phone:          l.Phone,
			OpeningBalance: l.OpeningBalance,
			IsDefault:      l.IsDefault,
		}
		if err := s.repos.Ledgers.Create(ctx, rec); err != nil {
			out.fail(l.Name, err.Error())
			continue
		}
		out.Imported++
	}
}

func (s *ImportService) importStockItems(ctx context.Context, tenantID uuid.UUID, items []parser.StockItem, out *KindResult) {
	for _, item := range items {
		if item.Name == "" {
			out.fail("(unnamed stock item)", "stock item has no name")
			continue
		}

		group, err := s.repos.Groups.FindByName(ctx, tenantID, item.GroupName)
		if err != nil {
			out.fail(item.Name, err.Error())
			continue
		}
		if group == nil {
			out.fail(item.Name, fmt.Sprintf("Group %q not found", item.GroupName))
			continue
		}

		existing, err := s.repos.StockItems.FindByName(ctx, tenantID, item.Name)
		if err != nil {
			out.fail(item.Name, err.Error())
			continue
		}
		if existing != nil {
			out.Skipped++
			continue
		}

		rec := &repository.StockItemRecord{
			TenantID:     tenantID,
			Name:         item.Name,
			GroupID:      group.ID,
			Unit:         item.Unit,
			HSNCode:      item.HSNCode,
			GSTRate:      item.GSTRate,
			OpeningQty:   item.OpeningQty,
			OpeningValue: item.OpeningValue,
		}
		if err := s.repos.StockItems.Create(ctx, rec); err != nil {
			out.fail(item.Name, err.Error())
			continue
		}
		out.Imported++
	}
}

func (s *ImportService) importVouchers(ctx context.Context, tenantID uuid.UUID, vouchers []parser.Voucher, maxVouchers int, out *KindResult) {
	total := len(vouchers)
	if total > maxVouchers {
		vouchers = vouchers[:maxVouchers]
		out.fail("vouchers", fmt.Sprintf("parsed %d vouchers, import capped at %d", total, maxVouchers))
	}

	for _, v := range vouchers {
		typeRec, err := s.resolveVoucherType(ctx, tenantID, string(v.Type))
		if err != nil {
			out.fail(v.Number, err.Error())
			continue
		}

		// An unresolved party is imported as "no party"; unlike a
		// ledger's group it is not a hard reference.
		party := v.PartyName
		if party != "" {
			ledger, err := s.repos.Ledgers.FindByName(ctx, tenantID, party)
			if err != nil {
				out.fail(v.Number, err.Error())
				continue
			}
			if ledger == nil {
				party = ""
			}
		}

		// Unnumbered vouchers get a deterministic number derived from
		// their content so a re-import dedups them like numbered ones.
		number := v.Number
		if number == "" {
			number = syntheticNumber(v)
		}

		existing, err := s.repos.Vouchers.FindByName(ctx, tenantID, number)
		if err != nil {
			out.fail(number, err.Error())
			continue
		}
		if existing != nil {
			out.Skipped++
			continue
		}

		rec := &repository.VoucherRecord{
			TenantID:      tenantID,
			VoucherTypeID: typeRec.ID,
			Number:        number,
			Date:          v.Date,
			PartyName:     party,
			Narration:     v.Narration,
			TotalAmount:   v.TotalAmount,
		}
		for _, e := range v.Entries {
			rec.Entries = append(rec.Entries, repository.VoucherEntryRecord{
				LedgerName: e.LedgerName,
				Amount:     e.Amount,
				IsDebit:    e.IsDebit,
			})
		}
		if err := s.repos.Vouchers.Create(ctx, rec); err != nil {
			out.fail(number, err.Error())
			continue
		}
		out.Imported++
	}
}

// syntheticNumber builds the dedup number for a voucher without one.
func syntheticNumber(v parser.Voucher) string {
	return fmt.Sprintf("%s/%s/%s/%s",
		v.Type, v.Date.Format("20060102"), v.PartyName, v.TotalAmount.String())
}

// resolveVoucherType finds the canonical voucher type, creating it on
// first use for the tenant.
func (s *ImportService) resolveVoucherType(ctx context.Context, tenantID uuid.UUID, name string) (*repository.VoucherTypeRecord, error) {
	existing, err := s.repos.VoucherTypes.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	rec := &repository.VoucherTypeRecord{
		TenantID: tenantID,
		Name:     name,
		Category: strings.ToLower(name),
	}
	if err := s.repos.VoucherTypes.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *KindResult) fail(record, message string) {
	r.Errors = append(r.Errors, RecordError{Record: record, Message: message})
}

func recordMetrics(result *ImportResult) {
	for kind, kr := range map[string]*KindResult{
		"group":      &result.Groups,
		"ledger":     &result.Ledgers,
		"stock_item": &result.StockItems,
		"voucher":    &result.Vouchers,
	} {
		observability.RecordsImported.WithLabelValues(kind).Add(float64(kr.Imported))
		observability.RecordsSkipped.WithLabelValues(kind).Add(float64(kr.Skipped))
		observability.RecordErrors.WithLabelValues(kind).Add(float64(len(kr.Errors)))
	}
}

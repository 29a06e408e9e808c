// Package repository provides data access for the multi-tenant accounting
// store the import engine merges into. Lookups are by natural key (name)
// within a tenant; a missing row is (nil, nil), never an error.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GroupRecord is a stored account group.
type GroupRecord struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Parent    string
	Nature    string
	CreatedAt time.Time
}

// LedgerRecord is a stored ledger account.
type LedgerRecord struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	Name           string
	GroupID        uuid.UUID
	Address        string
	State          string
	Pincode        string
	GSTIN          string
	PAN            string
	Email          string
	Phone          string
	OpeningBalance decimal.Decimal
	IsDefault      bool
	CreatedAt      time.Time
}

// StockItemRecord is a stored inventory item.
type StockItemRecord struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	Name         string
	GroupID      uuid.UUID
	Unit         string
	HSNCode      string
	GSTRate      decimal.Decimal
	OpeningQty   decimal.Decimal
	OpeningValue decimal.Decimal
	CreatedAt    time.Time
}

// VoucherTypeRecord is a stored voucher type.
type VoucherTypeRecord struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Name     string
	Category string
}

// VoucherEntryRecord is one ledger line of a stored voucher.
type VoucherEntryRecord struct {
	LedgerName string
	Amount     decimal.Decimal
	IsDebit    bool
}

// VoucherRecord is a stored voucher with its entries.
type VoucherRecord struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	VoucherTypeID uuid.UUID
	Number        string
	Date          time.Time
	PartyName     string
	Narration     string
	TotalAmount   decimal.Decimal
	Entries       []VoucherEntryRecord
	CreatedAt     time.Time
}

// GroupRepository is the store contract for account groups.
type GroupRepository interface {
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*GroupRecord, error)
	Create(ctx context.Context, rec *GroupRecord) error
}

// LedgerRepository is the store contract for ledgers.
type LedgerRepository interface {
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*LedgerRecord, error)
	Create(ctx context.Context, rec *LedgerRecord) error
}

// StockItemRepository is the store contract for stock items.
type StockItemRepository interface {
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*StockItemRecord, error)
	Create(ctx context.Context, rec *StockItemRecord) error
}

// VoucherTypeRepository is the store contract for voucher types.
type VoucherTypeRepository interface {
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*VoucherTypeRecord, error)
	Create(ctx context.Context, rec *VoucherTypeRecord) error
}

// VoucherRepository is the store contract for vouchers. The natural key
// is the voucher number, passed as the name.
type VoucherRepository interface {
	FindByName(ctx context.Context, tenantID uuid.UUID, number string) (*VoucherRecord, error)
	Create(ctx context.Context, rec *VoucherRecord) error
}

// Repositories bundles the five store contracts the orchestrator needs.
type Repositories struct {
	Groups       GroupRepository
	Ledgers      LedgerRepository
	StockItems   StockItemRepository
	VoucherTypes VoucherTypeRepository
	Vouchers     VoucherRepository
}

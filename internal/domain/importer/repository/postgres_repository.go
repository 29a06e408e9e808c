package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repositories use. pgxmock
// implements it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// NewPostgres wires the five repositories onto one connection pool.
func NewPostgres(db DB) *Repositories {
	return &Repositories{
		Groups:       &PostgresGroupRepository{db: db},
		Ledgers:      &PostgresLedgerRepository{db: db},
		StockItems:   &PostgresStockItemRepository{db: db},
		VoucherTypes: &PostgresVoucherTypeRepository{db: db},
		Vouchers:     &PostgresVoucherRepository{db: db},
	}
}

// PostgresGroupRepository implements GroupRepository using PostgreSQL.
type PostgresGroupRepository struct {
	db DB
}

func (r *PostgresGroupRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*GroupRecord, error) {
	query := `
		SELECT id, tenant_id, name, parent, nature, created_at
		FROM account_groups
		WHERE tenant_id = $1 AND name = $2
	`

	var rec GroupRecord
	err := r.db.QueryRow(ctx, query, tenantID, name).Scan(
		&rec.ID, &rec.TenantID, &rec.Name, &rec.Parent, &rec.Nature, &rec.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find group by name: %w", err)
	}
	return &rec, nil
}

func (r *PostgresGroupRepository) Create(ctx context.Context, rec *GroupRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	query := `
		INSERT INTO account_groups (id, tenant_id, name, parent, nature)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, rec.ID, rec.TenantID, rec.Name, rec.Parent, rec.Nature)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// PostgresLedgerRepository implements LedgerRepository using PostgreSQL.
type PostgresLedgerRepository struct {
	db DB
}

func (r *PostgresLedgerRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*LedgerRecord, error) {
	query := `
		SELECT id, tenant_id, name, group_id, address, state, pincode, gstin, pan,
		       email, phone, opening_balance, is_default, created_at
		FROM ledgers
		WHERE tenant_id = $1 AND name = $2
	`

	var rec LedgerRecord
	err := r.db.QueryRow(ctx, query, tenantID, name).Scan(
		&rec.ID, &rec.TenantID, &rec.Name, &rec.GroupID, &rec.Address, &rec.State,
		&rec.Pincode, &rec.GSTIN, &rec.PAN, &rec.Email, &rec.Phone,
		&rec.OpeningBalance, &rec.IsDefault, &rec.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find ledger by name: %w", err)
	}
	return &rec, nil
}

func (r *PostgresLedgerRepository) Create(ctx context.Context, rec *LedgerRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	query := `
		INSERT INTO ledgers (
			id, tenant_id, name, group_id, address, state, pincode, gstin, pan,
			email, phone, opening_balance, is_default
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		rec.ID, rec.TenantID, rec.Name, rec.GroupID, rec.Address, rec.State,
		rec.Pincode, rec.GSTIN, rec.PAN, rec.Email, rec.Phone,
		rec.OpeningBalance, rec.IsDefault,
	)
	if err != nil {
		return fmt.Errorf("failed to create ledger: %w", err)
	}
	return nil
}

// PostgresStockItemRepository implements StockItemRepository using PostgreSQL.
type PostgresStockItemRepository struct {
	db DB
}

func (r *PostgresStockItemRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*StockItemRecord, error) {
	query := `
		SELECT id, tenant_id, name, group_id, unit, hsn_code, gst_rate,
		       opening_qty, opening_value, created_at
		FROM stock_items
		WHERE tenant_id = $1 AND name = $2
	`

	var rec StockItemRecord
	err := r.db.QueryRow(ctx, query, tenantID, name).Scan(
		&rec.ID, &rec.TenantID, &rec.Name, &rec.GroupID, &rec.Unit, &rec.HSNCode,
		&rec.GSTRate, &rec.OpeningQty, &rec.OpeningValue, &rec.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find stock item by name: %w", err)
	}
	return &rec, nil
}

func (r *PostgresStockItemRepository) Create(ctx context.Context, rec *StockItemRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	query := `
		INSERT INTO stock_items (
			id, tenant_id, name, group_id, unit, hsn_code, gst_rate,
			opening_qty, opening_value
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		rec.ID, rec.TenantID, rec.Name, rec.GroupID, rec.Unit, rec.HSNCode,
		rec.GSTRate, rec.OpeningQty, rec.OpeningValue,
	)
	if err != nil {
		return fmt.Errorf("failed to create stock item: %w", err)
	}
	return nil
}

// PostgresVoucherTypeRepository implements VoucherTypeRepository using PostgreSQL.
type PostgresVoucherTypeRepository struct {
	db DB
}

func (r *PostgresVoucherTypeRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*VoucherTypeRecord, error) {
	query := `
		SELECT id, tenant_id, name, category
		FROM voucher_types
		WHERE tenant_id = $1 AND name = $2
	`

	var rec VoucherTypeRecord
	err := r.db.QueryRow(ctx, query, tenantID, name).Scan(
		&rec.ID, &rec.TenantID, &rec.Name, &rec.Category,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find voucher type by name: %w", err)
	}
	return &rec, nil
}

func (r *PostgresVoucherTypeRepository) Create(ctx context.Context, rec *VoucherTypeRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	query := `
		INSERT INTO voucher_types (id, tenant_id, name, category)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, rec.ID, rec.TenantID, rec.Name, rec.Category)
	if err != nil {
		return fmt.Errorf("failed to create voucher type: %w", err)
	}
	return nil
}

// PostgresVoucherRepository implements VoucherRepository using PostgreSQL.
// A voucher and its entries are written in one transaction.
type PostgresVoucherRepository struct {
	db DB
}

func (r *PostgresVoucherRepository) FindByName(ctx context.Context, tenantID uuid.UUID, number string) (*VoucherRecord, error) {
	query := `
		SELECT id, tenant_id, voucher_type_id, number, date, party_name,
		       narration, total_amount, created_at
		FROM vouchers
		WHERE tenant_id = $1 AND number = $2
	`

	var rec VoucherRecord
	err := r.db.QueryRow(ctx, query, tenantID, number).Scan(
		&rec.ID, &rec.TenantID, &rec.VoucherTypeID, &rec.Number, &rec.Date,
		&rec.PartyName, &rec.Narration, &rec.TotalAmount, &rec.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find voucher by number: %w", err)
	}
	return &rec, nil
}

func (r *PostgresVoucherRepository) Create(ctx context.Context, rec *VoucherRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin voucher transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	voucherQuery := `
		INSERT INTO vouchers (
			id, tenant_id, voucher_type_id, number, date, party_name,
			narration, total_amount
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.Exec(ctx, voucherQuery,
		rec.ID, rec.TenantID, rec.VoucherTypeID, rec.Number, rec.Date,
		rec.PartyName, rec.Narration, rec.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to create voucher: %w", err)
	}

	entryQuery := `
		INSERT INTO voucher_entries (id, voucher_id, ledger_name, amount, is_debit)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, entry := range rec.Entries {
		_, err = tx.Exec(ctx, entryQuery,
			uuid.New(), rec.ID, entry.LedgerName, entry.Amount, entry.IsDebit,
		)
		if err != nil {
			return fmt.Errorf("failed to create voucher entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit voucher: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresGroupRepository_FindByName(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	tenantID := uuid.New()
	groupID := uuid.New()
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM account_groups").
		WithArgs(tenantID, "Current Assets").
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "tenant_id", "name", "parent", "nature", "created_at"},
		).AddRow(groupID, tenantID, "Current Assets", "", "asset", now))

	repo := &PostgresGroupRepository{db: mock}
	rec, err := repo.FindByName(context.Background(), tenantID, "Current Assets")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, groupID, rec.ID)
	assert.Equal(t, "asset", rec.Nature)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGroupRepository_FindByName_Missing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	tenantID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM account_groups").
		WithArgs(tenantID, "Nope").
		WillReturnError(pgx.ErrNoRows)

	repo := &PostgresGroupRepository{db: mock}
	rec, err := repo.FindByName(context.Background(), tenantID, "Nope")
	require.NoError(t, err)
	assert.Nil(t, rec)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGroupRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	tenantID := uuid.New()

	mock.ExpectExec("INSERT INTO account_groups").
		WithArgs(pgxmock.AnyArg(), tenantID, "Sundry Creditors", "Current Liabilities", "liability").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := &PostgresGroupRepository{db: mock}
	rec := &GroupRecord{
		TenantID: tenantID,
		Name:     "Sundry Creditors",
		Parent:   "Current Liabilities",
		Nature:   "liability",
	}
	require.NoError(t, repo.Create(context.Background(), rec))
	assert.NotEqual(t, uuid.Nil, rec.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresVoucherRepository_CreateWithEntries(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	tenantID := uuid.New()
	typeID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO vouchers").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO voucher_entries").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO voucher_entries").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	repo := &PostgresVoucherRepository{db: mock}
	rec := &VoucherRecord{
		TenantID:      tenantID,
		VoucherTypeID: typeID,
		Number:        "101",
		Date:          time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		PartyName:     "ABC Traders",
		TotalAmount:   decimal.NewFromInt(1000),
		Entries: []VoucherEntryRecord{
			{LedgerName: "Cash", Amount: decimal.NewFromInt(1000), IsDebit: true},
			{LedgerName: "Sales", Amount: decimal.NewFromInt(-1000), IsDebit: false},
		},
	}
	require.NoError(t, repo.Create(context.Background(), rec))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresVoucherRepository_FindByName_Missing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	tenantID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM vouchers").
		WithArgs(tenantID, "999").
		WillReturnError(pgx.ErrNoRows)

	repo := &PostgresVoucherRepository{db: mock}
	rec, err := repo.FindByName(context.Background(), tenantID, "999")
	require.NoError(t, err)
	assert.Nil(t, rec)

	require.NoError(t, mock.ExpectationsWereMet())
}

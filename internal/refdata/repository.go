package refdata

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/remessa/remessa/internal/platform/db"
	"github.com/remessa/remessa/internal/shared"
)

// Repository defines data access for banks and bank account types.
type Repository interface {
	CreateBank(ctx context.Context, bank Bank) error
	GetBank(ctx context.Context, id string) (Bank, error)
	ListBanks(ctx context.Context) ([]Bank, error)
	UpdateBank(ctx context.Context, bank Bank) error
	DeleteBank(ctx context.Context, id string) error

	CreateAccountType(ctx context.Context, at BankAccountType) error
	GetAccountType(ctx context.Context, id string) (BankAccountTypeWithBank, error)
	ListAccountTypes(ctx context.Context) ([]BankAccountTypeWithBank, error)
	ListAccountTypesForBank(ctx context.Context, bankID string) ([]BankAccountType, error)
	FindAccountTypeByBankAndType(ctx context.Context, bankID, typ string) (BankAccountType, error)
	UpdateAccountType(ctx context.Context, at BankAccountType) error
	DeleteAccountType(ctx context.Context, id string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a Postgres-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) CreateBank(ctx context.Context, bank Bank) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO banks (id, name) VALUES ($1, $2)`,
		bank.ID, bank.Name)
	if db.IsUniqueViolation(err) {
		return fmt.Errorf("%w: bank %s", shared.ErrDuplicate, bank.ID)
	}
	if err != nil {
		return fmt.Errorf("refdata: create bank: %w", err)
	}
	return nil
}

func (r *repository) GetBank(ctx context.Context, id string) (Bank, error) {
	var b Bank
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM banks WHERE id = $1`, id).Scan(&b.ID, &b.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Bank{}, fmt.Errorf("%w: bank %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return Bank{}, fmt.Errorf("refdata: get bank: %w", err)
	}
	return b, nil
}

func (r *repository) ListBanks(ctx context.Context) ([]Bank, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM banks ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("refdata: list banks: %w", err)
	}
	defer rows.Close()

	var banks []Bank
	for rows.Next() {
		var b Bank
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, fmt.Errorf("refdata: scan bank: %w", err)
		}
		banks = append(banks, b)
	}
	return banks, rows.Err()
}

func (r *repository) UpdateBank(ctx context.Context, bank Bank) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE banks SET name = $2 WHERE id = $1`, bank.ID, bank.Name)
	if err != nil {
		return fmt.Errorf("refdata: update bank: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: bank %s", shared.ErrNotFound, bank.ID)
	}
	return nil
}

func (r *repository) DeleteBank(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM banks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("refdata: delete bank: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: bank %s", shared.ErrNotFound, id)
	}
	return nil
}

func (r *repository) CreateAccountType(ctx context.Context, at BankAccountType) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO bank_account_types (id, bank_id, type, name) VALUES ($1, $2, $3, $4)`,
		at.ID, at.BankID, at.Type, at.Name)
	if db.IsUniqueViolation(err) {
		return fmt.Errorf("%w: account type %s for bank %s", shared.ErrDuplicate, at.Type, at.BankID)
	}
	if err != nil {
		return fmt.Errorf("refdata: create account type: %w", err)
	}
	return nil
}

func (r *repository) GetAccountType(ctx context.Context, id string) (BankAccountTypeWithBank, error) {
	var at BankAccountTypeWithBank
	err := r.pool.QueryRow(ctx,
		`SELECT t.id, t.bank_id, t.type, t.name, b.name
		   FROM bank_account_types t
		   JOIN banks b ON b.id = t.bank_id
		  WHERE t.id = $1`, id).
		Scan(&at.ID, &at.BankID, &at.Type, &at.Name, &at.BankName)
	if errors.Is(err, pgx.ErrNoRows) {
		return BankAccountTypeWithBank{}, fmt.Errorf("%w: bank account type %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return BankAccountTypeWithBank{}, fmt.Errorf("refdata: get account type: %w", err)
	}
	return at, nil
}

func (r *repository) ListAccountTypes(ctx context.Context) ([]BankAccountTypeWithBank, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT t.id, t.bank_id, t.type, t.name, b.name
		   FROM bank_account_types t
		   JOIN banks b ON b.id = t.bank_id
		  ORDER BY b.name, t.name`)
	if err != nil {
		return nil, fmt.Errorf("refdata: list account types: %w", err)
	}
	defer rows.Close()

	var types []BankAccountTypeWithBank
	for rows.Next() {
		var at BankAccountTypeWithBank
		if err := rows.Scan(&at.ID, &at.BankID, &at.Type, &at.Name, &at.BankName); err != nil {
			return nil, fmt.Errorf("refdata: scan account type: %w", err)
		}
		types = append(types, at)
	}
	return types, rows.Err()
}

func (r *repository) ListAccountTypesForBank(ctx context.Context, bankID string) ([]BankAccountType, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, bank_id, type, name FROM bank_account_types WHERE bank_id = $1 ORDER BY name`,
		bankID)
	if err != nil {
		return nil, fmt.Errorf("refdata: list account types for bank: %w", err)
	}
	defer rows.Close()

	var types []BankAccountType
	for rows.Next() {
		var at BankAccountType
		if err := rows.Scan(&at.ID, &at.BankID, &at.Type, &at.Name); err != nil {
			return nil, fmt.Errorf("refdata: scan account type: %w", err)
		}
		types = append(types, at)
	}
	return types, rows.Err()
}

func (r *repository) FindAccountTypeByBankAndType(ctx context.Context, bankID, typ string) (BankAccountType, error) {
	var at BankAccountType
	err := r.pool.QueryRow(ctx,
		`SELECT id, bank_id, type, name FROM bank_account_types WHERE bank_id = $1 AND type = $2`,
		bankID, typ).
		Scan(&at.ID, &at.BankID, &at.Type, &at.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return BankAccountType{}, fmt.Errorf("%w: account type %s for bank %s", shared.ErrNotFound, typ, bankID)
	}
	if err != nil {
		return BankAccountType{}, fmt.Errorf("refdata: find account type: %w", err)
	}
	return at, nil
}

func (r *repository) UpdateAccountType(ctx context.Context, at BankAccountType) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE bank_account_types SET bank_id = $2, type = $3, name = $4 WHERE id = $1`,
		at.ID, at.BankID, at.Type, at.Name)
	if db.IsUniqueViolation(err) {
		return fmt.Errorf("%w: account type %s for bank %s", shared.ErrDuplicate, at.Type, at.BankID)
	}
	if err != nil {
		return fmt.Errorf("refdata: update account type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: bank account type %s", shared.ErrNotFound, at.ID)
	}
	return nil
}

func (r *repository) DeleteAccountType(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bank_account_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("refdata: delete account type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: bank account type %s", shared.ErrNotFound, id)
	}
	return nil
}

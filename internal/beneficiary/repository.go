package beneficiary

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/remessa/remessa/internal/platform/db"
	"github.com/remessa/remessa/internal/shared"
)

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a Postgres-backed RepositoryPort.
func NewRepository(pool *pgxpool.Pool) RepositoryPort {
	return &repository{pool: pool}
}

const beneficiaryColumns = `id, name, email, document, document_type, status,
	agency_number, agency_digit, account_number, account_digit,
	bank_id, bank_account_type_id, created_at, updated_at`

func (r *repository) Create(ctx context.Context, b Beneficiary) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO beneficiaries
			(id, name, email, document, document_type, status,
			 agency_number, agency_digit, account_number, account_digit,
			 bank_id, bank_account_type_id, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		b.ID, b.Name, b.Email, b.Document, b.DocumentType, b.Status,
		b.AgencyNumber, b.AgencyDigit, b.AccountNumber, b.AccountDigit,
		b.BankID, b.BankAccountTypeID, b.CreatedAt, b.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return fmt.Errorf("%w: beneficiary document or email already registered", shared.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("beneficiary: create: %w", err)
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id string) (Beneficiary, error) {
	var b Beneficiary
	err := r.pool.QueryRow(ctx,
		`SELECT `+beneficiaryColumns+` FROM beneficiaries WHERE id = $1`, id).
		Scan(&b.ID, &b.Name, &b.Email, &b.Document, &b.DocumentType, &b.Status,
			&b.AgencyNumber, &b.AgencyDigit, &b.AccountNumber, &b.AccountDigit,
			&b.BankID, &b.BankAccountTypeID, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Beneficiary{}, fmt.Errorf("%w: beneficiary %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return Beneficiary{}, fmt.Errorf("beneficiary: get: %w", err)
	}
	return b, nil
}

func (r *repository) GetWithRefs(ctx context.Context, id string) (WithRefs, error) {
	var b WithRefs
	err := r.pool.QueryRow(ctx,
		`SELECT b.id, b.name, b.email, b.document, b.document_type, b.status,
			b.agency_number, b.agency_digit, b.account_number, b.account_digit,
			b.bank_id, b.bank_account_type_id, b.created_at, b.updated_at,
			bk.name, t.name, t.type
		   FROM beneficiaries b
		   JOIN banks bk ON bk.id = b.bank_id
		   JOIN bank_account_types t ON t.id = b.bank_account_type_id
		  WHERE b.id = $1`, id).
		Scan(&b.ID, &b.Name, &b.Email, &b.Document, &b.DocumentType, &b.Status,
			&b.AgencyNumber, &b.AgencyDigit, &b.AccountNumber, &b.AccountDigit,
			&b.BankID, &b.BankAccountTypeID, &b.CreatedAt, &b.UpdatedAt,
			&b.BankName, &b.AccountTypeName, &b.AccountTypeTag)
	if errors.Is(err, pgx.ErrNoRows) {
		return WithRefs{}, fmt.Errorf("%w: beneficiary %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return WithRefs{}, fmt.Errorf("beneficiary: get with refs: %w", err)
	}
	return b, nil
}

// Update commits the merged record in one statement guarded by an
// optimistic-lock check on updated_at. Zero rows means the record either
// vanished or moved since it was read.
func (r *repository) Update(ctx context.Context, b Beneficiary, readAt time.Time) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE beneficiaries SET
				name = $2, email = $3, document = $4, document_type = $5,
				status = $6, agency_number = $7, agency_digit = $8,
				account_number = $9, account_digit = $10, bank_id = $11,
				bank_account_type_id = $12, updated_at = now()
			  WHERE id = $1 AND updated_at = $13`,
			b.ID, b.Name, b.Email, b.Document, b.DocumentType,
			b.Status, b.AgencyNumber, b.AgencyDigit,
			b.AccountNumber, b.AccountDigit, b.BankID,
			b.BankAccountTypeID, readAt)
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("%w: beneficiary document or email already registered", shared.ErrDuplicate)
		}
		if err != nil {
			return fmt.Errorf("beneficiary: update: %w", err)
		}
		if tag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM beneficiaries WHERE id = $1)`, b.ID).Scan(&exists); err != nil {
				return fmt.Errorf("beneficiary: update existence check: %w", err)
			}
			if !exists {
				return fmt.Errorf("%w: beneficiary %s", shared.ErrNotFound, b.ID)
			}
			return fmt.Errorf("%w: beneficiary %s", shared.ErrConflict, b.ID)
		}
		return nil
	})
}

// List returns one page of beneficiaries joined with bank and account
// type. Search is a case-insensitive (ILIKE) substring match over name,
// document, agency number and account-type name.
func (r *repository) List(ctx context.Context, filter ListFilter) ([]WithRefs, int, error) {
	where := ``
	args := []interface{}{}
	if filter.Search != "" {
		where = ` WHERE (b.name ILIKE $1 OR b.document ILIKE $1 OR b.agency_number ILIKE $1 OR t.name ILIKE $1)`
		args = append(args, "%"+filter.Search+"%")
	}

	countQuery := `SELECT COUNT(*)
		   FROM beneficiaries b
		   JOIN banks bk ON bk.id = b.bank_id
		   JOIN bank_account_types t ON t.id = b.bank_account_type_id` + where

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("beneficiary: count: %w", err)
	}

	query := `SELECT b.id, b.name, b.email, b.document, b.document_type, b.status,
			b.agency_number, b.agency_digit, b.account_number, b.account_digit,
			b.bank_id, b.bank_account_type_id, b.created_at, b.updated_at,
			bk.name, t.name, t.type
		   FROM beneficiaries b
		   JOIN banks bk ON bk.id = b.bank_id
		   JOIN bank_account_types t ON t.id = b.bank_account_type_id` + where +
		` ORDER BY b.created_at, b.id` +
		` LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("beneficiary: list: %w", err)
	}
	defer rows.Close()

	var items []WithRefs
	for rows.Next() {
		var b WithRefs
		if err := rows.Scan(&b.ID, &b.Name, &b.Email, &b.Document, &b.DocumentType, &b.Status,
			&b.AgencyNumber, &b.AgencyDigit, &b.AccountNumber, &b.AccountDigit,
			&b.BankID, &b.BankAccountTypeID, &b.CreatedAt, &b.UpdatedAt,
			&b.BankName, &b.AccountTypeName, &b.AccountTypeTag); err != nil {
			return nil, 0, fmt.Errorf("beneficiary: scan: %w", err)
		}
		items = append(items, b)
	}
	return items, total, rows.Err()
}

func (r *repository) Delete(ctx context.Context, ids []string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM beneficiaries WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("beneficiary: delete: %w", err)
	}
	return tag.RowsAffected(), nil
}

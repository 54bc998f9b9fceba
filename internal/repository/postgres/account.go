package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/identity-server/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

const selectAccount = `
	SELECT a.id, a.email, a.first_name, a.last_name, a.phone, a.password_hash, a.active,
	       a.created_at, a.updated_at,
	       COALESCE(string_agg(ar.role_name, ',' ORDER BY ar.role_name), '')
	FROM accounts a
	LEFT JOIN account_roles ar ON ar.account_id = a.id`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	query := selectAccount + ` WHERE a.normalized_email = $1 GROUP BY a.id`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, model.NormalizeEmail(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	query := selectAccount + ` WHERE a.id = $1 GROUP BY a.id`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

// Create inserts the account and its role grants in one transaction.
func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	const insertAccount = `
		INSERT INTO accounts (id, email, normalized_email, first_name, last_name, phone, password_hash, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	const insertRole = `INSERT INTO account_roles (account_id, role_name) VALUES ($1, $2)`

	err := WithTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, insertAccount,
			account.ID, account.Email, model.NormalizeEmail(account.Email), account.FirstName, account.LastName,
			account.Phone, account.PasswordHash, account.Active, account.CreatedAt, account.UpdatedAt,
		)
		if err != nil {
			return mapError(err)
		}

		for _, role := range account.Roles {
			if _, err := tx.ExecContext(ctx, insertRole, account.ID, role); err != nil {
				return mapError(err)
			}
		}
		return nil
	})
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	saved := account
	saved.Roles = append([]string(nil), account.Roles...)
	return saved, nil
}

func (r *AccountRepository) UpdateProfile(ctx context.Context, id uuid.UUID, profile model.ProfileUpdate, now time.Time) (model.Account, error) {
	const query = `
		UPDATE accounts SET
			first_name = COALESCE(NULLIF($2, ''), first_name),
			last_name  = COALESCE(NULLIF($3, ''), last_name),
			phone      = COALESCE(NULLIF($4, ''), phone),
			updated_at = $5
		WHERE id = $1`

	if err := r.execOne(ctx, query, id, profile.FirstName, profile.LastName, profile.Phone, now); err != nil {
		return model.Account{}, fmt.Errorf("failed to update profile: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *AccountRepository) SetPasswordHash(ctx context.Context, id uuid.UUID, hash string, now time.Time) error {
	const query = `UPDATE accounts SET password_hash = $2, updated_at = $3 WHERE id = $1`

	if err := r.execOne(ctx, query, id, hash, now); err != nil {
		return fmt.Errorf("failed to set password hash: %w", err)
	}
	return nil
}

func (r *AccountRepository) Deactivate(ctx context.Context, id uuid.UUID, now time.Time) error {
	const query = `UPDATE accounts SET active = FALSE, updated_at = $2 WHERE id = $1`

	if err := r.execOne(ctx, query, id, now); err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	return nil
}

func (r *AccountRepository) AddRole(ctx context.Context, id uuid.UUID, role string) error {
	const query = `
		INSERT INTO account_roles (account_id, role_name)
		SELECT id, $2 FROM accounts WHERE id = $1
		ON CONFLICT DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, id, role)
	if err != nil {
		return fmt.Errorf("failed to add role: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to add role: %w", err)
	}
	if n == 0 {
		// Either the grant already exists or the account is missing.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *AccountRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func scanAccount(row *sql.Row) (model.Account, error) {
	var (
		a     model.Account
		roles string
	)

	err := row.Scan(
		&a.ID, &a.Email, &a.FirstName, &a.LastName, &a.Phone, &a.PasswordHash, &a.Active,
		&a.CreatedAt, &a.UpdatedAt, &roles,
	)
	if err != nil {
		return model.Account{}, err
	}

	a.Roles = splitRoles(roles)
	return a, nil
}

func splitRoles(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/socialauth/pkg/pg"
)

// PostgresStore implements AccountStore on PostgreSQL. Email uniqueness is
// enforced by the accounts_email_key unique index, so concurrent creates of
// the same email resolve at the database rather than in application code.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, email, username, active, created_at
		 FROM accounts WHERE email = $1`, email)

	var account Account
	if err := row.Scan(&account.ID, &account.Email, &account.Username, &account.Active, &account.CreatedAt); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("query account by email: %w", err)
	}
	return &account, nil
}

func (s *PostgresStore) FindByIdentity(ctx context.Context, providerID, providerUserID string) (*Account, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT a.id, a.email, a.username, a.active, a.created_at
		 FROM accounts a
		 JOIN account_identities i ON i.account_id = a.id
		 WHERE i.provider = $1 AND i.provider_user_id = $2`, providerID, providerUserID)

	var account Account
	if err := row.Scan(&account.ID, &account.Email, &account.Username, &account.Active, &account.CreatedAt); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("query account by identity: %w", err)
	}
	return &account, nil
}

func (s *PostgresStore) Create(ctx context.Context, account *Account) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO accounts (id, email, username, active, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		account.ID, account.Email, account.Username, account.Active, account.CreatedAt)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrDuplicateEmailBlocked
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (s *PostgresStore) LinkIdentity(ctx context.Context, accountID uuid.UUID, providerID, providerUserID string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO account_identities (account_id, provider, provider_user_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (provider, provider_user_id) DO NOTHING`,
		accountID, providerID, providerUserID)
	if err != nil {
		if pg.IsForeignKeyViolationError(err) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("insert identity link: %w", err)
	}
	return nil
}

func (s *PostgresStore) FinalizeSignIn(ctx context.Context, account *Account) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE accounts SET last_sign_in_at = now() WHERE id = $1 AND active`, account.ID)
	if err != nil {
		return fmt.Errorf("finalize sign-in: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish missing from deactivated for a precise error.
		row := s.pool.QueryRow(ctx, `SELECT active FROM accounts WHERE id = $1`, account.ID)
		var active bool
		if scanErr := row.Scan(&active); scanErr != nil {
			if pg.IsNotFoundError(scanErr) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("finalize sign-in: %w", scanErr)
		}
		return ErrAccountInactive
	}
	return nil
}

var _ AccountStore = (*PostgresStore)(nil)

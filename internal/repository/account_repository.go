package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Account mirrors an identity held by the external auth provider. Rows are
// created lazily on first membership grant, not at signup.
type Account struct {
	ID          string
	Email       string
	DisplayName string
	Role        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type AccountRepository interface {
	Ensure(ctx context.Context, account *Account) error
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	Update(ctx context.Context, account *Account) error
}

type pgAccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &pgAccountRepository{pool: pool}
}

// Ensure inserts the directory entry if absent. An existing row is left
// untouched so a later sign-in cannot clobber an edited display name.
func (r *pgAccountRepository) Ensure(ctx context.Context, account *Account) error {
	if account.Role == "" {
		account.Role = "player"
	}
	query := `
		INSERT INTO accounts (id, email, display_name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, account.ID, account.Email, account.DisplayName, account.Role)
	return err
}

func (r *pgAccountRepository) FindByID(ctx context.Context, id string) (*Account, error) {
	query := `
		SELECT id, email, display_name, role, created_at, updated_at
		FROM accounts WHERE id = $1
	`
	account := &Account{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&account.ID, &account.Email, &account.DisplayName, &account.Role,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (r *pgAccountRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	query := `
		SELECT id, email, display_name, role, created_at, updated_at
		FROM accounts WHERE LOWER(email) = LOWER($1)
	`
	account := &Account{}
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&account.ID, &account.Email, &account.DisplayName, &account.Role,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (r *pgAccountRepository) Update(ctx context.Context, account *Account) error {
	query := `
		UPDATE accounts SET email = $2, display_name = $3, role = $4, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, account.ID, account.Email, account.DisplayName, account.Role)
	return err
}

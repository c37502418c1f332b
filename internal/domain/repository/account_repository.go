package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blogforge/internal/common"
	"blogforge/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	FindByID(ctx context.Context, id string) (*model.Account, error)
}

type pgAccountRepository struct {
	db *sql.DB
}

func NewPgAccountRepository(db *sql.DB) AccountRepository {
	return &pgAccountRepository{db: db}
}

func (r *pgAccountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `INSERT INTO accounts (id, username, email, hashed_password)
	          VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, account.ID, account.Username, account.Email, account.HashedPassword)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("account with given email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgAccountRepository.Create: %w", err)
	}
	return nil
}

// FindByEmail is an exact, case-sensitive lookup: email is the identity key.
func (r *pgAccountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `SELECT id, username, email, hashed_password, created_at, updated_at
	          FROM accounts WHERE email = $1`
	account := &model.Account{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&account.ID, &account.Username, &account.Email, &account.HashedPassword, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAccountRepository.FindByEmail: %w", err)
	}
	return account, nil
}

func (r *pgAccountRepository) FindByID(ctx context.Context, id string) (*model.Account, error) {
	query := `SELECT id, username, email, hashed_password, created_at, updated_at
	          FROM accounts WHERE id = $1`
	account := &model.Account{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID, &account.Username, &account.Email, &account.HashedPassword, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAccountRepository.FindByID: %w", err)
	}
	return account, nil
}

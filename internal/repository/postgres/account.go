package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bookwell/booking-api/internal/model"
	"github.com/bookwell/booking-api/internal/repository"
)

type accountRepository struct {
	BaseRepository
}

func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &accountRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *accountRepository) Get(ctx context.Context, accountID uuid.UUID) (*model.Account, error) {
	query := `
		SELECT id, name, email, status, slot_step_minutes, timezone,
			   created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	var account model.Account
	err := r.db.GetContext(ctx, &account, query, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

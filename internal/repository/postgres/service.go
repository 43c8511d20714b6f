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

const activeServiceQuery = `
	SELECT id, account_id, name, description, duration_minutes,
		   buffer_minutes, price, active, created_at, updated_at
	FROM services
	WHERE id = $1 AND account_id = $2 AND active = true
`

type serviceRepository struct {
	BaseRepository
}

func NewServiceRepository(db *sqlx.DB) repository.ServiceRepository {
	return &serviceRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *serviceRepository) GetActive(ctx context.Context, accountID, serviceID uuid.UUID) (*model.Service, error) {
	var svc model.Service
	err := r.db.GetContext(ctx, &svc, activeServiceQuery, serviceID, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &svc, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bookwell/booking-api/internal/model"
	"github.com/bookwell/booking-api/internal/repository"
)

type scheduleRepository struct {
	BaseRepository
}

func NewScheduleRepository(db *sqlx.DB) repository.ScheduleRepository {
	return &scheduleRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *scheduleRepository) GetForWeekday(ctx context.Context, accountID uuid.UUID, weekday time.Weekday) (*model.Schedule, error) {
	query := `
		SELECT id, account_id, weekday, enabled, start_time, end_time,
			   break_start, break_end, created_at, updated_at
		FROM schedules
		WHERE account_id = $1 AND weekday = $2
	`
	var schedule model.Schedule
	err := r.db.GetContext(ctx, &schedule, query, accountID, int(weekday))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &schedule, nil
}

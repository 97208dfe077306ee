package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/taskhire_bot/internal/repository/base"
	"github.com/Freeeeeet/taskhire_bot/internal/scheduling"
	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AvailabilityRepository хранит недельный шаблон доступности исполнителей
type AvailabilityRepository struct {
	*base.Repository
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{Repository: base.NewRepository(pool)}
}

// GetWeekly получает шаблон доступности исполнителя по всем дням
func (r *AvailabilityRepository) GetWeekly(ctx context.Context, workerID int64) (scheduling.WeeklyAvailability, error) {
	query := `
		SELECT weekday, slots
		FROM worker_availability
		WHERE worker_id = $1
	`

	rows, err := r.DB(ctx).Query(ctx, query, workerID)
	if err != nil {
		return nil, fmt.Errorf("get worker availability: %w", err)
	}
	defer rows.Close()

	week := make(scheduling.WeeklyAvailability)
	for rows.Next() {
		var weekday string
		var rawSlots []string
		if err := rows.Scan(&weekday, &rawSlots); err != nil {
			return nil, fmt.Errorf("scan worker availability: %w", err)
		}

		slots, err := timeslot.ParseSlots(rawSlots)
		if err != nil {
			return nil, fmt.Errorf("parse availability of %s: %w", weekday, err)
		}
		week[weekday] = slots
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate worker availability: %w", err)
	}

	return week, nil
}

// SaveDay перезаписывает слоты одного дня недели
func (r *AvailabilityRepository) SaveDay(ctx context.Context, workerID int64, weekday string, slots []timeslot.Slot) error {
	query := `
		INSERT INTO worker_availability (worker_id, weekday, slots)
		VALUES ($1, $2, $3)
		ON CONFLICT (worker_id, weekday) DO UPDATE SET slots = EXCLUDED.slots
	`

	if _, err := r.DB(ctx).Exec(ctx, query, workerID, weekday, timeslot.FormatSlots(slots)); err != nil {
		return fmt.Errorf("save worker availability: %w", err)
	}

	return nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"github.com/Freeeeeet/taskhire_bot/internal/repository/base"
	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id, task_id, worker_id, poster_id, date, slots, status, version, created_at, updated_at`

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новую заявку
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (task_id, worker_id, poster_id, date, slots, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, version, created_at, updated_at
	`

	err := r.DB(ctx).QueryRow(
		ctx, query,
		booking.TaskID,
		booking.WorkerID,
		booking.PosterID,
		booking.Date,
		timeslot.FormatSlots(booking.Slots),
		booking.Status,
	).Scan(&booking.ID, &booking.Version, &booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// GetByID получает заявку по ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.DB(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return booking, nil
}

// GetByWorker получает заявки исполнителя в указанных статусах
func (r *BookingRepository) GetByWorker(ctx context.Context, workerID int64, statuses []model.BookingStatus) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE worker_id = $1 AND status = ANY($2)
		ORDER BY date, slots[1]
	`

	rows, err := r.DB(ctx).Query(ctx, query, workerID, statusStrings(statuses))
	if err != nil {
		return nil, fmt.Errorf("get bookings by worker: %w", err)
	}

	return collectBookings(rows)
}

// GetByWorkerAndDate получает заявки исполнителя на дату
func (r *BookingRepository) GetByWorkerAndDate(ctx context.Context, workerID int64, date time.Time, statuses []model.BookingStatus) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE worker_id = $1 AND date = $2 AND status = ANY($3)
		ORDER BY slots[1]
	`

	rows, err := r.DB(ctx).Query(ctx, query, workerID, date, statusStrings(statuses))
	if err != nil {
		return nil, fmt.Errorf("get bookings by worker and date: %w", err)
	}

	return collectBookings(rows)
}

// GetByStatusUpTo получает заявки в статусе с датой не позже указанной
func (r *BookingRepository) GetByStatusUpTo(ctx context.Context, status model.BookingStatus, date time.Time) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = $1 AND date <= $2
		ORDER BY date, id
	`

	rows, err := r.DB(ctx).Query(ctx, query, status, date)
	if err != nil {
		return nil, fmt.Errorf("get bookings by status: %w", err)
	}

	return collectBookings(rows)
}

// PersistSlots атомарно записывает весь список слотов и статус заявки.
// Запись проходит, только если версия в БД равна expectedVersion.
func (r *BookingRepository) PersistSlots(ctx context.Context, id int64, expectedVersion int, slots []timeslot.Slot, status model.BookingStatus) error {
	query := `
		UPDATE bookings
		SET slots = $1, status = $2, version = version + 1, updated_at = now()
		WHERE id = $3 AND version = $4
	`

	affected, err := r.ExecAffected(ctx, query, timeslot.FormatSlots(slots), status, id, expectedVersion)
	if err != nil {
		return fmt.Errorf("persist booking slots: %w", err)
	}

	if affected == 0 {
		return ErrVersionConflict
	}

	return nil
}

// UpdateStatus обновляет статус заявки с проверкой версии
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, expectedVersion int, status model.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1, version = version + 1, updated_at = now()
		WHERE id = $2 AND version = $3
	`

	affected, err := r.ExecAffected(ctx, query, status, id, expectedVersion)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}

	if affected == 0 {
		return ErrVersionConflict
	}

	return nil
}

// Delete удаляет заявку с проверкой версии
func (r *BookingRepository) Delete(ctx context.Context, id int64, expectedVersion int) error {
	query := `DELETE FROM bookings WHERE id = $1 AND version = $2`

	affected, err := r.ExecAffected(ctx, query, id, expectedVersion)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	if affected == 0 {
		return ErrVersionConflict
	}

	return nil
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var booking model.Booking
	var rawSlots []string

	err := row.Scan(
		&booking.ID,
		&booking.TaskID,
		&booking.WorkerID,
		&booking.PosterID,
		&booking.Date,
		&rawSlots,
		&booking.Status,
		&booking.Version,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Slots, err = timeslot.ParseSlots(rawSlots)
	if err != nil {
		return nil, fmt.Errorf("parse slots of booking %d: %w", booking.ID, err)
	}

	return &booking, nil
}

func collectBookings(rows pgx.Rows) ([]*model.Booking, error) {
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}

func statusStrings(statuses []model.BookingStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAgendaUsesCache(t *testing.T) {
	ctx := context.Background()
	store := newFakeBookings(
		booking(t, 1, model.BookingStatusAccepted, tomorrow, "14:00-15:00"),
		booking(t, 2, model.BookingStatusPending, tomorrow, "09:00-10:00"),
		booking(t, 3, model.BookingStatusRejected, tomorrow, "11:00-12:00"),
		booking(t, 4, model.BookingStatusPending, today, "16:00-17:00"),
	)
	cache := newFakeAgendaCache()
	svc := NewScheduleService(store, cache, zap.NewNop())

	agenda, err := svc.Agenda(ctx, workerID, tomorrow.Add(13*time.Hour))
	require.NoError(t, err)
	require.Len(t, agenda, 2)
	assert.Equal(t, int64(2), agenda[0].ID)
	assert.Equal(t, int64(1), agenda[1].ID)

	// второе чтение берётся из кеша, даже если хранилище изменилось
	delete(store.rows, 1)
	cached, err := svc.Agenda(ctx, workerID, tomorrow)
	require.NoError(t, err)
	assert.Len(t, cached, 2)
	assert.Equal(t, 2, cache.gets)

	require.NoError(t, cache.Invalidate(ctx, workerID, tomorrow))
	fresh, err := svc.Agenda(ctx, workerID, tomorrow)
	require.NoError(t, err)
	assert.Len(t, fresh, 1)
}

func TestAgendaNotCachedWhenChangedDuringRead(t *testing.T) {
	ctx := context.Background()
	store := newFakeBookings(booking(t, 1, model.BookingStatusPending, tomorrow, "14:00-15:00"))
	cache := newFakeAgendaCache()
	svc := NewScheduleService(store, cache, zap.NewNop())

	// заявку отменили, пока расписание читалось из хранилища
	store.afterDateRead = func() {
		store.afterDateRead = nil
		delete(store.rows, 1)
		require.NoError(t, cache.Invalidate(ctx, workerID, tomorrow))
	}

	stale, err := svc.Agenda(ctx, workerID, tomorrow)
	require.NoError(t, err)
	assert.Len(t, stale, 1)

	fresh, err := svc.Agenda(ctx, workerID, tomorrow)
	require.NoError(t, err)
	assert.Empty(t, fresh)
}

func TestAgendaFallsBackWhenCacheFails(t *testing.T) {
	ctx := context.Background()
	store := newFakeBookings(booking(t, 1, model.BookingStatusCurrent, today, "14:00-15:00"))
	cache := newFakeAgendaCache()
	cache.getErr = errors.New("redis: connection refused")

	agenda, err := NewScheduleService(store, cache, zap.NewNop()).Agenda(ctx, workerID, today)
	require.NoError(t, err)
	assert.Len(t, agenda, 1)
}

func TestAgendaWithoutCache(t *testing.T) {
	ctx := context.Background()
	store := newFakeBookings(booking(t, 1, model.BookingStatusPaymentPending, today, "14:00-15:00"))

	agenda, err := NewScheduleService(store, nil, zap.NewNop()).Agenda(ctx, workerID, today)
	require.NoError(t, err)
	assert.Len(t, agenda, 1)

	other, err := NewScheduleService(store, nil, zap.NewNop()).Agenda(ctx, workerID+1, today)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(&fakeUsers{rows: map[int64]*model.User{}}, zap.NewNop())

	user, err := svc.RegisterUser(ctx, 555, "ivan", "Иван")
	require.NoError(t, err)
	assert.False(t, user.IsWorker)

	again, err := svc.RegisterUser(ctx, 555, "ivan_new", "Иван")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, "ivan_new", again.Username)

	worker, err := svc.MakeWorker(ctx, 555)
	require.NoError(t, err)
	assert.True(t, worker.IsWorker)

	loaded, err := svc.GetByTelegramID(ctx, 555)
	require.NoError(t, err)
	assert.True(t, loaded.IsWorker)

	_, err = svc.GetByTelegramID(ctx, 777)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.MakeWorker(ctx, 777)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

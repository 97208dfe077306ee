package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"github.com/Freeeeeet/taskhire_bot/internal/notify"
	"github.com/Freeeeeet/taskhire_bot/internal/repository"
	"github.com/Freeeeeet/taskhire_bot/internal/scheduling"
	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
)

type fakeBookings struct {
	nextID  int64
	rows    map[int64]*model.Booking
	failErr error

	// concurrentWrite имитирует запись другого клиента сразу после чтения
	concurrentWrite bool
	// afterDateRead вызывается после GetByWorkerAndDate
	afterDateRead func()
}

func newFakeBookings(bookings ...*model.Booking) *fakeBookings {
	f := &fakeBookings{rows: map[int64]*model.Booking{}, nextID: 100}
	for _, b := range bookings {
		if b.Version == 0 {
			b.Version = 1
		}
		f.rows[b.ID] = copyBooking(b)
	}
	return f
}

func copyBooking(b *model.Booking) *model.Booking {
	c := *b
	c.Slots = append([]timeslot.Slot(nil), b.Slots...)
	return &c
}

func (f *fakeBookings) Create(_ context.Context, booking *model.Booking) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.nextID++
	booking.ID = f.nextID
	booking.Version = 1
	f.rows[booking.ID] = copyBooking(booking)
	return nil
}

func (f *fakeBookings) GetByID(_ context.Context, id int64) (*model.Booking, error) {
	b, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	out := copyBooking(b)
	if f.concurrentWrite {
		b.Version++
	}
	return out, nil
}

func (f *fakeBookings) filter(keep func(*model.Booking) bool) []*model.Booking {
	var out []*model.Booking
	for _, b := range f.rows {
		if keep(b) {
			out = append(out, copyBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeBookings) GetByWorker(_ context.Context, workerID int64, statuses []model.BookingStatus) ([]*model.Booking, error) {
	return f.filter(func(b *model.Booking) bool {
		return b.WorkerID == workerID && b.Status.Is(statuses...)
	}), nil
}

func (f *fakeBookings) GetByWorkerAndDate(_ context.Context, workerID int64, date time.Time, statuses []model.BookingStatus) ([]*model.Booking, error) {
	out := f.filter(func(b *model.Booking) bool {
		return b.WorkerID == workerID && b.Date.Equal(date) && b.Status.Is(statuses...)
	})
	if f.afterDateRead != nil {
		f.afterDateRead()
	}
	return out, nil
}

func (f *fakeBookings) GetByStatusUpTo(_ context.Context, status model.BookingStatus, date time.Time) ([]*model.Booking, error) {
	return f.filter(func(b *model.Booking) bool {
		return b.Status == status && !b.Date.After(date)
	}), nil
}

func (f *fakeBookings) check(id int64, version int) (*model.Booking, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	b, ok := f.rows[id]
	if !ok || b.Version != version {
		return nil, repository.ErrVersionConflict
	}
	return b, nil
}

func (f *fakeBookings) PersistSlots(_ context.Context, id int64, version int, slots []timeslot.Slot, status model.BookingStatus) error {
	b, err := f.check(id, version)
	if err != nil {
		return err
	}
	b.Slots = append([]timeslot.Slot(nil), slots...)
	b.Status = status
	b.Version++
	return nil
}

func (f *fakeBookings) UpdateStatus(_ context.Context, id int64, version int, status model.BookingStatus) error {
	b, err := f.check(id, version)
	if err != nil {
		return err
	}
	b.Status = status
	b.Version++
	return nil
}

func (f *fakeBookings) Delete(_ context.Context, id int64, version int) error {
	if _, err := f.check(id, version); err != nil {
		return err
	}
	delete(f.rows, id)
	return nil
}

type fakeTasks struct {
	rows       map[int64]*model.Task
	releaseErr error
}

func (f *fakeTasks) Create(_ context.Context, task *model.Task) error {
	task.ID = int64(len(f.rows) + 1)
	for f.rows[task.ID] != nil {
		task.ID++
	}
	c := *task
	f.rows[task.ID] = &c
	return nil
}

func (f *fakeTasks) ListByPoster(_ context.Context, posterID int64) ([]*model.Task, error) {
	var out []*model.Task
	for _, t := range f.rows {
		if t.PosterID == posterID {
			c := *t
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeTasks) GetByID(_ context.Context, id int64) (*model.Task, error) {
	t, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	c := *t
	return &c, nil
}

func (f *fakeTasks) Assign(_ context.Context, taskID, workerID int64) error {
	t, ok := f.rows[taskID]
	if !ok {
		return repository.ErrNotFound
	}
	if t.WorkerID != nil && *t.WorkerID != workerID {
		return fmt.Errorf("task %d: %w", taskID, repository.ErrTaskTaken)
	}
	t.WorkerID = &workerID
	return nil
}

func (f *fakeTasks) ReleaseAssignment(_ context.Context, taskID, workerID int64) error {
	if f.releaseErr != nil {
		return f.releaseErr
	}
	if t, ok := f.rows[taskID]; ok && t.WorkerID != nil && *t.WorkerID == workerID {
		t.WorkerID = nil
	}
	return nil
}

// fakeTx копирует состояние хранилищ и восстанавливает его при ошибке fn
type fakeTx struct {
	bookings *fakeBookings
	tasks    *fakeTasks
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	savedBookings := map[int64]*model.Booking{}
	for id, b := range f.bookings.rows {
		savedBookings[id] = copyBooking(b)
	}
	savedTasks := map[int64]*model.Task{}
	for id, t := range f.tasks.rows {
		c := *t
		savedTasks[id] = &c
	}

	if err := fn(ctx); err != nil {
		f.bookings.rows = savedBookings
		f.tasks.rows = savedTasks
		return err
	}
	return nil
}

type sentEvent struct {
	bookingID int64
	actorID   int64
	kind      notify.EventKind
}

type fakeNotifier struct {
	events []sentEvent
	err    error
}

func (f *fakeNotifier) NotifyCounterparty(_ context.Context, b *model.Booking, actorID int64, kind notify.EventKind) error {
	f.events = append(f.events, sentEvent{bookingID: b.ID, actorID: actorID, kind: kind})
	return f.err
}

type fakeAgendaCache struct {
	entries     map[string][]*model.Booking
	gens        map[string]int64
	invalidated []string
	getErr      error
	gets        int
}

func newFakeAgendaCache() *fakeAgendaCache {
	return &fakeAgendaCache{entries: map[string][]*model.Booking{}, gens: map[string]int64{}}
}

func agendaKey(workerID int64, date time.Time) string {
	return fmt.Sprintf("%d/%s", workerID, date.Format(time.DateOnly))
}

func (f *fakeAgendaCache) Get(_ context.Context, workerID int64, date time.Time) ([]*model.Booking, int64, bool, error) {
	f.gets++
	if f.getErr != nil {
		return nil, 0, false, f.getErr
	}
	key := agendaKey(workerID, date)
	gen := f.gens[key]
	a, ok := f.entries[fmt.Sprintf("%s#%d", key, gen)]
	return a, gen, ok, nil
}

func (f *fakeAgendaCache) Set(_ context.Context, workerID int64, date time.Time, gen int64, agenda []*model.Booking) error {
	f.entries[fmt.Sprintf("%s#%d", agendaKey(workerID, date), gen)] = agenda
	return nil
}

func (f *fakeAgendaCache) Invalidate(_ context.Context, workerID int64, date time.Time) error {
	key := agendaKey(workerID, date)
	f.gens[key]++
	f.invalidated = append(f.invalidated, key)
	return nil
}

type fakeAvailability struct {
	week scheduling.WeeklyAvailability
	err  error
}

func (f *fakeAvailability) GetWeekly(context.Context, int64) (scheduling.WeeklyAvailability, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := scheduling.WeeklyAvailability{}
	for d, s := range f.week {
		out[d] = append([]timeslot.Slot(nil), s...)
	}
	return out, nil
}

func (f *fakeAvailability) SaveDay(_ context.Context, _ int64, weekday string, slots []timeslot.Slot) error {
	if f.err != nil {
		return f.err
	}
	f.week[weekday] = append([]timeslot.Slot(nil), slots...)
	return nil
}

type fakeUsers struct {
	rows   map[int64]*model.User
	nextID int64
}

func (f *fakeUsers) Upsert(_ context.Context, user *model.User) error {
	for _, u := range f.rows {
		if u.TelegramID == user.TelegramID {
			u.Username = user.Username
			u.FirstName = user.FirstName
			*user = *u
			return nil
		}
	}
	f.nextID++
	user.ID = f.nextID
	c := *user
	f.rows[user.ID] = &c
	return nil
}

func (f *fakeUsers) GetByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	for _, u := range f.rows {
		if u.TelegramID == telegramID {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) SetWorker(_ context.Context, userID int64, isWorker bool) error {
	u, ok := f.rows[userID]
	if !ok {
		return errors.New("not found")
	}
	u.IsWorker = isWorker
	return nil
}

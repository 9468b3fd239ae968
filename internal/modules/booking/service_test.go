package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"studiobook/internal/domain"
	"studiobook/internal/realtime"
	"studiobook/internal/repository"
	"studiobook/internal/studiolock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock repositories
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) ListAll(ctx context.Context) ([]domain.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Create(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReservationRepository) Update(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

type MockEngineerRoster struct {
	mock.Mock
}

func (m *MockEngineerRoster) ListAll(ctx context.Context) ([]domain.Engineer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Engineer), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(e realtime.Event) {
	m.Called(e)
}

// eventTypes lists published event types in order.
func (m *MockPublisher) eventTypes() []string {
	var out []string
	for _, c := range m.Calls {
		out = append(out, c.Arguments.Get(0).(realtime.Event).Type)
	}
	return out
}

type fixture struct {
	svc          *Service
	reservations *repository.ReservationFileRepository
	locker       *studiolock.KeyedMutex
	events       *MockPublisher
}

// newFixture wires the service to file storage with a two-engineer roster,
// a clock that ticks one minute per call and sequential ids.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	reservations, err := repository.NewReservationFileRepository(dir)
	require.NoError(t, err)
	engineers, err := repository.NewEngineerFileRepository(dir)
	require.NoError(t, err)
	for _, e := range []domain.Engineer{{ID: "e1", Name: "Alice"}, {ID: "e2", Name: "Bob"}} {
		e := e
		require.NoError(t, engineers.Create(context.Background(), &e))
	}

	events := new(MockPublisher)
	events.On("Publish", mock.Anything).Return()

	locker := studiolock.NewKeyedMutex()
	svc := NewService(reservations, engineers, locker, events)

	var (
		mu   sync.Mutex
		tick = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
		seq  int64
	)
	svc.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick = tick.Add(time.Minute)
		return tick
	}
	svc.newID = func() string {
		return fmt.Sprintf("r-%d", atomic.AddInt64(&seq, 1))
	}

	return &fixture{svc: svc, reservations: reservations, locker: locker, events: events}
}

func (f *fixture) seed(t *testing.T, id string, studio domain.Studio, date, start, end string, status domain.ReservationStatus) {
	t.Helper()
	d, err := domain.ParseDate(date)
	require.NoError(t, err)
	require.NoError(t, f.reservations.Create(context.Background(), &domain.Reservation{
		ID:         id,
		Studio:     studio,
		Date:       d,
		StartTime:  start,
		EndTime:    end,
		Status:     status,
		Engineers:  []string{},
		Repetition: domain.Repetition{Kind: domain.RepeatNone},
		Name:       "Seeded",
		Email:      "seeded@example.com",
		CreatedAt:  time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}))
}

func (f *fixture) load(t *testing.T, id string) *domain.Reservation {
	t.Helper()
	r, err := f.reservations.GetByID(context.Background(), id)
	require.NoError(t, err)
	return r
}

func request(studio, date, start, end string) ReservationRequest {
	return ReservationRequest{
		Studio:    studio,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Name:      "Jane Doe",
		Email:     "jane@example.com",
	}
}

func TestService_CreateReservation_Success(t *testing.T) {
	f := newFixture(t)
	req := request("studio2", "2024-05-10", "10:00", "12:30")
	req.EngineerCount = 1
	req.ProgramName = "  Morning Show "

	r, err := f.svc.CreateReservation(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "r-1", r.ID)
	assert.Equal(t, domain.ReservationNew, r.Status)
	assert.Equal(t, domain.Studio2, r.Studio)
	assert.Equal(t, domain.NewDate(2024, time.May, 10), r.Date)
	assert.Equal(t, 2.5, r.HoursPerDay)
	assert.Equal(t, domain.RepeatNone, r.Repetition.Kind)
	assert.Equal(t, "Morning Show", r.ProgramName)
	assert.Empty(t, r.Engineers)

	stored := f.load(t, "r-1")
	assert.Equal(t, r.StartTime, stored.StartTime)
	assert.Equal(t, []string{realtime.EventReservationCreated}, f.events.eventTypes())
}

func TestService_CreateReservation_Conflict(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "x", domain.Studio2, "2024-05-10", "10:00", "12:00", domain.ReservationConfirmed)

	_, err := f.svc.CreateReservation(context.Background(), request("studio2", "2024-05-10", "11:00", "13:00"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotAvailable))

	var cerr *ConflictError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "x", cerr.Conflict.ID)
	assert.Equal(t, "Studio 2 is already booked on 2024-05-10 from 10:00 to 12:00", cerr.Message)

	all, err := f.reservations.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
	f.events.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestService_CreateReservation_FreeSlots(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "x", domain.Studio2, "2024-05-10", "10:00", "12:00", domain.ReservationConfirmed)
	f.seed(t, "gone", domain.Studio1, "2024-05-10", "10:00", "12:00", domain.ReservationCancelled)

	cases := []ReservationRequest{
		request("studio2", "2024-05-10", "12:00", "14:00"),
		request("studio2", "2024-05-10", "08:00", "10:00"),
		request("studio3", "2024-05-10", "10:00", "12:00"),
		request("studio2", "2024-05-11", "10:00", "12:00"),
		request("studio1", "2024-05-10", "11:00", "13:00"),
	}
	for _, req := range cases {
		_, err := f.svc.CreateReservation(context.Background(), req)
		assert.NoError(t, err, "%s %s %s-%s", req.Studio, req.Date, req.StartTime, req.EndTime)
	}
}

func TestService_CreateReservation_ValidationError(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		edit  func(*ReservationRequest)
		field string
	}{
		{"unknown studio", func(r *ReservationRequest) { r.Studio = "studio9" }, "studio"},
		{"bad date", func(r *ReservationRequest) { r.Date = "10/05/2024" }, "date"},
		{"bad clock", func(r *ReservationRequest) { r.StartTime = "9:00" }, "startTime"},
		{"end before start", func(r *ReservationRequest) { r.EndTime = "09:00" }, "endTime"},
		{"empty range", func(r *ReservationRequest) { r.EndTime = r.StartTime }, "endTime"},
		{"missing email", func(r *ReservationRequest) { r.Email = "" }, "email"},
		{"bad repetition", func(r *ReservationRequest) { r.Repetition.Kind = "yearly" }, "kind"},
		{"daily without until", func(r *ReservationRequest) { r.Repetition.Kind = "daily_until" }, "repetition.until"},
		{"until before date", func(r *ReservationRequest) {
			r.Repetition = RepetitionRequest{Kind: "daily_until", Until: "2024-05-01"}
		}, "repetition.until"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request("studio1", "2024-05-10", "10:00", "12:00")
			tt.edit(&req)

			_, err := f.svc.CreateReservation(context.Background(), req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestService_CreateReservation_Repetition(t *testing.T) {
	f := newFixture(t)
	req := request("studio1", "2024-05-10", "10:00", "12:00")
	req.Repetition = RepetitionRequest{Kind: "daily_until", Until: "2024-05-17"}

	r, err := f.svc.CreateReservation(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.RepeatDailyUntil, r.Repetition.Kind)
	require.NotNil(t, r.Repetition.Until)
	assert.Equal(t, domain.NewDate(2024, time.May, 17), *r.Repetition.Until)

	// Only the first occurrence occupies the calendar.
	_, err = f.svc.CreateReservation(context.Background(), request("studio1", "2024-05-11", "10:00", "12:00"))
	assert.NoError(t, err)
}

func TestService_CreateReservation_Overbooking(t *testing.T) {
	repo := new(MockReservationRepository)
	repo.On("ListAll", mock.Anything).Return([]domain.Reservation{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("insert: %w", repository.ErrOverbooking))

	svc := NewService(repo, new(MockEngineerRoster), studiolock.NewKeyedMutex(), nil)

	_, err := svc.CreateReservation(context.Background(), request("studio1", "2024-05-10", "10:00", "12:00"))
	assert.ErrorIs(t, err, ErrNotAvailable)
	repo.AssertExpectations(t)
}

func TestService_CreateReservation_StorageError(t *testing.T) {
	repo := new(MockReservationRepository)
	boom := errors.New("disk full")
	repo.On("ListAll", mock.Anything).Return(nil, boom)

	svc := NewService(repo, new(MockEngineerRoster), studiolock.NewKeyedMutex(), nil)

	_, err := svc.CreateReservation(context.Background(), request("studio1", "2024-05-10", "10:00", "12:00"))
	assert.ErrorIs(t, err, boom)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateReservation_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)

	const n = 8
	var (
		wg       sync.WaitGroup
		ok       int32
		rejected int32
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CreateReservation(context.Background(), request("studio3", "2024-05-10", "10:00", "12:00"))
			switch {
			case err == nil:
				atomic.AddInt32(&ok, 1)
			case errors.Is(err, ErrNotAvailable):
				atomic.AddInt32(&rejected, 1)
			default:
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok)
	assert.Equal(t, int32(n-1), rejected)

	all, err := f.reservations.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestService_CreateReservation_StudioBusy(t *testing.T) {
	f := newFixture(t)
	f.svc.lockWait = 20 * time.Millisecond

	unlock, err := f.locker.Lock(context.Background(), string(domain.Studio1))
	require.NoError(t, err)
	defer unlock()

	_, err = f.svc.CreateReservation(context.Background(), request("studio1", "2024-05-10", "10:00", "12:00"))
	assert.ErrorIs(t, err, ErrStudioBusy)

	// Other studios are not held up.
	_, err = f.svc.CreateReservation(context.Background(), request("studio2", "2024-05-10", "10:00", "12:00"))
	assert.NoError(t, err)
}

func TestService_CheckAvailability(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "x", domain.Studio2, "2024-05-10", "10:00", "12:00", domain.ReservationNew)

	res, err := f.svc.CheckAvailability(context.Background(), AvailabilityRequest{
		Studio: "studio2", Date: "2024-05-10", StartTime: "11:30", EndTime: "13:00",
	})
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, "Studio 2 is already booked on 2024-05-10 from 10:00 to 12:00", res.Message)
	require.NotNil(t, res.Conflict)
	assert.Equal(t, "x", res.Conflict.ID)

	res, err = f.svc.CheckAvailability(context.Background(), AvailabilityRequest{
		Studio: "studio2", Date: "2024-05-10", StartTime: "11:30", EndTime: "13:00", ExcludeID: "x",
	})
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Nil(t, res.Conflict)

	_, err = f.svc.CheckAvailability(context.Background(), AvailabilityRequest{
		Studio: "studio2", Date: "2024-05-10", StartTime: "13:00", EndTime: "11:30",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_GetReservation_MarksRead(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.CreateReservation(context.Background(), request("studio1", "2024-05-10", "10:00", "12:00"))
	require.NoError(t, err)

	r, err := f.svc.GetReservation(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationRead, r.Status)
	assert.True(t, r.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, domain.ReservationRead, f.load(t, created.ID).Status)

	r, err = f.svc.GetReservation(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationRead, r.Status)

	assert.Equal(t, []string{realtime.EventReservationCreated, realtime.EventReservationUpdated}, f.events.eventTypes())
}

func TestService_GetReservation_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetReservation(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.ConfirmReservation(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_StatusLifecycle(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.CreateReservation(context.Background(), request("studio1", "2024-05-10", "10:00", "12:00"))
	require.NoError(t, err)

	_, err = f.svc.FinalizeReservation(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.EqualError(t, err, "cannot finalize a new reservation")

	r, err := f.svc.ConfirmReservation(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, r.Status)

	_, err = f.svc.ConfirmReservation(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	r, err = f.svc.FinalizeReservation(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationFinalized, r.Status)

	_, err = f.svc.CancelReservation(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.UpdateReservation(context.Background(), created.ID, request("studio1", "2024-05-10", "10:00", "13:00"))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	assert.Equal(t, []string{
		realtime.EventReservationCreated,
		realtime.EventReservationConfirmed,
		realtime.EventReservationFinalized,
	}, f.events.eventTypes())
}

func TestService_CancelReservation_FreesSlot(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "x", domain.Studio1, "2024-05-10", "10:00", "12:00", domain.ReservationConfirmed)

	r, err := f.svc.CancelReservation(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelled, r.Status)

	_, err = f.svc.CancelReservation(context.Background(), "x")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.CreateReservation(context.Background(), request("studio1", "2024-05-10", "10:00", "12:00"))
	assert.NoError(t, err)
}

func TestService_ConfirmReservation_RechecksAvailability(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "a", domain.Studio1, "2024-05-10", "10:00", "12:00", domain.ReservationNew)
	f.seed(t, "b", domain.Studio1, "2024-05-10", "11:00", "13:00", domain.ReservationRead)

	_, err := f.svc.ConfirmReservation(context.Background(), "a")
	var cerr *ConflictError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "b", cerr.Conflict.ID)
	assert.Equal(t, domain.ReservationNew, f.load(t, "a").Status)

	_, err = f.svc.CancelReservation(context.Background(), "b")
	require.NoError(t, err)

	r, err := f.svc.ConfirmReservation(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, r.Status)
}

func TestService_UpdateReservation(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "mine", domain.Studio1, "2024-05-10", "10:00", "12:00", domain.ReservationRead)
	f.seed(t, "other", domain.Studio2, "2024-05-10", "10:00", "12:00", domain.ReservationConfirmed)

	t.Run("overlapping itself is fine", func(t *testing.T) {
		r, err := f.svc.UpdateReservation(context.Background(), "mine", request("studio1", "2024-05-10", "11:00", "13:00"))
		require.NoError(t, err)
		assert.Equal(t, "13:00", r.EndTime)
		assert.Equal(t, 2.0, r.HoursPerDay)
		assert.Equal(t, domain.ReservationRead, r.Status)
	})

	t.Run("moving onto another booking is refused", func(t *testing.T) {
		_, err := f.svc.UpdateReservation(context.Background(), "mine", request("studio2", "2024-05-10", "11:00", "13:00"))
		var cerr *ConflictError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, "other", cerr.Conflict.ID)
		assert.Equal(t, domain.Studio1, f.load(t, "mine").Studio)
	})

	t.Run("moving to a free slot in another studio", func(t *testing.T) {
		req := request("studio2", "2024-05-10", "12:00", "15:30")
		req.Name = "Renamed"
		r, err := f.svc.UpdateReservation(context.Background(), "mine", req)
		require.NoError(t, err)
		assert.Equal(t, domain.Studio2, r.Studio)
		assert.Equal(t, 3.5, r.HoursPerDay)

		stored := f.load(t, "mine")
		assert.Equal(t, "Renamed", stored.Name)
		assert.Equal(t, "15:30", stored.EndTime)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := f.svc.UpdateReservation(context.Background(), "missing", request("studio1", "2024-05-10", "10:00", "12:00"))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_AssignEngineers(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "x", domain.Studio1, "2024-05-10", "10:00", "12:00", domain.ReservationConfirmed)

	r, err := f.svc.AssignEngineers(context.Background(), "x", AssignEngineersRequest{Engineers: []string{"e2", "e1", "e2"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"e2", "e1"}, r.Engineers)
	assert.Equal(t, []string{"e2", "e1"}, f.load(t, "x").Engineers)

	_, err = f.svc.AssignEngineers(context.Background(), "x", AssignEngineersRequest{Engineers: []string{"e1", "ghost"}})
	assert.ErrorIs(t, err, ErrUnknownEngineer)
	assert.Equal(t, []string{"e2", "e1"}, f.load(t, "x").Engineers)

	r, err = f.svc.AssignEngineers(context.Background(), "x", AssignEngineersRequest{Engineers: []string{}})
	require.NoError(t, err)
	assert.Empty(t, r.Engineers)

	_, err = f.svc.FinalizeReservation(context.Background(), "x")
	require.NoError(t, err)
	_, err = f.svc.AssignEngineers(context.Background(), "x", AssignEngineersRequest{Engineers: []string{"e1"}})
	assert.NoError(t, err)

	f.seed(t, "gone", domain.Studio1, "2024-05-11", "10:00", "12:00", domain.ReservationCancelled)
	_, err = f.svc.AssignEngineers(context.Background(), "gone", AssignEngineersRequest{Engineers: []string{"e1"}})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	f.events.AssertCalled(t, "Publish", mock.MatchedBy(func(e realtime.Event) bool {
		return e.Type == realtime.EventEngineersAssigned && e.ID == "x"
	}))
}

func TestService_ListReservations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.CreateReservation(ctx, request("studio1", "2024-05-10", "10:00", "12:00"))
	require.NoError(t, err)
	second, err := f.svc.CreateReservation(ctx, request("studio2", "2024-05-10", "10:00", "12:00"))
	require.NoError(t, err)
	third, err := f.svc.CreateReservation(ctx, request("studio3", "2024-05-10", "10:00", "12:00"))
	require.NoError(t, err)

	_, err = f.svc.ConfirmReservation(ctx, second.ID)
	require.NoError(t, err)
	_, err = f.svc.AssignEngineers(ctx, first.ID, AssignEngineersRequest{Engineers: []string{"e1"}})
	require.NoError(t, err)

	all, err := f.svc.ListReservations(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	confirmed, err := f.svc.ListReservations(ctx, ListFilter{Status: "confirmed"})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, second.ID, confirmed[0].ID)

	withAlice, err := f.svc.ListReservations(ctx, ListFilter{Engineer: "e1"})
	require.NoError(t, err)
	require.Len(t, withAlice, 1)
	assert.Equal(t, first.ID, withAlice[0].ID)

	_, err = f.svc.ListReservations(ctx, ListFilter{Status: "archived"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_WeeklyCalendar(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "wed", domain.Studio2, "2024-05-08", "10:00", "12:00", domain.ReservationConfirmed)
	f.seed(t, "pending", domain.Studio1, "2024-05-08", "09:00", "10:00", domain.ReservationNew)
	f.seed(t, "sun", domain.Studio1, "2024-05-12", "18:00", "20:00", domain.ReservationFinalized)
	f.seed(t, "next", domain.Studio1, "2024-05-13", "10:00", "12:00", domain.ReservationConfirmed)

	week, err := f.svc.WeeklyCalendar(context.Background(), domain.NewDate(2024, time.May, 10))
	require.NoError(t, err)

	assert.Equal(t, domain.NewDate(2024, time.May, 6), week.WeekStart)
	require.Len(t, week.Days, 7)
	assert.Equal(t, "Monday", week.Days[0].Weekday)

	require.Len(t, week.Days[2].Entries, 1)
	assert.Equal(t, "wed", week.Days[2].Entries[0].ID)
	require.Len(t, week.Days[6].Entries, 1)
	assert.Equal(t, "sun", week.Days[6].Entries[0].ID)
	assert.Empty(t, week.Days[0].Entries)
}

func TestService_WeeklyCalendar_DefaultsToTodayUTC(t *testing.T) {
	f := newFixture(t)
	// Sunday 23:30 UTC is already Monday in UTC+14.
	ahead := time.FixedZone("UTC+14", 14*60*60)
	f.svc.now = func() time.Time {
		return time.Date(2024, 5, 12, 23, 30, 0, 0, time.UTC).In(ahead)
	}

	week, err := f.svc.WeeklyCalendar(context.Background(), domain.Date{})
	require.NoError(t, err)
	assert.Equal(t, domain.NewDate(2024, time.May, 6), week.WeekStart)
}

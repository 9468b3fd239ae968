package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"studiobook/internal/domain"
	"studiobook/internal/pkg/logger"
	"studiobook/internal/pkg/validator"
	"studiobook/internal/realtime"
	"studiobook/internal/repository"
	"studiobook/internal/scheduling"
	"studiobook/internal/studiolock"

	"github.com/google/uuid"
)

const (
	// defaultLockWait bounds how long a write waits for its studio.
	defaultLockWait = 5 * time.Second
	// mutateAttempts covers a reservation being moved to another studio
	// between reading it and locking it.
	mutateAttempts = 3
)

type Service struct {
	reservations ReservationRepository
	engineers    EngineerRoster
	locker       studiolock.Locker
	events       EventPublisher
	lockWait     time.Duration
	now          func() time.Time
	newID        func() string
}

func NewService(
	reservations ReservationRepository,
	engineers EngineerRoster,
	locker studiolock.Locker,
	events EventPublisher,
) *Service {
	return &Service{
		reservations: reservations,
		engineers:    engineers,
		locker:       locker,
		events:       events,
		lockWait:     defaultLockWait,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// slot is a validated, parsed ReservationRequest.
type slot struct {
	studio     domain.Studio
	date       domain.Date
	start, end string
	repetition domain.Repetition
}

func (s slot) candidate() scheduling.Candidate {
	return scheduling.Candidate{Studio: s.studio, Date: s.date, StartTime: s.start, EndTime: s.end}
}

func parseSlot(studio, date, start, end string, rep RepetitionRequest) (slot, error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return slot{}, invalid("date", "civildate")
	}
	if !scheduling.ValidRange(start, end) {
		return slot{}, invalid("endTime", "after_start")
	}

	out := slot{
		studio: domain.Studio(studio),
		date:   d,
		start:  start,
		end:    end,
		repetition: domain.Repetition{
			Kind: domain.RepetitionKind(rep.Kind),
		},
	}
	if out.repetition.Kind == "" {
		out.repetition.Kind = domain.RepeatNone
	}
	if rep.Until != "" {
		until, err := domain.ParseDate(rep.Until)
		if err != nil {
			return slot{}, invalid("repetition.until", "civildate")
		}
		if until.Before(d) {
			return slot{}, invalid("repetition.until", "before_date")
		}
		out.repetition.Until = &until
	}
	if out.repetition.Kind == domain.RepeatDailyUntil && out.repetition.Until == nil {
		return slot{}, invalid("repetition.until", "required")
	}
	return out, nil
}

func validateRequest(req any) error {
	if fields := validator.Validate(req); fields != nil {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// lockStudios waits up to s.lockWait for every studio in the list.
func (s *Service) lockStudios(ctx context.Context, studios ...domain.Studio) (func(), error) {
	keys := make([]string, 0, len(studios))
	for _, st := range studios {
		keys = append(keys, string(st))
	}

	lockCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()

	unlock, err := studiolock.LockAll(lockCtx, s.locker, keys...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrStudioBusy
		}
		return nil, fmt.Errorf("lock studio: %w", err)
	}
	return unlock, nil
}

func (s *Service) publish(eventType string, r *domain.Reservation) {
	if s.events == nil {
		return
	}
	s.events.Publish(realtime.Event{Type: eventType, ID: r.ID, Studio: r.Studio, Date: r.Date})
}

func (s *Service) conflict(c scheduling.Candidate, excludeID string, all []domain.Reservation) error {
	v := scheduling.CheckAvailability(c, excludeID, all)
	if v.Available {
		return nil
	}
	return &ConflictError{Conflict: *v.Conflict, Message: scheduling.ConflictMessage(*v.Conflict)}
}

// CheckAvailability is the pre-submit check. It reads without locking, so a
// positive answer is advisory until the reservation is actually created.
func (s *Service) CheckAvailability(ctx context.Context, req AvailabilityRequest) (*AvailabilityResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	sl, err := parseSlot(req.Studio, req.Date, req.StartTime, req.EndTime, RepetitionRequest{})
	if err != nil {
		return nil, err
	}

	all, err := s.reservations.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	v := scheduling.CheckAvailability(sl.candidate(), req.ExcludeID, all)
	if v.Available {
		return &AvailabilityResponse{Available: true}, nil
	}
	blocking := publicSlot(*v.Conflict)
	return &AvailabilityResponse{
		Available: false,
		Message:   scheduling.ConflictMessage(*v.Conflict),
		Conflict:  &blocking,
	}, nil
}

// CreateReservation stores a new submission with status "new" if its slot is
// free. The check and the write happen under the studio lock.
func (s *Service) CreateReservation(ctx context.Context, req ReservationRequest) (*domain.Reservation, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	sl, err := parseSlot(req.Studio, req.Date, req.StartTime, req.EndTime, req.Repetition)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	r := &domain.Reservation{
		ID:            s.newID(),
		Studio:        sl.studio,
		Date:          sl.date,
		StartTime:     sl.start,
		EndTime:       sl.end,
		Status:        domain.ReservationNew,
		HoursPerDay:   scheduling.Hours(sl.start, sl.end),
		Engineers:     []string{},
		EngineerCount: req.EngineerCount,
		Repetition:    sl.repetition,
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.TrimSpace(req.Email),
		Phone:         strings.TrimSpace(req.Phone),
		ProgramName:   strings.TrimSpace(req.ProgramName),
		Notes:         strings.TrimSpace(req.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	unlock, err := s.lockStudios(ctx, r.Studio)
	if err != nil {
		return nil, err
	}
	defer unlock()

	all, err := s.reservations.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.conflict(sl.candidate(), "", all); err != nil {
		return nil, err
	}

	if err := s.reservations.Create(ctx, r); err != nil {
		if errors.Is(err, repository.ErrOverbooking) {
			return nil, ErrNotAvailable
		}
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("reservation_id", r.ID).
		Str("studio", string(r.Studio)).
		Str("date", r.Date.String()).
		Str("start", r.StartTime).
		Str("end", r.EndTime).
		Msg("Reservation created")
	s.publish(realtime.EventReservationCreated, r)

	return r, nil
}

// ListReservations returns reservations newest first, optionally narrowed
// by status and assigned engineer.
func (s *Service) ListReservations(ctx context.Context, f ListFilter) ([]domain.Reservation, error) {
	if err := validateRequest(f); err != nil {
		return nil, err
	}

	all, err := s.reservations.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Reservation, 0, len(all))
	for i := range all {
		r := &all[i]
		if f.Status != "" && string(r.Status) != f.Status {
			continue
		}
		if f.Engineer != "" && !r.HasEngineer(f.Engineer) {
			continue
		}
		out = append(out, *r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Service) get(ctx context.Context, id string) (*domain.Reservation, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

// GetReservation returns one reservation. Opening a new one marks it read.
func (s *Service) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != domain.ReservationNew {
		return r, nil
	}

	return s.mutate(ctx, id, "", func(cur *domain.Reservation, _ []domain.Reservation) (string, error) {
		if cur.Status != domain.ReservationNew {
			return "", nil
		}
		cur.Status = domain.ReservationRead
		return realtime.EventReservationUpdated, nil
	})
}

// UpdateReservation edits slot and contact details. The new slot is checked
// against everything except the reservation itself.
func (s *Service) UpdateReservation(ctx context.Context, id string, req ReservationRequest) (*domain.Reservation, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	sl, err := parseSlot(req.Studio, req.Date, req.StartTime, req.EndTime, req.Repetition)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, sl.studio, func(cur *domain.Reservation, all []domain.Reservation) (string, error) {
		if err := checkAction(actionEdit, cur.Status); err != nil {
			return "", err
		}
		if err := s.conflict(sl.candidate(), cur.ID, all); err != nil {
			return "", err
		}

		cur.Studio = sl.studio
		cur.Date = sl.date
		cur.StartTime = sl.start
		cur.EndTime = sl.end
		cur.HoursPerDay = scheduling.Hours(sl.start, sl.end)
		cur.Repetition = sl.repetition
		cur.EngineerCount = req.EngineerCount
		cur.Name = strings.TrimSpace(req.Name)
		cur.Email = strings.TrimSpace(req.Email)
		cur.Phone = strings.TrimSpace(req.Phone)
		cur.ProgramName = strings.TrimSpace(req.ProgramName)
		cur.Notes = strings.TrimSpace(req.Notes)
		return realtime.EventReservationUpdated, nil
	})
}

// ConfirmReservation locks the slot in. Availability is checked again since
// pending submissions may have been edited into overlap.
func (s *Service) ConfirmReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.mutate(ctx, id, "", func(cur *domain.Reservation, all []domain.Reservation) (string, error) {
		if err := checkAction(actionConfirm, cur.Status); err != nil {
			return "", err
		}
		c := scheduling.Candidate{Studio: cur.Studio, Date: cur.Date, StartTime: cur.StartTime, EndTime: cur.EndTime}
		if err := s.conflict(c, cur.ID, all); err != nil {
			return "", err
		}
		cur.Status = domain.ReservationConfirmed
		return realtime.EventReservationConfirmed, nil
	})
}

func (s *Service) FinalizeReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.mutate(ctx, id, "", func(cur *domain.Reservation, _ []domain.Reservation) (string, error) {
		if err := checkAction(actionFinalize, cur.Status); err != nil {
			return "", err
		}
		cur.Status = domain.ReservationFinalized
		return realtime.EventReservationFinalized, nil
	})
}

func (s *Service) CancelReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.mutate(ctx, id, "", func(cur *domain.Reservation, _ []domain.Reservation) (string, error) {
		if err := checkAction(actionCancel, cur.Status); err != nil {
			return "", err
		}
		cur.Status = domain.ReservationCancelled
		return realtime.EventReservationCancelled, nil
	})
}

// AssignEngineers replaces the engineer list. Every id must be on the
// roster now; repeated ids are kept once.
func (s *Service) AssignEngineers(ctx context.Context, id string, req AssignEngineersRequest) (*domain.Reservation, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	roster, err := s.engineers.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(roster))
	for _, e := range roster {
		known[e.ID] = true
	}

	ids := make([]string, 0, len(req.Engineers))
	seen := make(map[string]bool, len(req.Engineers))
	for _, raw := range req.Engineers {
		eid := strings.TrimSpace(raw)
		if seen[eid] {
			continue
		}
		if !known[eid] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEngineer, eid)
		}
		seen[eid] = true
		ids = append(ids, eid)
	}

	return s.mutate(ctx, id, "", func(cur *domain.Reservation, _ []domain.Reservation) (string, error) {
		if err := checkAction(actionAssign, cur.Status); err != nil {
			return "", err
		}
		cur.Engineers = ids
		return realtime.EventEngineersAssigned, nil
	})
}

// WeeklyCalendar returns the Monday-start week containing date.
func (s *Service) WeeklyCalendar(ctx context.Context, date domain.Date) (*WeekResponse, error) {
	if date.IsZero() {
		date = domain.DateOf(s.now().UTC())
	}
	all, err := s.reservations.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	start := scheduling.WeekStart(date)
	return weekResponse(start, scheduling.BuildWeek(all, start)), nil
}

// mutation edits cur in place and names the event to publish. An empty
// event means nothing changed and nothing is written.
type mutation func(cur *domain.Reservation, all []domain.Reservation) (event string, err error)

// mutate applies fn to reservation id while holding the lock of its studio
// and, if set, of target.
func (s *Service) mutate(ctx context.Context, id string, target domain.Studio, fn mutation) (*domain.Reservation, error) {
	for attempt := 0; attempt < mutateAttempts; attempt++ {
		cur, err := s.get(ctx, id)
		if err != nil {
			return nil, err
		}

		studios := []domain.Studio{cur.Studio}
		if target != "" {
			studios = append(studios, target)
		}
		unlock, err := s.lockStudios(ctx, studios...)
		if err != nil {
			return nil, err
		}

		res, moved, err := s.mutateLocked(ctx, id, cur.Studio, fn)
		unlock()
		if moved {
			continue
		}
		return res, err
	}
	return nil, ErrStudioBusy
}

func (s *Service) mutateLocked(ctx context.Context, id string, locked domain.Studio, fn mutation) (*domain.Reservation, bool, error) {
	all, err := s.reservations.ListAll(ctx)
	if err != nil {
		return nil, false, err
	}

	var cur *domain.Reservation
	for i := range all {
		if all[i].ID == id {
			r := all[i]
			cur = &r
			break
		}
	}
	if cur == nil {
		return nil, false, ErrNotFound
	}
	if cur.Studio != locked {
		return nil, true, nil
	}

	from := cur.Status
	event, err := fn(cur, all)
	if err != nil {
		return nil, false, err
	}
	if event == "" {
		return cur, false, nil
	}

	cur.UpdatedAt = s.now().UTC()
	if err := s.reservations.Update(ctx, cur); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, ErrNotFound
		}
		if errors.Is(err, repository.ErrOverbooking) {
			return nil, false, ErrNotAvailable
		}
		return nil, false, err
	}

	logger.FromContext(ctx).Info().
		Str("reservation_id", cur.ID).
		Str("event", event).
		Str("from", string(from)).
		Str("status", string(cur.Status)).
		Strs("engineers", cur.Engineers).
		Msg("Reservation updated")
	s.publish(event, cur)

	return cur, false, nil
}

package engineer

import (
	"context"
	"errors"
	"strings"
	"time"

	"studiobook/internal/domain"
	"studiobook/internal/pkg/logger"
	"studiobook/internal/realtime"
	"studiobook/internal/repository"
	"studiobook/internal/scheduling"

	"github.com/google/uuid"
)

// Service manages the engineer roster and the pay-period shift table.
type Service struct {
	engineers    EngineerRepository
	reservations ReservationReader
	events       EventPublisher
	now          func() time.Time
	newID        func() string
}

func NewService(engineers EngineerRepository, reservations ReservationReader, events EventPublisher) *Service {
	return &Service{
		engineers:    engineers,
		reservations: reservations,
		events:       events,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

func (s *Service) publish(eventType, id string) {
	if s.events == nil {
		return
	}
	s.events.Publish(realtime.Event{Type: eventType, ID: id})
}

// ListEngineers returns the roster in the order engineers were added.
func (s *Service) ListEngineers(ctx context.Context) ([]domain.Engineer, error) {
	return s.engineers.ListAll(ctx)
}

func (s *Service) CreateEngineer(ctx context.Context, req CreateEngineerRequest) (*domain.Engineer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 100 {
		return nil, ErrValidation
	}

	e := &domain.Engineer{
		ID:        s.newID(),
		Name:      name,
		CreatedAt: s.now().UTC(),
	}
	if err := s.engineers.Create(ctx, e); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("engineer_id", e.ID).
		Str("name", e.Name).
		Msg("Engineer added")
	s.publish(realtime.EventEngineerCreated, e.ID)

	return e, nil
}

// DeleteEngineer removes an engineer from the roster. Reservations keep the
// id; it simply stops showing up in shift tables.
func (s *Service) DeleteEngineer(ctx context.Context, id string) error {
	if err := s.engineers.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	logger.FromContext(ctx).Info().Str("engineer_id", id).Msg("Engineer removed")
	s.publish(realtime.EventEngineerDeleted, id)
	return nil
}

// ShiftTable counts sessions per engineer for the pay period containing ref.
// A zero ref means today.
func (s *Service) ShiftTable(ctx context.Context, ref time.Time) (*scheduling.ShiftTable, error) {
	if ref.IsZero() {
		ref = s.now().UTC()
	}

	roster, err := s.engineers.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.reservations.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	table := scheduling.AggregateShifts(roster, all, ref)
	return &table, nil
}

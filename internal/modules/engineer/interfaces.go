package engineer

import (
	"context"

	"studiobook/internal/domain"
	"studiobook/internal/realtime"
)

type EngineerRepository interface {
	ListAll(ctx context.Context) ([]domain.Engineer, error)
	GetByID(ctx context.Context, id string) (*domain.Engineer, error)
	Create(ctx context.Context, e *domain.Engineer) error
	Delete(ctx context.Context, id string) error
}

// ReservationReader feeds the shift table.
type ReservationReader interface {
	ListAll(ctx context.Context) ([]domain.Reservation, error)
}

type EventPublisher interface {
	Publish(e realtime.Event)
}

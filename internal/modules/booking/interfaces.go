package booking

import (
	"context"

	"studiobook/internal/domain"
	"studiobook/internal/realtime"
)

// ReservationRepository defines the storage operations the service needs.
// ListAll must return reservations in a stable order; the first conflict
// reported is the first one in that order.
type ReservationRepository interface {
	ListAll(ctx context.Context) ([]domain.Reservation, error)
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	Create(ctx context.Context, r *domain.Reservation) error
	Update(ctx context.Context, r *domain.Reservation) error
}

// EngineerRoster is used to check assignments against known engineers.
type EngineerRoster interface {
	ListAll(ctx context.Context) ([]domain.Engineer, error)
}

type EventPublisher interface {
	Publish(e realtime.Event)
}

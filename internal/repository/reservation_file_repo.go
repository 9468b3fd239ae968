package repository

import (
	"context"

	"studiobook/internal/domain"
)

const reservationsFile = "reservations.json"

// ReservationFileRepository keeps reservations in DATA_DIR/reservations.json.
type ReservationFileRepository struct {
	doc *jsonDocument[domain.Reservation]
}

func NewReservationFileRepository(dir string) (*ReservationFileRepository, error) {
	doc, err := newJSONDocument[domain.Reservation](dir, reservationsFile)
	if err != nil {
		return nil, err
	}
	return &ReservationFileRepository{doc: doc}, nil
}

// ListAll returns reservations in insertion order.
func (r *ReservationFileRepository) ListAll(ctx context.Context) ([]domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.doc.read()
}

func (r *ReservationFileRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *ReservationFileRepository) Create(ctx context.Context, res *domain.Reservation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.doc.update(func(items []domain.Reservation) ([]domain.Reservation, error) {
		for _, existing := range items {
			if existing.ID == res.ID {
				return nil, ErrDuplicateID
			}
		}
		return append(items, *res), nil
	})
}

func (r *ReservationFileRepository) Update(ctx context.Context, res *domain.Reservation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.doc.update(func(items []domain.Reservation) ([]domain.Reservation, error) {
		for i := range items {
			if items[i].ID == res.ID {
				items[i] = *res
				return items, nil
			}
		}
		return nil, ErrNotFound
	})
}

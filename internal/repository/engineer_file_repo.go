package repository

import (
	"context"

	"studiobook/internal/domain"
)

const engineersFile = "engineers.json"

type EngineerFileRepository struct {
	doc *jsonDocument[domain.Engineer]
}

func NewEngineerFileRepository(dir string) (*EngineerFileRepository, error) {
	doc, err := newJSONDocument[domain.Engineer](dir, engineersFile)
	if err != nil {
		return nil, err
	}
	return &EngineerFileRepository{doc: doc}, nil
}

// ListAll returns the roster in the order engineers were added.
func (r *EngineerFileRepository) ListAll(ctx context.Context) ([]domain.Engineer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.doc.read()
}

func (r *EngineerFileRepository) GetByID(ctx context.Context, id string) (*domain.Engineer, error) {
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

func (r *EngineerFileRepository) Create(ctx context.Context, e *domain.Engineer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.doc.update(func(items []domain.Engineer) ([]domain.Engineer, error) {
		for _, existing := range items {
			if existing.ID == e.ID {
				return nil, ErrDuplicateID
			}
		}
		return append(items, *e), nil
	})
}

func (r *EngineerFileRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.doc.update(func(items []domain.Engineer) ([]domain.Engineer, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
}

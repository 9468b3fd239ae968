package repository

import (
	"context"
	"time"

	"studiobook/internal/domain"

	"gorm.io/gorm"
)

type EngineerRepository struct {
	db *gorm.DB
}

func NewEngineerRepository(db *gorm.DB) *EngineerRepository {
	return &EngineerRepository{db: db}
}

type engineerModel struct {
	ID        string    `gorm:"column:id;primaryKey;size:64"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (engineerModel) TableName() string { return "engineers" }

func (r *EngineerRepository) ListAll(ctx context.Context) ([]domain.Engineer, error) {
	var rows []engineerModel
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, translateDBError(err)
	}
	out := make([]domain.Engineer, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.Engineer{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt})
	}
	return out, nil
}

func (r *EngineerRepository) GetByID(ctx context.Context, id string) (*domain.Engineer, error) {
	var m engineerModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateDBError(err)
	}
	return &domain.Engineer{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}, nil
}

func (r *EngineerRepository) Create(ctx context.Context, e *domain.Engineer) error {
	m := engineerModel{ID: e.ID, Name: e.Name, CreatedAt: e.CreatedAt}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translateDBError(err)
	}
	e.CreatedAt = m.CreatedAt
	return nil
}

func (r *EngineerRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&engineerModel{})
	if tx.Error != nil {
		return translateDBError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AutoMigrate creates or updates the reservations and engineers tables. On
// postgres it also adds the overlap exclusion constraint.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&reservationModel{}, &engineerModel{}); err != nil {
		return err
	}
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return ensureOverlapConstraint(db)
}

const overlapConstraint = "reservations_no_overlap"

// Minutes since midnight from the stored "HH:MM" columns. split_part and the
// int cast are immutable, which the index expression requires.
const overlapConstraintSQL = `ALTER TABLE reservations ADD CONSTRAINT ` + overlapConstraint + ` EXCLUDE USING gist (
	studio WITH =,
	date WITH =,
	int4range(
		split_part(start_time, ':', 1)::int * 60 + split_part(start_time, ':', 2)::int,
		split_part(end_time, ':', 1)::int * 60 + split_part(end_time, ':', 2)::int
	) WITH &&
) WHERE (status <> 'cancelled')`

// ensureOverlapConstraint makes postgres reject two live reservations of the
// same studio whose [start, end) ranges meet on the same date. A violation
// surfaces as ErrOverbooking.
func ensureOverlapConstraint(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// btree_gist provides the = operator class for the text columns.
		if err := tx.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
			return err
		}
		var n int64
		if err := tx.Raw("SELECT COUNT(*) FROM pg_constraint WHERE conname = ?", overlapConstraint).Scan(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		return tx.Exec(overlapConstraintSQL).Error
	})
}

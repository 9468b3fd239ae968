package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"studiobook/internal/domain"

	"gorm.io/gorm"
)

// ReservationRepository is the SQL-backed reservation store.
type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID            string    `gorm:"column:id;primaryKey;size:64"`
	Studio        string    `gorm:"column:studio;size:32;index:idx_reservations_studio_date"`
	Date          string    `gorm:"column:date;size:10;index:idx_reservations_studio_date"`
	StartTime     string    `gorm:"column:start_time;size:5"`
	EndTime       string    `gorm:"column:end_time;size:5"`
	Status        string    `gorm:"column:status;size:16;index"`
	HoursPerDay   float64   `gorm:"column:hours_per_day"`
	Engineers     string    `gorm:"column:engineers;type:text"`
	EngineerCount int       `gorm:"column:engineer_count"`
	RepeatKind    string    `gorm:"column:repeat_kind;size:32"`
	RepeatUntil   *string   `gorm:"column:repeat_until;size:10"`
	Name          string    `gorm:"column:name"`
	Email         string    `gorm:"column:email"`
	Phone         *string   `gorm:"column:phone"`
	ProgramName   *string   `gorm:"column:program_name"`
	Notes         *string   `gorm:"column:notes"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func optional(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// toDomainReservation tolerates malformed dates: they come back as the zero
// date, which scheduling code skips.
func toDomainReservation(m reservationModel) (*domain.Reservation, error) {
	engineers := []string{}
	if m.Engineers != "" {
		if err := json.Unmarshal([]byte(m.Engineers), &engineers); err != nil {
			return nil, fmt.Errorf("reservation %s: decode engineers: %w", m.ID, err)
		}
	}

	date, _ := domain.ParseDate(m.Date)

	rep := domain.Repetition{Kind: domain.RepetitionKind(m.RepeatKind)}
	if m.RepeatUntil != nil {
		if until, err := domain.ParseDate(*m.RepeatUntil); err == nil {
			rep.Until = &until
		}
	}

	return &domain.Reservation{
		ID:            m.ID,
		Studio:        domain.Studio(m.Studio),
		Date:          date,
		StartTime:     m.StartTime,
		EndTime:       m.EndTime,
		Status:        domain.ReservationStatus(m.Status),
		HoursPerDay:   m.HoursPerDay,
		Engineers:     engineers,
		EngineerCount: m.EngineerCount,
		Repetition:    rep,
		Name:          m.Name,
		Email:         m.Email,
		Phone:         deref(m.Phone),
		ProgramName:   deref(m.ProgramName),
		Notes:         deref(m.Notes),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

func toReservationModel(r *domain.Reservation) (reservationModel, error) {
	engineers := r.Engineers
	if engineers == nil {
		engineers = []string{}
	}
	b, err := json.Marshal(engineers)
	if err != nil {
		return reservationModel{}, fmt.Errorf("encode engineers: %w", err)
	}

	var date string
	if !r.Date.IsZero() {
		date = r.Date.String()
	}
	var until *string
	if r.Repetition.Until != nil && !r.Repetition.Until.IsZero() {
		until = optional(r.Repetition.Until.String())
	}

	return reservationModel{
		ID:            r.ID,
		Studio:        string(r.Studio),
		Date:          date,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Status:        string(r.Status),
		HoursPerDay:   r.HoursPerDay,
		Engineers:     string(b),
		EngineerCount: r.EngineerCount,
		RepeatKind:    string(r.Repetition.Kind),
		RepeatUntil:   until,
		Name:          r.Name,
		Email:         r.Email,
		Phone:         optional(r.Phone),
		ProgramName:   optional(r.ProgramName),
		Notes:         optional(r.Notes),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}

// ListAll returns reservations oldest first.
func (r *ReservationRepository) ListAll(ctx context.Context) ([]domain.Reservation, error) {
	var rows []reservationModel
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, translateDBError(err)
	}

	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		res, err := toDomainReservation(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var m reservationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateDBError(err)
	}
	return toDomainReservation(m)
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	m, err := toReservationModel(res)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translateDBError(err)
	}
	created, err := toDomainReservation(m)
	if err != nil {
		return err
	}
	*res = *created
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	m, err := toReservationModel(res)
	if err != nil {
		return err
	}
	tx := r.db.WithContext(ctx).Model(&reservationModel{}).
		Where("id = ?", m.ID).
		Select("*").
		Updates(&m)
	if tx.Error != nil {
		return translateDBError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	res.UpdatedAt = m.UpdatedAt
	return nil
}

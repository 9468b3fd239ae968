package domain

import "time"

type ReservationStatus string

const (
	ReservationNew       ReservationStatus = "new"
	ReservationRead      ReservationStatus = "read"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationFinalized ReservationStatus = "finalized"
	ReservationCancelled ReservationStatus = "cancelled"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationNew, ReservationRead, ReservationConfirmed, ReservationFinalized, ReservationCancelled:
		return true
	}
	return false
}

// Scheduled reports whether the booking is locked in, i.e. it shows on the
// calendar and counts towards engineer shifts.
func (s ReservationStatus) Scheduled() bool {
	return s == ReservationConfirmed || s == ReservationFinalized
}

type RepetitionKind string

const (
	RepeatNone              RepetitionKind = "none"
	RepeatWeeklyOneMonth    RepetitionKind = "weekly_1_month"
	RepeatWeeklyThreeMonths RepetitionKind = "weekly_3_months"
	RepeatDailyUntil        RepetitionKind = "daily_until"
)

func (k RepetitionKind) Valid() bool {
	switch k {
	case "", RepeatNone, RepeatWeeklyOneMonth, RepeatWeeklyThreeMonths, RepeatDailyUntil:
		return true
	}
	return false
}

// Repetition describes how a booking recurs. It is informational only: a
// recurring booking is stored, checked and counted as a single record on
// its own date.
type Repetition struct {
	Kind  RepetitionKind `json:"kind"`
	Until *Date          `json:"until,omitempty"`
}

type Reservation struct {
	ID            string            `json:"id"`
	Studio        Studio            `json:"studio"`
	Date          Date              `json:"date"`
	StartTime     string            `json:"startTime"`
	EndTime       string            `json:"endTime"`
	Status        ReservationStatus `json:"status"`
	HoursPerDay   float64           `json:"hoursPerDay"`
	Engineers     []string          `json:"engineers"`
	EngineerCount int               `json:"engineerCount"`
	Repetition    Repetition        `json:"repetition"`

	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	ProgramName string `json:"programName,omitempty"`
	Notes       string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasEngineer reports whether id is among the assigned engineers.
func (r *Reservation) HasEngineer(id string) bool {
	for _, e := range r.Engineers {
		if e == id {
			return true
		}
	}
	return false
}

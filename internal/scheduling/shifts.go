package scheduling

import (
	"fmt"
	"time"

	"studiobook/internal/domain"
)

// Pay periods run from the 21st of one month to the 20th of the next.
const (
	payPeriodStartDay = 21
	payPeriodEndDay   = 20
)

// PayPeriod is inclusive on both ends.
type PayPeriod struct {
	Start domain.Date `json:"start"`
	End   domain.Date `json:"end"`
}

// PayPeriodFor returns the period containing ref's calendar date.
func PayPeriodFor(ref time.Time) PayPeriod {
	y, m, d := ref.Date()
	if d <= payPeriodEndDay {
		m--
	}
	// time.Date normalises month 0 to December of the previous year.
	start := time.Date(y, m, payPeriodStartDay, 0, 0, 0, 0, time.UTC)
	end := time.Date(start.Year(), start.Month()+1, payPeriodEndDay, 0, 0, 0, 0, time.UTC)
	return PayPeriod{Start: domain.DateOf(start), End: domain.DateOf(end)}
}

func (p PayPeriod) Contains(d domain.Date) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

func (p PayPeriod) Label() string {
	const layout = "Jan 2, 2006"
	return fmt.Sprintf("%s - %s", p.Start.Time().Format(layout), p.End.Time().Format(layout))
}

type ShiftRow struct {
	EngineerID        string `json:"engineer_id"`
	EngineerName      string `json:"engineer_name"`
	Under1Hour        int    `json:"under_1_hour"`
	Between1And2Hours int    `json:"between_1_and_2_hours"`
	Between3And4Hours int    `json:"between_3_and_4_hours"`
}

// add counts one session of the given length.
//
// Sessions longer than 2h but shorter than 3h fall into no bucket, and
// sessions over 4h count twice in the 3-4h bucket. Payroll relies on these
// numbers as they are.
func (r *ShiftRow) add(hours float64) {
	switch {
	case hours > 0 && hours < 1:
		r.Under1Hour++
	case hours >= 1 && hours <= 2:
		r.Between1And2Hours++
	case hours >= 3 && hours <= 4:
		r.Between3And4Hours++
	case hours > 4:
		r.Between3And4Hours += 2
	}
}

type ShiftTable struct {
	Period PayPeriod  `json:"period"`
	Label  string     `json:"label"`
	Rows   []ShiftRow `json:"rows"`
}

// AggregateShifts tallies confirmed and finalized sessions in the pay period
// around ref for every engineer on the roster. Each assigned engineer gets
// the full session; rows follow roster order and engineers without sessions
// keep zero counts. Ids missing from the roster are ignored.
func AggregateShifts(engineers []domain.Engineer, all []domain.Reservation, ref time.Time) ShiftTable {
	period := PayPeriodFor(ref)

	rows := make([]ShiftRow, len(engineers))
	index := make(map[string]int, len(engineers))
	for i, e := range engineers {
		rows[i] = ShiftRow{EngineerID: e.ID, EngineerName: e.Name}
		if _, dup := index[e.ID]; !dup {
			index[e.ID] = i
		}
	}

	for _, r := range all {
		if !r.Status.Scheduled() || len(r.Engineers) == 0 {
			continue
		}
		if r.Date.IsZero() || !period.Contains(r.Date) {
			continue
		}
		for _, id := range r.Engineers {
			i, ok := index[id]
			if !ok {
				continue
			}
			rows[i].add(r.HoursPerDay)
		}
	}

	return ShiftTable{Period: period, Label: period.Label(), Rows: rows}
}

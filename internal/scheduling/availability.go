package scheduling

import (
	"fmt"

	"studiobook/internal/domain"
)

// Candidate is the slot a booking wants to occupy.
type Candidate struct {
	Studio    domain.Studio
	Date      domain.Date
	StartTime string
	EndTime   string
}

type Verdict struct {
	Available bool
	Conflict  *domain.Reservation
}

// CheckAvailability reports whether c fits next to the existing bookings.
//
// Only non-cancelled bookings in the same studio on the same date are
// compared, and the one whose id equals excludeID is skipped so an edited
// booking never collides with itself. Time ranges are half-open, so
// back-to-back bookings do not conflict. The first conflict in input order
// is returned. Unparseable or inverted ranges never match.
func CheckAvailability(c Candidate, excludeID string, all []domain.Reservation) Verdict {
	cs, ok := parseClock(c.StartTime)
	if !ok {
		return Verdict{Available: true}
	}
	ce, ok := parseClock(c.EndTime)
	if !ok || ce <= cs {
		return Verdict{Available: true}
	}

	for i := range all {
		r := all[i]
		if r.Studio != c.Studio || r.Status == domain.ReservationCancelled {
			continue
		}
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		if r.Date != c.Date {
			continue
		}

		rs, ok := parseClock(r.StartTime)
		if !ok {
			continue
		}
		re, ok := parseClock(r.EndTime)
		if !ok || re <= rs {
			continue
		}

		if cs < re && rs < ce {
			return Verdict{Available: false, Conflict: &r}
		}
	}

	return Verdict{Available: true}
}

// ConflictMessage describes a conflicting booking for end users.
func ConflictMessage(r domain.Reservation) string {
	return fmt.Sprintf("%s is already booked on %s from %s to %s",
		r.Studio.DisplayName(), r.Date, r.StartTime, r.EndTime)
}

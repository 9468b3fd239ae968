package scheduling

import (
	"sort"
	"time"

	"studiobook/internal/domain"
)

type CalendarDay struct {
	Date    domain.Date          `json:"date"`
	Weekday string               `json:"weekday"`
	Entries []domain.Reservation `json:"entries"`
}

// WeekStart returns the Monday on or before d.
func WeekStart(d domain.Date) domain.Date {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

// BuildWeek lays out the confirmed and finalized bookings of the seven days
// starting at weekStart. Entries are ordered by studio, then start time.
func BuildWeek(all []domain.Reservation, weekStart domain.Date) []CalendarDay {
	days := make([]CalendarDay, 7)
	slot := make(map[domain.Date]int, 7)
	for i := range days {
		d := weekStart.AddDays(i)
		days[i] = CalendarDay{
			Date:    d,
			Weekday: d.Weekday().String(),
			Entries: []domain.Reservation{},
		}
		slot[d] = i
	}

	for _, r := range all {
		if !r.Status.Scheduled() {
			continue
		}
		i, ok := slot[r.Date]
		if !ok {
			continue
		}
		days[i].Entries = append(days[i].Entries, r)
	}

	for i := range days {
		entries := days[i].Entries
		sort.SliceStable(entries, func(a, b int) bool {
			if entries[a].Studio != entries[b].Studio {
				return entries[a].Studio < entries[b].Studio
			}
			return startMinute(entries[a]) < startMinute(entries[b])
		})
	}
	return days
}

// startMinute sorts unparseable start times after every valid one.
func startMinute(r domain.Reservation) int {
	m, ok := parseClock(r.StartTime)
	if !ok {
		return int(24 * time.Hour / time.Minute)
	}
	return m
}

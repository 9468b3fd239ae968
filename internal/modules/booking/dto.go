package booking

import (
	"studiobook/internal/domain"
	"studiobook/internal/scheduling"
)

// ReservationRequest is the submission form, also used by admins to edit.
type ReservationRequest struct {
	Studio        string            `json:"studio" binding:"required,studio"`
	Date          string            `json:"date" binding:"required,civildate"`
	StartTime     string            `json:"startTime" binding:"required,hhmm"`
	EndTime       string            `json:"endTime" binding:"required,hhmm"`
	EngineerCount int               `json:"engineerCount" binding:"gte=0,lte=10"`
	Repetition    RepetitionRequest `json:"repetition"`
	Name          string            `json:"name" binding:"required,max=200"`
	Email         string            `json:"email" binding:"required,email,max=254"`
	Phone         string            `json:"phone" binding:"omitempty,max=50"`
	ProgramName   string            `json:"programName" binding:"omitempty,max=200"`
	Notes         string            `json:"notes" binding:"omitempty,max=2000"`
}

type RepetitionRequest struct {
	Kind  string `json:"kind" binding:"omitempty,repetition"`
	Until string `json:"until" binding:"omitempty,civildate"`
}

type AvailabilityRequest struct {
	Studio    string `json:"studio" binding:"required,studio"`
	Date      string `json:"date" binding:"required,civildate"`
	StartTime string `json:"startTime" binding:"required,hhmm"`
	EndTime   string `json:"endTime" binding:"required,hhmm"`
	ExcludeID string `json:"excludeId" binding:"omitempty,max=64"`
}

// PublicSlot describes a booking without customer details.
type PublicSlot struct {
	ID        string        `json:"id"`
	Studio    domain.Studio `json:"studio"`
	Date      domain.Date   `json:"date"`
	StartTime string        `json:"startTime"`
	EndTime   string        `json:"endTime"`
	Status    string        `json:"status"`
}

func publicSlot(r domain.Reservation) PublicSlot {
	return PublicSlot{
		ID:        r.ID,
		Studio:    r.Studio,
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Status:    string(r.Status),
	}
}

type AvailabilityResponse struct {
	Available bool        `json:"available"`
	Message   string      `json:"message,omitempty"`
	Conflict  *PublicSlot `json:"conflict,omitempty"`
}

type AssignEngineersRequest struct {
	Engineers []string `json:"engineers" binding:"dive,required,max=64"`
}

type ListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=new read confirmed finalized cancelled"`
	Engineer string `form:"engineer" binding:"omitempty,max=64"`
}

type WeekDay struct {
	Date    domain.Date  `json:"date"`
	Weekday string       `json:"weekday"`
	Entries []PublicSlot `json:"entries"`
}

type WeekResponse struct {
	WeekStart domain.Date `json:"week_start"`
	Days      []WeekDay   `json:"days"`
}

func weekResponse(start domain.Date, days []scheduling.CalendarDay) *WeekResponse {
	out := &WeekResponse{WeekStart: start, Days: make([]WeekDay, 0, len(days))}
	for _, d := range days {
		day := WeekDay{Date: d.Date, Weekday: d.Weekday, Entries: make([]PublicSlot, 0, len(d.Entries))}
		for _, r := range d.Entries {
			day.Entries = append(day.Entries, publicSlot(r))
		}
		out.Days = append(out.Days, day)
	}
	return out
}

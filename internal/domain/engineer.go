package domain

import "time"

// Engineer is an audio engineer who can be assigned to sessions.
type Engineer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

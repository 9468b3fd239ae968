package auth

import "time"

type tokenIssuer interface {
	GenerateToken(subject, role string) (string, time.Time, error)
}

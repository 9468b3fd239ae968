package booking

import "studiobook/internal/domain"

const (
	actionConfirm  = "confirm"
	actionFinalize = "finalize"
	actionCancel   = "cancel"
	actionEdit     = "edit"
	actionAssign   = "assign engineers to"
)

// allowedFrom lists, per action, the statuses it may start from.
var allowedFrom = map[string][]domain.ReservationStatus{
	actionConfirm:  {domain.ReservationNew, domain.ReservationRead},
	actionFinalize: {domain.ReservationConfirmed},
	actionCancel:   {domain.ReservationNew, domain.ReservationRead, domain.ReservationConfirmed},
	actionEdit:     {domain.ReservationNew, domain.ReservationRead, domain.ReservationConfirmed},
	actionAssign:   {domain.ReservationNew, domain.ReservationRead, domain.ReservationConfirmed, domain.ReservationFinalized},
}

func checkAction(action string, from domain.ReservationStatus) error {
	for _, s := range allowedFrom[action] {
		if s == from {
			return nil
		}
	}
	return &TransitionError{From: from, Action: action}
}

package booking

import "handyhub/models"

// transitions is the fixed edge set of the booking status machine. The
// happy path is pending -> confirmed -> in-progress -> completed.
// Cancellation, rescheduling, no-show and dispute branch off the
// pre-service states; a rescheduled booking re-enters the flow via
// confirmation. Completed and cancelled accept no further transitions.
var transitions = map[string][]string{
	models.BookingPending: {
		models.BookingConfirmed,
		models.BookingCancelled,
		models.BookingRescheduled,
		models.BookingNoShow,
		models.BookingDisputed,
	},
	models.BookingConfirmed: {
		models.BookingInProgress,
		models.BookingCancelled,
		models.BookingRescheduled,
		models.BookingNoShow,
		models.BookingDisputed,
	},
	models.BookingInProgress: {
		models.BookingCompleted,
	},
	models.BookingRescheduled: {
		models.BookingConfirmed,
		models.BookingCancelled,
	},
	models.BookingNoShow:    {},
	models.BookingDisputed:  {},
	models.BookingCompleted: {},
	models.BookingCancelled: {},
}

// ValidStatus reports whether s is a member of the booking status enum.
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether the machine defines an edge from one
// status to another.
func CanTransition(from, to string) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves the given status.
func IsTerminal(s string) bool {
	targets, ok := transitions[s]
	return ok && len(targets) == 0
}

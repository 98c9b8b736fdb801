package booking

import (
	"testing"

	"handyhub/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{models.BookingPending, models.BookingConfirmed},
		{models.BookingPending, models.BookingCancelled},
		{models.BookingPending, models.BookingRescheduled},
		{models.BookingPending, models.BookingNoShow},
		{models.BookingPending, models.BookingDisputed},
		{models.BookingConfirmed, models.BookingInProgress},
		{models.BookingConfirmed, models.BookingCancelled},
		{models.BookingConfirmed, models.BookingRescheduled},
		{models.BookingConfirmed, models.BookingNoShow},
		{models.BookingConfirmed, models.BookingDisputed},
		{models.BookingInProgress, models.BookingCompleted},
		{models.BookingRescheduled, models.BookingConfirmed},
		{models.BookingRescheduled, models.BookingCancelled},
	}
	for _, e := range allowed {
		assert.True(t, CanTransition(e.from, e.to), "%s -> %s should be allowed", e.from, e.to)
	}

	denied := []struct{ from, to string }{
		{models.BookingPending, models.BookingInProgress},
		{models.BookingPending, models.BookingCompleted},
		{models.BookingConfirmed, models.BookingCompleted},
		{models.BookingInProgress, models.BookingCancelled},
		{models.BookingInProgress, models.BookingPending},
		{models.BookingCompleted, models.BookingPending},
		{models.BookingCompleted, models.BookingCancelled},
		{models.BookingCancelled, models.BookingConfirmed},
		{models.BookingNoShow, models.BookingConfirmed},
		{models.BookingDisputed, models.BookingCompleted},
		{models.BookingRescheduled, models.BookingInProgress},
	}
	for _, e := range denied {
		assert.False(t, CanTransition(e.from, e.to), "%s -> %s should be denied", e.from, e.to)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		models.BookingPending, models.BookingConfirmed, models.BookingInProgress,
		models.BookingCompleted, models.BookingCancelled, models.BookingRescheduled,
		models.BookingNoShow, models.BookingDisputed,
	} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus(""))
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []string{
		models.BookingCompleted, models.BookingCancelled,
		models.BookingNoShow, models.BookingDisputed,
	} {
		assert.True(t, IsTerminal(s), s)
	}
	for _, s := range []string{
		models.BookingPending, models.BookingConfirmed,
		models.BookingInProgress, models.BookingRescheduled,
	} {
		assert.False(t, IsTerminal(s), s)
	}
	assert.False(t, IsTerminal("archived"))
}

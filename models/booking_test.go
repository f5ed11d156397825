package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusPredicates(t *testing.T) {
	// every valid status is exactly one of active or terminal
	for _, s := range []string{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted} {
		assert.True(t, ValidBookingStatus(s), s)
		assert.NotEqual(t, ActiveStatus(s), TerminalStatus(s), s)
	}

	assert.True(t, ActiveStatus(BookingPending))
	assert.True(t, ActiveStatus(BookingConfirmed))
	assert.True(t, TerminalStatus(BookingCancelled))
	assert.True(t, TerminalStatus(BookingCompleted))

	assert.False(t, ValidBookingStatus("archived"))
	assert.False(t, ActiveStatus("archived"))
	assert.False(t, TerminalStatus("archived"))
}

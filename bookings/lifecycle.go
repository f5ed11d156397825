package bookings

import (
	"errors"
	"time"

	"orrery/models"
	"orrery/perms"
)

const dateLayout = "2006-01-02"

// Rejection reasons, mapped to HTTP status codes in the handlers. Every
// failed mutation reports one of these; nothing is silently swallowed.
var (
	ErrMissingFields    = errors.New("missing required booking fields")
	ErrInvalidGroupType = errors.New("invalid group type")
	ErrInvalidGroupSize = errors.New("group size must be at least 1")
	ErrNoInterests      = errors.New("at least one interest is required")
	ErrInvalidDate      = errors.New("date is not an open future night")
	ErrMemberOnly       = errors.New("member nights are reserved for members")
	ErrBookingsClosed   = errors.New("bookings are currently closed")
	ErrInvalidStatus    = errors.New("invalid booking status")
	ErrBadTransition    = errors.New("status transition not permitted")
	ErrDateTaken        = errors.New("date already has an active booking")
)

// validateCandidate re-checks every creation invariant at write time instead
// of trusting the earlier eligibility query.
func validateCandidate(b models.Booking, actor models.Actor, settings models.BookingSettings, open models.OpenNightSet, today string) error {
	if !settings.BookingsActive && !perms.Allowed(actor.Role, perms.BypassKillSwitch) {
		return ErrBookingsClosed
	}
	if b.GroupName == "" || b.GroupType == "" || b.Date == "" {
		return ErrMissingFields
	}
	if !models.ValidGroupType(b.GroupType) {
		return ErrInvalidGroupType
	}
	if b.GroupSize < 1 {
		return ErrInvalidGroupSize
	}
	if len(b.Interests) == 0 {
		return ErrNoInterests
	}
	if b.GroupType == models.GroupMember && !perms.Allowed(actor.Role, perms.BookMemberNight) {
		return ErrMemberOnly
	}
	return validateNight(b.Date, open, today)
}

func validateNight(date string, open models.OpenNightSet, today string) error {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return ErrInvalidDate
	}
	ref, err := time.Parse(dateLayout, today)
	if err != nil || !d.After(ref) {
		return ErrInvalidDate
	}
	for _, night := range open.OpenDates {
		if night == date {
			return nil
		}
	}
	return ErrInvalidDate
}

// canTransition encodes the state machine:
// pending -> confirmed -> completed, with cancellation from either
// non-terminal state. Terminal states accept nothing.
func canTransition(from, to string) bool {
	if models.TerminalStatus(from) {
		return false
	}
	switch from {
	case models.BookingPending:
		return to == models.BookingConfirmed || to == models.BookingCancelled
	case models.BookingConfirmed:
		return to == models.BookingCompleted || to == models.BookingCancelled
	}
	return false
}

// canConfirm reports whether host confirmation is still meaningful. A
// cancelled or completed booking takes no further confirmations.
func canConfirm(status string) bool {
	return !models.TerminalStatus(status)
}

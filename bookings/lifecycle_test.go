package bookings

import (
	"testing"

	"orrery/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOpen = models.OpenNightSet{OpenDates: []string{"2025-12-24", "2025-12-25"}}
var testSettings = models.BookingSettings{BookingsActive: true}

func candidate() models.Booking {
	return models.Booking{
		GroupName: "Astronomy 101",
		GroupType: models.GroupSchool,
		GroupSize: 8,
		Interests: []string{"Stars", "Moon"},
		Date:      "2025-12-24",
	}
}

func TestValidateCandidateAccepts(t *testing.T) {
	actor := models.Actor{ID: "u1", Role: models.RoleCustomer}
	require.NoError(t, validateCandidate(candidate(), actor, testSettings, testOpen, "2025-12-01"))
}

func TestValidateCandidateFieldChecks(t *testing.T) {
	actor := models.Actor{ID: "u1", Role: models.RoleCustomer}

	b := candidate()
	b.GroupName = ""
	assert.ErrorIs(t, validateCandidate(b, actor, testSettings, testOpen, "2025-12-01"), ErrMissingFields)

	b = candidate()
	b.GroupType = "Circus"
	assert.ErrorIs(t, validateCandidate(b, actor, testSettings, testOpen, "2025-12-01"), ErrInvalidGroupType)

	b = candidate()
	b.GroupSize = 0
	assert.ErrorIs(t, validateCandidate(b, actor, testSettings, testOpen, "2025-12-01"), ErrInvalidGroupSize)

	b = candidate()
	b.Interests = nil
	assert.ErrorIs(t, validateCandidate(b, actor, testSettings, testOpen, "2025-12-01"), ErrNoInterests)
}

func TestValidateCandidateDateChecks(t *testing.T) {
	actor := models.Actor{ID: "u1", Role: models.RoleCustomer}

	b := candidate()
	b.Date = "2025-12-26" // not an open night
	assert.ErrorIs(t, validateCandidate(b, actor, testSettings, testOpen, "2025-12-01"), ErrInvalidDate)

	b = candidate()
	assert.ErrorIs(t, validateCandidate(b, actor, testSettings, testOpen, "2025-12-24"), ErrInvalidDate,
		"booking for today must be rejected")
	assert.ErrorIs(t, validateCandidate(b, actor, testSettings, testOpen, "2025-12-25"), ErrInvalidDate,
		"booking in the past must be rejected")
}

func TestValidateCandidateMemberRule(t *testing.T) {
	b := candidate()
	b.GroupType = models.GroupMember

	assert.ErrorIs(t,
		validateCandidate(b, models.Actor{ID: "u1", Role: models.RoleCustomer}, testSettings, testOpen, "2025-12-01"),
		ErrMemberOnly)
	assert.NoError(t,
		validateCandidate(b, models.Actor{ID: "u1", Role: models.RoleMember}, testSettings, testOpen, "2025-12-01"))
	assert.NoError(t,
		validateCandidate(b, models.Actor{ID: "u1", Role: models.RoleLeader}, testSettings, testOpen, "2025-12-01"))
}

func TestValidateCandidateKillSwitch(t *testing.T) {
	closed := models.BookingSettings{BookingsActive: false}

	assert.ErrorIs(t,
		validateCandidate(candidate(), models.Actor{ID: "u1", Role: models.RoleCustomer}, closed, testOpen, "2025-12-01"),
		ErrBookingsClosed)

	// admins may book past the kill switch
	assert.NoError(t,
		validateCandidate(candidate(), models.Actor{ID: "a1", Role: models.RoleAdmin}, closed, testOpen, "2025-12-01"))
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{models.BookingPending, models.BookingConfirmed},
		{models.BookingPending, models.BookingCancelled},
		{models.BookingConfirmed, models.BookingCompleted},
		{models.BookingConfirmed, models.BookingCancelled},
	}
	for _, tr := range allowed {
		assert.True(t, canTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]string{
		{models.BookingPending, models.BookingCompleted},
		{models.BookingCancelled, models.BookingPending},
		{models.BookingCancelled, models.BookingConfirmed},
		{models.BookingCompleted, models.BookingCancelled},
		{models.BookingConfirmed, models.BookingPending},
	}
	for _, tr := range denied {
		assert.False(t, canTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}
}

func TestTerminalStatusesAdmitNothing(t *testing.T) {
	all := []string{
		models.BookingPending, models.BookingConfirmed,
		models.BookingCancelled, models.BookingCompleted,
	}
	for _, from := range all {
		if !models.TerminalStatus(from) {
			continue
		}
		for _, to := range all {
			assert.False(t, canTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanConfirm(t *testing.T) {
	assert.True(t, canConfirm(models.BookingPending))
	assert.True(t, canConfirm(models.BookingConfirmed))

	// a closed booking takes no further host confirmations
	assert.False(t, canConfirm(models.BookingCancelled))
	assert.False(t, canConfirm(models.BookingCompleted))
}

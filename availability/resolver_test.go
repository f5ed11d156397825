package availability

import (
	"testing"

	"orrery/models"

	"github.com/stretchr/testify/assert"
)

var bands = []models.StaffingRequirement{
	{GroupMin: 1, GroupMax: 10, LeadHosts: 1, Hosts: 2},
	{GroupMin: 11, GroupMax: 20, LeadHosts: 2, Hosts: 3},
}

func TestMemberIgnoresBands(t *testing.T) {
	open := []string{"2025-12-24", "2025-12-25", "2025-12-26"}
	bookings := []models.Booking{
		{Date: "2025-12-25", Status: models.BookingConfirmed},
	}

	// Member bookings never consult the bands, even for sizes no band covers.
	got := EligibleDates(models.GroupMember, 99, open, bands, bookings, "2025-12-01")
	assert.Equal(t, []string{"2025-12-24", "2025-12-26"}, got)

	// identical with an empty requirement list
	got = EligibleDates(models.GroupMember, 99, open, nil, bookings, "2025-12-01")
	assert.Equal(t, []string{"2025-12-24", "2025-12-26"}, got)
}

func TestBandMatching(t *testing.T) {
	open := []string{"2025-12-24"}

	assert.Equal(t, []string{"2025-12-24"},
		EligibleDates(models.GroupSchool, 15, open, bands, nil, "2025-12-01"))

	// size outside every band yields nothing
	assert.Empty(t,
		EligibleDates(models.GroupSchool, 25, open, bands, nil, "2025-12-01"))
}

func TestFirstMatchWinsOnOverlap(t *testing.T) {
	overlapping := []models.StaffingRequirement{
		{GroupMin: 1, GroupMax: 20, LeadHosts: 1, Hosts: 1},
		{GroupMin: 10, GroupMax: 30, LeadHosts: 2, Hosts: 4},
	}
	row := matchBand(overlapping, 15)
	assert.NotNil(t, row)
	assert.Equal(t, 1, row.LeadHosts)
}

func TestPastAndTodayExcluded(t *testing.T) {
	open := []string{"2025-11-30", "2025-12-01", "2025-12-02"}

	got := EligibleDates(models.GroupFamily, 4, open, bands, nil, "2025-12-01")
	assert.Equal(t, []string{"2025-12-02"}, got)
}

func TestBookingConsumesDate(t *testing.T) {
	open := []string{"2025-12-24", "2025-12-25"}

	for _, status := range []string{models.BookingPending, models.BookingConfirmed} {
		bookings := []models.Booking{{Date: "2025-12-24", Status: status}}
		got := EligibleDates(models.GroupClub, 5, open, bands, bookings, "2025-12-01")
		assert.Equal(t, []string{"2025-12-25"}, got, "status %s should consume the date", status)
	}

	for _, status := range []string{models.BookingCancelled, models.BookingCompleted} {
		bookings := []models.Booking{{Date: "2025-12-24", Status: status}}
		got := EligibleDates(models.GroupClub, 5, open, bands, bookings, "2025-12-01")
		assert.Equal(t, []string{"2025-12-24", "2025-12-25"}, got, "status %s should release the date", status)
	}
}

func TestInvalidInputsDegradeToEmpty(t *testing.T) {
	open := []string{"2025-12-24"}

	assert.Empty(t, EligibleDates(models.GroupSchool, 0, open, bands, nil, "2025-12-01"))
	assert.Empty(t, EligibleDates("Circus", 5, open, bands, nil, "2025-12-01"))
	assert.Empty(t, EligibleDates(models.GroupSchool, 5, open, bands, nil, "not-a-date"))

	// malformed open nights are skipped, not fatal
	got := EligibleDates(models.GroupSchool, 5, []string{"garbage", "2025-12-24"}, bands, nil, "2025-12-01")
	assert.Equal(t, []string{"2025-12-24"}, got)
}

func TestEndToEndScenario(t *testing.T) {
	open := []string{"2025-12-24", "2025-12-25"}
	reqs := []models.StaffingRequirement{{GroupMin: 1, GroupMax: 10, LeadHosts: 1, Hosts: 2}}

	got := EligibleDates(models.GroupSchool, 8, open, reqs, nil, "2025-12-01")
	assert.Equal(t, []string{"2025-12-24", "2025-12-25"}, got)

	// a pending booking on the 24th leaves only the 25th
	bookings := []models.Booking{{Date: "2025-12-24", Status: models.BookingPending}}
	got = EligibleDates(models.GroupSchool, 8, open, reqs, bookings, "2025-12-01")
	assert.Equal(t, []string{"2025-12-25"}, got)

	// cancelling it restores the 24th
	bookings[0].Status = models.BookingCancelled
	got = EligibleDates(models.GroupSchool, 8, open, reqs, bookings, "2025-12-01")
	assert.Equal(t, []string{"2025-12-24", "2025-12-25"}, got)
}

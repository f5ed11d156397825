// Package availability decides which open nights may legally be offered to a
// candidate group. It is pure: callers pass in the stores' current contents
// and the reference date.
package availability

import (
	"sort"
	"time"

	"orrery/models"
)

const dateLayout = "2006-01-02"

// EligibleDates returns the open nights a group of the given type and size
// may book, given every existing booking and the configured staffing bands.
//
// Rules:
//   - a night with a pending or confirmed booking is consumed, whatever the
//     group type (one booking per night);
//   - nights on or before today are never offered;
//   - Member groups skip the staffing bands entirely (self-hosted);
//   - other groups need a staffing band covering their size, selected
//     first-match in list order; no band means no dates.
//
// Invalid inputs degrade to an empty result rather than an error so calendar
// rendering always gets a well-formed answer.
func EligibleDates(groupType string, groupSize int, openNights []string, requirements []models.StaffingRequirement, bookings []models.Booking, today string) []string {
	if groupSize < 1 || !models.ValidGroupType(groupType) {
		return []string{}
	}
	ref, err := time.Parse(dateLayout, today)
	if err != nil {
		return []string{}
	}

	if groupType != models.GroupMember && matchBand(requirements, groupSize) == nil {
		return []string{}
	}

	unavailable := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		if models.ActiveStatus(b.Status) {
			unavailable[b.Date] = true
		}
	}

	eligible := make([]string, 0, len(openNights))
	seen := make(map[string]bool, len(openNights))
	for _, night := range openNights {
		if seen[night] || unavailable[night] {
			continue
		}
		d, err := time.Parse(dateLayout, night)
		if err != nil || !d.After(ref) {
			continue
		}
		seen[night] = true
		eligible = append(eligible, night)
	}
	sort.Strings(eligible)
	return eligible
}

// matchBand returns the first requirement row covering size, or nil. Admin
// data should not overlap, but when it does the first row wins.
func matchBand(requirements []models.StaffingRequirement, size int) *models.StaffingRequirement {
	for i := range requirements {
		if size >= requirements[i].GroupMin && size <= requirements[i].GroupMax {
			return &requirements[i]
		}
	}
	return nil
}

// Package perms is the single place roles are compared to actions. Handlers
// ask Allowed instead of matching role strings at each call site.
package perms

import "orrery/models"

type Action int

const (
	ConfirmBooking Action = iota
	SetBookingStatus
	BookMemberNight
	ListAllBookings
	ManageAvailability
	ManageUsers
	BypassKillSwitch
)

var allow = map[Action]map[string]bool{
	ConfirmBooking: {
		models.RoleMember: true,
		models.RoleLeader: true,
		models.RoleAdmin:  true,
	},
	BookMemberNight: {
		models.RoleMember: true,
		models.RoleLeader: true,
		models.RoleAdmin:  true,
	},
	SetBookingStatus:   {models.RoleAdmin: true},
	ListAllBookings:    {models.RoleAdmin: true},
	ManageAvailability: {models.RoleAdmin: true},
	ManageUsers:        {models.RoleAdmin: true},
	BypassKillSwitch:   {models.RoleAdmin: true},
}

// Allowed reports whether a role may perform an action.
func Allowed(role string, action Action) bool {
	return allow[action][role]
}

// CanDeleteBooking: the owner or any admin may remove a booking.
func CanDeleteBooking(actor models.Actor, b models.Booking) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	return actor.ID != "" && actor.ID == b.UserID
}

// CanViewBooking: the owner, a confirming host, or any admin.
func CanViewBooking(actor models.Actor, b models.Booking) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	if actor.ID == "" {
		return false
	}
	if actor.ID == b.UserID {
		return true
	}
	for _, id := range b.Confirmed {
		if id == actor.ID {
			return true
		}
	}
	return false
}

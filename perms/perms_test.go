package perms

import (
	"testing"

	"orrery/models"

	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed(models.RoleMember, ConfirmBooking))
	assert.True(t, Allowed(models.RoleLeader, ConfirmBooking))
	assert.True(t, Allowed(models.RoleAdmin, ConfirmBooking))
	assert.False(t, Allowed(models.RoleCustomer, ConfirmBooking))
	assert.False(t, Allowed(models.RoleGuest, ConfirmBooking))

	assert.True(t, Allowed(models.RoleAdmin, ManageAvailability))
	assert.False(t, Allowed(models.RoleLeader, ManageAvailability))

	assert.True(t, Allowed(models.RoleAdmin, BypassKillSwitch))
	assert.False(t, Allowed(models.RoleMember, BypassKillSwitch))

	// unknown roles get nothing
	assert.False(t, Allowed("superuser", ManageUsers))
}

func TestCanDeleteBooking(t *testing.T) {
	b := models.Booking{ID: "b1", UserID: "u1"}

	assert.True(t, CanDeleteBooking(models.Actor{ID: "u1", Role: models.RoleCustomer}, b))
	assert.True(t, CanDeleteBooking(models.Actor{ID: "u9", Role: models.RoleAdmin}, b))
	assert.False(t, CanDeleteBooking(models.Actor{ID: "u2", Role: models.RoleMember}, b))
	assert.False(t, CanDeleteBooking(models.Actor{Role: models.RoleGuest}, b))
}

func TestCanViewBooking(t *testing.T) {
	b := models.Booking{ID: "b1", UserID: "u1", Confirmed: []string{"h1", "h2"}}

	assert.True(t, CanViewBooking(models.Actor{ID: "u1", Role: models.RoleCustomer}, b))
	assert.True(t, CanViewBooking(models.Actor{ID: "h2", Role: models.RoleMember}, b))
	assert.True(t, CanViewBooking(models.Actor{ID: "x", Role: models.RoleAdmin}, b))
	assert.False(t, CanViewBooking(models.Actor{ID: "u3", Role: models.RoleMember}, b))

	// guest booking with empty userId must not match empty actor IDs
	guest := models.Booking{ID: "b2"}
	assert.False(t, CanViewBooking(models.Actor{Role: models.RoleGuest}, guest))
}

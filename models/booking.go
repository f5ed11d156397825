package models

import "time"

// Booking statuses. Cancelled and completed are terminal.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Group types offered on the booking form. "Member" is reserved for
// member/leader/admin submitters.
const (
	GroupFamily   = "Family"
	GroupSchool   = "School"
	GroupClub     = "Club"
	GroupBusiness = "Business"
	GroupMember   = "Member"
	GroupOther    = "Other"
)

type Booking struct {
	ID        string   `json:"id" bson:"id"`
	UserID    string   `json:"userId,omitempty" bson:"userId,omitempty"`
	Role      string   `json:"role" bson:"role"`
	GroupName string   `json:"groupName" bson:"groupName"`
	GroupType string   `json:"groupType" bson:"groupType"`
	GroupSize int      `json:"groupSize" bson:"groupSize"`
	Interests []string `json:"interests" bson:"interests"`
	OtherInfo string   `json:"otherInfo,omitempty" bson:"otherInfo,omitempty"`
	Date      string   `json:"date" bson:"date"` // YYYY-MM-DD
	Status    string   `json:"status" bson:"status"`
	// Confirmed holds the user IDs of hosts who have affirmed availability.
	Confirmed []string `json:"confirmed" bson:"confirmed"`
	// Active mirrors Status being pending or confirmed. It backs the partial
	// unique index on (date, active) that prevents double-booking a night.
	Active    bool      `json:"-" bson:"active"`
	CreatedAt time.Time `json:"created" bson:"created"`
}

func ValidGroupType(t string) bool {
	switch t {
	case GroupFamily, GroupSchool, GroupClub, GroupBusiness, GroupMember, GroupOther:
		return true
	}
	return false
}

func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// TerminalStatus reports whether no further transitions are permitted.
func TerminalStatus(s string) bool {
	return s == BookingCancelled || s == BookingCompleted
}

// ActiveStatus reports whether a booking consumes its date.
func ActiveStatus(s string) bool {
	return s == BookingPending || s == BookingConfirmed
}

package models

import "time"

// Settings documents live in one collection, distinguished by key.
const (
	SettingsKeyOpenNights      = "openNights"
	SettingsKeyBookingSettings = "bookingSettings"
)

// OpenNightSet is the administrator-maintained list of calendar dates the
// observatory is open for hosting. It is replaced wholesale on save.
type OpenNightSet struct {
	Key       string   `json:"-" bson:"key"`
	OpenDates []string `json:"openDates" bson:"openDates"`
}

// StaffingRequirement maps an inclusive group-size range to the staffing a
// night needs. The list is ordered; the resolver uses the first matching row.
type StaffingRequirement struct {
	GroupMin  int `json:"groupMin" bson:"groupMin"`
	GroupMax  int `json:"groupMax" bson:"groupMax"`
	LeadHosts int `json:"leadHosts" bson:"leadHosts"`
	Hosts     int `json:"hosts" bson:"hosts"`
}

// BookingSettings is a singleton: the global kill switch plus the ordered
// staffing requirement bands.
type BookingSettings struct {
	Key            string                `json:"-" bson:"key"`
	BookingsActive bool                  `json:"bookingsActive" bson:"bookingsActive"`
	Requirements   []StaffingRequirement `json:"requirements" bson:"requirements"`
}

// HostingAvailability is a member's declaration of which open nights they are
// personally willing to host, one document per user, overwritten on save.
type HostingAvailability struct {
	UserID         string    `json:"userId" bson:"userId"`
	Dates          []string  `json:"dates" bson:"dates"`
	FrequencyWeek  int       `json:"frequencyWeek" bson:"frequencyWeek"`
	FrequencyMonth int       `json:"frequencyMonth" bson:"frequencyMonth"`
	Updated        time.Time `json:"updated" bson:"updated"`
}

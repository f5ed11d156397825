// Package settings owns the availability configuration: the open-night set
// and the booking-settings singleton (kill switch + staffing bands).
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"orrery/db"
	"orrery/middleware"
	"orrery/models"
	"orrery/perms"
	"orrery/rdx"
	"orrery/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const dateLayout = "2006-01-02"

// The open-night set is read on every calendar render and booking attempt,
// so it is cached in redis. Writes invalidate the key; the TTL bounds
// staleness if an invalidation is lost.
const (
	openNightsCacheKey = "settings:openNights"
	openNightsCacheTTL = 10 * time.Minute
)

// LoadOpenNights returns the open-night set, empty when never saved.
func LoadOpenNights(ctx context.Context) (models.OpenNightSet, error) {
	if cached, err := rdx.RdxGet(openNightsCacheKey); err == nil {
		var set models.OpenNightSet
		if json.Unmarshal([]byte(cached), &set) == nil {
			return set, nil
		}
	}

	var set models.OpenNightSet
	err := db.SettingsCollection.FindOne(ctx, bson.M{"key": models.SettingsKeyOpenNights}).Decode(&set)
	if errors.Is(err, mongo.ErrNoDocuments) {
		set = models.OpenNightSet{Key: models.SettingsKeyOpenNights, OpenDates: []string{}}
	} else if err != nil {
		return set, err
	}
	if set.OpenDates == nil {
		set.OpenDates = []string{}
	}

	if buf, err := json.Marshal(set); err == nil {
		if err := rdx.SetWithExpiry(openNightsCacheKey, string(buf), openNightsCacheTTL); err != nil {
			log.Printf("open-nights cache write failed: %v", err)
		}
	}
	return set, nil
}

// LoadBookingSettings returns the singleton, defaulting to bookings-active
// with no bands when never saved.
func LoadBookingSettings(ctx context.Context) (models.BookingSettings, error) {
	var cfg models.BookingSettings
	err := db.SettingsCollection.FindOne(ctx, bson.M{"key": models.SettingsKeyBookingSettings}).Decode(&cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.BookingSettings{
			Key:            models.SettingsKeyBookingSettings,
			BookingsActive: true,
			Requirements:   []models.StaffingRequirement{},
		}, nil
	}
	return cfg, err
}

// ValidateRequirements rejects malformed or overlapping staffing bands.
// Overlaps would make the resolver's first-match rule order-dependent, so
// they are refused at save time.
func ValidateRequirements(reqs []models.StaffingRequirement) error {
	for i, r := range reqs {
		if r.GroupMin < 1 {
			return fmt.Errorf("band %d: groupMin must be at least 1", i+1)
		}
		if r.GroupMin >= r.GroupMax {
			return fmt.Errorf("band %d: groupMin must be below groupMax", i+1)
		}
		if r.LeadHosts < 0 || r.Hosts < 0 {
			return fmt.Errorf("band %d: host counts cannot be negative", i+1)
		}
		for j := 0; j < i; j++ {
			if r.GroupMin <= reqs[j].GroupMax && reqs[j].GroupMin <= r.GroupMax {
				return fmt.Errorf("band %d overlaps band %d", i+1, j+1)
			}
		}
	}
	return nil
}

func validDates(dates []string) error {
	for _, d := range dates {
		if _, err := time.Parse(dateLayout, d); err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD", d)
		}
	}
	return nil
}

// GetOpenNights is public; the booking calendar needs it before sign-in.
func GetOpenNights(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	set, err := LoadOpenNights(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"openDates": set.OpenDates})
}

// ReplaceOpenNights swaps the whole set. Admin only; no per-date history.
func ReplaceOpenNights(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor := middleware.ActorFrom(r)
	if !perms.Allowed(actor.Role, perms.ManageAvailability) {
		utils.RespondWithError(w, http.StatusForbidden, "forbidden")
		return
	}

	var body struct {
		OpenDates []string `json:"openDates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validDates(body.OpenDates); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.OpenDates == nil {
		body.OpenDates = []string{}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	_, err := db.SettingsCollection.UpdateOne(ctx,
		bson.M{"key": models.SettingsKeyOpenNights},
		bson.M{"$set": bson.M{"openDates": body.OpenDates}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if err := rdx.RdxDel(openNightsCacheKey); err != nil {
		log.Printf("open-nights cache invalidation failed: %v", err)
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

func GetBookingSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	cfg, err := LoadBookingSettings(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cfg)
}

// ReplaceBookingSettings overwrites the singleton. Admin only.
func ReplaceBookingSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor := middleware.ActorFrom(r)
	if !perms.Allowed(actor.Role, perms.ManageAvailability) {
		utils.RespondWithError(w, http.StatusForbidden, "forbidden")
		return
	}

	var cfg models.BookingSettings
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := ValidateRequirements(cfg.Requirements); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if cfg.Requirements == nil {
		cfg.Requirements = []models.StaffingRequirement{}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	_, err := db.SettingsCollection.UpdateOne(ctx,
		bson.M{"key": models.SettingsKeyBookingSettings},
		bson.M{"$set": bson.M{
			"bookingsActive": cfg.BookingsActive,
			"requirements":   cfg.Requirements,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// Package hosting stores each member's declaration of which open nights they
// can host and how often they want to.
package hosting

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"orrery/db"
	"orrery/middleware"
	"orrery/models"
	"orrery/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetAvailability returns the caller's own declaration, empty if never saved.
func GetAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor := middleware.ActorFrom(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	var ha models.HostingAvailability
	err := db.HostingCollection.FindOne(ctx, bson.M{"userId": actor.ID}).Decode(&ha)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithJSON(w, http.StatusOK, models.HostingAvailability{UserID: actor.ID, Dates: []string{}})
		return
	}
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ha)
}

// PutAvailability overwrites the caller's declaration wholesale.
func PutAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor := middleware.ActorFrom(r)

	var body struct {
		Dates          []string `json:"dates"`
		FrequencyWeek  int      `json:"frequencyWeek"`
		FrequencyMonth int      `json:"frequencyMonth"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if body.FrequencyWeek < 1 || body.FrequencyMonth < 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "frequencies must be at least 1")
		return
	}
	if body.Dates == nil {
		body.Dates = []string{}
	}

	ha := models.HostingAvailability{
		UserID:         actor.ID,
		Dates:          body.Dates,
		FrequencyWeek:  body.FrequencyWeek,
		FrequencyMonth: body.FrequencyMonth,
		Updated:        time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	_, err := db.HostingCollection.ReplaceOne(ctx,
		bson.M{"userId": actor.ID}, ha, options.Replace().SetUpsert(true))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

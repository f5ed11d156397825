package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"orrery/availability"
	"orrery/db"
	"orrery/middleware"
	"orrery/models"
	"orrery/mq"
	"orrery/perms"
	"orrery/settings"
	"orrery/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func today() string {
	return time.Now().Format(dateLayout)
}

func rejectCode(err error) int {
	switch {
	case errors.Is(err, ErrBookingsClosed), errors.Is(err, ErrMemberOnly):
		return http.StatusForbidden
	case errors.Is(err, ErrDateTaken), errors.Is(err, ErrBadTransition):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// GetAvailableDates resolves the nights a candidate group may book.
// Public: the calendar renders for signed-out visitors too.
func GetAvailableDates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	groupType := r.URL.Query().Get("groupType")
	groupSize, err := strconv.Atoi(r.URL.Query().Get("groupSize"))
	if err != nil || groupSize < 1 || groupType == "" {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"dates": []string{}})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	open, err := settings.LoadOpenNights(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	cfg, err := settings.LoadBookingSettings(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	cur, err := db.BookingsCollection.Find(ctx, bson.M{})
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)
	var all []models.Booking
	if err := cur.All(ctx, &all); err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	dates := availability.EligibleDates(groupType, groupSize, open.OpenDates, cfg.Requirements, all, today())
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"dates": dates})
}

// CreateBooking persists a new pending booking after re-validating every
// invariant at write time. Guests may book; their bookings carry no userId.
func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload struct {
		GroupName string   `json:"groupName"`
		GroupType string   `json:"groupType"`
		GroupSize int      `json:"groupSize"`
		Interests []string `json:"interests"`
		OtherInfo string   `json:"otherInfo"`
		Date      string   `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	actor := middleware.ActorFrom(r)
	b := models.Booking{
		ID:        uuid.NewString(),
		UserID:    actor.ID,
		Role:      actor.Role,
		GroupName: payload.GroupName,
		GroupType: payload.GroupType,
		GroupSize: payload.GroupSize,
		Interests: payload.Interests,
		OtherInfo: payload.OtherInfo,
		Date:      payload.Date,
		Status:    models.BookingPending,
		Confirmed: []string{},
		Active:    true,
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cfg, err := settings.LoadBookingSettings(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	open, err := settings.LoadOpenNights(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	if err := validateCandidate(b, actor, cfg, open, today()); err != nil {
		utils.RespondWithError(w, rejectCode(err), err.Error())
		return
	}

	// The partial unique index on (date, active) is the real guard; this
	// count just gives a clean rejection on the common path.
	taken, err := db.BookingsCollection.CountDocuments(ctx, bson.M{"date": b.Date, "active": true})
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if taken > 0 {
		utils.RespondWithError(w, rejectCode(ErrDateTaken), ErrDateTaken.Error())
		return
	}

	if _, err := db.BookingsCollection.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, rejectCode(ErrDateTaken), ErrDateTaken.Error())
			return
		}
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	mq.EmitBookingEvent(ctx, "booking-created", b)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"booking": b})
}

// ListBookings returns every booking for admins, and only owned or
// host-confirmed bookings for everyone else.
func ListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor := middleware.ActorFrom(r)

	filter := bson.M{}
	if !perms.Allowed(actor.Role, perms.ListAllBookings) {
		filter = bson.M{"$or": []bson.M{
			{"userId": actor.ID},
			{"confirmed": actor.ID},
		}}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	cur, err := db.BookingsCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookings": bookings})
}

func GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := middleware.ActorFrom(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	var b models.Booking
	if err := db.BookingsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&b); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "booking not found")
		return
	}
	if !perms.CanViewBooking(actor, b) {
		utils.RespondWithError(w, http.StatusForbidden, "forbidden")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"booking": b})
}

// ConfirmBooking records the acting host on the booking. Confirming twice is
// a no-op; status is not touched here. Cancelled and completed bookings take
// no further confirmations.
func ConfirmBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := middleware.ActorFrom(r)
	if !perms.Allowed(actor.Role, perms.ConfirmBooking) {
		utils.RespondWithError(w, http.StatusForbidden, "forbidden")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	var current models.Booking
	if err := db.BookingsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&current); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "booking not found")
		return
	}
	if !canConfirm(current.Status) {
		utils.RespondWithError(w, http.StatusConflict, "booking is closed")
		return
	}

	res := db.BookingsCollection.FindOneAndUpdate(ctx,
		bson.M{"id": current.ID, "active": true},
		bson.M{"$addToSet": bson.M{"confirmed": actor.ID}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Booking
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusConflict, "booking is closed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"booking": updated})
}

// UpdateBookingStatus moves a booking through the state machine. Admin only.
func UpdateBookingStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := middleware.ActorFrom(r)
	if !perms.Allowed(actor.Role, perms.SetBookingStatus) {
		utils.RespondWithError(w, http.StatusForbidden, "forbidden")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if !models.ValidBookingStatus(body.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, ErrInvalidStatus.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var current models.Booking
	if err := db.BookingsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&current); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "booking not found")
		return
	}
	if !canTransition(current.Status, body.Status) {
		utils.RespondWithError(w, rejectCode(ErrBadTransition), ErrBadTransition.Error())
		return
	}

	// filter on the observed status so a concurrent transition loses cleanly
	res := db.BookingsCollection.FindOneAndUpdate(ctx,
		bson.M{"id": current.ID, "status": current.Status},
		bson.M{"$set": bson.M{
			"status": body.Status,
			"active": models.ActiveStatus(body.Status),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Booking
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusConflict, "booking changed, re-query and retry")
		return
	}

	mq.EmitBookingEvent(ctx, "booking-status-changed", updated)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"booking": updated})
}

// DeleteBooking is a hard delete, permitted to the owner and admins.
func DeleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := middleware.ActorFrom(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	var b models.Booking
	if err := db.BookingsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&b); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "booking not found")
		return
	}
	if !perms.CanDeleteBooking(actor, b) {
		utils.RespondWithError(w, http.StatusForbidden, "forbidden")
		return
	}

	if _, err := db.BookingsCollection.DeleteOne(ctx, bson.M{"id": b.ID}); err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	mq.EmitBookingEvent(ctx, "booking-deleted", b)
	log.Printf("booking %s deleted by %s", b.ID, actor.ID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

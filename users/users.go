// Package users is the account administration surface: listing, profile
// reads/updates, role and status changes.
package users

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"orrery/db"
	"orrery/middleware"
	"orrery/models"
	"orrery/perms"
	"orrery/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var emailFormat = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ListUsers returns all accounts, optionally filtered by role. Admin only.
func ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor := middleware.ActorFrom(r)
	if !perms.Allowed(actor.Role, perms.ManageUsers) {
		utils.RespondWithError(w, http.StatusForbidden, "forbidden")
		return
	}

	filter := bson.M{}
	if role := r.URL.Query().Get("role"); role != "" {
		filter["role"] = role
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	cur, err := db.UserCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created", Value: 1}}))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"users": users, "count": len(users)})
}

// GetUser returns one account. Non-admins may only read their own.
func GetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := middleware.ActorFrom(r)
	id := ps.ByName("id")

	if !perms.Allowed(actor.Role, perms.ManageUsers) && actor.ID != id {
		utils.RespondWithError(w, http.StatusForbidden, "can only access own profile")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": id}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "user not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"user": user})
}

// UpdateUser edits name/email, and role for admins. Non-admins may neither
// touch other profiles nor change role or status.
func UpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := middleware.ActorFrom(r)
	id := ps.ByName("id")
	isAdmin := perms.Allowed(actor.Role, perms.ManageUsers)

	if !isAdmin && actor.ID != id {
		utils.RespondWithError(w, http.StatusForbidden, "can only update own profile")
		return
	}

	var body struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Role   string `json:"role"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if !isAdmin && (body.Role != "" || body.Status != "") {
		utils.RespondWithError(w, http.StatusForbidden, "cannot change role or status")
		return
	}

	set := bson.M{"updated": time.Now()}
	if body.Name != "" {
		set["name"] = body.Name
	}
	if body.Email != "" {
		if !emailFormat.MatchString(body.Email) {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid email format")
			return
		}
		set["email"] = body.Email
	}
	if body.Role != "" {
		if !models.ValidRole(body.Role) {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid role")
			return
		}
		set["role"] = body.Role
	}
	if body.Status != "" {
		if !models.ValidUserStatus(body.Status) {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid status")
			return
		}
		set["status"] = body.Status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	res := db.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"userid": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.User
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "user not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"user": updated})
}

// UpdateUserStatus flips an account between active/inactive/suspended.
// Admin only; an admin cannot deactivate their own account.
func UpdateUserStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := middleware.ActorFrom(r)
	id := ps.ByName("id")

	if !perms.Allowed(actor.Role, perms.ManageUsers) {
		utils.RespondWithError(w, http.StatusForbidden, "forbidden")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "status is required")
		return
	}
	if !models.ValidUserStatus(body.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid status, must be active, inactive or suspended")
		return
	}
	if actor.ID == id && body.Status != models.StatusActive {
		utils.RespondWithError(w, http.StatusBadRequest, "cannot deactivate your own account")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	res := db.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"userid": id},
		bson.M{"$set": bson.M{"status": body.Status, "updated": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.User
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "user not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"user": updated})
}

// DeleteUser removes an account. Admin only.
func DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := middleware.ActorFrom(r)
	id := ps.ByName("id")

	if !perms.Allowed(actor.Role, perms.ManageUsers) {
		utils.RespondWithError(w, http.StatusForbidden, "forbidden")
		return
	}
	if actor.ID == id {
		utils.RespondWithError(w, http.StatusBadRequest, "cannot delete your own account")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	res, err := db.UserCollection.DeleteOne(ctx, bson.M{"userid": id})
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "user not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	cache "glassfin-server/src/db"
	db "glassfin-server/src/db/sql"
	"glassfin-server/src/models"
	"glassfin-server/src/util"

	"github.com/jackc/pgx/v5/pgxpool"
)

func GetCurrentUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := db.GetUserByID(r.Context(), pool, userIDFrom(r))
		if err != nil {
			handleStoreError(w, err, "user")
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func GetUserProfile(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := db.GetProfileStats(r.Context(), pool, userIDFrom(r))
		if err != nil {
			handleStoreError(w, err, "user")
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

func UpdateCurrentUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		var req models.UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if req.Email != nil {
			normalized := strings.ToLower(strings.TrimSpace(*req.Email))
			if !util.ValidateEmail(normalized) {
				http.Error(w, "invalid email format", http.StatusBadRequest)
				return
			}
			taken, err := db.EmailTaken(r.Context(), pool, normalized, userID)
			if err != nil {
				log.Printf("ERROR: Email conflict check failed: %v", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if taken {
				http.Error(w, "email already registered", http.StatusConflict)
				return
			}
			req.Email = &normalized
		}

		user, err := db.UpdateUser(r.Context(), pool, userID, req)
		if err != nil {
			handleStoreError(w, err, "user")
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func DeleteCurrentUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		if err := db.DeactivateUser(r.Context(), pool, userID); err != nil {
			handleStoreError(w, err, "user")
			return
		}

		cache.ClearUserSummaryCaches(userID)
		log.Printf("INFO: Deactivated user %d", userID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "account deactivated"})
	}
}

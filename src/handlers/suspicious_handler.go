package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	cache "glassfin-server/src/db"
	db "glassfin-server/src/db/sql"
	"glassfin-server/src/email"
	"glassfin-server/src/models"
	"glassfin-server/src/summary"
	"glassfin-server/src/util"

	"github.com/jackc/pgx/v5/pgxpool"
)

func GetSuspiciousCharges(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		if status != "" && !util.ValidateChargeStatus(status) {
			http.Error(w, "invalid status filter", http.StatusBadRequest)
			return
		}

		charges, err := db.GetAllSuspiciousCharges(r.Context(), pool, userIDFrom(r), status)
		if err != nil {
			handleStoreError(w, err, "suspicious charges")
			return
		}
		writeJSON(w, http.StatusOK, charges)
	}
}

func GetSuspiciousChargeSummary(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		cacheKey := cache.SummaryCacheKey("suspicious", userID)
		if cached, found := cache.GetSummaryCache(cacheKey); found {
			writeJSON(w, http.StatusOK, cached)
			return
		}

		charges, err := db.GetAllSuspiciousCharges(r.Context(), pool, userID, "")
		if err != nil {
			handleStoreError(w, err, "suspicious charges")
			return
		}

		s := summary.SuspiciousCharges(charges)
		cache.SetSummaryCache(cacheKey, s)
		writeJSON(w, http.StatusOK, s)
	}
}

func GetSuspiciousCharge(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chargeID, err := idParam(r, "charge_id")
		if err != nil {
			http.Error(w, "invalid charge id", http.StatusBadRequest)
			return
		}

		charge, err := db.GetSuspiciousChargeByID(r.Context(), pool, userIDFrom(r), chargeID)
		if err != nil {
			handleStoreError(w, err, "suspicious charge")
			return
		}
		writeJSON(w, http.StatusOK, charge)
	}
}

// CreateSuspiciousCharge records a flagged charge and notifies the user
// by email if they have email notifications enabled.
func CreateSuspiciousCharge(pool *pgxpool.Pool, mailer *email.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		var charge models.SuspiciousCharge
		if err := json.NewDecoder(r.Body).Decode(&charge); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if charge.MerchantName == "" || charge.SuspicionType == "" || charge.Reason == "" {
			http.Error(w, "merchant_name, suspicion_type, and reason are required", http.StatusBadRequest)
			return
		}
		if charge.ConfidenceScore < 0 || charge.ConfidenceScore > 1 {
			http.Error(w, "confidence_score must be between 0 and 1", http.StatusBadRequest)
			return
		}

		charge.UserID = userID
		charge.Status = models.ChargeStatusPending
		if charge.Currency == "" {
			charge.Currency = "MXN"
		}
		if charge.ChargeDate.IsZero() {
			charge.ChargeDate = time.Now()
		}

		created, err := db.CreateSuspiciousCharge(r.Context(), pool, &charge)
		if err != nil {
			log.Printf("ERROR: Failed to create suspicious charge for user %d: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if user, err := db.GetUserByID(r.Context(), pool, userID); err == nil && user.EmailNotifications {
			title := fmt.Sprintf("Cargo sospechoso: %s", created.MerchantName)
			message := fmt.Sprintf("Detectamos un cargo de %.2f %s en %s. %s",
				created.Amount, created.Currency, created.MerchantName, created.Reason)
			if mailer.SendAlertEmail(r.Context(), user.Email, user.FullName, title, message) {
				if err := db.MarkSuspiciousChargeAlertSent(r.Context(), pool, created.ID); err != nil {
					log.Printf("ERROR: Failed to mark alert sent for charge %d: %v", created.ID, err)
				}
			}
		}

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusCreated, created)
	}
}

// ResolveSuspiciousCharge records the user's verdict on a flagged charge.
func ResolveSuspiciousCharge(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		chargeID, err := idParam(r, "charge_id")
		if err != nil {
			http.Error(w, "invalid charge id", http.StatusBadRequest)
			return
		}

		var req models.ResolveSuspiciousChargeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if !util.ValidateChargeStatus(req.Status) {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}

		charge, err := db.ResolveSuspiciousCharge(r.Context(), pool, userID, chargeID, req)
		if err != nil {
			handleStoreError(w, err, "suspicious charge")
			return
		}

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusOK, charge)
	}
}

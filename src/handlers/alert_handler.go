package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	cache "glassfin-server/src/db"
	db "glassfin-server/src/db/sql"
	"glassfin-server/src/models"
	"glassfin-server/src/summary"
	"glassfin-server/src/util"

	"github.com/jackc/pgx/v5/pgxpool"
)

func GetAlerts(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		unreadOnly := q.Get("unread_only") == "true"
		category := q.Get("category")

		alerts, err := db.GetAllAlerts(r.Context(), pool, userIDFrom(r), unreadOnly, category)
		if err != nil {
			handleStoreError(w, err, "alerts")
			return
		}
		writeJSON(w, http.StatusOK, alerts)
	}
}

func GetAlertSummary(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		cacheKey := cache.SummaryCacheKey("alerts", userID)
		if cached, found := cache.GetSummaryCache(cacheKey); found {
			writeJSON(w, http.StatusOK, cached)
			return
		}

		alerts, err := db.GetAllAlerts(r.Context(), pool, userID, false, "")
		if err != nil {
			handleStoreError(w, err, "alerts")
			return
		}

		s := summary.Alerts(alerts)
		cache.SetSummaryCache(cacheKey, s)
		writeJSON(w, http.StatusOK, s)
	}
}

func CreateAlert(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		var alert models.Alert
		if err := json.NewDecoder(r.Body).Decode(&alert); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if alert.AlertType == "" || alert.Title == "" || alert.Message == "" || alert.Category == "" {
			http.Error(w, "alert_type, title, message, and category are required", http.StatusBadRequest)
			return
		}
		if alert.Priority == "" {
			alert.Priority = models.AlertPriorityMedium
		}
		if !util.ValidateAlertPriority(alert.Priority) {
			http.Error(w, "priority must be low, medium, high, or critical", http.StatusBadRequest)
			return
		}

		alert.UserID = userID

		created, err := db.CreateAlert(r.Context(), pool, &alert)
		if err != nil {
			log.Printf("ERROR: Failed to create alert for user %d: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusCreated, created)
	}
}

func GetAlert(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alertID, err := idParam(r, "alert_id")
		if err != nil {
			http.Error(w, "invalid alert id", http.StatusBadRequest)
			return
		}

		alert, err := db.GetAlertByID(r.Context(), pool, userIDFrom(r), alertID)
		if err != nil {
			handleStoreError(w, err, "alert")
			return
		}
		writeJSON(w, http.StatusOK, alert)
	}
}

// UpdateAlert flips the read/dismissed/action flags; timestamps are only
// stamped on the first transition.
func UpdateAlert(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		alertID, err := idParam(r, "alert_id")
		if err != nil {
			http.Error(w, "invalid alert id", http.StatusBadRequest)
			return
		}

		var req models.UpdateAlertRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		alert, err := db.UpdateAlert(r.Context(), pool, userID, alertID, req)
		if err != nil {
			handleStoreError(w, err, "alert")
			return
		}

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusOK, alert)
	}
}

func MarkAllAlertsRead(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		updated, err := db.MarkAllAlertsRead(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to mark alerts read for user %d: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusOK, map[string]int64{"updated_count": updated})
	}
}

// DismissAlert hides the alert; the row stays for the audit trail.
func DismissAlert(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		alertID, err := idParam(r, "alert_id")
		if err != nil {
			http.Error(w, "invalid alert id", http.StatusBadRequest)
			return
		}

		if err := db.DismissAlert(r.Context(), pool, userID, alertID); err != nil {
			handleStoreError(w, err, "alert")
			return
		}

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "alert dismissed"})
	}
}

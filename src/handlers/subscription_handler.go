package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	cache "glassfin-server/src/db"
	db "glassfin-server/src/db/sql"
	"glassfin-server/src/models"
	"glassfin-server/src/summary"
	"glassfin-server/src/util"

	"github.com/jackc/pgx/v5/pgxpool"
)

func GetSubscriptions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly := r.URL.Query().Get("active_only") != "false"
		subscriptions, err := db.GetAllSubscriptions(r.Context(), pool, userIDFrom(r), activeOnly)
		if err != nil {
			handleStoreError(w, err, "subscriptions")
			return
		}
		writeJSON(w, http.StatusOK, subscriptions)
	}
}

func GetSubscriptionSummary(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		cacheKey := cache.SummaryCacheKey("subscriptions", userID)
		if cached, found := cache.GetSummaryCache(cacheKey); found {
			writeJSON(w, http.StatusOK, cached)
			return
		}

		// Inactive subscriptions still count toward the total.
		subscriptions, err := db.GetAllSubscriptions(r.Context(), pool, userID, false)
		if err != nil {
			handleStoreError(w, err, "subscriptions")
			return
		}

		s := summary.Subscriptions(subscriptions, time.Now())
		cache.SetSummaryCache(cacheKey, s)
		writeJSON(w, http.StatusOK, s)
	}
}

func GetSubscription(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subscriptionID, err := idParam(r, "subscription_id")
		if err != nil {
			http.Error(w, "invalid subscription id", http.StatusBadRequest)
			return
		}

		sub, err := db.GetSubscriptionByID(r.Context(), pool, userIDFrom(r), subscriptionID)
		if err != nil {
			handleStoreError(w, err, "subscription")
			return
		}
		writeJSON(w, http.StatusOK, sub)
	}
}

func CreateSubscription(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		// Defaults survive unless the body sets the fields explicitly.
		sub := models.Subscription{AlertBeforeCharge: true, AlertDaysBefore: 3}
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if sub.ServiceName == "" || sub.MerchantName == "" {
			http.Error(w, "service_name and merchant_name are required", http.StatusBadRequest)
			return
		}
		if !util.ValidateBillingFrequency(sub.BillingFrequency) {
			http.Error(w, "billing_frequency must be monthly, yearly, or weekly", http.StatusBadRequest)
			return
		}
		if sub.Amount <= 0 {
			http.Error(w, "amount must be positive", http.StatusBadRequest)
			return
		}
		if sub.FirstChargeDate.IsZero() {
			http.Error(w, "first_charge_date is required", http.StatusBadRequest)
			return
		}

		sub.UserID = userID
		sub.IsActive = true
		// Manually created subscriptions are user-confirmed by definition.
		sub.AutoDetected = false
		sub.UserConfirmed = true
		if sub.Currency == "" {
			sub.Currency = "MXN"
		}
		next := summary.NextChargeDate(sub.FirstChargeDate, sub.BillingFrequency)
		sub.NextChargeDate = &next

		created, err := db.CreateSubscription(r.Context(), pool, &sub)
		if err != nil {
			log.Printf("ERROR: Failed to create subscription for user %d: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateSubscription(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		subscriptionID, err := idParam(r, "subscription_id")
		if err != nil {
			http.Error(w, "invalid subscription id", http.StatusBadRequest)
			return
		}

		var req models.UpdateSubscriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if req.BillingFrequency != nil && !util.ValidateBillingFrequency(*req.BillingFrequency) {
			http.Error(w, "billing_frequency must be monthly, yearly, or weekly", http.StatusBadRequest)
			return
		}
		if req.Amount != nil && *req.Amount <= 0 {
			http.Error(w, "amount must be positive", http.StatusBadRequest)
			return
		}

		sub, err := db.UpdateSubscription(r.Context(), pool, userID, subscriptionID, req)
		if err != nil {
			handleStoreError(w, err, "subscription")
			return
		}

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusOK, sub)
	}
}

func DeleteSubscription(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		subscriptionID, err := idParam(r, "subscription_id")
		if err != nil {
			http.Error(w, "invalid subscription id", http.StatusBadRequest)
			return
		}

		if err := db.DeactivateSubscription(r.Context(), pool, userID, subscriptionID); err != nil {
			handleStoreError(w, err, "subscription")
			return
		}

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "subscription cancelled"})
	}
}

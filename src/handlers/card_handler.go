package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	cache "glassfin-server/src/db"
	db "glassfin-server/src/db/sql"
	"glassfin-server/src/models"
	"glassfin-server/src/summary"

	"github.com/jackc/pgx/v5/pgxpool"
)

func GetCreditCards(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		includeInactive := r.URL.Query().Get("include_inactive") == "true"
		cards, err := db.GetAllCreditCards(r.Context(), pool, userIDFrom(r), includeInactive)
		if err != nil {
			handleStoreError(w, err, "cards")
			return
		}
		writeJSON(w, http.StatusOK, cards)
	}
}

func GetCreditCardSummary(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		cacheKey := cache.SummaryCacheKey("cards", userID)
		if cached, found := cache.GetSummaryCache(cacheKey); found {
			writeJSON(w, http.StatusOK, cached)
			return
		}

		cards, err := db.GetAllCreditCards(r.Context(), pool, userID, true)
		if err != nil {
			handleStoreError(w, err, "cards")
			return
		}

		s := summary.Cards(cards)
		cache.SetSummaryCache(cacheKey, s)
		writeJSON(w, http.StatusOK, s)
	}
}

func GetCreditCard(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cardID, err := idParam(r, "card_id")
		if err != nil {
			http.Error(w, "invalid card id", http.StatusBadRequest)
			return
		}

		card, err := db.GetCreditCardByID(r.Context(), pool, userIDFrom(r), cardID)
		if err != nil {
			handleStoreError(w, err, "card")
			return
		}
		writeJSON(w, http.StatusOK, card)
	}
}

func CreateCreditCard(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		var card models.CreditCard
		if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if card.CardName == "" || card.InstitutionName == "" {
			http.Error(w, "card_name and institution_name are required", http.StatusBadRequest)
			return
		}
		if len(card.LastFourDigits) != 4 {
			http.Error(w, "last_four_digits must be exactly 4 characters", http.StatusBadRequest)
			return
		}
		if card.CreditLimit <= 0 {
			http.Error(w, "credit_limit must be positive", http.StatusBadRequest)
			return
		}

		card.UserID = userID
		card.IsActive = true

		created, err := db.CreateCreditCard(r.Context(), pool, &card)
		if err != nil {
			log.Printf("ERROR: Failed to create card for user %d: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateCreditCard(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		cardID, err := idParam(r, "card_id")
		if err != nil {
			http.Error(w, "invalid card id", http.StatusBadRequest)
			return
		}

		var req models.UpdateCreditCardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		card, err := db.UpdateCreditCard(r.Context(), pool, userID, cardID, req)
		if err != nil {
			handleStoreError(w, err, "card")
			return
		}

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusOK, card)
	}
}

func DeleteCreditCard(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		cardID, err := idParam(r, "card_id")
		if err != nil {
			http.Error(w, "invalid card id", http.StatusBadRequest)
			return
		}

		if err := db.DeactivateCreditCard(r.Context(), pool, userID, cardID); err != nil {
			handleStoreError(w, err, "card")
			return
		}

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "card deactivated"})
	}
}

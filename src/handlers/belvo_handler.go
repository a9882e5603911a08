package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"glassfin-server/src/belvo"
	cache "glassfin-server/src/db"
	db "glassfin-server/src/db/sql"
	"glassfin-server/src/sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

func handleBelvoError(w http.ResponseWriter, err error, action string) {
	log.Printf("ERROR: Belvo %s failed: %v", action, err)
	var apiErr *belvo.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		http.Error(w, apiErr.Message, http.StatusBadGateway)
		return
	}
	http.Error(w, "banking provider error", http.StatusBadGateway)
}

func GetInstitutions(client belvo.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		country := r.URL.Query().Get("country_code")
		if country == "" {
			country = "MX"
		}

		institutions, err := client.ListInstitutions(r.Context(), country)
		if err != nil {
			handleBelvoError(w, err, "institution listing")
			return
		}
		writeJSON(w, http.StatusOK, institutions)
	}
}

// CreateBankLink registers a new provider link and stores its id on the
// user. One link per user; relinking replaces the old id.
func CreateBankLink(pool *pgxpool.Pool, client belvo.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		var req struct {
			Institution string `json:"institution"`
			Username    string `json:"username"`
			Password    string `json:"password"`
			Token       string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Institution == "" || req.Username == "" || req.Password == "" {
			http.Error(w, "institution, username, and password are required", http.StatusBadRequest)
			return
		}

		link, err := client.CreateLink(r.Context(), req.Institution, req.Username, req.Password, req.Token)
		if err != nil {
			handleBelvoError(w, err, "link creation")
			return
		}

		if err := db.SetBelvoLinkID(r.Context(), pool, userID, &link.ID); err != nil {
			log.Printf("ERROR: Failed to store link for user %d: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Created bank link for user %d at %s", userID, link.Institution)
		writeJSON(w, http.StatusCreated, link)
	}
}

func GetBankLink(pool *pgxpool.Pool, client belvo.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := db.GetUserByID(r.Context(), pool, userIDFrom(r))
		if err != nil {
			handleStoreError(w, err, "user")
			return
		}
		if user.BelvoLinkID == nil {
			http.Error(w, "no bank link", http.StatusNotFound)
			return
		}

		link, err := client.GetLink(r.Context(), *user.BelvoLinkID)
		if err != nil {
			handleBelvoError(w, err, "link lookup")
			return
		}
		writeJSON(w, http.StatusOK, link)
	}
}

func DeleteBankLink(pool *pgxpool.Pool, client belvo.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		user, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil {
			handleStoreError(w, err, "user")
			return
		}
		if user.BelvoLinkID == nil {
			http.Error(w, "no bank link", http.StatusNotFound)
			return
		}

		if err := client.DeleteLink(r.Context(), *user.BelvoLinkID); err != nil {
			handleBelvoError(w, err, "link deletion")
			return
		}

		if err := db.SetBelvoLinkID(r.Context(), pool, userID, nil); err != nil {
			log.Printf("ERROR: Failed to clear link for user %d: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "bank link removed"})
	}
}

func linkIDForUser(r *http.Request, pool *pgxpool.Pool) (string, error) {
	user, err := db.GetUserByID(r.Context(), pool, userIDFrom(r))
	if err != nil {
		return "", err
	}
	if user.BelvoLinkID == nil {
		return "", db.ErrNotFound
	}
	return *user.BelvoLinkID, nil
}

func SyncAccounts(pool *pgxpool.Pool, client belvo.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		linkID, err := linkIDForUser(r, pool)
		if err != nil {
			handleStoreError(w, err, "bank link")
			return
		}

		accounts, err := client.GetAccounts(r.Context(), linkID)
		if err != nil {
			handleBelvoError(w, err, "account fetch")
			return
		}

		reconciler := sync.NewReconciler(&db.SyncStore{Pool: pool, UserID: userID})
		result := reconciler.SyncAccounts(r.Context(), userID, accounts)

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusOK, result)
	}
}

func SyncTransactions(pool *pgxpool.Pool, client belvo.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		linkID, err := linkIDForUser(r, pool)
		if err != nil {
			handleStoreError(w, err, "bank link")
			return
		}

		q := r.URL.Query()
		transactions, err := client.GetTransactions(r.Context(), linkID, q.Get("date_from"), q.Get("date_to"))
		if err != nil {
			handleBelvoError(w, err, "transaction fetch")
			return
		}

		reconciler := sync.NewReconciler(&db.SyncStore{Pool: pool, UserID: userID})
		result := reconciler.SyncTransactions(r.Context(), userID, transactions)

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusOK, result)
	}
}

// SyncAll refreshes accounts first so newly linked accounts exist before
// their transactions arrive.
func SyncAll(pool *pgxpool.Pool, client belvo.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		linkID, err := linkIDForUser(r, pool)
		if err != nil {
			handleStoreError(w, err, "bank link")
			return
		}

		accounts, err := client.GetAccounts(r.Context(), linkID)
		if err != nil {
			handleBelvoError(w, err, "account fetch")
			return
		}

		reconciler := sync.NewReconciler(&db.SyncStore{Pool: pool, UserID: userID})
		accountResult := reconciler.SyncAccounts(r.Context(), userID, accounts)

		transactions, err := client.GetTransactions(r.Context(), linkID, "", "")
		if err != nil {
			handleBelvoError(w, err, "transaction fetch")
			return
		}
		transactionResult := reconciler.SyncTransactions(r.Context(), userID, transactions)

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusOK, map[string]sync.Result{
			"accounts":     accountResult,
			"transactions": transactionResult,
		})
	}
}

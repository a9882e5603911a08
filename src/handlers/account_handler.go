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

func GetBankAccounts(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		includeInactive := r.URL.Query().Get("include_inactive") == "true"
		accounts, err := db.GetAllBankAccounts(r.Context(), pool, userIDFrom(r), includeInactive)
		if err != nil {
			handleStoreError(w, err, "accounts")
			return
		}
		writeJSON(w, http.StatusOK, accounts)
	}
}

func GetBankAccountSummary(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		cacheKey := cache.SummaryCacheKey("accounts", userID)
		if cached, found := cache.GetSummaryCache(cacheKey); found {
			writeJSON(w, http.StatusOK, cached)
			return
		}

		accounts, err := db.GetAllBankAccounts(r.Context(), pool, userID, true)
		if err != nil {
			handleStoreError(w, err, "accounts")
			return
		}

		s := summary.Accounts(accounts)
		cache.SetSummaryCache(cacheKey, s)
		writeJSON(w, http.StatusOK, s)
	}
}

func GetBankAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, err := idParam(r, "account_id")
		if err != nil {
			http.Error(w, "invalid account id", http.StatusBadRequest)
			return
		}

		account, err := db.GetBankAccountByID(r.Context(), pool, userIDFrom(r), accountID)
		if err != nil {
			handleStoreError(w, err, "account")
			return
		}
		writeJSON(w, http.StatusOK, account)
	}
}

func CreateBankAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		var account models.BankAccount
		if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if account.AccountName == "" || account.AccountType == "" || account.InstitutionName == "" {
			http.Error(w, "account_name, account_type, and institution_name are required", http.StatusBadRequest)
			return
		}

		newBankAccountDefaults(&account, userID)

		created, err := db.CreateBankAccount(r.Context(), pool, &account)
		if err != nil {
			log.Printf("ERROR: Failed to create account for user %d: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusCreated, created)
	}
}

// newBankAccountDefaults fills the server-owned fields of a manually created
// account. New accounts never start as primary; promotion goes through
// update, which demotes the previous primary first.
func newBankAccountDefaults(account *models.BankAccount, userID int64) {
	account.UserID = userID
	account.IsActive = true
	account.IsPrimary = false
	if account.Currency == "" {
		account.Currency = "MXN"
	}
}

func UpdateBankAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		accountID, err := idParam(r, "account_id")
		if err != nil {
			http.Error(w, "invalid account id", http.StatusBadRequest)
			return
		}

		var req models.UpdateBankAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		account, err := db.UpdateBankAccount(r.Context(), pool, userID, accountID, req)
		if err != nil {
			handleStoreError(w, err, "account")
			return
		}

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusOK, account)
	}
}

func DeleteBankAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		accountID, err := idParam(r, "account_id")
		if err != nil {
			http.Error(w, "invalid account id", http.StatusBadRequest)
			return
		}

		if err := db.DeactivateBankAccount(r.Context(), pool, userID, accountID); err != nil {
			handleStoreError(w, err, "account")
			return
		}

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "account deactivated"})
	}
}

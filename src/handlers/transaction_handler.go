package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	cache "glassfin-server/src/db"
	db "glassfin-server/src/db/sql"
	"glassfin-server/src/models"
	"glassfin-server/src/summary"
	"glassfin-server/src/util"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultPageSize   = 50
	maxPageSize       = 100
	defaultWindowDays = 30
	maxWindowDays     = 365
)

func parseTransactionFilter(r *http.Request) db.TransactionFilter {
	q := r.URL.Query()
	filter := db.TransactionFilter{
		Category:        q.Get("category"),
		TransactionType: q.Get("transaction_type"),
		Page:            1,
		PageSize:        defaultPageSize,
	}

	if v, err := strconv.ParseInt(q.Get("account_id"), 10, 64); err == nil {
		filter.BankAccountID = v
	}
	if v, err := strconv.ParseInt(q.Get("card_id"), 10, 64); err == nil {
		filter.CreditCardID = v
	}
	if v, err := time.Parse("2006-01-02", q.Get("date_from")); err == nil {
		filter.DateFrom = &v
	}
	if v, err := time.Parse("2006-01-02", q.Get("date_to")); err == nil {
		end := v.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		filter.Page = v
	}
	if v, err := strconv.Atoi(q.Get("page_size")); err == nil && v > 0 {
		filter.PageSize = v
		if filter.PageSize > maxPageSize {
			filter.PageSize = maxPageSize
		}
	}
	return filter
}

func GetTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := db.ListTransactions(r.Context(), pool, userIDFrom(r), parseTransactionFilter(r))
		if err != nil {
			handleStoreError(w, err, "transactions")
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// analyticsDays reads the days query parameter, defaulting to 30. Values
// outside [1, 365] are an error, not clamped.
func analyticsDays(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return defaultWindowDays, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 || v > maxWindowDays {
		return 0, fmt.Errorf("days must be between 1 and %d", maxWindowDays)
	}
	return v, nil
}

// GetTransactionAnalytics aggregates the trailing window of transactions.
func GetTransactionAnalytics(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		days, err := analyticsDays(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		cacheKey := cache.SummaryCacheKey(fmt.Sprintf("analytics_%dd", days), userID)
		if cached, found := cache.GetSummaryCache(cacheKey); found {
			writeJSON(w, http.StatusOK, cached)
			return
		}

		since := time.Now().AddDate(0, 0, -days)
		transactions, err := db.GetTransactionsSince(r.Context(), pool, userID, since)
		if err != nil {
			handleStoreError(w, err, "transactions")
			return
		}

		analytics := summary.Analytics(transactions)
		cache.SetSummaryCache(cacheKey, analytics)
		writeJSON(w, http.StatusOK, analytics)
	}
}

func GetTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transactionID, err := idParam(r, "transaction_id")
		if err != nil {
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}

		txn, err := db.GetTransactionByID(r.Context(), pool, userIDFrom(r), transactionID)
		if err != nil {
			handleStoreError(w, err, "transaction")
			return
		}
		writeJSON(w, http.StatusOK, txn)
	}
}

func CreateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		var txn models.Transaction
		if err := json.NewDecoder(r.Body).Decode(&txn); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if txn.Description == "" {
			http.Error(w, "description is required", http.StatusBadRequest)
			return
		}
		if !util.ValidateTransactionType(txn.TransactionType) {
			http.Error(w, "transaction_type must be income, expense, or transfer", http.StatusBadRequest)
			return
		}
		if txn.Amount <= 0 {
			http.Error(w, "amount must be positive", http.StatusBadRequest)
			return
		}

		// The referenced account or card must belong to the caller.
		if txn.BankAccountID != nil {
			if _, err := db.GetBankAccountByID(r.Context(), pool, userID, *txn.BankAccountID); err != nil {
				handleStoreError(w, err, "account")
				return
			}
		}
		if txn.CreditCardID != nil {
			if _, err := db.GetCreditCardByID(r.Context(), pool, userID, *txn.CreditCardID); err != nil {
				handleStoreError(w, err, "card")
				return
			}
		}

		txn.UserID = userID
		if txn.Currency == "" {
			txn.Currency = "MXN"
		}
		if txn.Status == "" {
			txn.Status = "completed"
		}
		if txn.TransactionDate.IsZero() {
			txn.TransactionDate = time.Now()
		}

		created, err := db.CreateTransaction(r.Context(), pool, &txn)
		if err != nil {
			log.Printf("ERROR: Failed to create transaction for user %d: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		transactionID, err := idParam(r, "transaction_id")
		if err != nil {
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}

		var req models.UpdateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		txn, err := db.UpdateTransaction(r.Context(), pool, userID, transactionID, req)
		if err != nil {
			handleStoreError(w, err, "transaction")
			return
		}

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusOK, txn)
	}
}

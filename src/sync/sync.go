// Package sync reconciles records fetched from the banking aggregator with
// the local database, keyed by the aggregator's external identifiers.
package sync

import (
	"context"
	"fmt"
	"log"
	"time"

	"glassfin-server/src/belvo"
	"glassfin-server/src/models"
)

// Defaults applied when the provider omits a field.
const (
	defaultAccountName = "Bank Account"
	defaultAccountType = "checking"
	defaultInstitution = "Unknown"
	defaultCurrency    = "MXN"
	defaultDescription = "Transaction"
)

// Store is the persistence surface the reconciler needs. Lookups by external
// id return (nil, nil) / (false, nil) when no row matches.
type Store interface {
	FindAccountByBelvoID(ctx context.Context, belvoID string) (*models.BankAccount, error)
	UpdateAccountBalances(ctx context.Context, accountID int64, current, available float64, syncedAt time.Time) error
	CreateAccount(ctx context.Context, account *models.BankAccount) error
	TransactionExists(ctx context.Context, belvoID string) (bool, error)
	CreateTransaction(ctx context.Context, txn *models.Transaction) error
}

// Result reports a best-effort batch: SyncedCount counts full successes,
// Errors collects per-record failures. Partial success is the normal outcome,
// not a batch failure.
type Result struct {
	SyncedCount int      `json:"synced_count"`
	Errors      []string `json:"errors"`
}

type Reconciler struct {
	store Store
	now   func() time.Time
}

func NewReconciler(store Store) *Reconciler {
	return &Reconciler{store: store, now: time.Now}
}

// SyncAccounts upserts provider accounts for one user. A known external id
// refreshes balances and the sync timestamp only, preserving user edits; a
// new id creates a local row with the account number masked to its last four
// digits.
func (r *Reconciler) SyncAccounts(ctx context.Context, userID int64, accounts []belvo.Account) Result {
	result := Result{Errors: []string{}}

	for _, acc := range accounts {
		if err := r.syncAccount(ctx, userID, acc); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to sync account %s: %v", acc.ID, err))
			continue
		}
		result.SyncedCount++
	}

	log.Printf("INFO: Account sync for user %d: %d synced, %d errors", userID, result.SyncedCount, len(result.Errors))
	return result
}

func (r *Reconciler) syncAccount(ctx context.Context, userID int64, acc belvo.Account) error {
	existing, err := r.store.FindAccountByBelvoID(ctx, acc.ID)
	if err != nil {
		return err
	}

	if existing != nil {
		return r.store.UpdateAccountBalances(ctx, existing.ID, acc.Balance.Current, acc.Balance.Available, r.now())
	}

	account := MapAccount(userID, acc)
	now := r.now()
	account.LastSyncedAt = &now
	return r.store.CreateAccount(ctx, account)
}

// SyncTransactions inserts provider transactions for one user. A known
// external id is skipped outright so repeated runs never duplicate rows or
// clobber user-edited categories.
func (r *Reconciler) SyncTransactions(ctx context.Context, userID int64, transactions []belvo.Transaction) Result {
	result := Result{Errors: []string{}}

	for _, txn := range transactions {
		synced, err := r.syncTransaction(ctx, userID, txn)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to sync transaction %s: %v", txn.ID, err))
			continue
		}
		if synced {
			result.SyncedCount++
		}
	}

	log.Printf("INFO: Transaction sync for user %d: %d synced, %d errors", userID, result.SyncedCount, len(result.Errors))
	return result
}

func (r *Reconciler) syncTransaction(ctx context.Context, userID int64, txn belvo.Transaction) (bool, error) {
	exists, err := r.store.TransactionExists(ctx, txn.ID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	account, err := r.store.FindAccountByBelvoID(ctx, txn.Account.ID)
	if err != nil {
		return false, err
	}
	if account == nil {
		return false, fmt.Errorf("account not found for transaction")
	}

	mapped, err := MapTransaction(userID, account.ID, txn)
	if err != nil {
		return false, err
	}
	if err := r.store.CreateTransaction(ctx, mapped); err != nil {
		return false, err
	}
	return true, nil
}

// MapAccount converts a provider account into a local row, applying defaults
// and masking the account number.
func MapAccount(userID int64, acc belvo.Account) *models.BankAccount {
	account := &models.BankAccount{
		UserID:           userID,
		BelvoAccountID:   &acc.ID,
		AccountName:      defaultAccountName,
		AccountType:      defaultAccountType,
		InstitutionName:  defaultInstitution,
		Currency:         defaultCurrency,
		CurrentBalance:   acc.Balance.Current,
		AvailableBalance: acc.Balance.Available,
		IsActive:         true,
		IsPrimary:        false,
	}
	if acc.Name != "" {
		account.AccountName = acc.Name
	}
	if acc.Type != "" {
		account.AccountType = acc.Type
	}
	if acc.Institution.Name != "" {
		account.InstitutionName = acc.Institution.Name
	}
	if acc.Currency != "" {
		account.Currency = acc.Currency
	}
	if masked := MaskAccountNumber(acc.Number); masked != "" {
		account.AccountNumber = &masked
	}
	return account
}

// MapTransaction converts a provider transaction into a local row. A positive
// provider amount is income, anything else an expense; the stored amount is
// always the magnitude.
func MapTransaction(userID, accountID int64, txn belvo.Transaction) (*models.Transaction, error) {
	valueDate, err := time.Parse("2006-01-02", txn.ValueDate)
	if err != nil {
		return nil, fmt.Errorf("invalid value_date %q", txn.ValueDate)
	}

	transactionType := models.TransactionTypeExpense
	if txn.Amount > 0 {
		transactionType = models.TransactionTypeIncome
	}

	amount := txn.Amount
	if amount < 0 {
		amount = -amount
	}

	mapped := &models.Transaction{
		UserID:             userID,
		BankAccountID:      &accountID,
		BelvoTransactionID: &txn.ID,
		Description:        defaultDescription,
		Category:           txn.Category,
		Amount:             amount,
		Currency:           defaultCurrency,
		TransactionType:    transactionType,
		Reference:          txn.Reference,
		TransactionDate:    valueDate,
		ValueDate:          &valueDate,
		Status:             "completed",
	}
	if txn.Description != "" {
		mapped.Description = txn.Description
	}
	if txn.Currency != "" {
		mapped.Currency = txn.Currency
	}
	if txn.Merchant != nil && txn.Merchant.Name != "" {
		mapped.MerchantName = &txn.Merchant.Name
	}
	return mapped, nil
}

// MaskAccountNumber keeps only the last four digits of an account number.
func MaskAccountNumber(number string) string {
	if number == "" {
		return ""
	}
	if len(number) <= 4 {
		return number
	}
	return number[len(number)-4:]
}

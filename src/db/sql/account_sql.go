package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glassfin-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bankAccountColumns = `
	id, user_id, belvo_account_id, account_name, account_number, account_type,
	institution_name, currency, current_balance, available_balance,
	is_active, is_primary, created_at, updated_at, last_synced_at
`

func scanBankAccount(row pgx.Row) (*models.BankAccount, error) {
	var a models.BankAccount
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.BelvoAccountID,
		&a.AccountName,
		&a.AccountNumber,
		&a.AccountType,
		&a.InstitutionName,
		&a.Currency,
		&a.CurrentBalance,
		&a.AvailableBalance,
		&a.IsActive,
		&a.IsPrimary,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.LastSyncedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &a, nil
}

func GetAllBankAccounts(ctx context.Context, pool *pgxpool.Pool, userID int64, includeInactive bool) ([]models.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE user_id = $1`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY is_primary DESC, created_at DESC`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	accounts := []models.BankAccount{}
	for rows.Next() {
		account, err := scanBankAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

func GetBankAccountByID(ctx context.Context, pool *pgxpool.Pool, userID, accountID int64) (*models.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE id = $1 AND user_id = $2`
	return scanBankAccount(pool.QueryRow(ctx, query, accountID, userID))
}

func CreateBankAccount(ctx context.Context, pool *pgxpool.Pool, account *models.BankAccount) (*models.BankAccount, error) {
	query := `
		INSERT INTO bank_accounts (
			user_id, belvo_account_id, account_name, account_number, account_type,
			institution_name, currency, current_balance, available_balance,
			is_active, is_primary, last_synced_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + bankAccountColumns
	return scanBankAccount(pool.QueryRow(ctx, query,
		account.UserID,
		account.BelvoAccountID,
		account.AccountName,
		account.AccountNumber,
		account.AccountType,
		account.InstitutionName,
		account.Currency,
		account.CurrentBalance,
		account.AvailableBalance,
		account.IsActive,
		account.IsPrimary,
		account.LastSyncedAt,
	))
}

// UpdateBankAccount applies a partial update. Promoting an account to
// primary demotes every other account of the user first.
func UpdateBankAccount(ctx context.Context, pool *pgxpool.Pool, userID, accountID int64, req models.UpdateBankAccountRequest) (*models.BankAccount, error) {
	if req.IsPrimary != nil && *req.IsPrimary {
		// The target row must exist for this user before the current primary
		// is demoted, or a bad id would leave the user with no primary.
		if _, err := GetBankAccountByID(ctx, pool, userID, accountID); err != nil {
			return nil, err
		}
		demote := `UPDATE bank_accounts SET is_primary = FALSE, updated_at = NOW() WHERE user_id = $1 AND id <> $2 AND is_primary = TRUE`
		if _, err := pool.Exec(ctx, demote, userID, accountID); err != nil {
			return nil, fmt.Errorf("failed to demote primary account: %w", err)
		}
	}

	query := `
		UPDATE bank_accounts
		SET account_name = COALESCE($1, account_name),
		    is_active = COALESCE($2, is_active),
		    is_primary = COALESCE($3, is_primary),
		    updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING ` + bankAccountColumns
	return scanBankAccount(pool.QueryRow(ctx, query, req.AccountName, req.IsActive, req.IsPrimary, accountID, userID))
}

// DeactivateBankAccount soft-deletes; transactions keep pointing at the row.
func DeactivateBankAccount(ctx context.Context, pool *pgxpool.Pool, userID, accountID int64) error {
	query := `UPDATE bank_accounts SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, accountID, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func FindBankAccountByBelvoID(ctx context.Context, pool *pgxpool.Pool, userID int64, belvoID string) (*models.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE user_id = $1 AND belvo_account_id = $2`
	account, err := scanBankAccount(pool.QueryRow(ctx, query, userID, belvoID))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return account, err
}

func UpdateBankAccountBalances(ctx context.Context, pool *pgxpool.Pool, accountID int64, current, available float64, syncedAt time.Time) error {
	query := `
		UPDATE bank_accounts
		SET current_balance = $1, available_balance = $2, last_synced_at = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := pool.Exec(ctx, query, current, available, syncedAt, accountID)
	if err != nil {
		return fmt.Errorf("failed to update balances: %w", err)
	}
	return nil
}

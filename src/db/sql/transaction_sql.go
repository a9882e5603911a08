package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"glassfin-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `
	id, user_id, bank_account_id, credit_card_id, belvo_transaction_id,
	description, merchant_name, category, amount, currency, transaction_type,
	reference, notes, transaction_date, value_date, status, created_at, updated_at
`

// TransactionFilter narrows a transaction listing. Zero values mean
// "no filter".
type TransactionFilter struct {
	BankAccountID   int64
	CreditCardID    int64
	Category        string
	TransactionType string
	DateFrom        *time.Time
	DateTo          *time.Time
	Page            int
	PageSize        int
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.BankAccountID,
		&t.CreditCardID,
		&t.BelvoTransactionID,
		&t.Description,
		&t.MerchantName,
		&t.Category,
		&t.Amount,
		&t.Currency,
		&t.TransactionType,
		&t.Reference,
		&t.Notes,
		&t.TransactionDate,
		&t.ValueDate,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &t, nil
}

func (f TransactionFilter) whereClause() (string, []interface{}) {
	clauses := []string{"user_id = $1"}
	args := []interface{}{}
	n := 2
	if f.BankAccountID != 0 {
		clauses = append(clauses, fmt.Sprintf("bank_account_id = $%d", n))
		args = append(args, f.BankAccountID)
		n++
	}
	if f.CreditCardID != 0 {
		clauses = append(clauses, fmt.Sprintf("credit_card_id = $%d", n))
		args = append(args, f.CreditCardID)
		n++
	}
	if f.Category != "" {
		clauses = append(clauses, fmt.Sprintf("category = $%d", n))
		args = append(args, f.Category)
		n++
	}
	if f.TransactionType != "" {
		clauses = append(clauses, fmt.Sprintf("transaction_type = $%d", n))
		args = append(args, f.TransactionType)
		n++
	}
	if f.DateFrom != nil {
		clauses = append(clauses, fmt.Sprintf("transaction_date >= $%d", n))
		args = append(args, *f.DateFrom)
		n++
	}
	if f.DateTo != nil {
		clauses = append(clauses, fmt.Sprintf("transaction_date <= $%d", n))
		args = append(args, *f.DateTo)
		n++
	}
	return strings.Join(clauses, " AND "), args
}

// ListTransactions returns one page of a user's transactions, newest
// first, plus the total row count across all pages of the filter.
func ListTransactions(ctx context.Context, pool *pgxpool.Pool, userID int64, filter TransactionFilter) (*models.TransactionListResponse, error) {
	where, filterArgs := filter.whereClause()
	args := append([]interface{}{userID}, filterArgs...)

	var total int
	countQuery := `SELECT COUNT(*) FROM transactions WHERE ` + where
	if err := pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	offset := (filter.Page - 1) * filter.PageSize
	listQuery := fmt.Sprintf(
		`SELECT %s FROM transactions WHERE %s ORDER BY transaction_date DESC, id DESC LIMIT $%d OFFSET $%d`,
		transactionColumns, where, len(args)+1, len(args)+2,
	)
	rows, err := pool.Query(ctx, listQuery, append(args, filter.PageSize, offset)...)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.TransactionListResponse{
		Total:        total,
		Page:         filter.Page,
		PageSize:     filter.PageSize,
		Transactions: transactions,
	}, nil
}

// GetTransactionsSince fetches every transaction of the user dated within
// the trailing window. Used by the analytics endpoint.
func GetTransactionsSince(ctx context.Context, pool *pgxpool.Pool, userID int64, since time.Time) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 AND transaction_date >= $2 ORDER BY transaction_date`
	rows, err := pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *txn)
	}
	return transactions, rows.Err()
}

func GetTransactionByID(ctx context.Context, pool *pgxpool.Pool, userID, transactionID int64) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_id = $2`
	return scanTransaction(pool.QueryRow(ctx, query, transactionID, userID))
}

func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, txn *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (
			user_id, bank_account_id, credit_card_id, belvo_transaction_id,
			description, merchant_name, category, amount, currency,
			transaction_type, reference, notes, transaction_date, value_date, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + transactionColumns
	return scanTransaction(pool.QueryRow(ctx, query,
		txn.UserID,
		txn.BankAccountID,
		txn.CreditCardID,
		txn.BelvoTransactionID,
		txn.Description,
		txn.MerchantName,
		txn.Category,
		txn.Amount,
		txn.Currency,
		txn.TransactionType,
		txn.Reference,
		txn.Notes,
		txn.TransactionDate,
		txn.ValueDate,
		txn.Status,
	))
}

func UpdateTransaction(ctx context.Context, pool *pgxpool.Pool, userID, transactionID int64, req models.UpdateTransactionRequest) (*models.Transaction, error) {
	query := `
		UPDATE transactions
		SET category = COALESCE($1, category),
		    notes = COALESCE($2, notes),
		    updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING ` + transactionColumns
	return scanTransaction(pool.QueryRow(ctx, query, req.Category, req.Notes, transactionID, userID))
}

func TransactionExistsByBelvoID(ctx context.Context, pool *pgxpool.Pool, belvoID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM transactions WHERE belvo_transaction_id = $1)`
	if err := pool.QueryRow(ctx, query, belvoID).Scan(&exists); err != nil {
		return false, fmt.Errorf("query error: %w", err)
	}
	return exists, nil
}

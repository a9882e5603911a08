package db

import (
	"context"
	"errors"
	"fmt"

	"glassfin-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const creditCardColumns = `
	id, user_id, card_name, last_four_digits, institution_name, card_type,
	credit_limit, current_balance, available_credit, billing_cycle_day,
	payment_due_day, minimum_payment, annual_interest_rate, is_active,
	created_at, updated_at, last_synced_at
`

func scanCreditCard(row pgx.Row) (*models.CreditCard, error) {
	var c models.CreditCard
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.CardName,
		&c.LastFourDigits,
		&c.InstitutionName,
		&c.CardType,
		&c.CreditLimit,
		&c.CurrentBalance,
		&c.AvailableCredit,
		&c.BillingCycleDay,
		&c.PaymentDueDay,
		&c.MinimumPayment,
		&c.AnnualInterestRate,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.LastSyncedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &c, nil
}

func GetAllCreditCards(ctx context.Context, pool *pgxpool.Pool, userID int64, includeInactive bool) ([]models.CreditCard, error) {
	query := `SELECT ` + creditCardColumns + ` FROM credit_cards WHERE user_id = $1`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY created_at DESC`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	cards := []models.CreditCard{}
	for rows.Next() {
		card, err := scanCreditCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, rows.Err()
}

func GetCreditCardByID(ctx context.Context, pool *pgxpool.Pool, userID, cardID int64) (*models.CreditCard, error) {
	query := `SELECT ` + creditCardColumns + ` FROM credit_cards WHERE id = $1 AND user_id = $2`
	return scanCreditCard(pool.QueryRow(ctx, query, cardID, userID))
}

func CreateCreditCard(ctx context.Context, pool *pgxpool.Pool, card *models.CreditCard) (*models.CreditCard, error) {
	query := `
		INSERT INTO credit_cards (
			user_id, card_name, last_four_digits, institution_name, card_type,
			credit_limit, current_balance, available_credit, billing_cycle_day,
			payment_due_day, minimum_payment, annual_interest_rate, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $6 - $7, $8, $9, $10, $11, $12)
		RETURNING ` + creditCardColumns
	return scanCreditCard(pool.QueryRow(ctx, query,
		card.UserID,
		card.CardName,
		card.LastFourDigits,
		card.InstitutionName,
		card.CardType,
		card.CreditLimit,
		card.CurrentBalance,
		card.BillingCycleDay,
		card.PaymentDueDay,
		card.MinimumPayment,
		card.AnnualInterestRate,
		card.IsActive,
	))
}

// UpdateCreditCard applies a partial update. available_credit is always
// recomputed from the effective limit and balance so the three fields
// never drift apart.
func UpdateCreditCard(ctx context.Context, pool *pgxpool.Pool, userID, cardID int64, req models.UpdateCreditCardRequest) (*models.CreditCard, error) {
	query := `
		UPDATE credit_cards
		SET card_name = COALESCE($1, card_name),
		    credit_limit = COALESCE($2, credit_limit),
		    current_balance = COALESCE($3, current_balance),
		    available_credit = COALESCE($2, credit_limit) - COALESCE($3, current_balance),
		    billing_cycle_day = COALESCE($4, billing_cycle_day),
		    payment_due_day = COALESCE($5, payment_due_day),
		    minimum_payment = COALESCE($6, minimum_payment),
		    annual_interest_rate = COALESCE($7, annual_interest_rate),
		    is_active = COALESCE($8, is_active),
		    updated_at = NOW()
		WHERE id = $9 AND user_id = $10
		RETURNING ` + creditCardColumns
	return scanCreditCard(pool.QueryRow(ctx, query,
		req.CardName,
		req.CreditLimit,
		req.CurrentBalance,
		req.BillingCycleDay,
		req.PaymentDueDay,
		req.MinimumPayment,
		req.AnnualInterestRate,
		req.IsActive,
		cardID,
		userID,
	))
}

func DeactivateCreditCard(ctx context.Context, pool *pgxpool.Pool, userID, cardID int64) error {
	query := `UPDATE credit_cards SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, cardID, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate card: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

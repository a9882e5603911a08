package db

import (
	"context"
	"errors"
	"fmt"

	"glassfin-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const subscriptionColumns = `
	id, user_id, service_name, merchant_name, category, amount, currency,
	billing_frequency, billing_day, first_charge_date, last_charge_date,
	next_charge_date, is_active, auto_detected, user_confirmed,
	alert_before_charge, alert_days_before, created_at, updated_at
`

func scanSubscription(row pgx.Row) (*models.Subscription, error) {
	var s models.Subscription
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.ServiceName,
		&s.MerchantName,
		&s.Category,
		&s.Amount,
		&s.Currency,
		&s.BillingFrequency,
		&s.BillingDay,
		&s.FirstChargeDate,
		&s.LastChargeDate,
		&s.NextChargeDate,
		&s.IsActive,
		&s.AutoDetected,
		&s.UserConfirmed,
		&s.AlertBeforeCharge,
		&s.AlertDaysBefore,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &s, nil
}

func GetAllSubscriptions(ctx context.Context, pool *pgxpool.Pool, userID int64, activeOnly bool) ([]models.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY id`

	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	subscriptions := []models.Subscription{}
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, *sub)
	}
	return subscriptions, rows.Err()
}

func GetSubscriptionByID(ctx context.Context, pool *pgxpool.Pool, userID, subscriptionID int64) (*models.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1 AND user_id = $2`
	return scanSubscription(pool.QueryRow(ctx, query, subscriptionID, userID))
}

func CreateSubscription(ctx context.Context, pool *pgxpool.Pool, sub *models.Subscription) (*models.Subscription, error) {
	query := `
		INSERT INTO subscriptions (
			user_id, service_name, merchant_name, category, amount, currency,
			billing_frequency, billing_day, first_charge_date, last_charge_date,
			next_charge_date, is_active, auto_detected, user_confirmed,
			alert_before_charge, alert_days_before
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + subscriptionColumns
	return scanSubscription(pool.QueryRow(ctx, query,
		sub.UserID,
		sub.ServiceName,
		sub.MerchantName,
		sub.Category,
		sub.Amount,
		sub.Currency,
		sub.BillingFrequency,
		sub.BillingDay,
		sub.FirstChargeDate,
		sub.LastChargeDate,
		sub.NextChargeDate,
		sub.IsActive,
		sub.AutoDetected,
		sub.UserConfirmed,
		sub.AlertBeforeCharge,
		sub.AlertDaysBefore,
	))
}

func UpdateSubscription(ctx context.Context, pool *pgxpool.Pool, userID, subscriptionID int64, req models.UpdateSubscriptionRequest) (*models.Subscription, error) {
	query := `
		UPDATE subscriptions
		SET service_name = COALESCE($1, service_name),
		    category = COALESCE($2, category),
		    amount = COALESCE($3, amount),
		    billing_frequency = COALESCE($4, billing_frequency),
		    billing_day = COALESCE($5, billing_day),
		    is_active = COALESCE($6, is_active),
		    user_confirmed = COALESCE($7, user_confirmed),
		    alert_before_charge = COALESCE($8, alert_before_charge),
		    alert_days_before = COALESCE($9, alert_days_before),
		    updated_at = NOW()
		WHERE id = $10 AND user_id = $11
		RETURNING ` + subscriptionColumns
	return scanSubscription(pool.QueryRow(ctx, query,
		req.ServiceName,
		req.Category,
		req.Amount,
		req.BillingFrequency,
		req.BillingDay,
		req.IsActive,
		req.UserConfirmed,
		req.AlertBeforeCharge,
		req.AlertDaysBefore,
		subscriptionID,
		userID,
	))
}

// DeactivateSubscription cancels the subscription without losing its
// charge history.
func DeactivateSubscription(ctx context.Context, pool *pgxpool.Pool, userID, subscriptionID int64) error {
	query := `UPDATE subscriptions SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, subscriptionID, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate subscription: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package db

import (
	"context"
	"errors"
	"fmt"

	"glassfin-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const alertColumns = `
	id, user_id, alert_type, title, message, priority, category,
	related_transaction_id, related_subscription_id, related_account_id,
	is_read, is_dismissed, read_at, dismissed_at, requires_action,
	action_url, action_taken, action_taken_at, push_sent, email_sent,
	sms_sent, created_at, updated_at
`

func scanAlert(row pgx.Row) (*models.Alert, error) {
	var a models.Alert
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.AlertType,
		&a.Title,
		&a.Message,
		&a.Priority,
		&a.Category,
		&a.RelatedTransactionID,
		&a.RelatedSubscriptionID,
		&a.RelatedAccountID,
		&a.IsRead,
		&a.IsDismissed,
		&a.ReadAt,
		&a.DismissedAt,
		&a.RequiresAction,
		&a.ActionURL,
		&a.ActionTaken,
		&a.ActionTakenAt,
		&a.PushSent,
		&a.EmailSent,
		&a.SMSSent,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &a, nil
}

// GetAllAlerts lists a user's alerts, newest first. Dismissed alerts are
// always excluded.
func GetAllAlerts(ctx context.Context, pool *pgxpool.Pool, userID int64, unreadOnly bool, category string) ([]models.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE user_id = $1 AND is_dismissed = FALSE`
	args := []interface{}{userID}
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	alerts := []models.Alert{}
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, *alert)
	}
	return alerts, rows.Err()
}

func GetAlertByID(ctx context.Context, pool *pgxpool.Pool, userID, alertID int64) (*models.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1 AND user_id = $2`
	return scanAlert(pool.QueryRow(ctx, query, alertID, userID))
}

func CreateAlert(ctx context.Context, pool *pgxpool.Pool, alert *models.Alert) (*models.Alert, error) {
	query := `
		INSERT INTO alerts (
			user_id, alert_type, title, message, priority, category,
			related_transaction_id, related_subscription_id, related_account_id,
			requires_action, action_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + alertColumns
	return scanAlert(pool.QueryRow(ctx, query,
		alert.UserID,
		alert.AlertType,
		alert.Title,
		alert.Message,
		alert.Priority,
		alert.Category,
		alert.RelatedTransactionID,
		alert.RelatedSubscriptionID,
		alert.RelatedAccountID,
		alert.RequiresAction,
		alert.ActionURL,
	))
}

// UpdateAlert applies read/dismiss/action flags. Each *_at timestamp is
// stamped the first time its flag turns on and kept thereafter.
func UpdateAlert(ctx context.Context, pool *pgxpool.Pool, userID, alertID int64, req models.UpdateAlertRequest) (*models.Alert, error) {
	query := `
		UPDATE alerts
		SET is_read = COALESCE($1, is_read),
		    read_at = CASE WHEN $1 THEN COALESCE(read_at, NOW()) ELSE read_at END,
		    is_dismissed = COALESCE($2, is_dismissed),
		    dismissed_at = CASE WHEN $2 THEN COALESCE(dismissed_at, NOW()) ELSE dismissed_at END,
		    action_taken = COALESCE($3, action_taken),
		    action_taken_at = CASE WHEN $3 THEN COALESCE(action_taken_at, NOW()) ELSE action_taken_at END,
		    updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING ` + alertColumns
	return scanAlert(pool.QueryRow(ctx, query, req.IsRead, req.IsDismissed, req.ActionTaken, alertID, userID))
}

// MarkAllAlertsRead returns how many alerts flipped from unread to read.
func MarkAllAlertsRead(ctx context.Context, pool *pgxpool.Pool, userID int64) (int64, error) {
	query := `
		UPDATE alerts
		SET is_read = TRUE, read_at = COALESCE(read_at, NOW()), updated_at = NOW()
		WHERE user_id = $1 AND is_read = FALSE AND is_dismissed = FALSE
	`
	cmd, err := pool.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark alerts read: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// DismissAlert hides the alert from every listing without deleting the row.
func DismissAlert(ctx context.Context, pool *pgxpool.Pool, userID, alertID int64) error {
	query := `
		UPDATE alerts
		SET is_dismissed = TRUE, dismissed_at = COALESCE(dismissed_at, NOW()), updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`
	cmd, err := pool.Exec(ctx, query, alertID, userID)
	if err != nil {
		return fmt.Errorf("failed to dismiss alert: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package db

import (
	"context"
	"errors"
	"fmt"

	"glassfin-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const suspiciousChargeColumns = `
	id, user_id, transaction_id, merchant_name, amount, currency, charge_date,
	suspicion_type, confidence_score, reason, status, user_feedback,
	resolved_at, alert_sent, alert_sent_at, created_at, updated_at
`

func scanSuspiciousCharge(row pgx.Row) (*models.SuspiciousCharge, error) {
	var c models.SuspiciousCharge
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.TransactionID,
		&c.MerchantName,
		&c.Amount,
		&c.Currency,
		&c.ChargeDate,
		&c.SuspicionType,
		&c.ConfidenceScore,
		&c.Reason,
		&c.Status,
		&c.UserFeedback,
		&c.ResolvedAt,
		&c.AlertSent,
		&c.AlertSentAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &c, nil
}

func GetAllSuspiciousCharges(ctx context.Context, pool *pgxpool.Pool, userID int64, status string) ([]models.SuspiciousCharge, error) {
	query := `SELECT ` + suspiciousChargeColumns + ` FROM suspicious_charges WHERE user_id = $1`
	args := []interface{}{userID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY charge_date DESC`

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	charges := []models.SuspiciousCharge{}
	for rows.Next() {
		charge, err := scanSuspiciousCharge(rows)
		if err != nil {
			return nil, err
		}
		charges = append(charges, *charge)
	}
	return charges, rows.Err()
}

func GetSuspiciousChargeByID(ctx context.Context, pool *pgxpool.Pool, userID, chargeID int64) (*models.SuspiciousCharge, error) {
	query := `SELECT ` + suspiciousChargeColumns + ` FROM suspicious_charges WHERE id = $1 AND user_id = $2`
	return scanSuspiciousCharge(pool.QueryRow(ctx, query, chargeID, userID))
}

func CreateSuspiciousCharge(ctx context.Context, pool *pgxpool.Pool, charge *models.SuspiciousCharge) (*models.SuspiciousCharge, error) {
	query := `
		INSERT INTO suspicious_charges (
			user_id, transaction_id, merchant_name, amount, currency, charge_date,
			suspicion_type, confidence_score, reason, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + suspiciousChargeColumns
	return scanSuspiciousCharge(pool.QueryRow(ctx, query,
		charge.UserID,
		charge.TransactionID,
		charge.MerchantName,
		charge.Amount,
		charge.Currency,
		charge.ChargeDate,
		charge.SuspicionType,
		charge.ConfidenceScore,
		charge.Reason,
		charge.Status,
	))
}

// ResolveSuspiciousCharge records the user's verdict. resolved_at is
// stamped the first time the charge leaves pending and kept thereafter.
func ResolveSuspiciousCharge(ctx context.Context, pool *pgxpool.Pool, userID, chargeID int64, req models.ResolveSuspiciousChargeRequest) (*models.SuspiciousCharge, error) {
	query := `
		UPDATE suspicious_charges
		SET status = $1,
		    user_feedback = COALESCE($2, user_feedback),
		    resolved_at = CASE WHEN $1 <> 'pending' THEN COALESCE(resolved_at, NOW()) ELSE resolved_at END,
		    updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING ` + suspiciousChargeColumns
	return scanSuspiciousCharge(pool.QueryRow(ctx, query, req.Status, req.UserFeedback, chargeID, userID))
}

func MarkSuspiciousChargeAlertSent(ctx context.Context, pool *pgxpool.Pool, chargeID int64) error {
	query := `UPDATE suspicious_charges SET alert_sent = TRUE, alert_sent_at = COALESCE(alert_sent_at, NOW()), updated_at = NOW() WHERE id = $1`
	_, err := pool.Exec(ctx, query, chargeID)
	if err != nil {
		return fmt.Errorf("failed to mark alert sent: %w", err)
	}
	return nil
}

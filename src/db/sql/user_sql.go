package db

import (
	"context"
	"errors"
	"fmt"

	"glassfin-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `
	id, full_name, email, hashed_password, is_active, is_verified, belvo_link_id,
	push_notifications, email_notifications, sms_notifications,
	created_at, updated_at, last_login
`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.FullName,
		&u.Email,
		&u.HashedPassword,
		&u.IsActive,
		&u.IsVerified,
		&u.BelvoLinkID,
		&u.PushNotifications,
		&u.EmailNotifications,
		&u.SMSNotifications,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.LastLogin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &u, nil
}

func GetUserByID(ctx context.Context, pool *pgxpool.Pool, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND is_active = TRUE`
	return scanUser(pool.QueryRow(ctx, query, id))
}

func GetUserByEmail(ctx context.Context, pool *pgxpool.Pool, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND is_active = TRUE`
	return scanUser(pool.QueryRow(ctx, query, email))
}

// EmailTaken reports whether any user row, active or not, holds the email.
func EmailTaken(ctx context.Context, pool *pgxpool.Pool, email string, excludeUserID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`
	if err := pool.QueryRow(ctx, query, email, excludeUserID).Scan(&exists); err != nil {
		return false, fmt.Errorf("query error: %w", err)
	}
	return exists, nil
}

func CreateUser(ctx context.Context, pool *pgxpool.Pool, req models.RegisterRequest, hashedPassword string) (*models.RegisterResponse, error) {
	query := `
		INSERT INTO users (full_name, email, hashed_password)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var userID int64
	err := pool.QueryRow(ctx, query, req.FullName, req.Email, hashedPassword).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	resp := models.RegisterResponse{
		ID:       userID,
		Email:    req.Email,
		FullName: req.FullName,
	}
	return &resp, nil
}

func UpdateUser(ctx context.Context, pool *pgxpool.Pool, userID int64, req models.UpdateUserRequest) (*models.User, error) {
	query := `
		UPDATE users
		SET full_name = COALESCE($1, full_name),
		    email = COALESCE($2, email),
		    push_notifications = COALESCE($3, push_notifications),
		    email_notifications = COALESCE($4, email_notifications),
		    sms_notifications = COALESCE($5, sms_notifications),
		    updated_at = NOW()
		WHERE id = $6 AND is_active = TRUE
		RETURNING ` + userColumns
	return scanUser(pool.QueryRow(ctx, query,
		req.FullName,
		req.Email,
		req.PushNotifications,
		req.EmailNotifications,
		req.SMSNotifications,
		userID,
	))
}

func UpdateLastLogin(ctx context.Context, pool *pgxpool.Pool, userID int64) error {
	query := `UPDATE users SET last_login = NOW() WHERE id = $1`
	_, err := pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// DeactivateUser soft-deletes the account. The row and its children
// remain for audit purposes.
func DeactivateUser(ctx context.Context, pool *pgxpool.Pool, userID int64) error {
	query := `UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`
	cmd, err := pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func SetBelvoLinkID(ctx context.Context, pool *pgxpool.Pool, userID int64, linkID *string) error {
	query := `UPDATE users SET belvo_link_id = $1, updated_at = NOW() WHERE id = $2`
	_, err := pool.Exec(ctx, query, linkID, userID)
	if err != nil {
		return fmt.Errorf("failed to update belvo link: %w", err)
	}
	return nil
}

// GetProfileStats aggregates the counters shown on the profile screen.
func GetProfileStats(ctx context.Context, pool *pgxpool.Pool, userID int64) (*models.UserProfile, error) {
	user, err := GetUserByID(ctx, pool, userID)
	if err != nil {
		return nil, err
	}

	profile := models.UserProfile{User: *user}
	query := `
		SELECT
			(SELECT COUNT(*) FROM bank_accounts WHERE user_id = $1 AND is_active = TRUE),
			(SELECT COALESCE(SUM(current_balance), 0) FROM bank_accounts WHERE user_id = $1 AND is_active = TRUE),
			(SELECT COUNT(*) FROM credit_cards WHERE user_id = $1 AND is_active = TRUE),
			(SELECT COALESCE(SUM(credit_limit), 0) FROM credit_cards WHERE user_id = $1 AND is_active = TRUE),
			(SELECT COUNT(*) FROM subscriptions WHERE user_id = $1 AND is_active = TRUE),
			(SELECT COUNT(*) FROM alerts WHERE user_id = $1 AND is_read = FALSE AND is_dismissed = FALSE)
	`
	err = pool.QueryRow(ctx, query, userID).Scan(
		&profile.TotalAccounts,
		&profile.TotalBalance,
		&profile.TotalCreditCards,
		&profile.TotalCreditLimit,
		&profile.ActiveSubscriptions,
		&profile.PendingAlerts,
	)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &profile, nil
}

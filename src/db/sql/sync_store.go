package db

import (
	"context"
	"time"

	"glassfin-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SyncStore adapts the pool to the reconciler's persistence interface,
// scoped to one user so provider records can never cross accounts.
type SyncStore struct {
	Pool   *pgxpool.Pool
	UserID int64
}

func (s *SyncStore) FindAccountByBelvoID(ctx context.Context, belvoID string) (*models.BankAccount, error) {
	return FindBankAccountByBelvoID(ctx, s.Pool, s.UserID, belvoID)
}

func (s *SyncStore) UpdateAccountBalances(ctx context.Context, accountID int64, current, available float64, syncedAt time.Time) error {
	return UpdateBankAccountBalances(ctx, s.Pool, accountID, current, available, syncedAt)
}

func (s *SyncStore) CreateAccount(ctx context.Context, account *models.BankAccount) error {
	_, err := CreateBankAccount(ctx, s.Pool, account)
	return err
}

func (s *SyncStore) TransactionExists(ctx context.Context, belvoID string) (bool, error) {
	return TransactionExistsByBelvoID(ctx, s.Pool, belvoID)
}

func (s *SyncStore) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	_, err := CreateTransaction(ctx, s.Pool, txn)
	return err
}

package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"glassfin-server/src/belvo"
	"glassfin-server/src/models"
)

// fakeStore keeps rows in memory, keyed like the real store's unique
// external-id indexes.
type fakeStore struct {
	accounts     map[string]*models.BankAccount // by belvo id
	transactions map[string]*models.Transaction // by belvo id
	nextID       int64

	failCreateAccountFor string
	updateCalls          int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:     make(map[string]*models.BankAccount),
		transactions: make(map[string]*models.Transaction),
	}
}

func (s *fakeStore) FindAccountByBelvoID(_ context.Context, belvoID string) (*models.BankAccount, error) {
	return s.accounts[belvoID], nil
}

func (s *fakeStore) UpdateAccountBalances(_ context.Context, accountID int64, current, available float64, syncedAt time.Time) error {
	s.updateCalls++
	for _, acc := range s.accounts {
		if acc.ID == accountID {
			acc.CurrentBalance = current
			acc.AvailableBalance = available
			acc.LastSyncedAt = &syncedAt
			return nil
		}
	}
	return errors.New("account not found")
}

func (s *fakeStore) CreateAccount(_ context.Context, account *models.BankAccount) error {
	if s.failCreateAccountFor != "" && account.BelvoAccountID != nil && *account.BelvoAccountID == s.failCreateAccountFor {
		return errors.New("insert failed")
	}
	s.nextID++
	account.ID = s.nextID
	s.accounts[*account.BelvoAccountID] = account
	return nil
}

func (s *fakeStore) TransactionExists(_ context.Context, belvoID string) (bool, error) {
	_, ok := s.transactions[belvoID]
	return ok, nil
}

func (s *fakeStore) CreateTransaction(_ context.Context, txn *models.Transaction) error {
	s.nextID++
	txn.ID = s.nextID
	s.transactions[*txn.BelvoTransactionID] = txn
	return nil
}

func belvoAccount(id string, current, available float64) belvo.Account {
	return belvo.Account{
		ID:       id,
		Name:     "Cuenta Nómina",
		Number:   "001234567890",
		Type:     "checking",
		Currency: "MXN",
		Balance:  belvo.Balance{Current: current, Available: available},
		Institution: belvo.AccountInstitution{
			Name: "Banorte",
		},
	}
}

func belvoTxn(id, accountID string, amount float64) belvo.Transaction {
	return belvo.Transaction{
		ID:          id,
		Account:     belvo.TransactionAccount{ID: accountID},
		Amount:      amount,
		Description: "OXXO",
		Currency:    "MXN",
		ValueDate:   "2025-06-10",
	}
}

func TestSyncAccountsCreatesAndMasks(t *testing.T) {
	store := newFakeStore()
	r := NewReconciler(store)

	result := r.SyncAccounts(context.Background(), 1, []belvo.Account{
		belvoAccount("belvo-acc-1", 1500, 1400),
	})

	if result.SyncedCount != 1 || len(result.Errors) != 0 {
		t.Fatalf("result = %+v, want 1 synced 0 errors", result)
	}

	acc := store.accounts["belvo-acc-1"]
	if acc == nil {
		t.Fatal("account was not created")
	}
	if acc.AccountNumber == nil || *acc.AccountNumber != "7890" {
		t.Errorf("account number = %v, want masked 7890", acc.AccountNumber)
	}
	if acc.InstitutionName != "Banorte" || acc.CurrentBalance != 1500 {
		t.Errorf("mapped account = %+v", acc)
	}
	if acc.LastSyncedAt == nil {
		t.Error("last_synced_at not set on create")
	}
}

func TestSyncAccountsUpdatesBalancesOnly(t *testing.T) {
	store := newFakeStore()
	r := NewReconciler(store)
	ctx := context.Background()

	r.SyncAccounts(ctx, 1, []belvo.Account{belvoAccount("belvo-acc-1", 1000, 900)})

	// User renames the account locally; a later sync must not touch it.
	store.accounts["belvo-acc-1"].AccountName = "My Checking"

	result := r.SyncAccounts(ctx, 1, []belvo.Account{belvoAccount("belvo-acc-1", 750, 700)})

	if result.SyncedCount != 1 {
		t.Fatalf("result = %+v, want 1 synced", result)
	}
	acc := store.accounts["belvo-acc-1"]
	if acc.CurrentBalance != 750 || acc.AvailableBalance != 700 {
		t.Errorf("balances = %v/%v, want 750/700", acc.CurrentBalance, acc.AvailableBalance)
	}
	if acc.AccountName != "My Checking" {
		t.Errorf("account name overwritten to %q", acc.AccountName)
	}
	if len(store.accounts) != 1 {
		t.Errorf("duplicate account rows: %d", len(store.accounts))
	}
}

func TestSyncAccountsIdempotent(t *testing.T) {
	store := newFakeStore()
	r := NewReconciler(store)
	ctx := context.Background()
	input := []belvo.Account{
		belvoAccount("a1", 100, 90),
		belvoAccount("a2", 200, 180),
	}

	first := r.SyncAccounts(ctx, 1, input)
	second := r.SyncAccounts(ctx, 1, input)

	if first.SyncedCount != 2 || second.SyncedCount != 2 {
		t.Errorf("synced counts = %d/%d, want 2/2", first.SyncedCount, second.SyncedCount)
	}
	if len(store.accounts) != 2 {
		t.Errorf("row count after rerun = %d, want 2", len(store.accounts))
	}
	if store.accounts["a1"].CurrentBalance != 100 {
		t.Errorf("rerun changed balance to %v", store.accounts["a1"].CurrentBalance)
	}
}

func TestSyncAccountsPerRecordFailure(t *testing.T) {
	store := newFakeStore()
	store.failCreateAccountFor = "bad"
	r := NewReconciler(store)

	result := r.SyncAccounts(context.Background(), 1, []belvo.Account{
		belvoAccount("good-1", 10, 10),
		belvoAccount("bad", 20, 20),
		belvoAccount("good-2", 30, 30),
	})

	if result.SyncedCount != 2 {
		t.Errorf("SyncedCount = %d, want 2 (batch must continue past failures)", result.SyncedCount)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one", result.Errors)
	}
}

func TestSyncTransactionsSkipsExisting(t *testing.T) {
	store := newFakeStore()
	r := NewReconciler(store)
	ctx := context.Background()

	r.SyncAccounts(ctx, 1, []belvo.Account{belvoAccount("acc", 0, 0)})

	first := r.SyncTransactions(ctx, 1, []belvo.Transaction{belvoTxn("t1", "acc", -120)})
	if first.SyncedCount != 1 {
		t.Fatalf("first run = %+v, want 1 synced", first)
	}

	// User recategorizes; a duplicate sync run must neither double-count nor
	// overwrite the edit.
	edited := "groceries"
	store.transactions["t1"].Category = &edited

	second := r.SyncTransactions(ctx, 1, []belvo.Transaction{belvoTxn("t1", "acc", -120)})
	if second.SyncedCount != 0 || len(second.Errors) != 0 {
		t.Errorf("second run = %+v, want 0 synced 0 errors", second)
	}
	if len(store.transactions) != 1 {
		t.Errorf("transaction rows = %d, want 1", len(store.transactions))
	}
	if store.transactions["t1"].Category == nil || *store.transactions["t1"].Category != "groceries" {
		t.Errorf("user edit overwritten: %v", store.transactions["t1"].Category)
	}
}

func TestSyncTransactionsUnknownAccount(t *testing.T) {
	store := newFakeStore()
	r := NewReconciler(store)

	result := r.SyncTransactions(context.Background(), 1, []belvo.Transaction{
		belvoTxn("t1", "missing-account", -50),
	})

	if result.SyncedCount != 0 || len(result.Errors) != 1 {
		t.Errorf("result = %+v, want 0 synced 1 error", result)
	}
}

func TestMapTransactionSignSemantics(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		wantType   string
		wantAmount float64
	}{
		{"positive is income", 250.75, models.TransactionTypeIncome, 250.75},
		{"negative is expense with magnitude", -89.90, models.TransactionTypeExpense, 89.90},
		{"zero is expense", 0, models.TransactionTypeExpense, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MapTransaction(1, 2, belvoTxn("t", "acc", tt.amount))
			if err != nil {
				t.Fatalf("MapTransaction() error = %v", err)
			}
			if got.TransactionType != tt.wantType {
				t.Errorf("type = %s, want %s", got.TransactionType, tt.wantType)
			}
			if got.Amount != tt.wantAmount {
				t.Errorf("amount = %v, want %v", got.Amount, tt.wantAmount)
			}
		})
	}
}

func TestMapTransactionBadValueDate(t *testing.T) {
	txn := belvoTxn("t", "acc", -10)
	txn.ValueDate = "not-a-date"
	if _, err := MapTransaction(1, 2, txn); err == nil {
		t.Error("expected error for malformed value_date")
	}
}

func TestMaskAccountNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"001234567890", "7890"},
		{"1234", "1234"},
		{"12", "12"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := MaskAccountNumber(tt.in); got != tt.want {
			t.Errorf("MaskAccountNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

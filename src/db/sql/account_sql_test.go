package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
)

type errRow struct{ err error }

func (r errRow) Scan(dest ...any) error { return r.err }

// GetBankAccountByID gates the primary demotion in UpdateBankAccount, so the
// not-found mapping it relies on has to hold.
func TestScanBankAccountNotFound(t *testing.T) {
	_, err := scanBankAccount(errRow{pgx.ErrNoRows})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestScanBankAccountQueryError(t *testing.T) {
	cause := errors.New("connection reset")
	_, err := scanBankAccount(errRow{cause})
	if errors.Is(err, ErrNotFound) {
		t.Fatal("query errors must not map to ErrNotFound")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("err = %v, want wrapped %v", err, cause)
	}
}

package summary

import (
	"fmt"
	"testing"
	"time"

	"glassfin-server/src/models"
)

func strPtr(s string) *string { return &s }

func txn(typ string, amount float64, category, merchant string, date time.Time) models.Transaction {
	t := models.Transaction{
		TransactionType: typ,
		Amount:          amount,
		TransactionDate: date,
	}
	if category != "" {
		t.Category = strPtr(category)
	}
	if merchant != "" {
		t.MerchantName = strPtr(merchant)
	}
	return t
}

func TestAnalyticsEmpty(t *testing.T) {
	got := Analytics(nil)

	if got.TotalIncome != 0 || got.TotalExpenses != 0 || got.NetFlow != 0 {
		t.Errorf("empty input should yield zero totals, got %+v", got)
	}
	if len(got.TopCategories) != 0 || len(got.TopMerchants) != 0 {
		t.Errorf("empty input should yield empty breakdowns, got %+v", got)
	}
	if len(got.MonthlySummary) != 0 {
		t.Errorf("empty input should yield empty monthly summary, got %v", got.MonthlySummary)
	}
}

func TestAnalyticsTotals(t *testing.T) {
	date := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	transactions := []models.Transaction{
		txn(models.TransactionTypeIncome, 5000, "", "", date),
		txn(models.TransactionTypeExpense, 1200, "rent", "Landlord Co", date),
		txn(models.TransactionTypeExpense, 300.50, "groceries", "SuperMart", date),
		txn(models.TransactionTypeTransfer, 9999, "", "", date),
	}

	got := Analytics(transactions)

	if got.TotalIncome != 5000 {
		t.Errorf("TotalIncome = %v, want 5000", got.TotalIncome)
	}
	if got.TotalExpenses != 1500.50 {
		t.Errorf("TotalExpenses = %v, want 1500.50", got.TotalExpenses)
	}
	if got.NetFlow != got.TotalIncome-got.TotalExpenses {
		t.Errorf("NetFlow = %v, want income-expenses = %v", got.NetFlow, got.TotalIncome-got.TotalExpenses)
	}
}

func TestAnalyticsTransfersExcluded(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	got := Analytics([]models.Transaction{
		txn(models.TransactionTypeTransfer, 500, "transfers", "My Other Bank", date),
	})

	if got.TotalIncome != 0 || got.TotalExpenses != 0 {
		t.Errorf("transfers must not contribute to totals, got %+v", got)
	}
	if len(got.TopCategories) != 0 {
		t.Errorf("transfers must not appear in category breakdown, got %v", got.TopCategories)
	}
	if len(got.MonthlySummary) != 0 {
		t.Errorf("transfer-only months must not create buckets, got %v", got.MonthlySummary)
	}
}

func TestAnalyticsNilCategoryExcludedFromBreakdown(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	got := Analytics([]models.Transaction{
		txn(models.TransactionTypeExpense, 100, "", "", date),
		txn(models.TransactionTypeExpense, 50, "food", "", date),
	})

	// The uncategorized expense still counts toward the total.
	if got.TotalExpenses != 150 {
		t.Errorf("TotalExpenses = %v, want 150", got.TotalExpenses)
	}
	if len(got.TopCategories) != 1 || got.TopCategories[0].Name != "food" {
		t.Errorf("TopCategories = %v, want only food", got.TopCategories)
	}
	if len(got.TopMerchants) != 0 {
		t.Errorf("TopMerchants = %v, want empty", got.TopMerchants)
	}
}

func TestAnalyticsTopCategoriesCapAndOrder(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	var transactions []models.Transaction
	for i := 1; i <= 15; i++ {
		transactions = append(transactions,
			txn(models.TransactionTypeExpense, float64(i*10), fmt.Sprintf("cat-%02d", i), "", date))
	}

	got := Analytics(transactions)

	if len(got.TopCategories) != 10 {
		t.Fatalf("TopCategories length = %d, want 10", len(got.TopCategories))
	}
	for i := 1; i < len(got.TopCategories); i++ {
		if got.TopCategories[i].Total > got.TopCategories[i-1].Total {
			t.Errorf("TopCategories not descending at %d: %v", i, got.TopCategories)
		}
	}
	if got.TopCategories[0].Name != "cat-15" || got.TopCategories[0].Total != 150 {
		t.Errorf("largest category = %+v, want cat-15/150", got.TopCategories[0])
	}
}

func TestAnalyticsTiesKeepInputOrder(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	got := Analytics([]models.Transaction{
		txn(models.TransactionTypeExpense, 100, "first", "", date),
		txn(models.TransactionTypeExpense, 100, "second", "", date),
		txn(models.TransactionTypeExpense, 100, "third", "", date),
	})

	want := []string{"first", "second", "third"}
	for i, name := range want {
		if got.TopCategories[i].Name != name {
			t.Errorf("tie order: TopCategories[%d] = %s, want %s", i, got.TopCategories[i].Name, name)
		}
	}
}

func TestAnalyticsMerchantAccumulation(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	got := Analytics([]models.Transaction{
		txn(models.TransactionTypeExpense, 199, "entertainment", "Netflix", date),
		txn(models.TransactionTypeExpense, 199, "entertainment", "Netflix", date.AddDate(0, 0, 14)),
		txn(models.TransactionTypeExpense, 99, "entertainment", "Spotify", date),
	})

	if len(got.TopMerchants) != 2 {
		t.Fatalf("TopMerchants = %v, want 2 entries", got.TopMerchants)
	}
	if got.TopMerchants[0].Name != "Netflix" || got.TopMerchants[0].Total != 398 {
		t.Errorf("TopMerchants[0] = %+v, want Netflix/398", got.TopMerchants[0])
	}
}

func TestAnalyticsMonthlySummary(t *testing.T) {
	may := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	june := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	got := Analytics([]models.Transaction{
		txn(models.TransactionTypeIncome, 3000, "", "", may),
		txn(models.TransactionTypeExpense, 1000, "rent", "", may),
		txn(models.TransactionTypeIncome, 3000, "", "", june),
		txn(models.TransactionTypeExpense, 450, "rent", "", june),
		txn(models.TransactionTypeExpense, 550, "food", "", june),
	})

	if len(got.MonthlySummary) != 2 {
		t.Fatalf("MonthlySummary = %v, want 2 months", got.MonthlySummary)
	}

	mayFlow := got.MonthlySummary["2025-05"]
	if mayFlow.Income != 3000 || mayFlow.Expenses != 1000 || mayFlow.Net != 2000 {
		t.Errorf("2025-05 = %+v, want income 3000 expenses 1000 net 2000", mayFlow)
	}

	juneFlow := got.MonthlySummary["2025-06"]
	if juneFlow.Income != 3000 || juneFlow.Expenses != 1000 || juneFlow.Net != 2000 {
		t.Errorf("2025-06 = %+v, want income 3000 expenses 1000 net 2000", juneFlow)
	}
}

func TestAnalyticsNegativeExpenseAmounts(t *testing.T) {
	// Expense magnitudes are absolute regardless of stored sign.
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	got := Analytics([]models.Transaction{
		txn(models.TransactionTypeExpense, -75, "food", "Cafe", date),
	})

	if got.TotalExpenses != 75 {
		t.Errorf("TotalExpenses = %v, want 75", got.TotalExpenses)
	}
	if got.TopCategories[0].Total != 75 {
		t.Errorf("category total = %v, want 75", got.TopCategories[0].Total)
	}
	if got.MonthlySummary["2025-06"].Expenses != 75 {
		t.Errorf("monthly expenses = %v, want 75", got.MonthlySummary["2025-06"].Expenses)
	}
}

package summary

import (
	"math"
	"sort"

	"glassfin-server/src/models"
)

const topN = 10

// NamedTotal is one entry of a ranked breakdown (category or merchant).
type NamedTotal struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

type MonthlyFlow struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

type TransactionAnalytics struct {
	TotalIncome    float64                `json:"total_income"`
	TotalExpenses  float64                `json:"total_expenses"`
	NetFlow        float64                `json:"net_flow"`
	TopCategories  []NamedTotal           `json:"top_categories"`
	TopMerchants   []NamedTotal           `json:"top_merchants"`
	MonthlySummary map[string]MonthlyFlow `json:"monthly_summary"`
}

// Analytics folds one user's transactions, already restricted to the analysis
// window, into period totals, ranked expense breakdowns, and per-month flows.
// Transfers contribute to neither side.
func Analytics(transactions []models.Transaction) TransactionAnalytics {
	a := TransactionAnalytics{
		MonthlySummary: make(map[string]MonthlyFlow),
	}

	categories := newRanking()
	merchants := newRanking()

	for _, t := range transactions {
		switch t.TransactionType {
		case models.TransactionTypeIncome:
			a.TotalIncome += t.Amount
		case models.TransactionTypeExpense:
			amount := math.Abs(t.Amount)
			a.TotalExpenses += amount
			if t.Category != nil && *t.Category != "" {
				categories.add(*t.Category, amount)
			}
			if t.MerchantName != nil && *t.MerchantName != "" {
				merchants.add(*t.MerchantName, amount)
			}
		}

		monthKey := t.TransactionDate.Format("2006-01")
		flow := a.MonthlySummary[monthKey]
		switch t.TransactionType {
		case models.TransactionTypeIncome:
			flow.Income += t.Amount
		case models.TransactionTypeExpense:
			flow.Expenses += math.Abs(t.Amount)
		default:
			continue
		}
		a.MonthlySummary[monthKey] = flow
	}

	// Net per month only after all rows are folded.
	for month, flow := range a.MonthlySummary {
		flow.Net = flow.Income - flow.Expenses
		a.MonthlySummary[month] = flow
	}

	a.NetFlow = a.TotalIncome - a.TotalExpenses
	a.TopCategories = categories.top(topN)
	a.TopMerchants = merchants.top(topN)

	return a
}

// ranking accumulates totals by name, remembering first-seen order so that
// equal totals rank in stable input order.
type ranking struct {
	totals map[string]float64
	order  []string
}

func newRanking() *ranking {
	return &ranking{totals: make(map[string]float64)}
}

func (r *ranking) add(name string, amount float64) {
	if _, seen := r.totals[name]; !seen {
		r.order = append(r.order, name)
	}
	r.totals[name] += amount
}

func (r *ranking) top(n int) []NamedTotal {
	out := make([]NamedTotal, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, NamedTotal{Name: name, Total: r.totals[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

package summary

import (
	"testing"
	"time"

	"glassfin-server/src/models"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestSubscriptionsCostNormalization(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		subs        []models.Subscription
		wantMonthly float64
		wantYearly  float64
	}{
		{
			name: "monthly 100",
			subs: []models.Subscription{
				{Amount: 100, BillingFrequency: models.BillingMonthly, IsActive: true},
			},
			wantMonthly: 100,
			wantYearly:  1200,
		},
		{
			name: "yearly 1200 equals monthly 100",
			subs: []models.Subscription{
				{Amount: 1200, BillingFrequency: models.BillingYearly, IsActive: true},
			},
			wantMonthly: 100,
			wantYearly:  1200,
		},
		{
			name: "weekly uses average weeks per month",
			subs: []models.Subscription{
				{Amount: 10, BillingFrequency: models.BillingWeekly, IsActive: true},
			},
			wantMonthly: 43.30,
			wantYearly:  520,
		},
		{
			name: "inactive excluded",
			subs: []models.Subscription{
				{Amount: 100, BillingFrequency: models.BillingMonthly, IsActive: false},
			},
			wantMonthly: 0,
			wantYearly:  0,
		},
		{
			name: "mixed frequencies rounded only at the end",
			subs: []models.Subscription{
				{Amount: 100, BillingFrequency: models.BillingYearly, IsActive: true},
				{Amount: 100, BillingFrequency: models.BillingYearly, IsActive: true},
				{Amount: 100, BillingFrequency: models.BillingYearly, IsActive: true},
			},
			// 3 * 100/12 = 25 exactly; intermediate rounding of 8.33 would
			// give 24.99.
			wantMonthly: 25,
			wantYearly:  300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subscriptions(tt.subs, today)
			if got.MonthlyCost != tt.wantMonthly {
				t.Errorf("MonthlyCost = %v, want %v", got.MonthlyCost, tt.wantMonthly)
			}
			if got.YearlyCost != tt.wantYearly {
				t.Errorf("YearlyCost = %v, want %v", got.YearlyCost, tt.wantYearly)
			}
		})
	}
}

func TestSubscriptionsUpcomingWindow(t *testing.T) {
	today := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)

	sub := func(id int64, daysAhead int) models.Subscription {
		return models.Subscription{
			ID:               id,
			ServiceName:      "svc",
			Amount:           10,
			Currency:         "MXN",
			BillingFrequency: models.BillingMonthly,
			IsActive:         true,
			NextChargeDate:   timePtr(today.AddDate(0, 0, daysAhead)),
		}
	}

	tests := []struct {
		name    string
		subs    []models.Subscription
		wantIDs []int64
	}{
		{
			name:    "today is included",
			subs:    []models.Subscription{sub(1, 0)},
			wantIDs: []int64{1},
		},
		{
			name:    "day 30 is included, day 31 is not",
			subs:    []models.Subscription{sub(1, 31), sub(2, 30)},
			wantIDs: []int64{2},
		},
		{
			name:    "past charge dates excluded",
			subs:    []models.Subscription{sub(1, -1)},
			wantIDs: nil,
		},
		{
			name:    "sorted ascending by charge date",
			subs:    []models.Subscription{sub(1, 20), sub(2, 5), sub(3, 12)},
			wantIDs: []int64{2, 3, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subscriptions(tt.subs, today)
			if len(got.UpcomingCharges) != len(tt.wantIDs) {
				t.Fatalf("UpcomingCharges = %+v, want ids %v", got.UpcomingCharges, tt.wantIDs)
			}
			for i, id := range tt.wantIDs {
				if got.UpcomingCharges[i].SubscriptionID != id {
					t.Errorf("UpcomingCharges[%d].SubscriptionID = %d, want %d",
						i, got.UpcomingCharges[i].SubscriptionID, id)
				}
			}
		})
	}
}

func TestSubscriptionsTotalCountsInactive(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	got := Subscriptions([]models.Subscription{
		{Amount: 100, BillingFrequency: models.BillingMonthly, IsActive: true},
		{Amount: 50, BillingFrequency: models.BillingMonthly, IsActive: false},
	}, today)

	if got.TotalSubscriptions != 2 {
		t.Errorf("TotalSubscriptions = %d, want 2", got.TotalSubscriptions)
	}
	if got.ActiveSubscriptions != 1 {
		t.Errorf("ActiveSubscriptions = %d, want 1", got.ActiveSubscriptions)
	}
	if got.MonthlyCost != 100 {
		t.Errorf("MonthlyCost = %v, want 100 (cancelled subscriptions excluded)", got.MonthlyCost)
	}
}

func TestSubscriptionsNilNextChargeDate(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	got := Subscriptions([]models.Subscription{
		{Amount: 100, BillingFrequency: models.BillingMonthly, IsActive: true},
	}, today)

	if len(got.UpcomingCharges) != 0 {
		t.Errorf("nil next_charge_date must not appear in upcoming charges: %+v", got.UpcomingCharges)
	}
	if got.MonthlyCost != 100 {
		t.Errorf("MonthlyCost = %v, want 100", got.MonthlyCost)
	}
}

func TestNextChargeDate(t *testing.T) {
	tests := []struct {
		name      string
		first     time.Time
		frequency string
		want      time.Time
	}{
		{
			name:      "monthly preserves day of month",
			first:     time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			frequency: models.BillingMonthly,
			want:      time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "monthly clamps at month end",
			first:     time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			frequency: models.BillingMonthly,
			want:      time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "monthly clamps into leap february",
			first:     time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
			frequency: models.BillingMonthly,
			want:      time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "monthly december wraps the year",
			first:     time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC),
			frequency: models.BillingMonthly,
			want:      time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "yearly",
			first:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			frequency: models.BillingYearly,
			want:      time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "yearly from leap day clamps",
			first:     time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			frequency: models.BillingYearly,
			want:      time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "weekly adds seven days",
			first:     time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC),
			frequency: models.BillingWeekly,
			want:      time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "unknown frequency unchanged",
			first:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			frequency: "daily",
			want:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextChargeDate(tt.first, tt.frequency)
			if !got.Equal(tt.want) {
				t.Errorf("NextChargeDate(%v, %s) = %v, want %v", tt.first, tt.frequency, got, tt.want)
			}
		})
	}
}

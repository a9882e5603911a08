package handlers

import (
	"net/http/httptest"
	"testing"
)

func TestAnalyticsDays(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    int
		wantErr bool
	}{
		{name: "missing defaults to 30", query: "", want: 30},
		{name: "in range", query: "days=90", want: 90},
		{name: "lower bound", query: "days=1", want: 1},
		{name: "upper bound", query: "days=365", want: 365},
		{name: "zero rejected", query: "days=0", wantErr: true},
		{name: "negative rejected", query: "days=-5", wantErr: true},
		{name: "over a year rejected", query: "days=366", wantErr: true},
		{name: "non-numeric rejected", query: "days=abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/v1/transactions/analytics?"+tt.query, nil)
			got, err := analyticsDays(r)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("analyticsDays(%q) = %d, want error", tt.query, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("analyticsDays(%q): %v", tt.query, err)
			}
			if got != tt.want {
				t.Errorf("analyticsDays(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

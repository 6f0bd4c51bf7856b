package handlers

import (
	"testing"
	"time"

	"musubi/internal/models"
)

func day(t time.Time, offset int) time.Time {
	return models.DayOf(t).AddDate(0, 0, offset)
}

func TestRollupTotalsAndChart(t *testing.T) {
	today := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC) // a Wednesday

	days := []models.DailyAnalytics{
		{Date: day(today, -10), PageViews: 5, ProjectClicks: 2},
		{Date: day(today, -3), PageViews: 7, ProjectClicks: 1},
		{Date: day(today, 0), PageViews: 2, ProjectClicks: 4},
	}

	resp := rollup(days, today)

	if resp.Totals.PageViews != 14 {
		t.Errorf("total pageViews = %d, want 14", resp.Totals.PageViews)
	}
	if resp.Totals.ProjectClicks != 7 {
		t.Errorf("total projectClicks = %d, want 7", resp.Totals.ProjectClicks)
	}

	if len(resp.Chart.Labels) != 7 || len(resp.Chart.PageViews) != 7 || len(resp.Chart.ProjectClicks) != 7 {
		t.Fatalf("chart must have 7 points, got %d/%d/%d",
			len(resp.Chart.Labels), len(resp.Chart.PageViews), len(resp.Chart.ProjectClicks))
	}

	// Oldest to newest: positions 0..6 are today-6 .. today.
	if resp.Chart.Labels[6] != "Wed" {
		t.Errorf("last label = %q, want Wed", resp.Chart.Labels[6])
	}
	if resp.Chart.PageViews[6] != 2 {
		t.Errorf("today's chart views = %d, want 2", resp.Chart.PageViews[6])
	}
	if resp.Chart.PageViews[3] != 7 {
		t.Errorf("chart views 3 days ago = %d, want 7", resp.Chart.PageViews[3])
	}
	// Days with no document chart as zero.
	if resp.Chart.PageViews[5] != 0 {
		t.Errorf("chart views for silent day = %d, want 0", resp.Chart.PageViews[5])
	}
}

func TestRollupPercentChange(t *testing.T) {
	today := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)

	days := []models.DailyAnalytics{
		// Previous period: today-14 .. today-8.
		{Date: day(today, -9), PageViews: 8, ProjectClicks: 0},
		// Recent period: today-7 .. today.
		{Date: day(today, -2), PageViews: 10, ProjectClicks: 3},
	}

	resp := rollup(days, today)

	if got, want := resp.Changes.ViewsChange, 25.0; got != want {
		t.Errorf("viewsChange = %v, want %v", got, want)
	}
	// Previous clicks total is 0: change is defined as 0, never Inf/NaN.
	if got := resp.Changes.ClicksChange; got != 0 {
		t.Errorf("clicksChange = %v, want 0", got)
	}
}

func TestRollupRoundsToOneDecimal(t *testing.T) {
	today := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)

	days := []models.DailyAnalytics{
		{Date: day(today, -9), PageViews: 3},
		{Date: day(today, -1), PageViews: 4},
	}

	resp := rollup(days, today)

	// (4-3)/3*100 = 33.333... → 33.3
	if got, want := resp.Changes.ViewsChange, 33.3; got != want {
		t.Errorf("viewsChange = %v, want %v", got, want)
	}
}

func TestRollupEmpty(t *testing.T) {
	today := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)

	resp := rollup(nil, today)

	if resp.Totals.PageViews != 0 || resp.Totals.ProjectClicks != 0 {
		t.Errorf("totals = %+v, want zeros", resp.Totals)
	}
	if resp.Changes.ViewsChange != 0 || resp.Changes.ClicksChange != 0 {
		t.Errorf("changes = %+v, want zeros", resp.Changes)
	}
	for i, v := range resp.Chart.PageViews {
		if v != 0 {
			t.Errorf("chart views[%d] = %d, want 0", i, v)
		}
	}
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		recent, previous int
		want             float64
	}{
		{0, 0, 0},
		{50, 0, 0}, // zero previous defined as 0, not Inf
		{10, 10, 0},
		{15, 10, 50},
		{5, 10, -50},
		{1, 3, -66.7},
	}
	for _, tt := range tests {
		if got := percentChange(tt.recent, tt.previous); got != tt.want {
			t.Errorf("percentChange(%d, %d) = %v, want %v", tt.recent, tt.previous, got, tt.want)
		}
	}
}

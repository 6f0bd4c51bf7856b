package handlers

import (
	"log/slog"
	"math"
	"net/http"
	"time"

	"musubi/internal/models"
	"musubi/internal/store"
)

const (
	chartDays   = 7
	rollupDays  = 30
	compareDays = 7
)

// Analytics handles the public beacon endpoints and the session-gated
// dashboard rollup.
type Analytics struct {
	analytics *store.AnalyticsStore
	messages  *store.MessageStore
	projects  *store.ProjectStore
}

// NewAnalytics creates a new Analytics handler group.
func NewAnalytics(analytics *store.AnalyticsStore, messages *store.MessageStore, projects *store.ProjectStore) *Analytics {
	return &Analytics{analytics: analytics, messages: messages, projects: projects}
}

// PageView records a page-view beacon. Beacons are best-effort telemetry:
// a storage failure is logged and swallowed, never surfaced to the visitor.
func (h *Analytics) PageView(w http.ResponseWriter, r *http.Request) {
	if err := h.analytics.IncrementPageViews(r.Context(), time.Now()); err != nil {
		slog.Error("pageview beacon failed", "error", err)
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ProjectClick records a project-link click beacon. Same soft-fail contract
// as PageView.
func (h *Analytics) ProjectClick(w http.ResponseWriter, r *http.Request) {
	if err := h.analytics.IncrementProjectClicks(r.Context(), time.Now()); err != nil {
		slog.Error("project click beacon failed", "error", err)
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// statsTotals aggregates the trailing 30 days plus fresh store counts.
type statsTotals struct {
	PageViews      int   `json:"pageViews"`
	ProjectClicks  int   `json:"projectClicks"`
	UnreadMessages int64 `json:"unreadMessages"`
	TotalMessages  int64 `json:"totalMessages"`
	TotalProjects  int64 `json:"totalProjects"`
}

// statsChanges compares the trailing 7 days to the preceding 7 days.
type statsChanges struct {
	ViewsChange  float64 `json:"viewsChange"`
	ClicksChange float64 `json:"clicksChange"`
}

// statsChart is the 7-point day-by-day series, oldest to newest.
type statsChart struct {
	Labels        []string `json:"labels"`
	PageViews     []int    `json:"pageViews"`
	ProjectClicks []int    `json:"projectClicks"`
}

type statsResponse struct {
	Totals  statsTotals  `json:"totals"`
	Changes statsChanges `json:"changes"`
	Chart   statsChart   `json:"chart"`
}

// Stats returns the dashboard rollup. Session-gated. Message and project
// counts are read fresh at summary time, never cached in the day documents.
func (h *Analytics) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now()
	today := models.DayOf(now)

	days, err := h.analytics.Range(ctx, today.AddDate(0, 0, -rollupDays))
	if err != nil {
		slog.Error("analytics range failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load analytics")
		return
	}

	resp := rollup(days, today)

	if resp.Totals.UnreadMessages, err = h.messages.CountUnread(ctx); err != nil {
		slog.Error("unread count failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load analytics")
		return
	}
	if resp.Totals.TotalMessages, err = h.messages.Count(ctx); err != nil {
		slog.Error("message count failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load analytics")
		return
	}
	if resp.Totals.TotalProjects, err = h.projects.Count(ctx); err != nil {
		slog.Error("project count failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load analytics")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// rollup computes totals, week-over-week changes, and the chart series from
// the trailing 30 days of documents. Pure function; today must be a UTC day
// boundary and days sorted oldest first.
func rollup(days []models.DailyAnalytics, today time.Time) statsResponse {
	var resp statsResponse

	for _, d := range days {
		resp.Totals.PageViews += d.PageViews
		resp.Totals.ProjectClicks += d.ProjectClicks
	}

	recentStart := today.AddDate(0, 0, -compareDays)
	previousStart := recentStart.AddDate(0, 0, -compareDays)

	var recentViews, previousViews, recentClicks, previousClicks int
	for _, d := range days {
		switch {
		case !d.Date.Before(recentStart):
			recentViews += d.PageViews
			recentClicks += d.ProjectClicks
		case !d.Date.Before(previousStart):
			previousViews += d.PageViews
			previousClicks += d.ProjectClicks
		}
	}
	resp.Changes.ViewsChange = percentChange(recentViews, previousViews)
	resp.Changes.ClicksChange = percentChange(recentClicks, previousClicks)

	// Key by the normalized UTC day: the driver may decode stored dates in
	// a different location, and time.Time map keys compare location too.
	byDay := make(map[time.Time]models.DailyAnalytics, len(days))
	for _, d := range days {
		byDay[models.DayOf(d.Date)] = d
	}

	resp.Chart.Labels = make([]string, 0, chartDays)
	resp.Chart.PageViews = make([]int, 0, chartDays)
	resp.Chart.ProjectClicks = make([]int, 0, chartDays)
	for i := chartDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		d := byDay[day] // zero value for days with no document
		resp.Chart.Labels = append(resp.Chart.Labels, day.Format("Mon"))
		resp.Chart.PageViews = append(resp.Chart.PageViews, d.PageViews)
		resp.Chart.ProjectClicks = append(resp.Chart.ProjectClicks, d.ProjectClicks)
	}

	return resp
}

// percentChange returns (recent-previous)/previous*100 rounded to one
// decimal, defined as 0 when the previous period is empty.
func percentChange(recent, previous int) float64 {
	if previous == 0 {
		return 0
	}
	change := float64(recent-previous) / float64(previous) * 100
	return math.Round(change*10) / 10
}

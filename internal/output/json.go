package output

import (
	"time"

	"github.com/manav03panchal/controleplus/internal/poller"
	"github.com/manav03panchal/controleplus/internal/views"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// ListResponse is a listing of one collection.
type ListResponse struct {
	Kind  string      `json:"kind"`
	Count int         `json:"count"`
	Items interface{} `json:"items"`
}

// RecordResponse reports a saved or inspected record.
type RecordResponse struct {
	Status  string      `json:"status"`
	Kind    string      `json:"kind"`
	IDs     []string    `json:"ids,omitempty"`
	Record  interface{} `json:"record,omitempty"`
	Warning string      `json:"warning,omitempty"`
}

// ActionResponse reports a lifecycle or maintenance action.
type ActionResponse struct {
	Status  string `json:"status"`
	Action  string `json:"action"`
	Kind    string `json:"kind,omitempty"`
	ID      string `json:"id,omitempty"`
	Count   int    `json:"count"`
	Target  string `json:"target,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Message    string `json:"message,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// StatsOutput mirrors views.Stats.
type StatsOutput struct {
	Radios      int `json:"radios"`
	CityHalls   int `json:"city_halls"`
	Businesses  int `json:"businesses"`
	Artists     int `json:"artists"`
	Music       int `json:"music"`
	Promotions  int `json:"promotions"`
	Events      int `json:"events"`
	Blitzes     int `json:"blitzes"`
	Campaigns   int `json:"campaigns"`
	Submissions int `json:"pending_submissions"`
}

// NewStatsOutput converts dashboard stats.
func NewStatsOutput(s views.Stats) StatsOutput {
	return StatsOutput{
		Radios:      s.Radios,
		CityHalls:   s.CityHalls,
		Businesses:  s.Businesses,
		Artists:     s.Artists,
		Music:       s.Music,
		Promotions:  s.Promotions,
		Events:      s.Events,
		Blitzes:     s.Blitzes,
		Campaigns:   s.Campaigns,
		Submissions: s.Submissions,
	}
}

// ReleaseOutput is an upcoming release in JSON output.
type ReleaseOutput struct {
	MusicID     string `json:"music_id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	ReleaseDate string `json:"release_date"`
	Level       string `json:"level,omitempty"`
	Label       string `json:"label,omitempty"`
	DaysLeft    int    `json:"days_left"`
}

// NewReleaseOutput converts an upcoming release.
func NewReleaseOutput(r views.Release) ReleaseOutput {
	out := ReleaseOutput{
		MusicID:     r.Music.ID,
		Title:       r.Music.Title,
		Artist:      r.ArtistName,
		ReleaseDate: r.Music.ReleaseDate,
	}
	if r.Status != nil {
		out.Level = string(r.Status.Level)
		out.Label = r.Status.Label
		out.DaysLeft = r.Status.Days
	}
	return out
}

// DashboardResponse is the dashboard command output.
type DashboardResponse struct {
	Stats    StatsOutput     `json:"stats"`
	Releases []ReleaseOutput `json:"upcoming_releases"`
}

// NewDashboardResponse builds the dashboard output.
func NewDashboardResponse(stats views.Stats, releases []views.Release) *DashboardResponse {
	out := &DashboardResponse{
		Stats:    NewStatsOutput(stats),
		Releases: make([]ReleaseOutput, 0, len(releases)),
	}
	for _, r := range releases {
		out.Releases = append(out.Releases, NewReleaseOutput(r))
	}
	return out
}

// SyncStatusResponse is the sync status output.
type SyncStatusResponse struct {
	URL        string                  `json:"url"`
	Configured bool                    `json:"configured"`
	Pending    int                     `json:"pending_submissions"`
	Daemon     *DaemonOutput           `json:"daemon,omitempty"`
	Metrics    *poller.MetricsSnapshot `json:"metrics,omitempty"`
}

// DaemonOutput describes a running 'sync run' process.
type DaemonOutput struct {
	Running   bool   `json:"running"`
	PID       int    `json:"pid,omitempty"`
	StartedAt string `json:"started_at,omitempty"`
	Uptime    string `json:"uptime,omitempty"`
}

// NewDaemonOutput describes a daemon started at startedAt.
func NewDaemonOutput(pid int, startedAt, now time.Time) *DaemonOutput {
	if pid == 0 {
		return &DaemonOutput{Running: false}
	}
	return &DaemonOutput{
		Running:   true,
		PID:       pid,
		StartedAt: startedAt.Format(time.RFC3339),
		Uptime:    FormatDuration(now.Sub(startedAt)),
	}
}

// PrintError prints an error response.
func (j *JSONFormatter) PrintError(err error, message, suggestion string) error {
	return j.JSON(ErrorResponse{
		Status:     "error",
		Error:      err.Error(),
		Message:    message,
		Suggestion: suggestion,
	})
}

// PrintList prints a collection listing.
func (j *JSONFormatter) PrintList(kind string, items interface{}, count int) error {
	return j.JSON(ListResponse{Kind: kind, Count: count, Items: items})
}

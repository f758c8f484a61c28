package models

import "time"

// Reconciliation run statuses.
const (
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// RunCounts summarizes the row counts of a finished run.
type RunCounts struct {
	SearchLogs     int `json:"search_logs"`
	Enriched       int `json:"enriched"`
	Reconciled     int `json:"reconciled"`
	Dropped        int `json:"dropped"`
	MissingCatalog int `json:"missing_catalog"`
	NullPercentage int `json:"null_percentage"`
}

// Run is the bookkeeping row of one reconciliation batch.
type Run struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	RunCounts
	ErrorMessage string     `json:"error_message,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// Duration is the wall-clock time of a finished run, or zero while it is running.
func (r Run) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

package reconcile

import "fmt"

// ProgressUpdate represents a progress event during a reconciliation batch.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Batch phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Phase enumerates the stages of a batch.
type Phase int

const (
	Validate Phase = iota
	EnrichLog
	ReconcilePartitions
	Complete
)

func (p Phase) String() string {
	switch p {
	case Validate:
		return "validate"
	case EnrichLog:
		return "enrich"
	case ReconcilePartitions:
		return "reconcile"
	case Complete:
		return "complete"
	default:
		return ""
	}
}

func validatedUpdate(rows int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Validate,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Validated %d input rows", rows),
	}
}

func enrichedUpdate(enriched, logs int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   EnrichLog,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Matched %d of %d search log entries to videos", enriched, logs),
	}
}

func partitionUpdate(step, total, rows int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReconcilePartitions,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Reconciled partition %d/%d (%d rows)", step, total, rows),
	}
}

func completeUpdate(stats Stats) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Complete,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Reconciled %d records, dropped %d", stats.Reconciled, stats.Dropped()),
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

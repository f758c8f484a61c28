package reconcile

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/desertthunder/ytxrecon/internal/models"
	"github.com/desertthunder/ytxrecon/internal/shared"
)

const (
	DefaultPartitionSize = 500
	MaxWorkers           = 16
)

// Options controls how [Reconciler.Run] executes a batch.
type Options struct {
	Workers       int // Partition workers (default: 1, max: 16)
	PartitionSize int // Enriched rows per partition (default: 500)
}

// Stats counts what happened to every row of a batch.
type Stats struct {
	SearchLogs        int `json:"search_logs"`
	Matches           int `json:"matches"`
	Enriched          int `json:"enriched"`
	Unmatched         int `json:"unmatched"`
	UnknownPlaylist   int `json:"unknown_playlist"`
	UnknownSearchType int `json:"unknown_search_type"`
	MissingVideo      int `json:"missing_video"`
	Reconciled        int `json:"reconciled"`
	Unresolved        int `json:"unresolved"`      // kept, no catalog reference
	MissingCatalog    int `json:"missing_catalog"` // kept, reference without catalog row
	NullPercentage    int `json:"null_percentage"`
	Albums            int `json:"albums"`
	Playlists         int `json:"playlists"`
	Tracks            int `json:"tracks"`
}

// Dropped is the number of search log entries that did not produce a record.
func (s Stats) Dropped() int {
	return s.Unmatched + s.UnknownPlaylist + s.UnknownSearchType + s.MissingVideo
}

func (s *Stats) merge(o Stats) {
	s.UnknownPlaylist += o.UnknownPlaylist
	s.UnknownSearchType += o.UnknownSearchType
	s.MissingVideo += o.MissingVideo
	s.Reconciled += o.Reconciled
	s.Unresolved += o.Unresolved
	s.MissingCatalog += o.MissingCatalog
	s.NullPercentage += o.NullPercentage
	s.Albums += o.Albums
	s.Playlists += o.Playlists
	s.Tracks += o.Tracks
}

func (s *Stats) drop(reason DropReason) {
	switch reason {
	case DropUnknownPlaylist:
		s.UnknownPlaylist++
	case DropUnknownSearchType:
		s.UnknownSearchType++
	case DropMissingVideo:
		s.MissingVideo++
	}
}

func (s *Stats) keep(row ResolvedRow, rec models.ReconciledRecord) {
	s.Reconciled++
	if rec.PercentageInDesc == nil {
		s.NullPercentage++
	}
	if row.Ref == nil {
		s.Unresolved++
		return
	}
	if row.Entity == nil {
		s.MissingCatalog++
	}
	switch row.Ref.Kind {
	case models.KindAlbum:
		s.Albums++
	case models.KindPlaylist:
		s.Playlists++
	case models.KindTrack:
		s.Tracks++
	}
}

// Result is the output of one batch.
type Result struct {
	Records []models.ReconciledRecord
	Stats   Stats
}

// Reconciler runs the reconciliation stages over one validated snapshot.
type Reconciler struct {
	snapshot *models.Snapshot
	resolver *Resolver
	opts     Options
}

// NewReconciler validates every table of snapshot and indexes its lookups.
//
// Invalid rows or duplicate keys are reported as [shared.ErrInvalidInput]; no stage runs on a rejected snapshot.
func NewReconciler(snapshot *models.Snapshot, opts Options) (*Reconciler, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("%w: nil snapshot", shared.ErrInvalidInput)
	}
	if err := ValidateSnapshot(snapshot); err != nil {
		return nil, err
	}

	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Workers > MaxWorkers {
		opts.Workers = MaxWorkers
	}
	if opts.PartitionSize <= 0 {
		opts.PartitionSize = DefaultPartitionSize
	}

	return &Reconciler{
		snapshot: snapshot,
		resolver: NewResolver(snapshot),
		opts:     opts,
	}, nil
}

// Run executes enrichment, resolution and derivation and returns every reconciled record.
//
// Run only fails when ctx is done before the batch completes.
func (r *Reconciler) Run(ctx context.Context, progress chan<- ProgressUpdate) (*Result, error) {
	s := r.snapshot
	sendProgress(progress, validatedUpdate(snapshotRows(s)))

	enriched := Enrich(s.SearchLog, s.VideoMatches)
	stats := Stats{
		SearchLogs: len(s.SearchLog),
		Matches:    len(s.VideoMatches),
		Enriched:   len(enriched),
		Unmatched:  len(s.SearchLog) - len(enriched),
	}
	sendProgress(progress, enrichedUpdate(len(enriched), len(s.SearchLog)))

	parts := partition(enriched, r.opts.PartitionSize)
	outputs := make([]partitionOutput, len(parts))

	if err := r.runPartitions(ctx, parts, outputs, progress); err != nil {
		return nil, err
	}

	records := make([]models.ReconciledRecord, 0, len(enriched))
	for _, out := range outputs {
		records = append(records, out.records...)
		stats.merge(out.stats)
	}

	sendProgress(progress, completeUpdate(stats))

	return &Result{Records: records, Stats: stats}, nil
}

type partitionOutput struct {
	records []models.ReconciledRecord
	stats   Stats
}

// runPartitions fills outputs[i] for every parts[i]. Each worker only writes the slots of
// the partitions it picked up.
func (r *Reconciler) runPartitions(ctx context.Context, parts [][]EnrichedEntry, outputs []partitionOutput, progress chan<- ProgressUpdate) error {
	var done atomic.Int64
	total := len(parts)

	process := func(i int) {
		outputs[i] = r.reconcilePartition(parts[i])
		step := int(done.Add(1))
		sendProgress(progress, partitionUpdate(step, total, len(parts[i])))
	}

	if r.opts.Workers == 1 || total <= 1 {
		for i := range parts {
			if err := ctx.Err(); err != nil {
				return err
			}
			process(i)
		}
		return nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(r.opts.Workers, total); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				process(i)
			}
		}()
	}

	var err error
feed:
	for i := range parts {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return err
}

// reconcilePartition resolves every row of part before deriving it.
func (r *Reconciler) reconcilePartition(part []EnrichedEntry) partitionOutput {
	out := partitionOutput{records: make([]models.ReconciledRecord, 0, len(part))}
	for _, in := range part {
		row, reason := r.resolver.Resolve(in)
		if reason != Kept {
			out.stats.drop(reason)
			continue
		}
		rec := Derive(row)
		out.stats.keep(row, rec)
		out.records = append(out.records, rec)
	}
	return out
}

// Reconcile is a convenience wrapper that validates snapshot and runs a sequential batch.
func Reconcile(ctx context.Context, snapshot *models.Snapshot) (*Result, error) {
	r, err := NewReconciler(snapshot, Options{})
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, nil)
}

func partition(rows []EnrichedEntry, size int) [][]EnrichedEntry {
	var parts [][]EnrichedEntry
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		parts = append(parts, rows[start:end])
	}
	return parts
}

func snapshotRows(s *models.Snapshot) int {
	return len(s.SearchLog) + len(s.VideoMatches) + len(s.Videos) + len(s.Playlists) +
		len(s.SearchTypes) + len(s.Albums) + len(s.Tracks) + len(s.OtherPlaylists)
}

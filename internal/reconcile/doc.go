// Package reconcile turns a snapshot of search-log and catalog tables into reconciled records.
//
// # Stages
//
// A batch runs three stages, each consuming the previous one's output:
//
//  1. [Enrich] : Inner join of the search log with video matches on log_id.
//     Searches without a match never reach the output.
//
//  2. [Resolver.Resolve] : Picks the catalog kind with [ResolveRef] (album, then
//     playlist, then track), looks the reference up in its own catalog table
//     (optional join) and attaches the playlist name, search type label and video
//     metadata (required joins).
//
//  3. [Derive] : Computes percentage_in_desc, the HH:MM:SS duration
//     representations and difference_sec.
//
// # Filtering
//
// Nothing in a batch fails per row. Rows are either dropped (no match, unknown
// playlist or search type, missing video metadata) or kept with null catalog
// fields (missing catalog row, no reference at all). Both show up in [Stats].
// Malformed input is rejected by [NewReconciler] before any stage runs.
//
// # Execution
//
// [Reconciler.Run] enriches the whole log, then resolves and derives partitions
// of enriched rows, sequentially or on a worker pool. Output order does not
// depend on the number of workers. Progress is reported on an optional channel
// with non-blocking sends.
package reconcile

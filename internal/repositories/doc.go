// Package repositories implements SQLite persistence around the reconciler.
//
// Key Implementations:
//   - [SnapshotRepository] : Loads and stages the eight input tables of a batch
//   - [RunRepository] : Reconciliation run bookkeeping with status tracking
//   - [RecordRepository] : Reconciled records keyed by run and search log id
//   - [SearchTypeRepository] : Seeds the search type labels
//
// Every query takes a [context.Context] so that a cancelled batch also stops its I/O.
// Missing staging tables are reported as [shared.ErrInvalidInput].
package repositories

// Package models defines the tabular contracts consumed and produced by the reconciliation core.
//
// The package contains three categories of types:
//
// 1. Input rows: one struct per staging table of a [Snapshot]
//   - [SearchLogEntry] : A logged catalog search, referencing at most one catalog entity
//   - [VideoMatch] : The video a search was made for
//   - [VideoMetadata] : Title, channel, description and duration of a video
//   - [PlaylistLookup], [SearchTypeLookup] : Label tables
//   - [Album], [Track], [OtherPlaylist] : The three catalog tables
//
// 2. The catalog tagged union
//   - [CatalogKind] : album, playlist or track, resolved in [CatalogPrecedence] order
//   - [CatalogRef] : The kind plus the reference key found on a log entry
//   - [CatalogEntity] : The resolved variant flattened to title/artists/duration/total tracks
//
// 3. Output
//   - [ReconciledRecord] : One denormalized, metric-annotated row per successful search
//   - [Run] : Bookkeeping for a persisted batch
//
// Nullable columns are pointers; nil is SQL NULL.
package models

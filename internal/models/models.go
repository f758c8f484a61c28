// package models defines the data model for search log reconciliation
package models

import (
	"time"
)

// LikedSongsPlaylistID marks a search that was saved to the library rather than a user playlist.
const LikedSongsPlaylistID = "0"

// Search log status values written by the search job.
const (
	StatusSaved            = "saved"
	StatusSkippedDuringRun = "skipped (saved during the run)"
	StatusSkippedBeforeRun = "skipped (saved before the run)"
)

// SearchLogEntry is one search attempt against the streaming catalog.
//
// At most one of AlbumURI, PlaylistURI and TrackURI is set.
type SearchLogEntry struct {
	LogID          int64     `json:"log_id" validate:"min=0"`
	UserPlaylistID string    `json:"user_playlist_id"` // provisional upstream, passthrough only
	FoundOnTry     int64     `json:"found_on_try" validate:"min=0"`
	DifferenceMs   int64     `json:"difference_ms" validate:"min=0"`
	TracksInDesc   int64     `json:"tracks_in_desc" validate:"min=0"`
	Q              string    `json:"q"`
	SearchTypeID   int64     `json:"search_type_id" validate:"min=0"`
	Status         string    `json:"status" validate:"required"`
	AddedAt        time.Time `json:"added_at" validate:"required"`
	AlbumURI       *string   `json:"album_uri" validate:"omitnil,min=1"`
	PlaylistURI    *string   `json:"playlist_uri" validate:"omitnil,min=1"`
	TrackURI       *string   `json:"track_uri" validate:"omitnil,min=1"`
}

// VideoMatch links a search log entry to the video it was made for.
type VideoMatch struct {
	LogID             int64  `json:"log_id" validate:"min=0"`
	YouTubePlaylistID string `json:"youtube_playlist_id" validate:"required"`
	VideoID           string `json:"video_id" validate:"required"`
}

// VideoMetadata is a video record keyed by VideoID.
type VideoMetadata struct {
	VideoID     string `json:"video_id" validate:"required"`
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	Description string `json:"description"`
	DurationMs  int64  `json:"duration_ms" validate:"min=0"`
}

// PlaylistLookup maps a playlist id to its display name.
type PlaylistLookup struct {
	PlaylistID   string `json:"playlist_id" validate:"required"`
	PlaylistName string `json:"playlist_name"`
}

// SearchTypeLookup maps a search type id to its label.
type SearchTypeLookup struct {
	SearchTypeID   int64  `json:"search_type_id" validate:"min=0"`
	SearchTypeName string `json:"search_type_name" validate:"required"`
}

// DefaultSearchTypes returns the labels of the query strategies used by the search job.
func DefaultSearchTypes() []SearchTypeLookup {
	return []SearchTypeLookup{
		{SearchTypeID: 0, SearchTypeName: "colons"},
		{SearchTypeID: 1, SearchTypeName: "title only"},
		{SearchTypeID: 2, SearchTypeName: "keyword and quotes"},
		{SearchTypeID: 3, SearchTypeName: "channel name and title"},
	}
}

// Album is a row of the album catalog.
type Album struct {
	AlbumURI    string `json:"album_uri" validate:"required"`
	Title       string `json:"title"`
	Artists     string `json:"artists"`
	DurationMs  int64  `json:"duration_ms" validate:"min=0"`
	TotalTracks int64  `json:"total_tracks" validate:"min=0"`
}

// Track is a row of the track catalog. A track always counts as one track.
type Track struct {
	TrackURI   string `json:"track_uri" validate:"required"`
	Title      string `json:"title"`
	Artists    string `json:"artists"`
	DurationMs int64  `json:"duration_ms" validate:"min=0"`
}

// OtherPlaylist is a row of the catalog of playlists owned by other users.
type OtherPlaylist struct {
	PlaylistURI string `json:"playlist_uri" validate:"required"`
	Title       string `json:"title"`
	Owner       string `json:"owner"`
	DurationMs  int64  `json:"duration_ms" validate:"min=0"`
	TotalTracks int64  `json:"total_tracks" validate:"min=0"`
}

// Snapshot bundles every input table of one reconciliation batch.
type Snapshot struct {
	SearchLog      []SearchLogEntry   `json:"search_log"`
	VideoMatches   []VideoMatch       `json:"video_matches"`
	Videos         []VideoMetadata    `json:"youtube_videos"`
	Playlists      []PlaylistLookup   `json:"playlists"`
	SearchTypes    []SearchTypeLookup `json:"search_types"`
	Albums         []Album            `json:"spotify_albums"`
	Tracks         []Track            `json:"spotify_tracks"`
	OtherPlaylists []OtherPlaylist    `json:"spotify_playlists_others"`
}

// ReconciledRecord is the merged, metric-annotated output row for one successful search.
type ReconciledRecord struct {
	LogID          int64  `json:"log_id"`
	UserPlaylistID string `json:"user_playlist_id"`
	PlaylistName   string `json:"playlist_name"`

	YouTubePlaylistID        string `json:"youtube_playlist_id"`
	VideoID                  string `json:"video_id"`
	YouTubeTitle             string `json:"youtube_title"`
	YouTubeChannel           string `json:"youtube_channel"`
	YouTubeDescription       string `json:"youtube_description"`
	YouTubeDurationMs        int64  `json:"youtube_duration_ms"`
	YouTubeDurationTimestamp string `json:"youtube_duration_timestamp"`

	SpotifyType              *CatalogKind `json:"spotify_type"`
	SpotifyURI               *string      `json:"spotify_uri"`
	SpotifyTitle             *string      `json:"spotify_title"`
	SpotifyArtists           *string      `json:"spotify_artists"`
	SpotifyDurationMs        *int64       `json:"spotify_duration_ms"`
	SpotifyDurationTimestamp *string      `json:"spotify_duration_timestamp"`
	SpotifyTotalTracks       *int64       `json:"spotify_total_tracks"`

	FoundOnTry       int64    `json:"found_on_try"`
	DifferenceMs     int64    `json:"difference_ms"`
	DifferenceSec    float64  `json:"difference_sec"`
	TracksInDesc     int64    `json:"tracks_in_desc"`
	PercentageInDesc *float64 `json:"percentage_in_desc"`

	Q              string    `json:"q"`
	SearchTypeID   int64     `json:"search_type_id"`
	SearchTypeName string    `json:"search_type_name"`
	Status         string    `json:"status"`
	AddedAt        time.Time `json:"added_at"`
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

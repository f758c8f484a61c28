package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/ytxrecon/internal/models"
)

// StagingTables lists the input tables of a reconciliation batch.
var StagingTables = []string{
	"search_log",
	"video_matches",
	"youtube_videos",
	"playlists",
	"search_types",
	"spotify_albums",
	"spotify_tracks",
	"spotify_playlists_others",
}

// SnapshotRepository reads and writes the staging tables that make up a [models.Snapshot].
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Load reads every staging table into a snapshot.
//
// Rows are read in key order; search log entries are ordered by log_id.
func (r *SnapshotRepository) Load(ctx context.Context) (*models.Snapshot, error) {
	if err := RequireTables(ctx, r.db, StagingTables...); err != nil {
		return nil, err
	}

	var (
		s   models.Snapshot
		err error
	)

	s.SearchLog, err = queryAll(ctx, r.db, `
		SELECT
			log_id, user_playlist_id, found_on_try, difference_ms, tracks_in_desc,
			q, search_type_id, status, added_at, album_uri, playlist_uri, track_uri
		FROM search_log
		ORDER BY log_id
	`, scanSearchLogEntry)
	if err != nil {
		return nil, fmt.Errorf("failed to load search_log: %w", err)
	}

	s.VideoMatches, err = queryAll(ctx, r.db, `
		SELECT log_id, youtube_playlist_id, video_id FROM video_matches ORDER BY log_id
	`, func(rows *sql.Rows) (m models.VideoMatch, err error) {
		err = rows.Scan(&m.LogID, &m.YouTubePlaylistID, &m.VideoID)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load video_matches: %w", err)
	}

	s.Videos, err = queryAll(ctx, r.db, `
		SELECT video_id, title, channel, description, duration_ms FROM youtube_videos ORDER BY video_id
	`, func(rows *sql.Rows) (v models.VideoMetadata, err error) {
		err = rows.Scan(&v.VideoID, &v.Title, &v.Channel, &v.Description, &v.DurationMs)
		return v, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load youtube_videos: %w", err)
	}

	s.Playlists, err = queryAll(ctx, r.db, `
		SELECT playlist_id, playlist_name FROM playlists ORDER BY playlist_id
	`, func(rows *sql.Rows) (p models.PlaylistLookup, err error) {
		err = rows.Scan(&p.PlaylistID, &p.PlaylistName)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load playlists: %w", err)
	}

	s.SearchTypes, err = queryAll(ctx, r.db, `
		SELECT search_type_id, search_type_name FROM search_types ORDER BY search_type_id
	`, func(rows *sql.Rows) (st models.SearchTypeLookup, err error) {
		err = rows.Scan(&st.SearchTypeID, &st.SearchTypeName)
		return st, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load search_types: %w", err)
	}

	s.Albums, err = queryAll(ctx, r.db, `
		SELECT album_uri, title, artists, duration_ms, total_tracks FROM spotify_albums ORDER BY album_uri
	`, func(rows *sql.Rows) (a models.Album, err error) {
		err = rows.Scan(&a.AlbumURI, &a.Title, &a.Artists, &a.DurationMs, &a.TotalTracks)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load spotify_albums: %w", err)
	}

	s.Tracks, err = queryAll(ctx, r.db, `
		SELECT track_uri, title, artists, duration_ms FROM spotify_tracks ORDER BY track_uri
	`, func(rows *sql.Rows) (t models.Track, err error) {
		err = rows.Scan(&t.TrackURI, &t.Title, &t.Artists, &t.DurationMs)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load spotify_tracks: %w", err)
	}

	s.OtherPlaylists, err = queryAll(ctx, r.db, `
		SELECT playlist_uri, title, owner, duration_ms, total_tracks FROM spotify_playlists_others ORDER BY playlist_uri
	`, func(rows *sql.Rows) (p models.OtherPlaylist, err error) {
		err = rows.Scan(&p.PlaylistURI, &p.Title, &p.Owner, &p.DurationMs, &p.TotalTracks)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load spotify_playlists_others: %w", err)
	}

	return &s, nil
}

// Stage writes every row of s into the staging tables in one transaction.
//
// Existing rows with the same key are replaced.
func (r *SnapshotRepository) Stage(ctx context.Context, s *models.Snapshot) error {
	if err := RequireTables(ctx, r.db, StagingTables...); err != nil {
		return err
	}

	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, e := range s.SearchLog {
			if _, err := tx.ExecContext(ctx, `
				INSERT OR REPLACE INTO search_log (
					log_id, user_playlist_id, found_on_try, difference_ms, tracks_in_desc,
					q, search_type_id, status, added_at, album_uri, playlist_uri, track_uri
				)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				e.LogID, e.UserPlaylistID, e.FoundOnTry, e.DifferenceMs, e.TracksInDesc,
				e.Q, e.SearchTypeID, e.Status, e.AddedAt, e.AlbumURI, e.PlaylistURI, e.TrackURI,
			); err != nil {
				return fmt.Errorf("failed to stage search log entry %d: %w", e.LogID, err)
			}
		}

		for _, m := range s.VideoMatches {
			if _, err := tx.ExecContext(ctx,
				"INSERT OR REPLACE INTO video_matches (log_id, youtube_playlist_id, video_id) VALUES (?, ?, ?)",
				m.LogID, m.YouTubePlaylistID, m.VideoID,
			); err != nil {
				return fmt.Errorf("failed to stage video match %d: %w", m.LogID, err)
			}
		}

		for _, v := range s.Videos {
			if _, err := tx.ExecContext(ctx,
				"INSERT OR REPLACE INTO youtube_videos (video_id, title, channel, description, duration_ms) VALUES (?, ?, ?, ?, ?)",
				v.VideoID, v.Title, v.Channel, v.Description, v.DurationMs,
			); err != nil {
				return fmt.Errorf("failed to stage video %s: %w", v.VideoID, err)
			}
		}

		for _, p := range s.Playlists {
			if _, err := tx.ExecContext(ctx,
				"INSERT OR REPLACE INTO playlists (playlist_id, playlist_name) VALUES (?, ?)",
				p.PlaylistID, p.PlaylistName,
			); err != nil {
				return fmt.Errorf("failed to stage playlist %s: %w", p.PlaylistID, err)
			}
		}

		if err := seedSearchTypes(ctx, tx, s.SearchTypes); err != nil {
			return err
		}

		for _, a := range s.Albums {
			if _, err := tx.ExecContext(ctx,
				"INSERT OR REPLACE INTO spotify_albums (album_uri, title, artists, duration_ms, total_tracks) VALUES (?, ?, ?, ?, ?)",
				a.AlbumURI, a.Title, a.Artists, a.DurationMs, a.TotalTracks,
			); err != nil {
				return fmt.Errorf("failed to stage album %s: %w", a.AlbumURI, err)
			}
		}

		for _, t := range s.Tracks {
			if _, err := tx.ExecContext(ctx,
				"INSERT OR REPLACE INTO spotify_tracks (track_uri, title, artists, duration_ms) VALUES (?, ?, ?, ?)",
				t.TrackURI, t.Title, t.Artists, t.DurationMs,
			); err != nil {
				return fmt.Errorf("failed to stage track %s: %w", t.TrackURI, err)
			}
		}

		for _, p := range s.OtherPlaylists {
			if _, err := tx.ExecContext(ctx,
				"INSERT OR REPLACE INTO spotify_playlists_others (playlist_uri, title, owner, duration_ms, total_tracks) VALUES (?, ?, ?, ?, ?)",
				p.PlaylistURI, p.Title, p.Owner, p.DurationMs, p.TotalTracks,
			); err != nil {
				return fmt.Errorf("failed to stage playlist %s: %w", p.PlaylistURI, err)
			}
		}

		return nil
	})
}

func scanSearchLogEntry(rows *sql.Rows) (models.SearchLogEntry, error) {
	var (
		e           models.SearchLogEntry
		albumURI    sql.NullString
		playlistURI sql.NullString
		trackURI    sql.NullString
	)

	err := rows.Scan(
		&e.LogID, &e.UserPlaylistID, &e.FoundOnTry, &e.DifferenceMs, &e.TracksInDesc,
		&e.Q, &e.SearchTypeID, &e.Status, &e.AddedAt, &albumURI, &playlistURI, &trackURI,
	)
	if err != nil {
		return e, fmt.Errorf("failed to scan search log entry: %w", err)
	}

	e.AlbumURI = nullString(albumURI)
	e.PlaylistURI = nullString(playlistURI)
	e.TrackURI = nullString(trackURI)

	return e, nil
}

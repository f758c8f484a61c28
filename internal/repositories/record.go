package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/ytxrecon/internal/models"
)

// RecordRepository persists reconciled records per run.
type RecordRepository struct {
	db *sql.DB
}

// NewRecordRepository creates a new RecordRepository with the given database connection
func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// SaveAll inserts records for runID in a single transaction.
//
// Either every record is stored or none is.
func (r *RecordRepository) SaveAll(ctx context.Context, runID string, records []models.ReconciledRecord) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO reconciled_records (
				run_id, log_id, user_playlist_id, playlist_name,
				youtube_playlist_id, video_id, youtube_title, youtube_channel, youtube_description,
				youtube_duration_ms, youtube_duration_timestamp,
				spotify_type, spotify_uri, spotify_title, spotify_artists,
				spotify_duration_ms, spotify_duration_timestamp, spotify_total_tracks,
				found_on_try, difference_ms, difference_sec, tracks_in_desc, percentage_in_desc,
				q, search_type_id, search_type_name, status, added_at
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, rec := range records {
			_, err := stmt.ExecContext(ctx,
				runID, rec.LogID, rec.UserPlaylistID, rec.PlaylistName,
				rec.YouTubePlaylistID, rec.VideoID, rec.YouTubeTitle, rec.YouTubeChannel, rec.YouTubeDescription,
				rec.YouTubeDurationMs, rec.YouTubeDurationTimestamp,
				kindValue(rec.SpotifyType), rec.SpotifyURI, rec.SpotifyTitle, rec.SpotifyArtists,
				rec.SpotifyDurationMs, rec.SpotifyDurationTimestamp, rec.SpotifyTotalTracks,
				rec.FoundOnTry, rec.DifferenceMs, rec.DifferenceSec, rec.TracksInDesc, rec.PercentageInDesc,
				rec.Q, rec.SearchTypeID, rec.SearchTypeName, rec.Status, rec.AddedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert record %d: %w", rec.LogID, err)
			}
		}

		return nil
	})
}

// ListByRun returns the records of runID in the order they were saved.
func (r *RecordRepository) ListByRun(ctx context.Context, runID string) ([]models.ReconciledRecord, error) {
	query := `
		SELECT
			log_id, user_playlist_id, playlist_name,
			youtube_playlist_id, video_id, youtube_title, youtube_channel, youtube_description,
			youtube_duration_ms, youtube_duration_timestamp,
			spotify_type, spotify_uri, spotify_title, spotify_artists,
			spotify_duration_ms, spotify_duration_timestamp, spotify_total_tracks,
			found_on_try, difference_ms, difference_sec, tracks_in_desc, percentage_in_desc,
			q, search_type_id, search_type_name, status, added_at
		FROM reconciled_records
		WHERE run_id = ?
		ORDER BY rowid
	`

	records, err := queryAll(ctx, r.db, query, scanRecord, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	return records, nil
}

// scanRecord scans a row from [sql.Rows] into a [models.ReconciledRecord]
func scanRecord(rows *sql.Rows) (models.ReconciledRecord, error) {
	var (
		rec              models.ReconciledRecord
		spotifyType      sql.NullString
		spotifyURI       sql.NullString
		spotifyTitle     sql.NullString
		spotifyArtists   sql.NullString
		spotifyDuration  sql.NullInt64
		spotifyTimestamp sql.NullString
		spotifyTotal     sql.NullInt64
		percentageInDesc sql.NullFloat64
	)

	err := rows.Scan(
		&rec.LogID, &rec.UserPlaylistID, &rec.PlaylistName,
		&rec.YouTubePlaylistID, &rec.VideoID, &rec.YouTubeTitle, &rec.YouTubeChannel, &rec.YouTubeDescription,
		&rec.YouTubeDurationMs, &rec.YouTubeDurationTimestamp,
		&spotifyType, &spotifyURI, &spotifyTitle, &spotifyArtists,
		&spotifyDuration, &spotifyTimestamp, &spotifyTotal,
		&rec.FoundOnTry, &rec.DifferenceMs, &rec.DifferenceSec, &rec.TracksInDesc, &percentageInDesc,
		&rec.Q, &rec.SearchTypeID, &rec.SearchTypeName, &rec.Status, &rec.AddedAt,
	)
	if err != nil {
		return rec, fmt.Errorf("failed to scan record: %w", err)
	}

	if spotifyType.Valid {
		kind, err := models.ParseCatalogKind(spotifyType.String)
		if err != nil {
			return rec, fmt.Errorf("record %d: %w", rec.LogID, err)
		}
		rec.SpotifyType = &kind
	}
	rec.SpotifyURI = nullString(spotifyURI)
	rec.SpotifyTitle = nullString(spotifyTitle)
	rec.SpotifyArtists = nullString(spotifyArtists)
	rec.SpotifyDurationMs = nullInt64(spotifyDuration)
	rec.SpotifyDurationTimestamp = nullString(spotifyTimestamp)
	rec.SpotifyTotalTracks = nullInt64(spotifyTotal)
	rec.PercentageInDesc = nullFloat64(percentageInDesc)

	return rec, nil
}

func kindValue(k *models.CatalogKind) any {
	if k == nil {
		return nil
	}
	return string(*k)
}

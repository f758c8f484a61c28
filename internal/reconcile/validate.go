package reconcile

import (
	"fmt"

	"github.com/desertthunder/ytxrecon/internal/models"
	"github.com/desertthunder/ytxrecon/internal/shared"
)

// ValidateSnapshot checks every row of every table and rejects duplicate keys.
//
// Duplicate keys would multiply rows in the joins, so they are treated as malformed input.
func ValidateSnapshot(s *models.Snapshot) error {
	if err := validateTable("search_log", s.SearchLog, func(e models.SearchLogEntry) any { return e.LogID }); err != nil {
		return err
	}
	if err := validateTable("video_matches", s.VideoMatches, func(m models.VideoMatch) any { return m.LogID }); err != nil {
		return err
	}
	if err := validateTable("youtube_videos", s.Videos, func(v models.VideoMetadata) any { return v.VideoID }); err != nil {
		return err
	}
	if err := validateTable("playlists", s.Playlists, func(p models.PlaylistLookup) any { return p.PlaylistID }); err != nil {
		return err
	}
	if err := validateTable("search_types", s.SearchTypes, func(st models.SearchTypeLookup) any { return st.SearchTypeID }); err != nil {
		return err
	}
	if err := validateTable("spotify_albums", s.Albums, func(a models.Album) any { return a.AlbumURI }); err != nil {
		return err
	}
	if err := validateTable("spotify_tracks", s.Tracks, func(t models.Track) any { return t.TrackURI }); err != nil {
		return err
	}
	return validateTable("spotify_playlists_others", s.OtherPlaylists, func(p models.OtherPlaylist) any { return p.PlaylistURI })
}

func validateTable[T any](table string, rows []T, key func(T) any) error {
	seen := make(map[any]int, len(rows))
	for i, row := range rows {
		if err := shared.ValidateStruct(row); err != nil {
			return fmt.Errorf("%s row %d: %w", table, i, err)
		}
		k := key(row)
		if first, dup := seen[k]; dup {
			return fmt.Errorf("%w: %s rows %d and %d share key %v", shared.ErrInvalidInput, table, first, i, k)
		}
		seen[k] = i
	}
	return nil
}

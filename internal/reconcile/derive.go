package reconcile

import (
	"fmt"
	"math"

	"github.com/desertthunder/ytxrecon/internal/models"
)

const secondsPerDay = 24 * 60 * 60

// PercentageInDesc is the share of catalog tracks found in the video description,
// rounded to one decimal place.
//
// Returns nil when totalTracks is nil or zero.
func PercentageInDesc(tracksInDesc int64, totalTracks *int64) *float64 {
	if totalTracks == nil || *totalTracks == 0 {
		return nil
	}
	pct := round1(float64(tracksInDesc) / float64(*totalTracks) * 100)
	return &pct
}

// DurationTimestamp renders whole seconds of ms as a time of day (HH:MM:SS).
//
// Durations of 24h or more wrap around.
func DurationTimestamp(ms int64) string {
	secs := ms / 1000
	secs = ((secs % secondsPerDay) + secondsPerDay) % secondsPerDay
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
}

// DifferenceSec converts a millisecond difference to seconds with one decimal place.
func DifferenceSec(ms int64) float64 {
	return round1(float64(ms) / 1000)
}

// round1 rounds half away from zero to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Derive flattens a resolved row into a [models.ReconciledRecord] and computes its metrics.
func Derive(row ResolvedRow) models.ReconciledRecord {
	rec := models.ReconciledRecord{
		LogID:          row.Entry.LogID,
		UserPlaylistID: row.Entry.UserPlaylistID,
		PlaylistName:   row.PlaylistName,

		YouTubePlaylistID:        row.Match.YouTubePlaylistID,
		VideoID:                  row.Match.VideoID,
		YouTubeTitle:             row.Video.Title,
		YouTubeChannel:           row.Video.Channel,
		YouTubeDescription:       row.Video.Description,
		YouTubeDurationMs:        row.Video.DurationMs,
		YouTubeDurationTimestamp: DurationTimestamp(row.Video.DurationMs),

		FoundOnTry:    row.Entry.FoundOnTry,
		DifferenceMs:  row.Entry.DifferenceMs,
		DifferenceSec: DifferenceSec(row.Entry.DifferenceMs),
		TracksInDesc:  row.Entry.TracksInDesc,

		Q:              row.Entry.Q,
		SearchTypeID:   row.Entry.SearchTypeID,
		SearchTypeName: row.SearchTypeName,
		Status:         row.Entry.Status,
		AddedAt:        row.Entry.AddedAt,
	}

	if row.Ref != nil {
		rec.SpotifyType = models.Ptr(row.Ref.Kind)
		rec.SpotifyURI = models.Ptr(row.Ref.URI)
	}

	if e := row.Entity; e != nil {
		rec.SpotifyTitle = models.Ptr(e.Title)
		rec.SpotifyArtists = models.Ptr(e.Artists)
		rec.SpotifyDurationMs = models.Ptr(e.DurationMs)
		rec.SpotifyDurationTimestamp = models.Ptr(DurationTimestamp(e.DurationMs))
		rec.SpotifyTotalTracks = models.Ptr(e.TotalTracks)
	}

	rec.PercentageInDesc = PercentageInDesc(rec.TracksInDesc, rec.SpotifyTotalTracks)

	return rec
}

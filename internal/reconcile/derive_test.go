package reconcile

import (
	"testing"

	"github.com/desertthunder/ytxrecon/internal/models"
)

func TestPercentageInDesc(t *testing.T) {
	tt := []struct {
		name         string
		tracksInDesc int64
		totalTracks  *int64
		want         *float64
	}{
		{name: "half of the album", tracksInDesc: 5, totalTracks: models.Ptr[int64](10), want: models.Ptr(50.0)},
		{name: "one third rounds down", tracksInDesc: 1, totalTracks: models.Ptr[int64](3), want: models.Ptr(33.3)},
		{name: "two thirds rounds up", tracksInDesc: 2, totalTracks: models.Ptr[int64](3), want: models.Ptr(66.7)},
		{name: "single track", tracksInDesc: 1, totalTracks: models.Ptr[int64](1), want: models.Ptr(100.0)},
		{name: "nothing found", tracksInDesc: 0, totalTracks: models.Ptr[int64](12), want: models.Ptr(0.0)},
		{name: "zero total is null", tracksInDesc: 3, totalTracks: models.Ptr[int64](0), want: nil},
		{name: "null total is null", tracksInDesc: 3, totalTracks: nil, want: nil},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got := PercentageInDesc(tc.tracksInDesc, tc.totalTracks)
			switch {
			case tc.want == nil && got != nil:
				t.Errorf("PercentageInDesc() = %v, want nil", *got)
			case tc.want != nil && got == nil:
				t.Errorf("PercentageInDesc() = nil, want %v", *tc.want)
			case tc.want != nil && *got != *tc.want:
				t.Errorf("PercentageInDesc() = %v, want %v", *got, *tc.want)
			}
		})
	}
}

func TestDurationTimestamp(t *testing.T) {
	tt := []struct {
		ms   int64
		want string
	}{
		{ms: 0, want: "00:00:00"},
		{ms: 999, want: "00:00:00"},
		{ms: 1000, want: "00:00:01"},
		{ms: 200000, want: "00:03:20"},
		{ms: 3723999, want: "01:02:03"},
		{ms: 86399000, want: "23:59:59"},
		{ms: 86400000, want: "00:00:00"},
		{ms: 90061000, want: "01:01:01"},
	}

	for _, tc := range tt {
		t.Run(tc.want, func(t *testing.T) {
			if got := DurationTimestamp(tc.ms); got != tc.want {
				t.Errorf("DurationTimestamp(%d) = %s, want %s", tc.ms, got, tc.want)
			}
		})
	}
}

func TestDifferenceSec(t *testing.T) {
	tt := []struct {
		ms   int64
		want float64
	}{
		{ms: 0, want: 0},
		{ms: 1234, want: 1.2},
		{ms: 2500, want: 2.5},
		{ms: 999, want: 1.0},
		{ms: 4960, want: 5.0},
		{ms: 61049, want: 61.0},
		{ms: 39999, want: 40.0},
	}

	for _, tc := range tt {
		if got := DifferenceSec(tc.ms); got != tc.want {
			t.Errorf("DifferenceSec(%d) = %v, want %v", tc.ms, got, tc.want)
		}
	}
}

func TestDerive(t *testing.T) {
	entry := models.SearchLogEntry{
		LogID:          7,
		UserPlaylistID: "user-pl",
		FoundOnTry:     1,
		DifferenceMs:   1234,
		TracksInDesc:   1,
		Q:              "track:Song artist:Band",
		SearchTypeID:   0,
		Status:         models.StatusSkippedBeforeRun,
		TrackURI:       models.Ptr("spotify:track:1"),
	}
	track := models.Track{TrackURI: "spotify:track:1", Title: "Song", Artists: "Band", DurationMs: 185000}.Entity()

	t.Run("resolved track", func(t *testing.T) {
		rec := Derive(ResolvedRow{
			Entry:          entry,
			Match:          models.VideoMatch{LogID: 7, YouTubePlaylistID: "PL1", VideoID: "vid"},
			Video:          models.VideoMetadata{VideoID: "vid", Title: "Band - Song", Channel: "Band - Topic", DurationMs: 186234},
			PlaylistName:   "Road trip",
			SearchTypeName: "colons",
			Ref:            &models.CatalogRef{Kind: models.KindTrack, URI: "spotify:track:1"},
			Entity:         &track,
		})

		if rec.SpotifyType == nil || *rec.SpotifyType != models.KindTrack {
			t.Errorf("expected spotify_type track, got %v", rec.SpotifyType)
		}
		if rec.SpotifyTotalTracks == nil || *rec.SpotifyTotalTracks != 1 {
			t.Errorf("expected 1 total track, got %v", rec.SpotifyTotalTracks)
		}
		if rec.PercentageInDesc == nil || *rec.PercentageInDesc != 100 {
			t.Errorf("expected 100%% in description, got %v", rec.PercentageInDesc)
		}
		if rec.YouTubeDurationTimestamp != "00:03:06" {
			t.Errorf("youtube_duration_timestamp = %s", rec.YouTubeDurationTimestamp)
		}
		if rec.SpotifyDurationTimestamp == nil || *rec.SpotifyDurationTimestamp != "00:03:05" {
			t.Errorf("spotify_duration_timestamp = %v", rec.SpotifyDurationTimestamp)
		}
		if rec.DifferenceSec != 1.2 {
			t.Errorf("difference_sec = %v", rec.DifferenceSec)
		}
		if rec.UserPlaylistID != "user-pl" || rec.Status != models.StatusSkippedBeforeRun || rec.SearchTypeName != "colons" {
			t.Errorf("passthrough fields not copied: %+v", rec)
		}
	})

	t.Run("reference without catalog row", func(t *testing.T) {
		rec := Derive(ResolvedRow{
			Entry: entry,
			Ref:   &models.CatalogRef{Kind: models.KindTrack, URI: "spotify:track:1"},
		})

		if rec.SpotifyType == nil || rec.SpotifyURI == nil {
			t.Fatal("type and uri come from the reference and must be set")
		}
		if rec.SpotifyTitle != nil || rec.SpotifyArtists != nil || rec.SpotifyDurationMs != nil ||
			rec.SpotifyDurationTimestamp != nil || rec.SpotifyTotalTracks != nil {
			t.Errorf("catalog fields should be null: %+v", rec)
		}
		if rec.PercentageInDesc != nil {
			t.Errorf("percentage should be null without total tracks, got %v", *rec.PercentageInDesc)
		}
	})
}

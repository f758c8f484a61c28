// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/desertthunder/ytxrecon/internal/models"
)

// AddedAt is the timestamp used by fixture search log entries.
var AddedAt = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

// SnapshotBuilder assembles a [models.Snapshot] with consistent lookups.
//
// NewSnapshot seeds the default search types and the "PL1" playlist so that
// fixture rows only fail the required joins when a test asks for it.
type SnapshotBuilder struct {
	s models.Snapshot
}

// NewSnapshot returns a builder seeded with lookup rows.
func NewSnapshot() *SnapshotBuilder {
	return &SnapshotBuilder{s: models.Snapshot{
		Playlists:   []models.PlaylistLookup{{PlaylistID: "PL1", PlaylistName: "Road trip"}},
		SearchTypes: models.DefaultSearchTypes(),
	}}
}

// Search adds a search log entry, a match to video "v{logID}" in playlist PL1 and the video's metadata.
func (b *SnapshotBuilder) Search(entry models.SearchLogEntry, videoDurationMs int64) *SnapshotBuilder {
	if entry.Status == "" {
		entry.Status = models.StatusSaved
	}
	if entry.AddedAt.IsZero() {
		entry.AddedAt = AddedAt
	}
	if entry.UserPlaylistID == "" {
		entry.UserPlaylistID = models.LikedSongsPlaylistID
	}

	videoID := VideoID(entry.LogID)
	b.s.SearchLog = append(b.s.SearchLog, entry)
	b.s.VideoMatches = append(b.s.VideoMatches, models.VideoMatch{
		LogID:             entry.LogID,
		YouTubePlaylistID: "PL1",
		VideoID:           videoID,
	})
	b.s.Videos = append(b.s.Videos, models.VideoMetadata{
		VideoID:     videoID,
		Title:       "Video " + videoID,
		Channel:     "Channel - Topic",
		Description: "tracklist",
		DurationMs:  videoDurationMs,
	})
	return b
}

// Unmatched adds a search log entry without a video match.
func (b *SnapshotBuilder) Unmatched(entry models.SearchLogEntry) *SnapshotBuilder {
	if entry.Status == "" {
		entry.Status = models.StatusSaved
	}
	if entry.AddedAt.IsZero() {
		entry.AddedAt = AddedAt
	}
	b.s.SearchLog = append(b.s.SearchLog, entry)
	return b
}

func (b *SnapshotBuilder) Album(a models.Album) *SnapshotBuilder {
	b.s.Albums = append(b.s.Albums, a)
	return b
}

func (b *SnapshotBuilder) Track(t models.Track) *SnapshotBuilder {
	b.s.Tracks = append(b.s.Tracks, t)
	return b
}

func (b *SnapshotBuilder) OtherPlaylist(p models.OtherPlaylist) *SnapshotBuilder {
	b.s.OtherPlaylists = append(b.s.OtherPlaylists, p)
	return b
}

// Mutate applies fn to the snapshot under construction.
func (b *SnapshotBuilder) Mutate(fn func(*models.Snapshot)) *SnapshotBuilder {
	fn(&b.s)
	return b
}

// Build returns the assembled snapshot.
func (b *SnapshotBuilder) Build() *models.Snapshot {
	s := b.s
	return &s
}

// VideoID is the fixture video id matched to logID.
func VideoID(logID int64) string {
	return "v" + strconv.FormatInt(logID, 10)
}

// ExampleAlbumSnapshot is the album search used throughout the docs:
// album "A1" titled "X" by "Y", 200000ms and 10 tracks, with 5 titles in the description.
func ExampleAlbumSnapshot() *models.Snapshot {
	return NewSnapshot().
		Search(models.SearchLogEntry{
			LogID:        1,
			TracksInDesc: 5,
			DifferenceMs: 2500,
			Q:            "album \"X\"",
			SearchTypeID: 2,
			AlbumURI:     models.Ptr("A1"),
		}, 202500).
		Album(models.Album{AlbumURI: "A1", Title: "X", Artists: "Y", DurationMs: 200000, TotalTracks: 10}).
		Build()
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

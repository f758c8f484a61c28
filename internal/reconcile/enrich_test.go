package reconcile

import (
	"testing"

	"github.com/desertthunder/ytxrecon/internal/models"
)

func TestEnrich(t *testing.T) {
	logs := []models.SearchLogEntry{{LogID: 3}, {LogID: 1}, {LogID: 2}, {LogID: 4}}
	matches := []models.VideoMatch{
		{LogID: 1, YouTubePlaylistID: "PL1", VideoID: "a"},
		{LogID: 4, YouTubePlaylistID: "PL1", VideoID: "d"},
		{LogID: 3, YouTubePlaylistID: "PL2", VideoID: "c"},
		{LogID: 99, YouTubePlaylistID: "PL1", VideoID: "orphan"},
	}

	enriched := Enrich(logs, matches)

	if len(enriched) != 3 {
		t.Fatalf("expected 3 enriched entries, got %d", len(enriched))
	}

	wantOrder := []int64{3, 1, 4}
	for i, e := range enriched {
		if e.Entry.LogID != wantOrder[i] {
			t.Errorf("enriched[%d].LogID = %d, want %d", i, e.Entry.LogID, wantOrder[i])
		}
		if e.Match.LogID != e.Entry.LogID {
			t.Errorf("entry %d paired with match for %d", e.Entry.LogID, e.Match.LogID)
		}
	}

	t.Run("no matches", func(t *testing.T) {
		if got := Enrich(logs, nil); len(got) != 0 {
			t.Errorf("expected no entries, got %d", len(got))
		}
	})

	t.Run("no logs", func(t *testing.T) {
		if got := Enrich(nil, matches); len(got) != 0 {
			t.Errorf("expected no entries, got %d", len(got))
		}
	})
}

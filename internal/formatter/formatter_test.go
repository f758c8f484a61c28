package formatter

import (
	"context"
	"encoding/csv"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/ytxrecon/internal/models"
	"github.com/desertthunder/ytxrecon/internal/reconcile"
	"github.com/desertthunder/ytxrecon/internal/shared"
	th "github.com/desertthunder/ytxrecon/internal/testing"
)

func testRecords(t *testing.T) []models.ReconciledRecord {
	t.Helper()

	snapshot := th.NewSnapshot().
		Search(models.SearchLogEntry{LogID: 1, TracksInDesc: 5, DifferenceMs: 2500, SearchTypeID: 2, AlbumURI: models.Ptr("A1"), Q: `album "X"`}, 202500).
		Search(models.SearchLogEntry{LogID: 2, SearchTypeID: 1, Q: "Song, live"}, 60000).
		Album(models.Album{AlbumURI: "A1", Title: "X", Artists: "Y", DurationMs: 200000, TotalTracks: 10}).
		Build()

	result, err := reconcile.Reconcile(context.Background(), snapshot)
	if err != nil {
		t.Fatalf("failed to reconcile: %v", err)
	}
	return result.Records
}

func TestExporters(t *testing.T) {
	records := testRecords(t)

	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(records)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("failed to parse CSV output: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("expected header and 2 rows, got %d", len(rows))
		}
		if strings.Join(rows[0], ",") != strings.Join(Columns, ",") {
			t.Errorf("unexpected header: %v", rows[0])
		}

		col := func(name string) int {
			for i, c := range Columns {
				if c == name {
					return i
				}
			}
			t.Fatalf("unknown column %s", name)
			return -1
		}

		album := rows[1]
		if album[col("spotify_type")] != "album" || album[col("spotify_title")] != "X" {
			t.Errorf("unexpected album row: %v", album)
		}
		if album[col("percentage_in_desc")] != "50.0" {
			t.Errorf("percentage_in_desc = %s, want 50.0", album[col("percentage_in_desc")])
		}
		if album[col("difference_sec")] != "2.5" {
			t.Errorf("difference_sec = %s, want 2.5", album[col("difference_sec")])
		}
		if album[col("spotify_duration_timestamp")] != "00:03:20" || album[col("youtube_duration_timestamp")] != "00:03:22" {
			t.Errorf("unexpected timestamps: %v", album)
		}
		if album[col("q")] != `album "X"` {
			t.Errorf("q = %s", album[col("q")])
		}
		if album[col("added_at")] != "2024-03-01T12:30:00Z" {
			t.Errorf("added_at = %s", album[col("added_at")])
		}

		unresolved := rows[2]
		for _, name := range []string{"spotify_type", "spotify_uri", "spotify_title", "spotify_total_tracks", "percentage_in_desc"} {
			if unresolved[col(name)] != "" {
				t.Errorf("expected empty %s, got %q", name, unresolved[col(name)])
			}
		}
		if unresolved[col("q")] != "Song, live" {
			t.Errorf("q = %s", unresolved[col("q")])
		}
	})

	t.Run("ExportToCSV without records", func(t *testing.T) {
		data, err := ExportToCSV(nil)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}
		if strings.Count(string(data), "\n") != 1 {
			t.Errorf("expected header only, got %q", data)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(records, false)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			`"spotify_type":"album"`,
			`"percentage_in_desc":50`,
			`"difference_sec":2.5`,
			`"spotify_type":null`,
			`"percentage_in_desc":null`,
		} {
			if !strings.Contains(output, want) {
				t.Errorf("JSON missing %s, got: %s", want, output)
			}
		}

		empty, err := ExportToJSON(nil, false)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}
		if string(empty) != "[]" {
			t.Errorf("expected empty array, got %s", empty)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(records)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"Records: 2",
			"1. [Road trip] Video v1 (00:03:22)",
			"album A1: Y - X (00:03:20)",
			"search: keyword and quotes, try 0, 2.5s, 5 in description (50.0%)",
			"no catalog match",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("text output missing %q, got:\n%s", want, output)
			}
		}
	})
}

func TestExport(t *testing.T) {
	records := testRecords(t)

	t.Run("ParseFormat", func(t *testing.T) {
		tt := []struct {
			in      string
			want    Format
			wantErr bool
		}{
			{in: "", want: FormatCSV},
			{in: "csv", want: FormatCSV},
			{in: "JSON", want: FormatJSON},
			{in: " text ", want: FormatText},
			{in: "xml", wantErr: true},
		}

		for _, tc := range tt {
			got, err := ParseFormat(tc.in)
			if tc.wantErr {
				if !errors.Is(err, shared.ErrUnsupportedFormat) {
					t.Errorf("ParseFormat(%q) expected ErrUnsupportedFormat, got %v", tc.in, err)
				}
				continue
			}
			if err != nil || got != tc.want {
				t.Errorf("ParseFormat(%q) = %s, %v; want %s", tc.in, got, err, tc.want)
			}
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		if _, err := Export(Format("yaml"), records); !errors.Is(err, shared.ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})

	t.Run("WriteExport", func(t *testing.T) {
		dir := t.TempDir()

		for _, format := range []Format{FormatCSV, FormatJSON, FormatText} {
			path := filepath.Join(dir, "records."+string(format))
			if err := WriteExport(format, records, path); err != nil {
				t.Fatalf("WriteExport(%s) failed: %v", format, err)
			}
			th.AssertFileExists(t, path)

			content := th.MustReadFile(t, path)
			if !strings.Contains(content, "Road trip") {
				t.Errorf("%s export missing playlist name", format)
			}
		}
	})

	t.Run("WriteExport without path", func(t *testing.T) {
		if err := WriteExport(FormatCSV, records, ""); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("WriteExport to missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "records.csv")
		if err := WriteExport(FormatCSV, records, path); err == nil {
			t.Error("expected error writing into a missing directory")
		}
	})
}

func TestExportRuns(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := string(ExportRuns(nil)); got != "No reconciliation runs\n" {
			t.Errorf("unexpected output %q", got)
		}
	})

	t.Run("runs", func(t *testing.T) {
		runs := []*models.Run{
			{
				ID:        "run-1",
				Status:    models.RunCompleted,
				RunCounts: models.RunCounts{SearchLogs: 10, Reconciled: 7, Dropped: 3},
				StartedAt: th.AddedAt,
			},
			{
				ID:           "run-2",
				Status:       models.RunFailed,
				ErrorMessage: "context canceled",
				StartedAt:    th.AddedAt,
			},
		}

		output := string(ExportRuns(runs))
		for _, want := range []string{"ID", "run-1", "completed", "2024-03-01 12:30:00", "error: context canceled"} {
			if !strings.Contains(output, want) {
				t.Errorf("runs output missing %q, got:\n%s", want, output)
			}
		}
	})
}

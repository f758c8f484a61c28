// package formatter renders reconciled records as CSV, JSON or plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/ytxrecon/internal/models"
	"github.com/desertthunder/ytxrecon/internal/shared"
)

// Format is an output format for reconciled records.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat returns the [Format] named by s. An empty name selects CSV.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatJSON, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, s)
	}
}

// Columns is the CSV header, in output order.
var Columns = []string{
	"log_id", "user_playlist_id", "playlist_name",
	"youtube_playlist_id", "video_id", "youtube_title", "youtube_channel", "youtube_description",
	"youtube_duration_ms", "youtube_duration_timestamp",
	"spotify_type", "spotify_uri", "spotify_title", "spotify_artists",
	"spotify_duration_ms", "spotify_duration_timestamp", "spotify_total_tracks",
	"found_on_try", "difference_ms", "difference_sec", "tracks_in_desc", "percentage_in_desc",
	"q", "search_type_id", "search_type_name", "status", "added_at",
}

// Export renders records in format.
func Export(format Format, records []models.ReconciledRecord) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(records)
	case FormatJSON:
		return ExportToJSON(records, true)
	case FormatText:
		return ExportToText(records)
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, format)
	}
}

// ExportToCSV writes one row per record under [Columns]. Null values are empty cells.
func ExportToCSV(records []models.ReconciledRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(Columns); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, rec := range records {
		row := []string{
			strconv.FormatInt(rec.LogID, 10),
			rec.UserPlaylistID,
			rec.PlaylistName,
			rec.YouTubePlaylistID,
			rec.VideoID,
			rec.YouTubeTitle,
			rec.YouTubeChannel,
			rec.YouTubeDescription,
			strconv.FormatInt(rec.YouTubeDurationMs, 10),
			rec.YouTubeDurationTimestamp,
			optional(rec.SpotifyType, models.CatalogKind.String),
			optional(rec.SpotifyURI, identity),
			optional(rec.SpotifyTitle, identity),
			optional(rec.SpotifyArtists, identity),
			optional(rec.SpotifyDurationMs, formatInt),
			optional(rec.SpotifyDurationTimestamp, identity),
			optional(rec.SpotifyTotalTracks, formatInt),
			strconv.FormatInt(rec.FoundOnTry, 10),
			strconv.FormatInt(rec.DifferenceMs, 10),
			formatDecimal(rec.DifferenceSec),
			strconv.FormatInt(rec.TracksInDesc, 10),
			optional(rec.PercentageInDesc, formatDecimal),
			rec.Q,
			strconv.FormatInt(rec.SearchTypeID, 10),
			rec.SearchTypeName,
			rec.Status,
			rec.AddedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders records as a JSON array. Null values are JSON nulls.
func ExportToJSON(records []models.ReconciledRecord, pretty bool) ([]byte, error) {
	if records == nil {
		records = []models.ReconciledRecord{}
	}
	return shared.MarshalJSON(records, pretty)
}

// ExportToText renders one line per record for reading in a terminal.
func ExportToText(records []models.ReconciledRecord) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Records: %d\n\n", len(records))

	for i, rec := range records {
		fmt.Fprintf(&buf, "%d. [%s] %s (%s)\n", i+1, rec.PlaylistName, rec.YouTubeTitle, rec.YouTubeDurationTimestamp)

		if rec.SpotifyType == nil {
			buf.WriteString("   no catalog match\n")
		} else {
			fmt.Fprintf(&buf, "   %s %s: %s - %s (%s)\n",
				*rec.SpotifyType,
				*rec.SpotifyURI,
				orDash(rec.SpotifyArtists),
				orDash(rec.SpotifyTitle),
				orDash(rec.SpotifyDurationTimestamp),
			)
		}

		fmt.Fprintf(&buf, "   search: %s, try %d, %ss, %d in description (%s)\n",
			rec.SearchTypeName,
			rec.FoundOnTry,
			formatDecimal(rec.DifferenceSec),
			rec.TracksInDesc,
			percentOrNA(rec.PercentageInDesc),
		)
	}

	return buf.Bytes(), nil
}

// ExportRuns renders a table of reconciliation runs.
func ExportRuns(runs []*models.Run) []byte {
	var buf bytes.Buffer

	if len(runs) == 0 {
		buf.WriteString("No reconciliation runs\n")
		return buf.Bytes()
	}

	fmt.Fprintf(&buf, "%-36s  %-9s  %-20s  %8s  %8s  %8s\n", "ID", "STATUS", "STARTED", "LOGS", "RECORDS", "DROPPED")
	for _, run := range runs {
		fmt.Fprintf(&buf, "%-36s  %-9s  %-20s  %8d  %8d  %8d\n",
			run.ID,
			run.Status,
			run.StartedAt.UTC().Format(time.DateTime),
			run.SearchLogs,
			run.Reconciled,
			run.Dropped,
		)
		if run.ErrorMessage != "" {
			fmt.Fprintf(&buf, "  error: %s\n", run.ErrorMessage)
		}
	}

	return buf.Bytes()
}

// WriteExport renders records in format and writes them to path.
func WriteExport(format Format, records []models.ReconciledRecord, path string) error {
	if path == "" {
		return fmt.Errorf("%w: output path", shared.ErrMissingArgument)
	}

	data, err := Export(format, records)
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", format, err)
	}

	return nil
}

func optional[T any](v *T, format func(T) string) string {
	if v == nil {
		return ""
	}
	return format(*v)
}

func identity(s string) string { return s }

func formatInt(i int64) string { return strconv.FormatInt(i, 10) }

func formatDecimal(f float64) string { return strconv.FormatFloat(f, 'f', 1, 64) }

func percentOrNA(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return formatDecimal(*p) + "%"
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

package reconcile

import "github.com/desertthunder/ytxrecon/internal/models"

// EnrichedEntry is a search log entry paired with the video it was made for.
type EnrichedEntry struct {
	Entry models.SearchLogEntry
	Match models.VideoMatch
}

// Enrich inner-joins logs with matches on LogID, keeping the order of logs.
//
// Entries without a match are left out.
func Enrich(logs []models.SearchLogEntry, matches []models.VideoMatch) []EnrichedEntry {
	byLogID := make(map[int64]models.VideoMatch, len(matches))
	for _, m := range matches {
		if _, seen := byLogID[m.LogID]; !seen {
			byLogID[m.LogID] = m
		}
	}

	enriched := make([]EnrichedEntry, 0, min(len(logs), len(matches)))
	for _, entry := range logs {
		match, ok := byLogID[entry.LogID]
		if !ok {
			continue
		}
		enriched = append(enriched, EnrichedEntry{Entry: entry, Match: match})
	}

	return enriched
}

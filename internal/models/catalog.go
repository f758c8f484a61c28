package models

import "fmt"

// CatalogKind tags which catalog table a search log entry points into.
type CatalogKind string

const (
	KindAlbum    CatalogKind = "album"
	KindPlaylist CatalogKind = "playlist"
	KindTrack    CatalogKind = "track"
)

// CatalogPrecedence is the order in which reference columns are inspected.
//
// Both the type tag and the coalesced catalog fields follow it; adding a kind
// means appending it here.
var CatalogPrecedence = [...]CatalogKind{KindAlbum, KindPlaylist, KindTrack}

func (k CatalogKind) String() string {
	return string(k)
}

// Valid reports whether k is one of the known catalog kinds.
func (k CatalogKind) Valid() bool {
	for _, known := range CatalogPrecedence {
		if k == known {
			return true
		}
	}
	return false
}

// ParseCatalogKind converts a stored type tag back into a [CatalogKind].
func ParseCatalogKind(s string) (CatalogKind, error) {
	k := CatalogKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown catalog kind %q", s)
	}
	return k, nil
}

// Ref returns the reference column of e that belongs to kind k.
func (e SearchLogEntry) Ref(k CatalogKind) *string {
	switch k {
	case KindAlbum:
		return e.AlbumURI
	case KindPlaylist:
		return e.PlaylistURI
	case KindTrack:
		return e.TrackURI
	default:
		return nil
	}
}

// CatalogRef is the resolved discriminant of a search log entry.
type CatalogRef struct {
	Kind CatalogKind
	URI  string
}

// CatalogEntity is one catalog row, whichever table it came from.
type CatalogEntity struct {
	Kind        CatalogKind
	URI         string
	Title       string
	Artists     string
	DurationMs  int64
	TotalTracks int64
}

// Entity flattens an album row.
func (a Album) Entity() CatalogEntity {
	return CatalogEntity{
		Kind:        KindAlbum,
		URI:         a.AlbumURI,
		Title:       a.Title,
		Artists:     a.Artists,
		DurationMs:  a.DurationMs,
		TotalTracks: a.TotalTracks,
	}
}

// Entity flattens a track row.
func (t Track) Entity() CatalogEntity {
	return CatalogEntity{
		Kind:        KindTrack,
		URI:         t.TrackURI,
		Title:       t.Title,
		Artists:     t.Artists,
		DurationMs:  t.DurationMs,
		TotalTracks: 1,
	}
}

// Entity flattens a playlist row; the owner stands in for the artists.
func (p OtherPlaylist) Entity() CatalogEntity {
	return CatalogEntity{
		Kind:        KindPlaylist,
		URI:         p.PlaylistURI,
		Title:       p.Title,
		Artists:     p.Owner,
		DurationMs:  p.DurationMs,
		TotalTracks: p.TotalTracks,
	}
}

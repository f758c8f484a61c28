package reconcile

import "github.com/desertthunder/ytxrecon/internal/models"

// DropReason explains why a row left the batch during resolution.
type DropReason int

const (
	Kept DropReason = iota
	DropUnknownPlaylist
	DropUnknownSearchType
	DropMissingVideo
)

func (d DropReason) String() string {
	switch d {
	case Kept:
		return "kept"
	case DropUnknownPlaylist:
		return "unknown_playlist"
	case DropUnknownSearchType:
		return "unknown_search_type"
	case DropMissingVideo:
		return "missing_video"
	default:
		return ""
	}
}

// ResolvedRow is an enriched entry with every lookup attached.
type ResolvedRow struct {
	Entry          models.SearchLogEntry
	Match          models.VideoMatch
	Video          models.VideoMetadata
	PlaylistName   string
	SearchTypeName string
	Ref            *models.CatalogRef    // nil when the entry references nothing
	Entity         *models.CatalogEntity // nil when Ref is nil or its catalog row is missing
}

// ResolveRef returns the first populated reference in [models.CatalogPrecedence] order.
func ResolveRef(entry models.SearchLogEntry) (models.CatalogRef, bool) {
	for _, kind := range models.CatalogPrecedence {
		if uri := entry.Ref(kind); uri != nil {
			return models.CatalogRef{Kind: kind, URI: *uri}, true
		}
	}
	return models.CatalogRef{}, false
}

// Resolver holds keyed indices over the lookup and catalog tables of a snapshot.
//
// The indices are read-only after [NewResolver], so one Resolver can serve many goroutines.
type Resolver struct {
	playlists   map[string]string
	searchTypes map[int64]string
	videos      map[string]models.VideoMetadata
	catalogs    map[models.CatalogKind]map[string]models.CatalogEntity
}

// NewResolver indexes the lookup and catalog tables of s. The first row wins on duplicate keys.
func NewResolver(s *models.Snapshot) *Resolver {
	r := &Resolver{
		playlists:   make(map[string]string, len(s.Playlists)),
		searchTypes: make(map[int64]string, len(s.SearchTypes)),
		videos:      make(map[string]models.VideoMetadata, len(s.Videos)),
		catalogs: map[models.CatalogKind]map[string]models.CatalogEntity{
			models.KindAlbum:    make(map[string]models.CatalogEntity, len(s.Albums)),
			models.KindPlaylist: make(map[string]models.CatalogEntity, len(s.OtherPlaylists)),
			models.KindTrack:    make(map[string]models.CatalogEntity, len(s.Tracks)),
		},
	}

	for _, p := range s.Playlists {
		if _, ok := r.playlists[p.PlaylistID]; !ok {
			r.playlists[p.PlaylistID] = p.PlaylistName
		}
	}
	for _, st := range s.SearchTypes {
		if _, ok := r.searchTypes[st.SearchTypeID]; !ok {
			r.searchTypes[st.SearchTypeID] = st.SearchTypeName
		}
	}
	for _, v := range s.Videos {
		if _, ok := r.videos[v.VideoID]; !ok {
			r.videos[v.VideoID] = v
		}
	}
	for _, a := range s.Albums {
		r.addEntity(a.Entity())
	}
	for _, p := range s.OtherPlaylists {
		r.addEntity(p.Entity())
	}
	for _, t := range s.Tracks {
		r.addEntity(t.Entity())
	}

	return r
}

func (r *Resolver) addEntity(e models.CatalogEntity) {
	table := r.catalogs[e.Kind]
	if _, ok := table[e.URI]; !ok {
		table[e.URI] = e
	}
}

// Lookup finds the catalog row a reference points to.
func (r *Resolver) Lookup(ref models.CatalogRef) (models.CatalogEntity, bool) {
	e, ok := r.catalogs[ref.Kind][ref.URI]
	return e, ok
}

// Resolve attaches lookups and the catalog entity to an enriched entry.
//
// Required joins (playlist, search type, video) drop the row on a miss; the
// catalog join is optional and leaves Entity nil instead.
func (r *Resolver) Resolve(in EnrichedEntry) (ResolvedRow, DropReason) {
	playlistName, ok := r.playlists[in.Match.YouTubePlaylistID]
	if !ok {
		return ResolvedRow{}, DropUnknownPlaylist
	}

	searchTypeName, ok := r.searchTypes[in.Entry.SearchTypeID]
	if !ok {
		return ResolvedRow{}, DropUnknownSearchType
	}

	video, ok := r.videos[in.Match.VideoID]
	if !ok {
		return ResolvedRow{}, DropMissingVideo
	}

	row := ResolvedRow{
		Entry:          in.Entry,
		Match:          in.Match,
		Video:          video,
		PlaylistName:   playlistName,
		SearchTypeName: searchTypeName,
	}

	ref, ok := ResolveRef(in.Entry)
	if !ok {
		return row, Kept
	}
	row.Ref = &ref

	if entity, ok := r.Lookup(ref); ok {
		row.Entity = &entity
	}

	return row, Kept
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/luis122448/catalog-music-service/internal/constants"
	"github.com/luis122448/catalog-music-service/internal/domain"
)

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/scan/start", h.StartScan)

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/artists", h.ListArtists)
		r.Get("/artists/{id}", h.GetArtist)
		r.Get("/artists/{id}/albums", h.ListArtistAlbums)
		r.Get("/artists/{id}/top-tracks", h.ArtistTopTracks)
		r.Get("/albums/{id}", h.GetAlbum)
		r.Get("/albums/{id}/songs", h.ListPublicAlbumSongs)
		r.Get("/songs/{id}", h.GetPublicSong)
		r.Get("/search", h.Search)
		r.Get("/browse/new-releases", h.NewReleases)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Get("/artists", h.ListArtists)
		r.Get("/artists/{id}/albums", h.ListArtistAlbums)
		r.Get("/albums/{id}", h.GetAlbum)
		r.Get("/albums/{id}/songs", h.ListAlbumSongs)
		r.Get("/albums/{id}/cover-url", h.AlbumCoverURL)
		r.Get("/songs/{id}", h.GetSong)
		r.Patch("/songs/{id}/visibility", h.UpdateSongVisibility)
	})

	r.Get("/api/internal/songs/{id}", h.GetSongLite)
}

// StartScan acknowledges immediately; the scan itself runs detached. The
// acknowledgment is the same whether this trigger started a scan or one is
// already in flight.
func (h *Handler) StartScan(w http.ResponseWriter, r *http.Request) {
	h.scanner.TriggerScan()
	h.respond(w, http.StatusAccepted, "scan started", nil)
}

func (h *Handler) ListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := h.db.ListArtists(r.Context())
	if err != nil {
		h.respondLookup(w, err, "artists")
		return
	}
	h.respond(w, http.StatusOK, "ok", artists)
}

func (h *Handler) GetArtist(w http.ResponseWriter, r *http.Request) {
	artist, err := h.db.GetArtistByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondLookup(w, err, "artist")
		return
	}
	h.respond(w, http.StatusOK, "ok", artist)
}

func (h *Handler) ListArtistAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := h.db.ListAlbumsByArtist(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondLookup(w, err, "albums")
		return
	}
	h.respond(w, http.StatusOK, "ok", albums)
}

func (h *Handler) ArtistTopTracks(w http.ResponseWriter, r *http.Request) {
	songs, err := h.db.ListSongsByArtist(r.Context(), chi.URLParam(r, "id"), domain.VisibilityPublic, constants.MaxTopTracks)
	if err != nil {
		h.respondLookup(w, err, "songs")
		return
	}
	h.respond(w, http.StatusOK, "ok", songs)
}

func (h *Handler) GetAlbum(w http.ResponseWriter, r *http.Request) {
	album, err := h.db.GetAlbumByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondLookup(w, err, "album")
		return
	}
	h.respond(w, http.StatusOK, "ok", album)
}

func (h *Handler) ListPublicAlbumSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := h.db.ListSongsByAlbumAndVisibility(r.Context(), chi.URLParam(r, "id"), domain.VisibilityPublic)
	if err != nil {
		h.respondLookup(w, err, "songs")
		return
	}
	h.respond(w, http.StatusOK, "ok", songs)
}

func (h *Handler) ListAlbumSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := h.db.ListSongsByAlbum(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondLookup(w, err, "songs")
		return
	}
	h.respond(w, http.StatusOK, "ok", songs)
}

func (h *Handler) GetPublicSong(w http.ResponseWriter, r *http.Request) {
	song, err := h.db.GetSongByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondLookup(w, err, "song")
		return
	}
	if song.Visibility != domain.VisibilityPublic {
		h.respondError(w, http.StatusNotFound, "song not found")
		return
	}
	h.respond(w, http.StatusOK, "ok", song)
}

func (h *Handler) GetSong(w http.ResponseWriter, r *http.Request) {
	song, err := h.db.GetSongByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondLookup(w, err, "song")
		return
	}
	h.respond(w, http.StatusOK, "ok", song)
}

func (h *Handler) UpdateSongVisibility(w http.ResponseWriter, r *http.Request) {
	visibility := domain.Visibility(strings.ToUpper(r.URL.Query().Get("visibility")))
	if !visibility.Valid() {
		h.respondError(w, http.StatusBadRequest, "invalid visibility")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.db.UpdateSongVisibility(r.Context(), id, visibility); err != nil {
		h.respondLookup(w, err, "song")
		return
	}
	h.respond(w, http.StatusOK, "visibility updated", nil)
}

func (h *Handler) AlbumCoverURL(w http.ResponseWriter, r *http.Request) {
	album, err := h.db.GetAlbumByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondLookup(w, err, "album")
		return
	}
	if album.CoverArtPath == nil {
		h.respondError(w, http.StatusNotFound, "album has no cover art")
		return
	}

	url, err := h.presigner.PresignedURL(r.Context(), *album.CoverArtPath, constants.DefaultPresignTTL)
	if err != nil {
		h.log.Error("Failed to presign cover URL", "error", err)
		h.respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.respond(w, http.StatusOK, "ok", map[string]string{"url": url})
}

type searchResults struct {
	Artists []*domain.Artist `json:"artists,omitempty"`
	Albums  []*domain.Album  `json:"albums,omitempty"`
	Tracks  []*domain.Song   `json:"tracks,omitempty"`
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		h.respondError(w, http.StatusBadRequest, "missing query")
		return
	}
	searchType := r.URL.Query().Get("type")

	var (
		results searchResults
		err     error
	)
	if searchType == "" || searchType == "artists" {
		if results.Artists, err = h.db.SearchArtists(r.Context(), q); err != nil {
			h.respondLookup(w, err, "artists")
			return
		}
	}
	if searchType == "" || searchType == "albums" {
		if results.Albums, err = h.db.SearchAlbums(r.Context(), q); err != nil {
			h.respondLookup(w, err, "albums")
			return
		}
	}
	if searchType == "" || searchType == "tracks" {
		if results.Tracks, err = h.db.SearchSongs(r.Context(), q); err != nil {
			h.respondLookup(w, err, "tracks")
			return
		}
	}
	h.respond(w, http.StatusOK, "ok", results)
}

func (h *Handler) NewReleases(w http.ResponseWriter, r *http.Request) {
	albums, err := h.db.ListRecentAlbums(r.Context(), constants.MaxNewReleases)
	if err != nil {
		h.respondLookup(w, err, "albums")
		return
	}
	h.respond(w, http.StatusOK, "ok", albums)
}

// songLite is the reduced payload served to trusted internal callers.
type songLite struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	FilePath string `json:"filePath"`
	FileSize int64  `json:"fileSize"`
	Duration int    `json:"duration"`
}

func (h *Handler) GetSongLite(w http.ResponseWriter, r *http.Request) {
	song, err := h.db.GetSongByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondLookup(w, err, "song")
		return
	}
	h.respond(w, http.StatusOK, "ok", songLite{
		ID:       song.ID,
		Title:    song.Title,
		FilePath: song.FilePath,
		FileSize: song.FileSize,
		Duration: song.Duration,
	})
}

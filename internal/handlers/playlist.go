package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"playlist-viewer/internal/logging"
	"playlist-viewer/internal/playlist"
	"playlist-viewer/internal/session"

	"github.com/gorilla/mux"
)

// PlaylistEntry is one playlist as listed to the front end.
type PlaylistEntry struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Cover string `json:"cover"`
}

// PlaylistsResponse is the body of GET /api/playlists.
type PlaylistsResponse struct {
	Playlists []PlaylistEntry `json:"playlists"`
	Count     int             `json:"count"`
}

// loadErrorMessage returns the viewer-facing text for a playlist load failure.
func (h *Handlers) loadErrorMessage() string {
	var loadErr *playlist.LoadError
	if errors.As(h.loadErr, &loadErr) {
		return loadErr.Message()
	}
	if h.loadErr != nil {
		return h.loadErr.Error()
	}
	return "Playlists not loaded"
}

// ListPlaylists returns every playlist with its display title and cover.
func (h *Handlers) ListPlaylists(w http.ResponseWriter, _ *http.Request) {
	if !h.Ready() {
		writeJSONError(w, h.loadErrorMessage(), http.StatusServiceUnavailable)
		return
	}

	all := h.catalog.All()
	entries := make([]PlaylistEntry, len(all))
	for i, pl := range all {
		entries[i] = PlaylistEntry{
			Index: i,
			Title: pl.DisplayTitle(),
			URL:   pl.URL,
			Cover: pl.CoverOrPlaceholder(),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, PlaylistsResponse{Playlists: entries, Count: len(entries)})
}

// SelectPlaylist resolves the chosen playlist into the caller's track list.
// Resolution failures are reported inside the returned state, not as HTTP
// errors. A selection overtaken by a newer one answers 409.
func (h *Handlers) SelectPlaylist(w http.ResponseWriter, r *http.Request) {
	if !h.Ready() {
		writeJSONError(w, h.loadErrorMessage(), http.StatusServiceUnavailable)
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeJSONError(w, "Invalid playlist index", http.StatusBadRequest)
		return
	}

	pl, ok := h.catalog.Get(index)
	if !ok {
		writeJSONError(w, "Playlist not found", http.StatusNotFound)
		return
	}

	sess := h.viewerSession(w, r)
	log := logging.With("session", sess.ID()).With("playlist", strconv.Itoa(index))

	token := sess.Begin(index, pl)
	log.Debug("selection %d started for %q", token, pl.URL)

	var state session.State
	res, resolveErr := h.resolver.Resolve(r.Context(), pl)
	if resolveErr != nil {
		log.Warn("resolution failed: %v", resolveErr)
		state, err = sess.Fail(token, resolveErr)
	} else {
		log.Info("resolved %d tracks", len(res.Tracks))
		state, err = sess.Complete(token, res)
	}

	if errors.Is(err, session.ErrStaleSelection) {
		log.Debug("selection %d superseded by %d", token, state.Selection)
		writeJSONError(w, "Selection superseded by a newer one", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, state)
}

// ServePlaylistsFile serves the playlist file exactly as loaded.
func (h *Handlers) ServePlaylistsFile(w http.ResponseWriter, _ *http.Request) {
	if !h.Ready() {
		writeJSONError(w, h.loadErrorMessage(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(h.catalog.Raw()); err != nil {
		logging.Error("failed to write playlist file: %v", err)
	}
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"playlist-viewer/internal/logging"
	"playlist-viewer/internal/session"

	"github.com/gorilla/mux"
)

// GetState returns the caller's current viewer state.
func (h *Handlers) GetState(w http.ResponseWriter, r *http.Request) {
	sess := h.viewerSession(w, r)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, sess.Snapshot())
}

// PlayTrack selects a track for playback and returns what to mount on the
// playback surface. The optional format query parameter picks one variant
// of a grouped track.
func (h *Handlers) PlayTrack(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeJSONError(w, "Invalid track index", http.StatusBadRequest)
		return
	}

	sess := h.viewerSession(w, r)
	format := r.URL.Query().Get("format")

	pb, err := sess.SelectTrack(index, format, h.playbackMode)
	switch {
	case errors.Is(err, session.ErrNoTracks):
		writeJSONError(w, "No track list loaded", http.StatusConflict)
		return
	case errors.Is(err, session.ErrTrackNotFound):
		writeJSONError(w, "Track not found", http.StatusNotFound)
		return
	case errors.Is(err, session.ErrFormatNotFound):
		writeJSONError(w, "Format not available", http.StatusNotFound)
		return
	case err != nil:
		logging.Error("failed to select track %d: %v", index, err)
		writeJSONError(w, "Failed to select track", http.StatusInternalServerError)
		return
	}

	logging.With("session", sess.ID()).Debug("playing track %d (%s) via %s", index, pb.Format, pb.Mode)

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, pb)
}

// ClosePlayback clears the caller's playback surface.
func (h *Handlers) ClosePlayback(w http.ResponseWriter, r *http.Request) {
	h.viewerSession(w, r).ClosePlayback()
	w.WriteHeader(http.StatusNoContent)
}

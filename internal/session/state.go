package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"playlist-viewer/internal/archive"
	"playlist-viewer/internal/playlist"
	"playlist-viewer/internal/resolver"
)

// Status is where a viewer is in the selection lifecycle.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusEmpty   Status = "empty"
	StatusError   Status = "error"
)

// Messages shown in place of the track list.
const (
	LoadingMessage = "Loading playlist…"
	EmptyMessage   = "No playable videos found."
)

var (
	// ErrStaleSelection is returned when a resolution finishes after a
	// newer selection has started. Its result is discarded.
	ErrStaleSelection = errors.New("selection superseded by a newer one")
	// ErrNoTracks is returned when playback is requested without a
	// resolved track list.
	ErrNoTracks = errors.New("no track list loaded")
	// ErrTrackNotFound is returned for an out of range track index.
	ErrTrackNotFound = errors.New("track not found")
	// ErrFormatNotFound is returned when a track has no such format.
	ErrFormatNotFound = errors.New("format not available for track")
)

// PlaybackMode selects the playback surface.
type PlaybackMode string

const (
	// ModeIframe embeds the download URL in a frame overlay.
	ModeIframe PlaybackMode = "iframe"
	// ModeVideo feeds the URL to a native video element.
	ModeVideo PlaybackMode = "video"
)

// ParsePlaybackMode validates a playback mode name.
func ParsePlaybackMode(s string) (PlaybackMode, error) {
	switch PlaybackMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeIframe, "":
		return ModeIframe, nil
	case ModeVideo:
		return ModeVideo, nil
	}
	return "", fmt.Errorf("unknown playback mode %q (want %q or %q)", s, ModeIframe, ModeVideo)
}

// Playback describes what the client mounts on its playback surface.
type Playback struct {
	Mode       PlaybackMode `json:"mode"`
	URL        string       `json:"url"`
	MimeType   string       `json:"mimeType,omitempty"`
	Title      string       `json:"title"`
	Format     string       `json:"format,omitempty"`
	TrackIndex int          `json:"trackIndex"`
}

// State is the explicit UI-state record of one viewer.
type State struct {
	SessionID     string             `json:"sessionId"`
	PlaylistIndex int                `json:"playlistIndex"`
	Playlist      *playlist.Playlist `json:"playlist,omitempty"`
	Status        Status             `json:"status"`
	Message       string             `json:"message,omitempty"`
	Grouping      resolver.Grouping  `json:"grouping,omitempty"`
	Identifier    string             `json:"identifier,omitempty"`
	Tracks        []resolver.Track   `json:"tracks"`
	TrackIndex    int                `json:"trackIndex"`
	Playback      *Playback          `json:"playback,omitempty"`
	Selection     uint64             `json:"selection"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

func newState(id string, now time.Time) State {
	return State{
		SessionID:     id,
		PlaylistIndex: -1,
		Status:        StatusIdle,
		Tracks:        []resolver.Track{},
		TrackIndex:    -1,
		UpdatedAt:     now,
	}
}

// clone returns a copy that shares no mutable memory with s.
func (s State) clone() State {
	out := s
	out.Tracks = append([]resolver.Track{}, s.Tracks...)
	if s.Playlist != nil {
		p := *s.Playlist
		out.Playlist = &p
	}
	if s.Playback != nil {
		p := *s.Playback
		out.Playback = &p
	}
	return out
}

// ErrorMessage turns a selection failure into the short text shown to the
// viewer.
func ErrorMessage(err error) string {
	var fetchErr *archive.FetchError
	switch {
	case errors.Is(err, archive.ErrParse):
		return "Could not parse archive.org identifier"
	case errors.As(err, &fetchErr) && fetchErr.StatusCode != 0:
		return fmt.Sprintf("Archive.org metadata fetch failed (HTTP %d)", fetchErr.StatusCode)
	case errors.Is(err, archive.ErrFetch):
		return "Archive.org metadata fetch failed"
	case err == nil:
		return ""
	}
	return err.Error()
}

package session

import (
	"sync"
	"time"

	"playlist-viewer/internal/metrics"
	"playlist-viewer/internal/playlist"
	"playlist-viewer/internal/resolver"
)

// Session owns one viewer's State. All methods are safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	state    State
	lastSeen time.Time
	now      func() time.Time
}

func newSession(id string, now func() time.Time) *Session {
	t := now()
	return &Session{state: newState(id, t), lastSeen: t, now: now}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.state.SessionID
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = s.now()
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Begin starts a new playlist selection and returns its token. The track
// list is cleared; the current playback is kept.
func (s *Session) Begin(index int, pl playlist.Playlist) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Selection++
	s.state.PlaylistIndex = index
	s.state.Playlist = &pl
	s.state.Status = StatusLoading
	s.state.Message = LoadingMessage
	s.state.Identifier = ""
	s.state.Tracks = []resolver.Track{}
	s.state.TrackIndex = -1
	s.touchLocked()

	return s.state.Selection
}

// Complete stores a resolution result for the selection identified by
// token. A token other than the latest returns ErrStaleSelection and
// leaves the state unchanged.
func (s *Session) Complete(token uint64, res *resolver.Result) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.state.Selection {
		metrics.StaleSelectionsTotal.Inc()
		return s.state.clone(), ErrStaleSelection
	}

	s.state.Identifier = res.Identifier
	s.state.Grouping = res.Grouping
	s.state.Tracks = append([]resolver.Track{}, res.Tracks...)
	if res.Empty() {
		s.state.Status = StatusEmpty
		s.state.Message = EmptyMessage
	} else {
		s.state.Status = StatusReady
		s.state.Message = ""
	}
	s.touchLocked()

	return s.state.clone(), nil
}

// Fail records a failed selection: the track list stays empty and the
// error message replaces it. Stale tokens are rejected as in Complete.
func (s *Session) Fail(token uint64, err error) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.state.Selection {
		metrics.StaleSelectionsTotal.Inc()
		return s.state.clone(), ErrStaleSelection
	}

	s.state.Status = StatusError
	s.state.Message = ErrorMessage(err)
	s.state.Tracks = []resolver.Track{}
	s.touchLocked()

	return s.state.clone(), nil
}

// SelectTrack selects a track (and optionally one of its formats) for playback.
func (s *Session) SelectTrack(trackIndex int, format string, mode PlaybackMode) (Playback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status != StatusReady || len(s.state.Tracks) == 0 {
		return Playback{}, ErrNoTracks
	}
	if trackIndex < 0 || trackIndex >= len(s.state.Tracks) {
		return Playback{}, ErrTrackNotFound
	}

	track := s.state.Tracks[trackIndex]
	f, ok := track.FindFormat(format)
	if !ok {
		return Playback{}, ErrFormatNotFound
	}

	pb := Playback{
		Mode:       mode,
		URL:        f.FileURL,
		Title:      track.Title,
		Format:     f.Format,
		TrackIndex: trackIndex,
	}
	if mode == ModeVideo {
		pb.MimeType = f.MimeType
	}

	s.state.TrackIndex = trackIndex
	s.state.Playback = &pb
	s.touchLocked()
	metrics.PlaybacksTotal.WithLabelValues(string(mode)).Inc()

	return pb, nil
}

// ClosePlayback clears the playback surface.
func (s *Session) ClosePlayback() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Playback = nil
	s.touchLocked()
}

func (s *Session) touchLocked() {
	t := s.now()
	s.lastSeen = t
	s.state.UpdatedAt = t
}

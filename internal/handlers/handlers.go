package handlers

import (
	"context"
	"time"

	"playlist-viewer/internal/playlist"
	"playlist-viewer/internal/resolver"
	"playlist-viewer/internal/session"
	"playlist-viewer/internal/startup"
)

// TrackResolver turns a playlist into its track list. *resolver.Resolver
// implements it.
type TrackResolver interface {
	Resolve(ctx context.Context, pl playlist.Playlist) (*resolver.Result, error)
	Grouping() resolver.Grouping
}

type Handlers struct {
	catalog      *playlist.Catalog
	loadErr      error
	resolver     TrackResolver
	sessions     *session.Store
	playbackMode session.PlaybackMode
	startTime    time.Time
}

// New creates the HTTP handlers. catalog may be nil when loadErr is set;
// the server then runs but reports not ready.
func New(catalog *playlist.Catalog, loadErr error, res TrackResolver, sessions *session.Store, config *startup.Config) *Handlers {
	return &Handlers{
		catalog:      catalog,
		loadErr:      loadErr,
		resolver:     res,
		sessions:     sessions,
		playbackMode: config.PlaybackMode,
		startTime:    time.Now(),
	}
}

// Ready reports whether the playlist file was loaded.
func (h *Handlers) Ready() bool {
	return h.catalog != nil && h.loadErr == nil
}

package resolver

import (
	"context"
	"errors"
	"time"

	"playlist-viewer/internal/archive"
	"playlist-viewer/internal/logging"
	"playlist-viewer/internal/metrics"
	"playlist-viewer/internal/playlist"
)

// MetadataSource fetches an item's file listing. *archive.Client
// implements it.
type MetadataSource interface {
	Metadata(ctx context.Context, identifier string) (*archive.Metadata, error)
}

// Result is the outcome of resolving one playlist.
type Result struct {
	Identifier string
	Grouping   Grouping
	Tracks     []Track
}

// Empty reports whether nothing playable was found. This is a valid
// terminal state, not an error.
func (r *Result) Empty() bool {
	return len(r.Tracks) == 0
}

// Resolver turns a playlist into its track list.
type Resolver struct {
	source   MetadataSource
	grouping Grouping
}

// New creates a Resolver.
func New(source MetadataSource, grouping Grouping) *Resolver {
	if grouping == "" {
		grouping = GroupingFlat
	}
	return &Resolver{source: source, grouping: grouping}
}

// Grouping returns the policy used to build tracks.
func (r *Resolver) Grouping() Grouping {
	return r.grouping
}

// Resolve derives the playlist's identifier, fetches its metadata and
// builds the track list. The list is rebuilt from scratch on every call.
// Errors are *archive.ParseError or *archive.FetchError.
func (r *Resolver) Resolve(ctx context.Context, pl playlist.Playlist) (*Result, error) {
	start := time.Now()
	defer func() {
		metrics.ResolutionDuration.Observe(time.Since(start).Seconds())
	}()

	id, err := archive.ExtractIdentifier(pl.URL)
	if err != nil {
		metrics.ResolutionsTotal.WithLabelValues("parse_error").Inc()
		return nil, err
	}

	meta, err := r.source.Metadata(ctx, id)
	if err != nil {
		metrics.ResolutionsTotal.WithLabelValues("fetch_error").Inc()
		if !errors.Is(err, archive.ErrFetch) {
			err = &archive.FetchError{Identifier: id, Err: err}
		}
		return nil, err
	}

	var files []archive.File
	if meta != nil {
		files = meta.Files
	}

	result := &Result{
		Identifier: id,
		Grouping:   r.grouping,
		Tracks:     Build(r.grouping, files, pl.URL),
	}

	metrics.TracksResolved.WithLabelValues(string(r.grouping)).Observe(float64(len(result.Tracks)))
	if result.Empty() {
		metrics.ResolutionsTotal.WithLabelValues("empty").Inc()
		logging.Info("No playable videos in %s (%d files)", id, len(files))
	} else {
		metrics.ResolutionsTotal.WithLabelValues("ready").Inc()
		logging.Debug("Resolved %s into %d tracks (%s)", id, len(result.Tracks), r.grouping)
	}

	return result, nil
}

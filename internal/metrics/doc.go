// Package metrics provides Prometheus instrumentation for the playlist viewer.
//
// All metrics are prefixed with "playlist_viewer_" and registered on the
// default registry through promauto, so the handler returned by
// promhttp.Handler exposes them without further wiring.
//
// # Metric Categories
//
//   - HTTP: request counts, durations and in-flight requests, recorded by
//     the middleware package.
//   - Archive: outcome and latency of archive.org metadata requests and the
//     size of each returned file listing.
//   - Resolver: resolution outcomes (ready, empty, parse_error, fetch_error),
//     resolution latency, tracks produced per grouping policy, and how many
//     remote files the video filter kept or skipped.
//   - Sessions: live viewer sessions, creations, expirations, selections
//     discarded as stale, and playbacks per surface.
//   - Playlists: number of playlists loaded and load failures by kind.
//   - Filesystem: stale NFS handle retries while reading the playlist file.
//
// # Collector
//
// Gauges that mirror application state (active sessions, loaded playlists)
// are refreshed by a Collector polling a StatsProvider:
//
//	c := metrics.NewCollector(metrics.StatsFunc(func() metrics.Stats {
//	    return metrics.Stats{ActiveSessions: store.Len(), Playlists: catalog.Len()}
//	}), time.Minute)
//	c.Start()
//	defer c.Stop()
//
// Call InitializeMetrics once at startup so that every labeled series is
// exported before its first observation.
package metrics

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playlist_viewer_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playlist_viewer_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "playlist_viewer_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Archive metadata client metrics
var (
	ArchiveRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playlist_viewer_archive_requests_total",
			Help: "Total number of archive.org metadata requests by outcome",
		},
		[]string{"status"}, // "success", "http_error", "network_error", "decode_error"
	)

	ArchiveRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "playlist_viewer_archive_request_duration_seconds",
			Help:    "Duration of archive.org metadata requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	ArchiveFilesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "playlist_viewer_archive_files_returned",
			Help:    "Number of file entries returned per metadata response",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)
)

// Resolver metrics
var (
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playlist_viewer_resolutions_total",
			Help: "Total number of playlist resolutions by outcome",
		},
		[]string{"outcome"}, // "ready", "empty", "parse_error", "fetch_error"
	)

	ResolutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "playlist_viewer_resolution_duration_seconds",
			Help:    "End-to-end playlist resolution duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	TracksResolved = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playlist_viewer_tracks_resolved",
			Help:    "Number of playable tracks produced per resolution",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
		[]string{"grouping"}, // "flat", "grouped"
	)

	FilesFilteredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playlist_viewer_files_filtered_total",
			Help: "Remote file entries seen by the track filter by result",
		},
		[]string{"result"}, // "kept", "skipped"
	)
)

// Viewer session metrics
var (
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "playlist_viewer_active_sessions",
			Help: "Number of live viewer sessions",
		},
	)

	SessionsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playlist_viewer_sessions_created_total",
			Help: "Total number of viewer sessions created",
		},
	)

	SessionsExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playlist_viewer_sessions_expired_total",
			Help: "Total number of viewer sessions removed after being idle",
		},
	)

	StaleSelectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playlist_viewer_stale_selections_total",
			Help: "Resolutions discarded because a newer selection started",
		},
	)

	PlaybacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playlist_viewer_playbacks_total",
			Help: "Total number of tracks opened for playback by surface",
		},
		[]string{"mode"}, // "iframe", "video"
	)
)

// Playlist catalog metrics
var (
	PlaylistsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "playlist_viewer_playlists_loaded",
			Help: "Number of playlists loaded from the playlist file",
		},
	)

	PlaylistLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playlist_viewer_playlist_load_errors_total",
			Help: "Playlist file load failures by kind",
		},
		[]string{"kind"}, // "missing", "unreadable", "malformed"
	)
)

// Filesystem retry metrics
var (
	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playlist_viewer_filesystem_retry_attempts_total",
			Help: "Total number of filesystem operation retries after stale NFS handles",
		},
		[]string{"operation"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playlist_viewer_filesystem_retry_success_total",
			Help: "Filesystem operations that succeeded after at least one retry",
		},
		[]string{"operation"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playlist_viewer_filesystem_retry_failures_total",
			Help: "Filesystem operations that failed after exhausting retries",
		},
		[]string{"operation"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playlist_viewer_filesystem_stale_errors_total",
			Help: "Stale NFS file handle errors observed",
		},
		[]string{"operation"},
	)

	FilesystemOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playlist_viewer_filesystem_operation_duration_seconds",
			Help:    "Duration of filesystem operations including retries",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"operation"},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "playlist_viewer_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}

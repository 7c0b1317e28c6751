// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig]:
//
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable metrics server (default: true)
//   - PLAYLISTS_FILE: Path to the playlist file (default: ./data/playlists.json)
//   - STATIC_DIR: Front end directory (default: ./static)
//   - ARCHIVE_BASE_URL: Metadata service base URL (default: https://archive.org)
//   - ARCHIVE_TIMEOUT: Per-request metadata timeout, Go duration (default: none)
//   - TRACK_GROUPING: flat or grouped (default: flat)
//   - PLAYBACK_MODE: iframe or video (default: iframe)
//   - SESSION_TTL: Idle viewer session lifetime (default: 24h)
//   - SESSION_SWEEP_INTERVAL: How often idle sessions are removed (default: 1h)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - LOG_STATIC_FILES: Log static file requests (default: false)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//   - MEMORY_LIMIT, MEMORY_RATIO, GOMEMLIMIT: Go heap limit (see package memory)
//
// Invalid enum values and base URLs are configuration errors. Invalid
// booleans and durations fall back to their defaults with a warning.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//   - Version: Application version
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - GoVersion: Go compiler version
//
// # Lifecycle Logging
//
//   - [LogMemoryConfig]: Go soft memory limit
//   - [LogPlaylistsLoaded]: Playlist file load result
//   - [LogResolverInit]: Metadata endpoint, timeout and track policy
//   - [LogSessionStoreInit]: Session TTL and sweep interval
//   - [LogHTTPRoutes]: Registered HTTP routes (debug level)
//   - [LogServerStarted]: Server endpoints and startup duration
//   - [LogShutdownInitiated]: Graceful shutdown start
//   - [LogShutdownComplete]: Shutdown completion
package startup

// Package main provides the entry point for the Playlist Viewer application.
//
// Playlist Viewer serves a small browser front end that lists curated
// archive.org collections from a JSON file. Selecting a collection asks the
// server to resolve it: the archive.org identifier is taken from the
// collection's URL, the item's metadata is fetched, and its video files
// become the track list shown to the viewer.
//
// # Application Lifecycle
//
//  1. Configuration Loading: Reads environment variables (see package startup)
//  2. Memory Configuration: Sets GOMEMLIMIT from MEMORY_LIMIT when present
//  3. Metrics Setup: Registers the filesystem observer and pre-populates labels
//  4. Playlist Loading: Reads PLAYLISTS_FILE once; failures leave the server
//     running but not ready
//  5. Component Initialization:
//     - Archive client and track resolver
//     - Viewer session store with its idle-session sweeper
//     - Metrics collector (when METRICS_ENABLED)
//  6. HTTP Server Setup: Routes, W3C access logging, request metrics, and a
//     separate metrics server on METRICS_PORT
//  7. Graceful Shutdown: Handles SIGINT/SIGTERM and stops every component
//
// # Routes
//
//	GET    /api/playlists
//	POST   /api/playlists/{index}/select
//	GET    /api/state
//	POST   /api/tracks/{index}/play?format=<ext>
//	DELETE /api/playback
//	GET    /data/playlists.json
//	GET    /health, /healthz, /livez, /readyz, /version
//	GET    /metrics (metrics port)
//
// Everything else is served from STATIC_DIR.
package main

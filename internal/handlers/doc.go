// Package handlers provides the HTTP handlers for the playlist viewer API.
//
// It includes handlers for:
//   - Listing playlists and serving the raw playlist file
//   - Selecting a playlist, which resolves its track list for the caller's session
//   - Reading the caller's viewer state and starting or closing playback
//   - Health, liveness, readiness and version endpoints
//   - The Prometheus metrics endpoint
//
// Each browser is tracked by a session cookie (see [SessionCookieName]).
// Resolution errors are part of the returned viewer state, so the front
// end renders them in place of the track list.
package handlers

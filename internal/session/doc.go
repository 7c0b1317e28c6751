// Package session holds the per-viewer UI state.
//
// Every browser gets a Session identified by a random UUID carried in a
// cookie. The session owns an explicit State record (current playlist,
// status message, track list, current track and playback) instead of
// process-wide variables.
//
// # Selection tokens
//
// Selecting a playlist calls Begin, which bumps a per-session counter and
// returns it as the selection token. The resolution result is applied with
// Complete or Fail using that token. If the viewer selected another
// playlist in the meantime the token no longer matches, the late result is
// discarded and ErrStaleSelection is returned, so the latest selection
// always wins regardless of the order in which metadata responses arrive.
// In-flight requests for superseded selections are not cancelled.
//
// # Expiry
//
// Sessions untouched for longer than the store TTL are removed by Sweep,
// which StartSweeper runs periodically.
package session

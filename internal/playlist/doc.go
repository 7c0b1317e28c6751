// Package playlist loads the playlist catalog from the static JSON file.
//
// The file has the shape:
//
//	{ "playlists": [ { "title": "...", "url": "https://archive.org/details/<id>", "cover": "..." } ] }
//
// The catalog is read once at startup and never changes afterwards. Load
// failures are reported as *LoadError with a Kind that separates a missing
// file from an unreadable or malformed one, so operators can tell a wrong
// PLAYLISTS_FILE path apart from a typo in the JSON.
package playlist

// Package mediatypes provides the video format knowledge shared by the
// resolver and the playback handlers.
//
// This package exists as a dependency-free foundation that can be imported by
// other packages without creating import cycles.
//
// # Extension Detection
//
// A remote file is playable when its lowercased name ends with one of the
// recognized extensions (.mp4, .mkv, .avi, .mov, .mpg, .mpeg, .ogv, .webm):
//
//	if ext, ok := mediatypes.MatchVideoExtension(file.Name); ok {
//	    // ext is lowercase, e.g. ".webm"
//	}
//
// SplitVideoName returns the base name used to group format variants of
// the same clip.
//
// # MIME Types
//
// Use GetMimeType to get the type announced on a native video element:
//
//	mimeType := mediatypes.GetMimeType(".webm") // "video/webm"
package mediatypes

// Package resolver implements the metadata-to-playable-track pipeline.
//
// Resolve runs three steps for a playlist:
//
//  1. derive the archive.org identifier from the playlist URL
//  2. fetch the item's file listing
//  3. keep files with a recognized video extension and build tracks
//
// Two track policies exist. Flat produces one track per video file whose
// FileURL is the file's download URL. Grouped merges files that share a
// base name ("clip.mp4" and "clip.webm") into one track titled "clip"
// with one Format per extension. In both cases tracks appear in the order
// their first file appears in the listing; nothing is sorted.
//
// An empty track list is a normal outcome and is reported through
// Result.Empty rather than an error.
package resolver

package resolver

import (
	"fmt"
	"strings"

	"playlist-viewer/internal/archive"
	"playlist-viewer/internal/mediatypes"
	"playlist-viewer/internal/metrics"
)

// Grouping selects how matching files become tracks.
type Grouping string

const (
	// GroupingFlat turns every matching file into its own track.
	GroupingFlat Grouping = "flat"
	// GroupingGrouped merges files sharing a base name into one track with
	// one format per extension.
	GroupingGrouped Grouping = "grouped"
)

// ParseGrouping validates a grouping name.
func ParseGrouping(s string) (Grouping, error) {
	switch Grouping(strings.ToLower(strings.TrimSpace(s))) {
	case GroupingFlat, "":
		return GroupingFlat, nil
	case GroupingGrouped:
		return GroupingGrouped, nil
	}
	return "", fmt.Errorf("unknown track grouping %q (want %q or %q)", s, GroupingFlat, GroupingGrouped)
}

// Format is one playable variant of a grouped track.
type Format struct {
	// Format is the lowercase extension without the dot, e.g. "webm".
	Format   string `json:"format"`
	FileURL  string `json:"fileUrl"`
	MimeType string `json:"mimeType"`
	Size     *int64 `json:"size,omitempty"`
	// Label is archive.org's own format description ("h.264", "MPEG4").
	Label string `json:"label,omitempty"`
}

// Track is one playable unit in the track list. Flat tracks carry FileURL;
// grouped tracks carry Formats.
type Track struct {
	Title   string   `json:"title"`
	FileURL string   `json:"fileUrl,omitempty"`
	Formats []Format `json:"formats,omitempty"`
}

// Build dispatches to Flat or Grouped.
func Build(grouping Grouping, files []archive.File, detailURL string) []Track {
	if grouping == GroupingGrouped {
		return Grouped(files, detailURL)
	}
	return Flat(files, detailURL)
}

// Flat returns one track per video file, in listing order.
func Flat(files []archive.File, detailURL string) []Track {
	tracks := make([]Track, 0)
	for _, f := range files {
		if !keep(f) {
			continue
		}
		tracks = append(tracks, Track{
			Title:   f.Name,
			FileURL: archive.DownloadURL(detailURL, f.Name),
		})
	}
	return tracks
}

// Grouped returns one track per video base name, in order of the base
// name's first appearance. Each extension contributes at most one format;
// later duplicates are ignored.
func Grouped(files []archive.File, detailURL string) []Track {
	tracks := make([]Track, 0)
	index := make(map[string]int)

	for _, f := range files {
		if !keep(f) {
			continue
		}
		base, ext, _ := mediatypes.SplitVideoName(f.Name)

		i, seen := index[base]
		if !seen {
			i = len(tracks)
			index[base] = i
			tracks = append(tracks, Track{Title: base})
		}

		name := mediatypes.FormatName(ext)
		if hasFormat(tracks[i].Formats, name) {
			continue
		}
		tracks[i].Formats = append(tracks[i].Formats, Format{
			Format:   name,
			FileURL:  archive.DownloadURL(detailURL, f.Name),
			MimeType: mediatypes.GetMimeType(ext),
			Size:     f.Size,
			Label:    f.Format,
		})
	}
	return tracks
}

func keep(f archive.File) bool {
	ok := mediatypes.IsVideo(f.Name)
	if ok {
		metrics.FilesFilteredTotal.WithLabelValues("kept").Inc()
	} else {
		metrics.FilesFilteredTotal.WithLabelValues("skipped").Inc()
	}
	return ok
}

func hasFormat(formats []Format, name string) bool {
	for _, f := range formats {
		if f.Format == name {
			return true
		}
	}
	return false
}

// FindFormat returns the variant of t with the given format name. An empty
// name selects the first variant. Flat tracks expose their single file as
// a format derived from its extension.
func (t Track) FindFormat(name string) (Format, bool) {
	name = mediatypes.FormatName(name)

	if len(t.Formats) == 0 {
		ext, ok := mediatypes.MatchVideoExtension(t.FileURL)
		if !ok || (name != "" && name != mediatypes.FormatName(ext)) {
			return Format{}, false
		}
		return Format{
			Format:   mediatypes.FormatName(ext),
			FileURL:  t.FileURL,
			MimeType: mediatypes.GetMimeType(ext),
		}, true
	}

	if name == "" {
		return t.Formats[0], true
	}
	for _, f := range t.Formats {
		if f.Format == name {
			return f, true
		}
	}
	return Format{}, false
}

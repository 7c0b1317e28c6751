package playlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"playlist-viewer/internal/filesystem"
	"playlist-viewer/internal/logging"
	"playlist-viewer/internal/metrics"
)

// PlaceholderCover is shown for playlists that do not name a cover image.
const PlaceholderCover = "assets/img/placeholder.jpg"

// UntitledPlaylist is the display title for playlists without a title.
const UntitledPlaylist = "Untitled playlist"

// Playlist is one entry of the playlist file. It is immutable after load.
type Playlist struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Cover string `json:"cover,omitempty"`
}

// DisplayTitle returns the title, or UntitledPlaylist when it is blank.
func (p Playlist) DisplayTitle() string {
	if strings.TrimSpace(p.Title) == "" {
		return UntitledPlaylist
	}
	return p.Title
}

// CoverOrPlaceholder returns the cover URL, or PlaceholderCover when none is set.
func (p Playlist) CoverOrPlaceholder() string {
	if p.Cover == "" {
		return PlaceholderCover
	}
	return p.Cover
}

// file is the on-disk shape of playlists.json
type file struct {
	Playlists []Playlist `json:"playlists"`
}

// Parse decodes the contents of a playlist file. A document without a
// "playlists" key yields an empty list.
func Parse(data []byte) ([]Playlist, error) {
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Playlists == nil {
		return []Playlist{}, nil
	}
	return f.Playlists, nil
}

// Catalog is the set of playlists loaded at startup.
type Catalog struct {
	path      string
	raw       []byte
	playlists []Playlist
}

// NewCatalog builds a catalog from already decoded playlists.
func NewCatalog(playlists []Playlist) *Catalog {
	return &Catalog{playlists: playlists}
}

// Load reads and parses the playlist file at path. Failures are returned as
// *LoadError.
func Load(path string) (*Catalog, error) {
	data, err := filesystem.ReadFileWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		kind := KindUnreadable
		if errors.Is(err, os.ErrNotExist) {
			kind = KindMissing
		}
		return nil, newLoadError(kind, path, err)
	}

	playlists, err := Parse(data)
	if err != nil {
		return nil, newLoadError(KindMalformed, path, err)
	}

	logging.Info("Loaded %d playlists from %s", len(playlists), path)
	metrics.PlaylistsLoaded.Set(float64(len(playlists)))

	return &Catalog{path: path, raw: data, playlists: playlists}, nil
}

func newLoadError(kind LoadErrorKind, path string, err error) *LoadError {
	metrics.PlaylistLoadErrors.WithLabelValues(string(kind)).Inc()
	return &LoadError{Kind: kind, Path: path, Err: err}
}

// Path returns the file the catalog was loaded from.
func (c *Catalog) Path() string {
	return c.path
}

// Raw returns the file contents exactly as read.
func (c *Catalog) Raw() []byte {
	return c.raw
}

// Len returns the number of playlists.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.playlists)
}

// Get returns the playlist at index.
func (c *Catalog) Get(index int) (Playlist, bool) {
	if c == nil || index < 0 || index >= len(c.playlists) {
		return Playlist{}, false
	}
	return c.playlists[index], true
}

// All returns a copy of the playlists in file order.
func (c *Catalog) All() []Playlist {
	if c == nil {
		return nil
	}
	out := make([]Playlist, len(c.playlists))
	copy(out, c.playlists)
	return out
}

// String is used in startup logs.
func (c *Catalog) String() string {
	return fmt.Sprintf("%d playlists from %s", c.Len(), c.path)
}

package playlist

import (
	"errors"
	"fmt"
)

// ErrLoad matches every *LoadError through errors.Is.
var ErrLoad = errors.New("playlist load failed")

// LoadErrorKind tells an absent playlist file apart from a broken one.
type LoadErrorKind string

const (
	// KindMissing means the playlist file does not exist.
	KindMissing LoadErrorKind = "missing"
	// KindUnreadable means the file exists but could not be read.
	KindUnreadable LoadErrorKind = "unreadable"
	// KindMalformed means the file was read but is not valid playlist JSON.
	KindMalformed LoadErrorKind = "malformed"
)

// LoadError reports a failure to load the playlist file.
type LoadError struct {
	Kind LoadErrorKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message(), e.Err)
}

// Message is the short text shown to viewers in place of the playlist list.
func (e *LoadError) Message() string {
	switch e.Kind {
	case KindMissing:
		return "Playlist file not found"
	case KindMalformed:
		return "Playlist file is not valid JSON"
	default:
		return "Failed loading playlist file"
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrLoad.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

package archive

import (
	"errors"
	"fmt"
)

var (
	// ErrParse matches every *ParseError.
	ErrParse = errors.New("could not parse archive.org identifier")
	// ErrFetch matches every *FetchError.
	ErrFetch = errors.New("archive.org metadata fetch failed")
)

// ParseError reports a playlist URL from which no identifier can be derived.
type ParseError struct {
	URL    string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", ErrParse, e.Reason, e.Err)
	}
	return fmt.Sprintf("%v: %s", ErrParse, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// FetchError reports a failed metadata request. StatusCode is zero when no
// response was received.
type FetchError struct {
	Identifier string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%v: %s: HTTP %d", ErrFetch, e.Identifier, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%v: %s: %v", ErrFetch, e.Identifier, e.Err)
	default:
		return fmt.Sprintf("%v: %s", ErrFetch, e.Identifier)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFetch.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

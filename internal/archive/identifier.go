package archive

import (
	"net/url"
	"strings"
)

// DetailsMarker is the path segment that precedes the identifier in an
// archive.org detail-page URL.
const DetailsMarker = "details"

// ExtractIdentifier derives the archive.org identifier from a detail-page
// URL. The segment following "details" wins; otherwise the last path
// segment is used. Segments are taken from the escaped path, so an encoded
// slash stays part of the identifier.
//
//	ExtractIdentifier("https://archive.org/details/myid")      // "myid"
//	ExtractIdentifier("https://archive.org/details/myid/a.mp4") // "myid"
//	ExtractIdentifier("https://example.org/items/other")       // "other"
func ExtractIdentifier(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", &ParseError{URL: rawURL, Reason: "malformed URL", Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return "", &ParseError{URL: rawURL, Reason: "URL must be absolute"}
	}

	parts := pathSegments(u.EscapedPath())
	if len(parts) == 0 {
		return "", &ParseError{URL: rawURL, Reason: "URL has no path segments"}
	}

	for i, part := range parts {
		if part == DetailsMarker && i+1 < len(parts) {
			return parts[i+1], nil
		}
	}

	return parts[len(parts)-1], nil
}

func pathSegments(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

package mediatypes

import (
	"strings"
	"unicode/utf8"
)

// videoExtensionOrder lists the recognized video extensions in the order
// they are tested against a filename.
var videoExtensionOrder = []string{
	".mp4",
	".mkv",
	".avi",
	".mov",
	".mpg",
	".mpeg",
	".ogv",
	".webm",
}

// VideoExtensions maps lowercase file extensions to whether they are
// playable video formats.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".mpg":  true,
	".mpeg": true,
	".ogv":  true,
	".webm": true,
}

// MimeTypes maps video extensions to the MIME type announced to a native
// video element.
var MimeTypes = map[string]string{
	".mp4":  "video/mp4",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
	".mpg":  "video/mpeg",
	".mpeg": "video/mpeg",
	".ogv":  "video/ogg",
	".webm": "video/webm",
}

// VideoExtensionList returns the recognized extensions in match order.
func VideoExtensionList() []string {
	out := make([]string, len(videoExtensionOrder))
	copy(out, videoExtensionOrder)
	return out
}

// MatchVideoExtension reports which recognized video extension the name
// ends with. Matching is case-insensitive; the returned extension is
// lowercase and includes the leading dot.
func MatchVideoExtension(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, ext := range videoExtensionOrder {
		if strings.HasSuffix(lower, ext) {
			return ext, true
		}
	}
	return "", false
}

// IsVideo returns true if name ends with a recognized video extension.
func IsVideo(name string) bool {
	_, ok := MatchVideoExtension(name)
	return ok
}

// SplitVideoName splits a video filename into its base name and the
// lowercase extension. ok is false for non-video names.
//
//	SplitVideoName("dir/Clip.MP4") // "dir/Clip", ".mp4", true
func SplitVideoName(name string) (base, ext string, ok bool) {
	ext, ok = MatchVideoExtension(name)
	if !ok {
		return name, "", false
	}
	return name[:suffixStart(name, ext)], ext, true
}

// suffixStart returns the byte offset in name of the suffix that lowercases
// to ext, a match reported by MatchVideoExtension. Lowercasing can change a
// rune's byte length (U+212A KELVIN SIGN becomes "k").
func suffixStart(name, ext string) int {
	i := len(name)
	for n := 0; n < len(ext) && i > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(name[:i])
		i -= size
		if strings.ToLower(name[i:]) == ext {
			return i
		}
	}
	return len(name) - len(ext)
}

// FormatName returns the short format label for an extension ("mp4" for
// ".mp4").
func FormatName(ext string) string {
	return strings.TrimPrefix(strings.ToLower(ext), ".")
}

// GetMimeType returns the MIME type for a given file extension.
// The extension may be given in any case, with or without the leading dot.
// Returns "application/octet-stream" if the extension is not recognized.
func GetMimeType(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if mime, ok := MimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}

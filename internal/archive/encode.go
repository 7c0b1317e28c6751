package archive

import (
	"net/url"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// EncodeURIComponent percent-encodes s the way browsers encode a URI
// component: every byte except ASCII letters, digits and - _ . ! ~ * ' ( )
// is escaped, so "/" becomes %2F and a space becomes %20.
func EncodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// DownloadURL builds the direct download URL for a file of the item a
// detail-page URL points at: the first "/details/" in the path becomes
// "/download/", the query and fragment are dropped, a single trailing slash
// is removed and the encoded filename is appended.
func DownloadURL(detailURL, filename string) string {
	u, err := url.Parse(strings.TrimSpace(detailURL))
	if err != nil {
		base, _, _ := strings.Cut(detailURL, "#")
		base, _, _ = strings.Cut(base, "?")
		return downloadPath(base) + "/" + EncodeURIComponent(filename)
	}

	p := downloadPath(u.EscapedPath())
	u.Path, u.RawPath = "", ""
	u.RawQuery, u.ForceQuery = "", false
	u.Fragment, u.RawFragment = "", ""
	return u.String() + p + "/" + EncodeURIComponent(filename)
}

func downloadPath(p string) string {
	p = strings.Replace(p, "/"+DetailsMarker+"/", "/download/", 1)
	return strings.TrimSuffix(p, "/")
}

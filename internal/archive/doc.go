// Package archive talks to archive.org.
//
// It covers the three pieces of archive.org knowledge the viewer needs:
//
//   - ExtractIdentifier derives an item identifier from a detail-page URL
//     such as https://archive.org/details/<identifier>. Failures are
//     *ParseError.
//   - Client.Metadata queries https://archive.org/metadata/<identifier> and
//     decodes its "files" list. Non-2xx responses, transport failures and
//     undecodable bodies are *FetchError. Requests are never retried.
//   - DownloadURL turns a detail-page URL plus a filename into the direct
//     download URL, percent-encoding the filename with EncodeURIComponent.
//
// Both error types match their sentinel (ErrParse, ErrFetch) with errors.Is
// and unwrap to the underlying cause.
package archive

// Package urlkey derives stable, filesystem-safe identifiers from URLs.
// The identifier is used both as the record key in the store and as the
// filename stem for the page screenshot.
package urlkey

import "strings"

// MaxLength is the maximum identifier length before truncation kicks in.
const MaxLength = 100

// TruncationSuffix is appended when a normalized identifier is truncated.
const TruncationSuffix = "_hash"

var unsafeChars = strings.NewReplacer(
	"/", "_",
	".", "_",
	":", "_",
	"?", "_",
	"=", "_",
	"&", "_",
)

// Normalize maps a URL to a deterministic key safe for use as a map key and
// filename stem. The scheme and a leading "www." are stripped, unsafe
// characters are replaced with underscores, and identifiers longer than
// MaxLength are truncated with TruncationSuffix appended.
//
// Normalization is idempotent: a value that is already a normalized key is
// returned unchanged. Distinct URLs that normalize to the same key share one
// record; last write wins.
func Normalize(rawURL string) string {
	id := strings.TrimPrefix(rawURL, "https://")
	id = strings.TrimPrefix(id, "http://")
	id = strings.TrimPrefix(id, "www.")
	id = unsafeChars.Replace(id)

	if len(id) > MaxLength && !isTruncated(id) {
		id = id[:MaxLength] + TruncationSuffix
	}

	return id
}

// isTruncated reports whether id is already a truncated identifier, so that
// re-normalizing it does not truncate a second time.
func isTruncated(id string) bool {
	return len(id) == MaxLength+len(TruncationSuffix) && strings.HasSuffix(id, TruncationSuffix)
}


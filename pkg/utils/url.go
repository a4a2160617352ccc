package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// HashURL creates a SHA256 hash of a URL string.
// This is useful for creating consistent, safe keys for Redis.
func HashURL(rawURL string) string {
	h := sha256.New()
	h.Write([]byte(rawURL))
	return hex.EncodeToString(h.Sum(nil))
}

// SlugifyURL converts a URL into a filesystem-safe directory name by
// replacing every non-alphanumeric character with an underscore.
func SlugifyURL(rawURL string) string {
	var b strings.Builder
	b.Grow(len(rawURL))
	for _, r := range rawURL {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// TimestampDir renders t as a filesystem-safe, sortable directory name:
// RFC3339 with millisecond precision, with ':' and '.' replaced by '-'.
func TimestampDir(t time.Time) string {
	s := t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	s = strings.ReplaceAll(s, ":", "-")
	return strings.ReplaceAll(s, ".", "-")
}

package constants

import "strings"

// AllowedExtensions holds the default file extensions accepted by report ingestion.
// The analyzer consumes already-extracted text, so only plain-text forms are listed.
var AllowedExtensions = map[string]struct{}{
	"txt":  {},
	"text": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

package util

import (
	"errors"
	"strings"
)

// SanitizeFileName removes path separators and quotes and rejects traversal patterns.
// The result is safe to use as a storage key segment or in a Content-Disposition header.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.NewReplacer(
		"/", "_",
		"\\", "_",
		"\"", "",
		"\r", "",
		"\n", "",
	).Replace(s)
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

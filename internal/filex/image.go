// Package filex reads local avatar files into the inline representation
// the profile editor previews and the API consumes.
package filex

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
)

const base64Marker = ";base64,"

// ReadImageDataURI loads an image file and returns it as a base64 data
// URI ("data:image/png;base64,...."), the form held in a profile draft
// for local preview. Non-image files are rejected.
func ReadImageDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image %s: %w", path, err)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%s is not an image (detected %s)", path, contentType)
	}

	return "data:" + contentType + base64Marker + base64.StdEncoding.EncodeToString(data), nil
}

// IsDataURI reports whether s is an inline data URI rather than a
// stored avatar filename.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// StripDataURI returns the raw base64 payload of a data URI. The server
// expects the encoded bytes without the "data:...;base64," framing.
// Values that are not data URIs are returned unchanged.
func StripDataURI(s string) string {
	if !IsDataURI(s) {
		return s
	}
	if i := strings.Index(s, base64Marker); i >= 0 {
		return s[i+len(base64Marker):]
	}
	return s
}

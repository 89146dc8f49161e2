package filex

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimal 1x1 PNG
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func writeTempPNG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "avatar.png")
	require.NoError(t, os.WriteFile(path, pngBytes, 0o600))
	return path
}

func TestReadImageDataURI_PNG(t *testing.T) {
	uri, err := ReadImageDataURI(writeTempPNG(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	raw := StripDataURI(uri)
	decoded, err := base64.StdEncoding.DecodeString(raw)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, decoded)
}

func TestReadImageDataURI_RejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text, nothing else"), 0o600))

	_, err := ReadImageDataURI(path)
	assert.Error(t, err)
}

func TestReadImageDataURI_MissingFile(t *testing.T) {
	_, err := ReadImageDataURI(filepath.Join(t.TempDir(), "absent.png"))
	assert.Error(t, err)
}

func TestStripDataURI_PassThroughForFilenames(t *testing.T) {
	assert.Equal(t, "profile1.png", StripDataURI("profile1.png"))
}

func TestIsDataURI(t *testing.T) {
	assert.True(t, IsDataURI("data:image/png;base64,AAAA"))
	assert.False(t, IsDataURI("profile1.png"))
	assert.False(t, IsDataURI(""))
}

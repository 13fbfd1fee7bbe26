package brand

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brands.yaml")
	content := "brands:\n  itoen: 伊藤園\n  이토엔: 伊藤園\n  nissin: 日清食品\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := NewMapping().LoadOverlay(path)
	require.NoError(t, err)

	assert.Equal(t, "伊藤園", m.Official("itoen"))
	assert.Equal(t, "伊藤園", m.Official("이토엔"))
	assert.Equal(t, "日清食品", m.Official("nissin"))

	// Built-ins not named by the overlay survive.
	assert.Equal(t, "農心", m.Official("nongshim"))
}

func TestLoadOverlay_MissingFile(t *testing.T) {
	_, err := NewMapping().LoadOverlay(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadOverlay_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("brands: [not a map"), 0o644))

	_, err := NewMapping().LoadOverlay(path)
	assert.Error(t, err)
}

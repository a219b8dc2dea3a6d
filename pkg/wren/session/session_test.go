package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	defaults := Session{SortBy: "name", ShowHidden: true}

	s, err := Load(filepath.Join(t.TempDir(), "session.yaml"), defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, s)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.yaml")

	saved := Session{SortBy: "time", ShowHidden: true}
	require.NoError(t, saved.Save(path))

	loaded, err := Load(path, Session{SortBy: "name"})
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sort_by: [not a scalar"), 0o644))

	defaults := Session{SortBy: "name"}
	s, err := Load(path, defaults)
	assert.Error(t, err)
	assert.Equal(t, defaults, s)
}

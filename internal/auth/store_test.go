package auth_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hal9000y/gapps-mcp/internal/auth"
)

func TestStoreTokenPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "creds")

	store, err := auth.NewStore(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, store.Dir())
	assert.Equal(t, filepath.Join(dir, "gmail.json"), store.TokenPath("gmail"))
	assert.Equal(t, filepath.Join(dir, "drive.json"), store.TokenPath("drive"))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStoreExistingDir(t *testing.T) {
	dir := t.TempDir()

	store, err := auth.NewStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
}

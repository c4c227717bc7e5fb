package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheDirCreatesSecureDir(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	dir, err := CacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "open-sesame"), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
}

func TestCacheDirFixesLoosePermissions(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	loose := filepath.Join(base, "open-sesame")
	require.NoError(t, os.MkdirAll(loose, 0o755))
	require.NoError(t, os.Chmod(loose, 0o755))

	_, err := CacheDir()
	require.NoError(t, err)

	info, err := os.Stat(loose)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
}

func TestCacheDirRejectsFileInTheWay(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	require.NoError(t, os.WriteFile(filepath.Join(base, "open-sesame"), []byte("x"), 0o600))

	_, err := CacheDir()
	assert.Error(t, err)
}

func TestRuntimeFilePaths(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	lockPath, err := LockFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "open-sesame", "instance.lock"), lockPath)

	mruPath, err := MRUFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "open-sesame", "mru"), mruPath)

	sockPath, err := SocketFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "open-sesame", "ipc.sock"), sockPath)
}

func TestConfigDirHonorsXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	dir, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "open-sesame"), dir)
}

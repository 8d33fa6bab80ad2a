package filex

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "a", "b", "file")

	require.NoError(t, EnsureParentDir(path))
	require.NoError(t, EnsureParentDir(path), "idempotent")

	fi, err := os.Stat(filepath.Join(tmp, "a", "b"))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureParentDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "dir"), []byte("x"), 0o600))

	require.Error(t, EnsureParentDir(filepath.Join(tmp, "dir", "file")))
}

func TestCreateExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "id")

	require.NoError(t, CreateExclusive(path, []byte("first"), 0o600))
	err := CreateExclusive(path, []byte("second"), 0o600)
	require.True(t, errors.Is(err, os.ErrExist))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(b))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestCreateExclusive_SingleWinner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "id")

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if CreateExclusive(path, []byte("x"), 0o600) == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

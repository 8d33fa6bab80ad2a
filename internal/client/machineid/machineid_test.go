package machineid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreate_StableAcrossCalls(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".machine_id")

	first, err := LoadOrCreate(path)
	require.NoError(t, err)
	_, err = uuid.Parse(first)
	require.NoError(t, err, "generated id is a UUID")

	second, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadOrCreate_KeepsExistingID(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".machine_id")
	require.NoError(t, os.WriteFile(path, []byte("host-42\n"), 0o600))

	id, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, "host-42", id)
}

func TestLoadOrCreate_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".machine_id")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	_, err := LoadOrCreate(path)
	require.ErrorIs(t, err, ErrEmpty)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// Package machineid keeps the stable identifier a client presents for its
// host. The id is a random UUID generated on first use and stored in a file.
package machineid

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/seekauth/internal/filex"
	"github.com/google/uuid"
)

var ErrEmpty = errors.New("machine id file is empty")

// Load returns the id stored at path.
func Load(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	id := strings.TrimSpace(string(b))
	if id == "" {
		return "", fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return id, nil
}

// LoadOrCreate returns the id stored at path, creating the file with a new
// UUID when it does not exist. Concurrent first runs agree on one id.
func LoadOrCreate(path string) (string, error) {
	id, err := Load(path)
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		return id, err
	}

	id = uuid.NewString()
	err = filex.CreateExclusive(path, []byte(id), 0o600)
	switch {
	case err == nil:
		return id, nil
	case errors.Is(err, os.ErrExist):
		return Load(path)
	}
	return "", fmt.Errorf("machine id create error: %w", err)
}

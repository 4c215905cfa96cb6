package safeio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrExists is returned by WriteNew when the target exists and overwriting was not requested.
var ErrExists = errors.New("file already exists")

// WriteFilePreservePerms writes data to path preserving existing file mode when possible.
// When the file does not exist, it uses a sane default of 0644.
func WriteFilePreservePerms(path string, data []byte) error {
	var mode os.FileMode = 0o644
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode() & 0o777
		if mode == 0 {
			mode = 0o644
		}
	}
	return os.WriteFile(path, data, mode)
}

// WriteNew creates path (and its parent directories) with data. An existing
// file is only replaced when overwrite is set, keeping its permissions.
func WriteNew(path string, data []byte, overwrite bool) error {
	clean := filepath.Clean(path)
	if st, err := os.Stat(clean); err == nil {
		if st.IsDir() {
			return fmt.Errorf("%s is a directory", clean)
		}
		if !overwrite {
			return fmt.Errorf("%s: %w", clean, ErrExists)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if dir := filepath.Dir(clean); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return WriteFilePreservePerms(clean, data)
}

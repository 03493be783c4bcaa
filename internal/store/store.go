package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/locgroup/internal/debug"
)

// ErrSerialize wraps any failure to encode an artifact as JSON
var ErrSerialize = errors.New("artifact cannot be serialized")

// renameFunc promotes the temp file to its destination. Tests override it to
// simulate an interruption before promotion.
var renameFunc = os.Rename

// syncDirFunc fsyncs a directory after the rename
var syncDirFunc = func(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}

// Store persists JSON artifacts atomically
type Store struct {
	logger *zap.Logger
}

// New creates a store. A nil logger discards output.
func New(logger *zap.Logger) *Store {
	return &Store{logger: debug.OrNop(logger)}
}

// Encode renders v as deterministic JSON: map keys sorted, two-space
// indent, no HTML escaping, trailing newline.
func Encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	return buf.Bytes(), nil
}

// Write stores artifact at path. When overwrite is false and path already
// exists the call is a no-op. It reports whether the file was written.
func (s *Store) Write(artifact interface{}, path string, overwrite bool) (bool, error) {
	if !overwrite {
		exists, err := Exists(path)
		if err != nil {
			return false, err
		}
		if exists {
			s.logger.Debug("artifact exists, skipping write", zap.String("path", path))
			return false, nil
		}
	}

	data, err := Encode(artifact)
	if err != nil {
		return false, fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := writeFileAtomic(path, data); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}

	s.logger.Info("artifact written", zap.String("path", path), zap.Int("bytes", len(data)))
	return true, nil
}

// Exists reports whether path exists
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Read decodes the artifact at path into v, keeping numbers as json.Number
// when v holds interface values.
func Read(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file in the destination directory,
// fsyncs it and renames it over path. The temp file is removed on failure.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	// CreateTemp uses 0600; artifacts are shared outputs
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return err
	}
	if err := renameFunc(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return syncDirFunc(dir)
}

package progress

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Backend stores the serialized progress document.
type Backend interface {
	// Read returns the stored document, or an error wrapping
	// fs.ErrNotExist when none has been written.
	Read() ([]byte, error)
	// Write replaces the stored document in full.
	Write(data []byte) error
	// Remove deletes the stored document. Removing a missing document
	// is not an error.
	Remove() error
}

// FileBackend stores the document in a single file.
type FileBackend struct {
	Path string
}

// NewFileBackend returns a FileBackend for path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{Path: path}
}

func (b *FileBackend) Read() ([]byte, error) {
	return os.ReadFile(b.Path)
}

// Write writes data to a temp file beside the target and renames it into
// place, so readers see either the old document or the new one.
func (b *FileBackend) Write(data []byte) error {
	dir := filepath.Dir(b.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	f, err := os.CreateTemp(dir, ".progress-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, b.Path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (b *FileBackend) Remove() error {
	err := os.Remove(b.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryBackend keeps the document in memory. WriteErr, when set, is
// returned from every Write.
type MemoryBackend struct {
	Data     []byte
	WriteErr error
	Writes   int
}

func (b *MemoryBackend) Read() ([]byte, error) {
	if b.Data == nil {
		return nil, fs.ErrNotExist
	}
	return b.Data, nil
}

func (b *MemoryBackend) Write(data []byte) error {
	if b.WriteErr != nil {
		return b.WriteErr
	}
	b.Writes++
	b.Data = append([]byte(nil), data...)
	return nil
}

func (b *MemoryBackend) Remove() error {
	b.Data = nil
	return nil
}

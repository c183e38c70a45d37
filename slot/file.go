package slot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File stores each key in its own "<key>.json" file under a directory.
//
// Writes go to a temporary file renamed over the previous one, so a reader
// never observes a partially written value.
type File struct {
	dir string
}

// NewFile returns a File backend rooted at dir. The directory is created on the first write.
func NewFile(dir string) *File { return &File{dir: dir} }

func (f *File) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid slot key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not read slot file %q: %w", p, err)
	}
	return b, nil
}

func (f *File) Set(_ context.Context, key string, value []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return fmt.Errorf("could not create slot directory %q: %w", f.dir, err)
	}

	tmp, err := os.CreateTemp(f.dir, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create temporary slot file: %w", err)
	}
	// no-op once renamed
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("could not write slot file %q: %w", p, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not write slot file %q: %w", p, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("could not replace slot file %q: %w", p, err)
	}
	return nil
}

func (f *File) Close() error { return nil }

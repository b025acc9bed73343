package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// File persists all keys in a single JSON document. Every Save rewrites the
// document through a temp file and rename so a crash never leaves it half
// written.
type File struct {
	mu     sync.RWMutex
	path   string
	values map[string]json.RawMessage
}

// OpenFile loads the document at path, creating its directory if needed.
// A missing file is an empty store. A document that does not parse is moved
// aside to <path>.corrupt and the store starts empty; only I/O failures are
// errors.
func OpenFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("file store: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("file store: creating directory: %w", err)
	}

	f := &File{path: path, values: make(map[string]json.RawMessage)}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file store: reading %s: %w", path, err)
	}
	if len(data) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(data, &f.values); err != nil {
		f.values = make(map[string]json.RawMessage)
		quarantine(path, err)
	}
	return f, nil
}

// quarantine moves an unparsable document out of the way so the next save
// does not overwrite the only copy.
func quarantine(path string, cause error) {
	aside := path + ".corrupt"
	log := slog.Default().With("path", path, "error", cause)
	if err := os.Rename(path, aside); err != nil {
		log.Warn("file store: corrupt document, starting empty", "rename_error", err)
		return
	}
	log.Warn("file store: corrupt document moved aside, starting empty", "moved_to", aside)
}

func (f *File) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	v, ok := f.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Save stores value under key. Values must be valid JSON.
func (f *File) Save(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !json.Valid(value) {
		return fmt.Errorf("file store: value for %q is not valid JSON", key)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.values[key]
	f.values[key] = append(json.RawMessage(nil), value...)
	if err := f.flush(); err != nil {
		if had {
			f.values[key] = prev
		} else {
			delete(f.values, key)
		}
		return err
	}
	return nil
}

func (f *File) flush() error {
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return fmt.Errorf("file store: encoding: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("file store: writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("file store: replacing %s: %w", f.path, err)
	}
	return nil
}

func (f *File) Close() error { return nil }

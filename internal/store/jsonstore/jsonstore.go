// Package jsonstore is the storage channel behind the app: one JSON file,
// human-readable, portable. Writes replace the file atomically; outside
// edits surface through Poll, so another process touching the file shows up
// as a regular state delivery.
package jsonstore

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"

	"github.com/idilsaglam/tidy/internal/codec"
	"github.com/idilsaglam/tidy/internal/model"
)

const dataFileName = "tidy.json"

// Store reads and writes the state file in a fixed directory. Not safe for
// concurrent use; the single event loop is the only caller.
type Store struct {
	path string

	// fingerprint of the file as this process last saw it, used by Poll to
	// notice outside edits
	mtime time.Time
	size  int64
	known bool
}

// Open binds a store to dir. The file itself may not exist yet.
func Open(dir string) *Store {
	return &Store{path: filepath.Join(dir, dataFileName)}
}

// Path returns the location of the state file.
func (s *Store) Path() string { return s.path }

// Load reads the current state. A missing file means a fresh session and
// yields the initial state; a file that fails to decode propagates the
// codec error.
func (s *Store) Load() (model.State, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.InitialState(), nil
		}
		return model.State{}, fmt.Errorf("read file: %w", err)
	}
	s.remember()
	st, err := codec.Decode(b)
	if err != nil {
		return model.State{}, err
	}
	return st, nil
}

// LoadOrInitial is Load with the failure absorbed: corrupt storage logs a
// diagnostic and starts the session fresh instead of blocking it.
func (s *Store) LoadOrInitial() model.State {
	st, err := s.Load()
	if err != nil {
		slog.Warn("state not loaded, starting fresh", "path", s.path, "err", err)
		return model.InitialState()
	}
	return st
}

// Save encodes st and atomically replaces the state file, then refreshes the
// fingerprint so the write is not mistaken for an outside edit.
func (s *Store) Save(st model.State) error {
	b, err := codec.Encode(st)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(b)); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	s.remember()
	return nil
}

// Poll reports whether the file changed since this store last read or wrote
// it, returning the raw content when it did. The caller decodes; an
// undecodable payload is its problem to absorb.
func (s *Store) Poll() ([]byte, bool, error) {
	fi, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("stat file: %w", err)
	}
	if s.known && fi.ModTime().Equal(s.mtime) && fi.Size() == s.size {
		return nil, false, nil
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, false, fmt.Errorf("read file: %w", err)
	}
	s.remember()
	return b, true, nil
}

func (s *Store) remember() {
	fi, err := os.Stat(s.path)
	if err != nil {
		s.known = false
		return
	}
	s.mtime = fi.ModTime()
	s.size = fi.Size()
	s.known = true
}

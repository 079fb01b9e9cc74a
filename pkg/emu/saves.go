// Package emu keeps save states on disk, in a folder per rom, so a run
// can be resumed without naming the state file.
package emu

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const saveExt = ".state"

// ErrNoSaves is returned by Latest when a rom has no save states.
var ErrNoSaves = errors.New("emu: no save states")

// save file naming convention:
// <dir>/<xxhash of the rom>/<unix nano timestamp>.state

// Store is a folder of save states.
type Store struct {
	Dir string
}

// Save is a save state on disk.
type Save struct {
	Path string
	Time time.Time
}

// NewStore returns a Store rooted at dir. The folder is created when the
// first state is written.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) folder(hash uint64) string {
	return filepath.Join(s.Dir, fmt.Sprintf("%016x", hash))
}

func (s *Store) path(hash uint64, t time.Time) string {
	return filepath.Join(s.folder(hash), strconv.FormatInt(t.UnixNano(), 10)+saveExt)
}

// Write stores data as the newest save state of the rom with the given
// hash. The data is written to a temporary file first, so a crash never
// leaves a truncated state behind.
func (s *Store) Write(hash uint64, data []byte) (*Save, error) {
	folder := s.folder(hash)
	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, err
	}

	// states written within the same clock tick get distinct names
	now := time.Now()
	for {
		if _, err := os.Stat(s.path(hash, now)); errors.Is(err, os.ErrNotExist) {
			break
		}
		now = now.Add(time.Nanosecond)
	}
	save := &Save{Path: s.path(hash, now), Time: now}

	f, err := os.CreateTemp(folder, filepath.Base(save.Path)+".*")
	if err != nil {
		return nil, err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write to temporary save file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, err
	}
	if err := os.Rename(f.Name(), save.Path); err != nil {
		return nil, err
	}
	return save, nil
}

// Saves returns the save states of the rom with the given hash, newest
// first. A rom that was never saved has no states, which is not an error.
func (s *Store) Saves(hash uint64) ([]*Save, error) {
	files, err := os.ReadDir(s.folder(hash))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	saves := make([]*Save, 0, len(files))
	for _, file := range files {
		if file.IsDir() || !isSaveFile(file.Name()) {
			continue
		}
		saves = append(saves, &Save{
			Path: filepath.Join(s.folder(hash), file.Name()),
			Time: time.Unix(0, parseTimestampFromFilename(file.Name())),
		})
	}

	sort.Slice(saves, func(i, j int) bool {
		return saves[i].Time.After(saves[j].Time)
	})
	return saves, nil
}

// Latest returns the contents of the newest save state of the rom with
// the given hash.
func (s *Store) Latest(hash uint64) ([]byte, *Save, error) {
	saves, err := s.Saves(hash)
	if err != nil {
		return nil, nil, err
	}
	if len(saves) == 0 {
		return nil, nil, ErrNoSaves
	}
	b, err := saves[0].Bytes()
	return b, saves[0], err
}

// Bytes reads the save state.
func (s *Save) Bytes() ([]byte, error) {
	return os.ReadFile(s.Path)
}

// parseTimestampFromFilename parses the timestamp from the given filename.
// The filename is expected to be in the format of "<timestamp>.state",
// where <timestamp> is the number of nanoseconds since the Unix epoch.
func parseTimestampFromFilename(filename string) int64 {
	n, err := strconv.ParseInt(strings.TrimSuffix(filename, saveExt), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func isSaveFile(filename string) bool {
	return strings.HasSuffix(filename, saveExt)
}

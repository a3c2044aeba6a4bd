// Package persistence is the validated, atomic save/load layer. Save files
// are pretty-printed JSON under the saves directory; names are validated
// before any I/O so a hostile name can never escape it.
package persistence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/wastelandrpg/wasteland/internal/game/state"
	"github.com/wastelandrpg/wasteland/internal/game/validation"
	"github.com/wastelandrpg/wasteland/internal/storage/fsatomic"
)

// DefaultDir is the save directory relative to the working directory.
const DefaultDir = "saves"

// Sentinel errors distinguishing failure kinds. Wrap with %w so callers can
// errors.Is against them.
var (
	// ErrNotFound means the named save file does not exist.
	ErrNotFound = errors.New("save not found")
	// ErrDecode means the save file is malformed or violates invariants.
	ErrDecode = errors.New("save decode failed")
	// ErrEncode means the in-memory state could not be serialized.
	ErrEncode = errors.New("save encode failed")
	// ErrIO means an underlying filesystem call failed.
	ErrIO = errors.New("save io failed")
)

// Store reads and writes game saves under a single directory.
type Store struct {
	dir    string
	logger *zap.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithDir overrides the save directory.
func WithDir(dir string) Option {
	return func(s *Store) { s.dir = dir }
}

// WithLogger attaches a logger; the default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a Store writing to the default saves directory unless
// overridden.
func NewStore(opts ...Option) *Store {
	s := &Store{
		dir:    DefaultDir,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the directory this store reads and writes.
func (s *Store) Dir() string { return s.dir }

// Path returns the on-disk path for a save name. The name is not validated
// here; callers that accept user input must go through Save/Load.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Save validates name, serializes g as pretty-printed JSON, and writes it
// atomically. The save directory is created on first use.
//
// Postcondition: on success the file saves/<name>.json holds the complete
// state; on any error a pre-existing file with that name is untouched.
func (s *Store) Save(g *state.GameState, name string) error {
	if err := validation.SaveName(name); err != nil {
		return err
	}

	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrIO, s.dir, err)
	}
	path := s.Path(name)
	if err := fsatomic.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	s.logger.Info("game saved",
		zap.String("name", name),
		zap.String("path", path),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// Load validates name, reads saves/<name>.json, decodes it rejecting unknown
// top-level fields, and re-validates every invariant before handing the
// state back.
//
// Postcondition: a returned *GameState always passes ValidateInvariants.
func (s *Store) Load(name string) (*state.GameState, error) {
	if err := validation.SaveName(name); err != nil {
		return nil, err
	}

	path := s.Path(name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrIO, path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var g state.GameState
	if err := dec.Decode(&g); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	if err := g.ValidateInvariants(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	// Hand-edited or older saves may carry null worldbook maps; normalize so
	// later inserts cannot hit a nil map.
	g.Worldbook.EnsureMaps()

	s.logger.Info("game loaded", zap.String("name", name), zap.String("path", path))
	return &g, nil
}

// List returns the names of all saves in the store, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", ErrIO, s.dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a save file.
func (s *Store) Delete(name string) error {
	if err := validation.SaveName(name); err != nil {
		return err
	}
	if err := os.Remove(s.Path(name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("%w: delete %s: %v", ErrIO, name, err)
	}
	return nil
}

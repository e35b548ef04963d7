package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"playground/game"
)

// Store persists world snapshots as JSON files in a single directory,
// one file per named world.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("empty worlds directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create worlds dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// List returns the names of all saved worlds.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read worlds dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	return names, nil
}

// Create writes a new world under name. It fails if the name is
// already taken.
func (s *Store) Create(name string, rec game.WorldRecord) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("world %q already exists", name)
	}
	return s.write(path, rec)
}

// Save overwrites the world under name.
func (s *Store) Save(name string, rec game.WorldRecord) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	return s.write(path, rec)
}

// Load reads the world saved under name.
func (s *Store) Load(name string) (game.WorldRecord, error) {
	path, err := s.path(name)
	if err != nil {
		return game.WorldRecord{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return game.WorldRecord{}, fmt.Errorf("load world %q: %w", name, err)
	}
	var rec game.WorldRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return game.WorldRecord{}, fmt.Errorf("parse world %q: %w", name, err)
	}
	return rec, nil
}

func (s *Store) write(path string, rec game.WorldRecord) error {
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write world file: %w", err)
	}
	return nil
}

// path validates the name and maps it to a file. Names never address
// outside the store directory.
func (s *Store) path(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty world name")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid world name %q", name)
	}
	return filepath.Join(s.dir, name+".json"), nil
}

package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"plannerd/internal/common/fsutil"
)

// ErrNotFound is returned when the named project does not exist.
var ErrNotFound = errors.New("project not found")

// Store persists projects as JSON files under a root directory.
type Store struct {
	root string
}

// NewStore creates the root directory if needed and returns a store over it.
func NewStore(root string) (*Store, error) {
	base, err := fsutil.ExpandHome(root)
	if err != nil {
		return nil, err
	}
	if err := fsutil.EnsureDir(base); err != nil {
		return nil, fmt.Errorf("store dir: %w", err)
	}
	return &Store{root: base}, nil
}

// Root returns the directory holding the project documents.
func (s *Store) Root() string { return s.root }

// Save writes p under its name, replacing any previous document. The write is
// atomic: temp file in the same directory, then rename.
func (s *Store) Save(p Project) error {
	if err := validateName(p.Name); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	tmp, err := os.CreateTemp(s.root, "."+p.Name+".tmp-*")
	if err != nil {
		return fmt.Errorf("temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write project: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path(p.Name)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace project: %w", err)
	}
	return nil
}

// Load reads the named project.
func (s *Store) Load(name string) (Project, error) {
	if err := validateName(name); err != nil {
		return Project{}, err
	}
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Project{}, ErrNotFound
		}
		return Project{}, fmt.Errorf("read project: %w", err)
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return Project{}, fmt.Errorf("decode project: %w", err)
	}
	return p, nil
}

// List returns the stored project names, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read store dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if !strings.HasSuffix(n, ".json") || strings.HasPrefix(n, ".") {
			continue
		}
		names = append(names, strings.TrimSuffix(n, ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the named project. Deleting a missing project returns
// ErrNotFound.
func (s *Store) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.Remove(s.path(name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.root, name+".json")
}

// validateName rejects empty names and anything that could escape the store
// directory.
func validateName(name string) error {
	if name == "" {
		return errors.New("empty project name")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("invalid project name: %q", name)
	}
	return nil
}

// Package registry keeps the list of repositories known to refview,
// optionally organized into named groups. It persists as YAML under the
// user's config directory.
package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Group is a named collection of repositories. The ID is a UUID so
// groups can be renamed without touching their members.
type Group struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Repository is one registered working tree or bare repository.
type Repository struct {
	Path  string `yaml:"path"`
	Group string `yaml:"group,omitempty"` // group ID, empty for ungrouped
}

// Registry is the persisted collection.
type Registry struct {
	Groups       []Group      `yaml:"groups,omitempty"`
	Repositories []Repository `yaml:"repositories,omitempty"`

	path string
}

// DefaultPath returns the registry location, honoring XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("find home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "refview", "repositories.yml"), nil
}

// Load reads the registry at path. A missing file is an empty registry
// that will be created on the first Save.
func Load(path string) (*Registry, error) {
	reg := &Registry{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return reg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	if err := yaml.Unmarshal(data, reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return reg, nil
}

// Save writes the registry back to where it was loaded from.
func (r *Registry) Save() error {
	if r.path == "" {
		return errors.New("registry has no backing path")
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}

// EnsureGroup returns the group named name, creating it if needed.
func (r *Registry) EnsureGroup(name string) Group {
	for _, g := range r.Groups {
		if g.Name == name {
			return g
		}
	}
	g := Group{ID: uuid.NewString(), Name: name}
	r.Groups = append(r.Groups, g)
	return g
}

// AddRepository registers path under the given group ID. It reports
// whether the repository was new; re-adding an existing path just moves
// it to the group when one is given.
func (r *Registry) AddRepository(path, groupID string) bool {
	path = filepath.Clean(path)
	for i, repo := range r.Repositories {
		if repo.Path == path {
			if groupID != "" {
				r.Repositories[i].Group = groupID
			}
			return false
		}
	}
	r.Repositories = append(r.Repositories, Repository{Path: path, Group: groupID})
	return true
}

// RemoveRepository drops path from the registry, reporting whether it
// was present.
func (r *Registry) RemoveRepository(path string) bool {
	path = filepath.Clean(path)
	for i, repo := range r.Repositories {
		if repo.Path == path {
			r.Repositories = slices.Delete(r.Repositories, i, i+1)
			return true
		}
	}
	return false
}

// GroupName resolves a group ID for display; unknown IDs come back
// empty.
func (r *Registry) GroupName(id string) string {
	for _, g := range r.Groups {
		if g.ID == id {
			return g.Name
		}
	}
	return ""
}

// Listing is one group's repositories, ready for display.
type Listing struct {
	Group        string   `json:"group"` // empty for ungrouped repositories
	Repositories []string `json:"repositories"`
}

// Grouped organizes the registry for display: ungrouped repositories
// first, then groups in name order, repositories sorted within each.
// Repositories pointing at a vanished group count as ungrouped.
func (r *Registry) Grouped() []Listing {
	byName := make(map[string][]string)
	for _, repo := range r.Repositories {
		name := r.GroupName(repo.Group)
		byName[name] = append(byName[name], repo.Path)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		if name != "" {
			names = append(names, name)
		}
	}
	slices.SortFunc(names, strings.Compare)
	if _, ok := byName[""]; ok {
		names = append([]string{""}, names...)
	}

	listings := make([]Listing, 0, len(names))
	for _, name := range names {
		paths := byName[name]
		slices.SortFunc(paths, strings.Compare)
		listings = append(listings, Listing{Group: name, Repositories: paths})
	}
	return listings
}

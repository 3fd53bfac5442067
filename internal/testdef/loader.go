// Package testdef loads test definitions from a directory of JSON or YAML
// files and keeps validated definitions in an LRU cache.
package testdef

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"gopkg.in/yaml.v3"

	"github.com/courtneynewtocode/career-compass/internal/schema"
	"github.com/courtneynewtocode/career-compass/internal/scoring"
)

var ErrNotFound = errors.New("test definition not found")

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var extensions = []string{".json", ".yaml", ".yml"}

// Loader is safe for concurrent use. Cached definitions are shared between
// callers and must be treated as read-only.
type Loader struct {
	dir   string
	cache *lru.Cache[string, *scoring.TestDefinition]
}

func NewLoader(dir string, cacheSize int) (*Loader, error) {
	if cacheSize <= 0 {
		cacheSize = 32
	}
	c, err := lru.New[string, *scoring.TestDefinition](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Loader{dir: dir, cache: c}, nil
}

// Load returns the validated definition for id.
func (l *Loader) Load(id string) (*scoring.TestDefinition, error) {
	if !validID.MatchString(id) {
		return nil, ErrNotFound
	}
	if def, ok := l.cache.Get(id); ok {
		return def, nil
	}
	for _, ext := range extensions {
		p := filepath.Join(l.dir, id+ext)
		b, err := os.ReadFile(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		def, err := Parse(b, ext)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		if def.TestID != id {
			return nil, fmt.Errorf("%s: testId %q does not match file name", filepath.Base(p), def.TestID)
		}
		l.cache.Add(id, def)
		return def, nil
	}
	return nil, ErrNotFound
}

// List returns the ids of the definition files in the directory, sorted.
// Files are not parsed.
func (l *Loader) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		id := strings.TrimSuffix(e.Name(), ext)
		if !isDefinitionExt(ext) || !validID.MatchString(id) || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func isDefinitionExt(ext string) bool {
	for _, e := range extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Parse decodes and validates a definition. ext selects the format; anything
// other than .yaml or .yml is read as JSON.
func Parse(b []byte, ext string) (*scoring.TestDefinition, error) {
	if ext == ".yaml" || ext == ".yml" {
		var doc any
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
		// Re-encode so YAML shares the JSON decoding of scoring specs.
		var err error
		if b, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
	}
	var def scoring.TestDefinition
	if err := json.Unmarshal(b, &def); err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	if err := schema.ValidateDefinition(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

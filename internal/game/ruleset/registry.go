package ruleset

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed classes.yaml
var defaultClassesYAML []byte

// Registry is the immutable class table consulted by the combat engine.
type Registry struct {
	classes map[ClassKey]*Class
}

type classFile struct {
	Classes []Class `yaml:"classes"`
}

// ParseRegistry builds a Registry from YAML data.
//
// Precondition: data must hold a top-level "classes" list.
// Postcondition: Returns a Registry defining exactly the four archetypes,
// each with a valid StatProfile, or a non-nil error.
func ParseRegistry(data []byte) (*Registry, error) {
	var f classFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing class table: %w", err)
	}
	r := &Registry{classes: make(map[ClassKey]*Class, len(f.Classes))}
	var errs []string
	for i := range f.Classes {
		c := f.Classes[i]
		if !c.Key.Valid() {
			errs = append(errs, fmt.Sprintf("unknown class key %q", c.Key))
			continue
		}
		if _, dup := r.classes[c.Key]; dup {
			errs = append(errs, fmt.Sprintf("class %q defined more than once", c.Key))
			continue
		}
		if err := c.Stats.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("class %q: %v", c.Key, err))
			continue
		}
		r.classes[c.Key] = &c
	}
	for _, k := range allClasses {
		if _, ok := r.classes[k]; !ok {
			errs = append(errs, fmt.Sprintf("class %q is missing", k))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid class table: %s", strings.Join(errs, "; "))
	}
	return r, nil
}

// LoadRegistry reads and parses a class table file.
//
// Precondition: path must be a readable YAML file.
// Postcondition: Returns a valid Registry or a non-nil error.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	r, err := ParseRegistry(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the built-in class table.
// Panics if the embedded table is invalid.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := ParseRegistry(defaultClassesYAML)
		if err != nil {
			panic("ruleset: embedded class table: " + err.Error())
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Class returns the full class definition for k.
//
// Precondition: k must be a valid ClassKey. Panics otherwise.
func (r *Registry) Class(k ClassKey) Class {
	c, ok := r.classes[k]
	if !ok {
		panic(fmt.Sprintf("ruleset: no class defined for key %q", k))
	}
	return *c
}

// StatsFor returns the stat profile of class k.
//
// Precondition: k must be a valid ClassKey. Panics otherwise.
func (r *Registry) StatsFor(k ClassKey) StatProfile {
	return r.Class(k).Stats
}

// StatsFor returns the stat profile of class k from the built-in table.
//
// Precondition: k must be a valid ClassKey. Panics otherwise.
func StatsFor(k ClassKey) StatProfile {
	return Default().StatsFor(k)
}

// Package questions loads the built-in yes/no question sets.
package questions

import (
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Names of the built-in sets used by each front end.
const (
	Console = "console"
	Web     = "web"
)

var ErrEmptySet = errors.New("question set has no questions")

// Set is an ordered, immutable list of yes/no prompts.
type Set struct {
	Name        string   `yaml:"name"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Questions   []string `yaml:"questions"`
}

// Len returns the number of questions.
func (s *Set) Len() int { return len(s.Questions) }

// At returns the i-th question (zero-based).
func (s *Set) At(i int) string { return s.Questions[i] }

// Texts returns a copy of the question texts.
func (s *Set) Texts() []string {
	return append([]string(nil), s.Questions...)
}

// LoadBuiltin loads a built-in set by name.
func LoadBuiltin(name string) (*Set, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("questions.LoadBuiltin: unknown set %q: %w", name, err)
	}
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("questions.LoadBuiltin: parse %q: %w", name, err)
	}
	for i, q := range s.Questions {
		s.Questions[i] = strings.TrimSpace(q)
	}
	s.Description = strings.TrimSpace(s.Description)
	if len(s.Questions) == 0 {
		return nil, fmt.Errorf("questions.LoadBuiltin: %q: %w", name, ErrEmptySet)
	}
	return &s, nil
}

// MustLoadBuiltin is LoadBuiltin for sets known to be embedded.
func MustLoadBuiltin(name string) *Set {
	s, err := LoadBuiltin(name)
	if err != nil {
		panic(err)
	}
	return s
}

// List returns the names of all built-in sets.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	sort.Strings(names)
	return names, nil
}

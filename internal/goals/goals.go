// Package goals loads the human-written goal of every strategy, keyed by
// vertical and strategy name.
package goals

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed goals.json
var defaultGoals []byte

// ErrMissingGoal is returned when no goal exists for a strategy.
var ErrMissingGoal = errors.New("missing goal")

// Goals maps vertical -> strategy name -> goal text.
type Goals struct {
	byVertical map[string]map[string]string
}

// Default returns the goals bundled with the binary.
func Default() *Goals {
	g, err := Parse(defaultGoals, ".json")
	if err != nil {
		panic(fmt.Sprintf("goals: bundled file: %v", err))
	}
	return g
}

// Load reads goals from a JSON or YAML file. An empty path returns the
// bundled goals.
func Load(path string) (*Goals, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read goals: %w", err)
	}
	g, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Parse decodes goals. ext selects the format: ".yaml" and ".yml" are YAML,
// anything else is JSON.
func Parse(data []byte, ext string) (*Goals, error) {
	m := make(map[string]map[string]string)
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse goals yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse goals json: %w", err)
		}
	}
	return &Goals{byVertical: m}, nil
}

// Lookup returns the goal of a strategy by exact name.
func (g *Goals) Lookup(vertical, strategy string) (string, error) {
	byName, ok := g.byVertical[vertical]
	if !ok {
		return "", fmt.Errorf("%w: no goals for vertical %q", ErrMissingGoal, vertical)
	}
	goal, ok := byName[strategy]
	if !ok {
		return "", fmt.Errorf("%w: %s has no goal for %q", ErrMissingGoal, vertical, strategy)
	}
	return goal, nil
}

// Verticals returns the verticals that have goals, sorted.
func (g *Goals) Verticals() []string {
	out := make([]string, 0, len(g.byVertical))
	for v := range g.byVertical {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Missing returns the names in want that have no goal for vertical.
func (g *Goals) Missing(vertical string, want []string) []string {
	var out []string
	for _, name := range want {
		if _, err := g.Lookup(vertical, name); err != nil {
			out = append(out, name)
		}
	}
	return out
}

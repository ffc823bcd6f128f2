package goals

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/forge-insights-tui/internal/strategies"
)

func TestDefault_CoversEveryStrategy(t *testing.T) {
	g := Default()
	r := strategies.Default()

	for _, name := range r.Verticals() {
		v, err := r.Vertical(name)
		require.NoError(t, err)
		assert.Empty(t, g.Missing(name, v.Names()), name)
	}
}

func TestLookup(t *testing.T) {
	g := Default()

	goal, err := g.Lookup("puzzle", "Hint Usage")
	require.NoError(t, err)
	assert.NotEmpty(t, goal)

	_, err = g.Lookup("puzzle", "hint usage")
	assert.ErrorIs(t, err, ErrMissingGoal)

	_, err = g.Lookup("racing", "Hint Usage")
	assert.ErrorIs(t, err, ErrMissingGoal)
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "goals.yaml")
	content := "puzzle:\n  Hint Usage: Reduce hint dependence.\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	g, err := Load(path)
	require.NoError(t, err)

	goal, err := g.Lookup("puzzle", "Hint Usage")
	require.NoError(t, err)
	assert.Equal(t, "Reduce hint dependence.", goal)
	assert.Equal(t, []string{"puzzle"}, g.Verticals())
}

func TestLoad_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "goals.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"rpg":{"Map":"x"}}`), 0o600))

	g, err := Load(path)
	require.NoError(t, err)
	goal, err := g.Lookup("rpg", "Map")
	require.NoError(t, err)
	assert.Equal(t, "x", goal)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	g, err := Load("")
	require.NoError(t, err)
	assert.Len(t, g.Verticals(), 12)
}

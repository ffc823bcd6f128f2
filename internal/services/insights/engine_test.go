package insights

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/forge-insights-tui/internal/goals"
	"github.com/j-veylop/forge-insights-tui/internal/models"
	"github.com/j-veylop/forge-insights-tui/internal/strategies"
	"github.com/j-veylop/forge-insights-tui/internal/table"
)

const puzzleCSV = `event_type,session_id,client_ts,progression_02,session_length
session_start,s1,100,,
progression,s1,110,level_1,
hint,s1,120,level_1,
progression,s1,130,level_2,
session_end,s1,700,,600
session_start,s2,1000,,
progression,s2,1010,level_1,
session_end,s2,1100,,100
`

func loadTable(t *testing.T, csv string) *table.Table {
	t.Helper()
	tbl, err := table.ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	return tbl
}

func TestRun_AllStrategies(t *testing.T) {
	e := New(strategies.Default(), nil)

	results, err := e.Run(context.Background(), "puzzle", loadTable(t, puzzleCSV))
	require.NoError(t, err)
	require.Len(t, results, 4)

	names := make([]string, len(results))
	for i, r := range results {
		assert.NoError(t, r.Err, r.Name)
		assert.NotEmpty(t, r.Goal, r.Name)
		names[i] = r.Name
	}
	assert.Equal(t, []string{"Level Completion Trends", "Hint Usage", "Session Gaps", "Retention Strategy"}, names)

	levels := results[0].Chart.Series[0]
	assert.Equal(t, []string{"level_1", "level_2"}, levels.Labels)
	assert.Equal(t, []float64{2, 1}, levels.Values)
}

func TestRun_FailureDoesNotStopOthers(t *testing.T) {
	e := New(strategies.Default(), nil)
	tbl := loadTable(t, "event_type,session_id,client_ts,progression_02\nhint,s1,1,level_1\n")

	results, err := e.Run(context.Background(), "puzzle", tbl)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.NoError(t, results[0].Err)
	assert.True(t, results[0].NoData, "no progression rows")
	assert.NoError(t, results[1].Err)
	assert.NoError(t, results[2].Err)

	require.Error(t, results[3].Err)
	assert.True(t, table.IsMissingColumn(results[3].Err))
	assert.Equal(t, "Retention Strategy", results[3].Name)
}

func TestRun_MissingGoal(t *testing.T) {
	g, err := goals.Parse([]byte("puzzle:\n  Hint Usage: Cut hint dependence.\n"), ".yaml")
	require.NoError(t, err)
	e := New(strategies.Default(), g)

	results, err := e.Run(context.Background(), "puzzle", loadTable(t, puzzleCSV))
	require.NoError(t, err)

	assert.True(t, errors.Is(results[0].Err, goals.ErrMissingGoal))
	assert.Equal(t, models.ChartBar, results[0].Chart.Kind, "aggregation survives a missing goal")

	assert.NoError(t, results[1].Err)
	assert.Equal(t, "Cut hint dependence.", results[1].Goal)
}

func TestRun_UnknownVertical(t *testing.T) {
	e := New(strategies.Default(), nil)
	_, err := e.Run(context.Background(), "racing", loadTable(t, puzzleCSV))
	assert.ErrorIs(t, err, strategies.ErrUnknownVertical)
}

func TestRun_Cancelled(t *testing.T) {
	e := New(strategies.Default(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := e.Run(ctx, "puzzle", loadTable(t, puzzleCSV))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestAnalyze(t *testing.T) {
	e := New(strategies.Default(), nil)
	ds := models.Dataset{Vertical: "puzzle", Format: models.FormatCSV}

	a, err := e.Analyze(context.Background(), ds, loadTable(t, puzzleCSV), 3)
	require.NoError(t, err)

	assert.Equal(t, 8, a.Rows)
	assert.Len(t, a.Preview, 3)
	assert.Equal(t, []string{"event_type", "session_id", "client_ts", "progression_02", "session_length"}, a.Columns)
	assert.Len(t, a.Results, 4)
	assert.Zero(t, a.Failed())
}

func TestAnalyze_Unsupported(t *testing.T) {
	e := New(strategies.Default(), nil)
	ds := models.Dataset{Vertical: "racing", Format: models.FormatCSV}

	a, err := e.Analyze(context.Background(), ds, loadTable(t, puzzleCSV), 0)
	require.NoError(t, err)
	assert.Empty(t, a.Results)
	assert.Nil(t, a.Preview)
	assert.Equal(t, 8, a.Rows)
}

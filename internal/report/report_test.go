package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/forge-insights-tui/internal/models"
)

type fakeAnalyzer struct {
	calls    atomic.Int32
	inFlight atomic.Int32
	peak     atomic.Int32
	fail     string
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, vertical string) (*models.Analysis, error) {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	if vertical == f.fail {
		return nil, errors.New("broken dataset")
	}
	return &models.Analysis{Dataset: models.Dataset{Vertical: vertical}}, ctx.Err()
}

func TestGenerate_KeepsOrder(t *testing.T) {
	f := &fakeAnalyzer{}
	var progress bytes.Buffer

	got, err := Generate(context.Background(), f, []string{"rpg", "puzzle", "sports"}, Options{Progress: &progress})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "rpg", got[0].Dataset.Vertical)
	assert.Equal(t, "puzzle", got[1].Dataset.Vertical)
	assert.Equal(t, "sports", got[2].Dataset.Vertical)
	assert.EqualValues(t, 3, f.calls.Load())
}

func TestGenerate_Limit(t *testing.T) {
	f := &fakeAnalyzer{}

	_, err := Generate(context.Background(), f, []string{"a", "b", "c", "d", "e"}, Options{Parallel: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 1, f.peak.Load())
}

func TestGenerate_Error(t *testing.T) {
	f := &fakeAnalyzer{fail: "puzzle"}

	got, err := Generate(context.Background(), f, []string{"rpg", "puzzle"}, Options{})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "puzzle: broken dataset")
}

func sampleAnalysis() *models.Analysis {
	return &models.Analysis{
		Dataset:  models.Dataset{Vertical: "puzzle", Format: models.FormatCSV, Size: 2048, Supported: true},
		Rows:     1234,
		Duration: 3 * time.Millisecond,
		Results: []models.InsightResult{
			{Insight: models.Insight{
				Name: "Hint Usage",
				Goal: "Reduce hint reliance.",
				Chart: models.Chart{
					Kind:   models.ChartBar,
					Title:  "Hint Usage Trends",
					XLabel: "Level",
					YLabel: "Number of Hints Used",
					Series: []models.Series{{Labels: []string{"level_1", "level_2"}, Values: []float64{4, 1}}},
				},
				Explanation:    "Track how often hints are used.",
				Recommendation: "Reward hint-free completions.",
			}},
			{Insight: models.Insight{
				Name:           "Level Completion Trends",
				Goal:           "Balance difficulty.",
				NoData:         true,
				Reason:         "no rows to aggregate",
				Explanation:    "Identify levels with high fail rates.",
				Recommendation: "Adjust difficulty.",
			}},
			{
				Insight: models.Insight{Name: "Retention Strategy"},
				Err:     errors.New("missing column session_length"),
			},
		},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleAnalysis(), Options{Width: 60, Plain: true}))
	out := buf.String()

	for _, want := range []string{
		"Puzzle dataset (1,234 rows, 2.0 kB, csv)",
		"## Hint Usage",
		"Goal: Reduce hint reliance.",
		"Hint Usage Trends",
		"level_1 │",
		"Explanation: Track how often hints are used.",
		"Recommendation: Reward hint-free completions.",
		"No data: no rows to aggregate",
		"## Retention Strategy\nerror: missing column session_length",
		"3 strategies, 1 without data, 1 failed",
	} {
		assert.Contains(t, out, want)
	}

	lines := strings.Split(out, "\n")
	assert.Equal(t, strings.Repeat("=", len(lines[0])), lines[1])
}

func TestRender_Unsupported(t *testing.T) {
	var buf bytes.Buffer
	a := &models.Analysis{Dataset: models.Dataset{Vertical: "racing"}, Rows: 2}
	require.NoError(t, Render(&buf, a, Options{}))

	assert.Contains(t, buf.String(), "No strategies for this vertical.")
	assert.NotContains(t, buf.String(), "strategies,")
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	a := sampleAnalysis()
	b := &models.Analysis{Dataset: models.Dataset{Vertical: "rpg", Supported: true}}

	require.NoError(t, Write(&buf, []*models.Analysis{a, b}, Options{Plain: true}))
	out := buf.String()
	assert.Less(t, strings.Index(out, "Puzzle dataset"), strings.Index(out, "Rpg dataset"))
}

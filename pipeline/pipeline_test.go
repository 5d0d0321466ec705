package pipeline_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adpolican/dynamic-foxhole-solver/grid"
	"github.com/adpolican/dynamic-foxhole-solver/minimax"
	"github.com/adpolican/dynamic-foxhole-solver/pipeline"
	"github.com/adpolican/dynamic-foxhole-solver/search"
	"github.com/adpolican/dynamic-foxhole-solver/transition"
)

var reportOpts = cmp.Options{
	cmp.Comparer(func(a, b transition.Node) bool { return a == b }),
	cmpopts.IgnoreFields(pipeline.Report{}, "BuildTime", "SolveTime"),
}

func config(dims ...int) pipeline.Config {
	cfg := pipeline.DefaultConfig()
	cfg.Dims = dims
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := pipeline.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []int{2, 2, 2, 2}, cfg.Dims)
	assert.Equal(t, pipeline.RuleAuto, cfg.Rule)
	assert.True(t, cfg.BinarySearch)
	assert.True(t, cfg.Symmetry)
	assert.Positive(t, cfg.Workers)
	assert.Equal(t, "linear", cfg.Strategy)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*pipeline.Config){
		"no dims":      func(c *pipeline.Config) { c.Dims = nil },
		"zero axis":    func(c *pipeline.Config) { c.Dims = []int{2, 0} },
		"bad rule":     func(c *pipeline.Config) { c.Rule = "sometimes" },
		"bad strategy": func(c *pipeline.Config) { c.Strategy = "greedy" },
		"neg workers":  func(c *pipeline.Config) { c.Workers = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := pipeline.DefaultConfig()
			mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), grid.ErrInvalidInput)
		})
	}

	cfg := pipeline.DefaultConfig()
	cfg.Rule = "sometimes"
	require.ErrorIs(t, cfg.Validate(), search.ErrUnknownRule)
	cfg.Strategy = "greedy"
	cfg.Rule = pipeline.RuleAuto
	require.ErrorIs(t, cfg.Validate(), minimax.ErrOptionViolation)

	cfg = pipeline.DefaultConfig()
	cfg.Rule = "NonIncrease"
	cfg.Workers = 0
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foxhole.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"dims":[2,3],"strategy":"binary","show_path":true}`), 0o600))

	cfg, err := pipeline.LoadConfig(path)
	require.NoError(t, err)

	want := pipeline.DefaultConfig()
	want.Dims = []int{2, 3}
	want.Strategy = "binary"
	want.ShowPath = true
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("LoadConfig (-want +got):\n%s", diff)
	}

	_, err = pipeline.LoadConfig(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"dims":`), 0o600))
	_, err = pipeline.LoadConfig(bad)
	require.Error(t, err)
}

func TestParseDims(t *testing.T) {
	dims, err := pipeline.ParseDims(" 2, 2,2 ,2")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 2, 2}, dims)

	for _, in := range []string{"", ",", "2,x", "2x"} {
		_, err := pipeline.ParseDims(in)
		assert.ErrorIs(t, err, grid.ErrInvalidInput, "input %q", in)
	}
}

func TestRunSquare(t *testing.T) {
	cfg := config(2, 2)
	cfg.ShowPath = true
	rep, err := pipeline.Run(context.Background(), cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Checks)
	assert.Equal(t, search.RuleStrictDecrease, rep.Rule)
	assert.Equal(t, 2, rep.Top)
	assert.Equal(t, 2, rep.Bottom)
	assert.Equal(t, transition.Stats{Nodes: 8, Edges: 8, EndEdges: 6, MaxWeight: 2}, rep.Graph)

	var buf bytes.Buffer
	require.NoError(t, rep.Write(&buf))
	assert.Equal(t, "Fox hole graph dimensions [2 2]\n"+
		"Result: 2 check(s) per day\n"+
		"Path: START\n"+
		"  -0-> 0:{0,1}\n"+
		"  -2-> END\n", buf.String())

	rep.ShowPath = false
	buf.Reset()
	require.NoError(t, rep.Write(&buf))
	assert.Equal(t, "Fox hole graph dimensions [2 2]\nResult: 2 check(s) per day\n", buf.String())
}

func TestRunErrors(t *testing.T) {
	ctx := context.Background()

	_, err := pipeline.Run(ctx, config(), nil)
	require.ErrorIs(t, err, grid.ErrInvalidInput)

	// a single cell has no opposite partition
	_, err = pipeline.Run(ctx, config(1), nil)
	require.ErrorIs(t, err, grid.ErrInvalidInput)

	cfg := config(2, 2)
	cfg.Rule = "nonincrease"
	_, err = pipeline.Run(ctx, cfg, nil)
	require.ErrorIs(t, err, minimax.ErrNoSolution)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = pipeline.Run(cancelled, config(2, 2, 2), nil)
	require.ErrorIs(t, err, context.Canceled)
}

// TestRunIsRepeatable: every knob that only changes how the answer is found
// leaves the report unchanged.
func TestRunIsRepeatable(t *testing.T) {
	base := config(2, 2, 2, 2)
	base.Workers = 1
	want, err := pipeline.Run(context.Background(), base, nil)
	require.NoError(t, err)
	// the 4-dimensional hypercube needs five checks a day
	assert.Equal(t, 5, want.Checks)

	variants := map[string]func(*pipeline.Config){
		"again":      func(*pipeline.Config) {},
		"workers":    func(c *pipeline.Config) { c.Workers = 4 },
		"no mirror":  func(c *pipeline.Config) { c.Symmetry = false },
		"scan":       func(c *pipeline.Config) { c.BinarySearch = false },
		"explicit":   func(c *pipeline.Config) { c.Rule = "strict" },
		"binary":     func(c *pipeline.Config) { c.Strategy = "binary" },
		"bottleneck": func(c *pipeline.Config) { c.Strategy = "bottleneck" },
	}
	opts := append(cmp.Options{cmpopts.IgnoreFields(pipeline.Report{}, "Strategy")}, reportOpts...)
	for name, mutate := range variants {
		t.Run(name, func(t *testing.T) {
			cfg := base
			mutate(&cfg)
			got, err := pipeline.Run(context.Background(), cfg, nil)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got, opts); diff != "" {
				t.Fatalf("report differs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunLogs(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	_, err := pipeline.Run(context.Background(), config(2, 2), logger)
	require.NoError(t, err)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, "solved", last.Message)
	assert.Equal(t, 2, last.Data["checks"])
	assert.Equal(t, "[2 2]", last.Data["dims"])

	var msgs []string
	for _, e := range hook.AllEntries() {
		msgs = append(msgs, e.Message)
	}
	assert.Contains(t, msgs, "config")
	assert.Contains(t, msgs, "transition graph built")
}

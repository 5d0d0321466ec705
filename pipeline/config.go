package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/adpolican/dynamic-foxhole-solver/grid"
	"github.com/adpolican/dynamic-foxhole-solver/minimax"
	"github.com/adpolican/dynamic-foxhole-solver/search"
)

// RuleAuto picks the acceptance rule from the parity of the cell count.
const RuleAuto = "auto"

// Config selects the grid and the solver knobs.
type Config struct {
	Dims         []int  `json:"dims"`
	Rule         string `json:"rule"`
	BinarySearch bool   `json:"binary_search"`
	Symmetry     bool   `json:"symmetry"`
	Workers      int    `json:"workers"`
	Strategy     string `json:"strategy"`
	ShowPath     bool   `json:"show_path"`
}

// DefaultConfig solves the 4-dimensional hypercube [2,2,2,2].
func DefaultConfig() Config {
	return Config{
		Dims:         []int{2, 2, 2, 2},
		Rule:         RuleAuto,
		BinarySearch: true,
		Symmetry:     true,
		Workers:      runtime.NumCPU(),
		Strategy:     minimax.StrategyLinear.String(),
	}
}

// Fields returns c as log fields.
func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"dims":          fmt.Sprint(c.Dims),
		"rule":          c.Rule,
		"binary_search": c.BinarySearch,
		"symmetry":      c.Symmetry,
		"workers":       c.Workers,
		"strategy":      c.Strategy,
		"show_path":     c.ShowPath,
	}
}

// Validate reports the first problem as an error wrapping grid.ErrInvalidInput.
func (c Config) Validate() error {
	if len(c.Dims) == 0 {
		return fmt.Errorf("%w: no dimensions", grid.ErrInvalidInput)
	}
	for i, d := range c.Dims {
		if d < 1 {
			return fmt.Errorf("%w: axis %d has length %d", grid.ErrInvalidInput, i, d)
		}
	}
	if _, _, err := c.rule(); err != nil {
		return fmt.Errorf("%w: %w", grid.ErrInvalidInput, err)
	}
	if _, err := minimax.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("%w: %w", grid.ErrInvalidInput, err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d < 0", grid.ErrInvalidInput, c.Workers)
	}
	return nil
}

// rule resolves Config.Rule; auto reports false.
func (c Config) rule() (search.Rule, bool, error) {
	if c.Rule == "" || strings.EqualFold(c.Rule, RuleAuto) {
		return 0, false, nil
	}
	r, err := search.ParseRule(c.Rule)
	return r, err == nil, err
}

// workers maps 0 to runtime.NumCPU().
func (c Config) workers() int {
	if c.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// LoadConfig reads a JSON file over DefaultConfig. Keys missing from the file
// keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseDims reads "2,2,2,2" (spaces allowed) into a dimension vector.
func ParseDims(s string) ([]int, error) {
	var dims []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: dimension %q", grid.ErrInvalidInput, part)
		}
		dims = append(dims, d)
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("%w: no dimensions in %q", grid.ErrInvalidInput, s)
	}
	return dims, nil
}

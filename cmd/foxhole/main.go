// Command foxhole prints the fewest checks per day that guarantee finding
// an adversary who moves to an adjacent cell of a rectangular grid every
// night.
//
//	foxhole -dims 2,2,2,2 -path
//	foxhole -c foxhole.json -v
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/adpolican/dynamic-foxhole-solver/grid"
	"github.com/adpolican/dynamic-foxhole-solver/minimax"
	"github.com/adpolican/dynamic-foxhole-solver/pipeline"
	"github.com/adpolican/dynamic-foxhole-solver/search"
)

const (
	exitOK         = 0
	exitFailure    = 1
	exitInvalid    = 2
	exitStructural = 3
	exitNoSolution = 4
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})

	cfg, verbose, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitCode(err)
	}
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	rep, err := pipeline.Run(ctx, cfg, log)
	if errors.Is(err, minimax.ErrNoSolution) {
		fmt.Fprintln(stdout, "Fox hole graph dimensions", cfg.Dims)
		fmt.Fprintln(stdout, "Error: no checking path found")
		return exitNoSolution
	}
	if err != nil {
		log.WithError(err).Error("solve failed")
		return exitCode(err)
	}

	if err := rep.Write(stdout); err != nil {
		log.WithError(err).Error("write report")
		return exitFailure
	}
	return exitOK
}

// parseArgs loads the optional config file and lays explicitly set flags
// over it.
func parseArgs(args []string, stderr io.Writer) (pipeline.Config, bool, error) {
	const configUsage = "config file path (JSON)"

	fs := flag.NewFlagSet("foxhole", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath string
		dims       string
		verbose    bool
		f          = pipeline.DefaultConfig()
	)
	fs.StringVar(&configPath, "config", "", configUsage)
	fs.StringVar(&configPath, "c", "", configUsage+" (shorthand)")
	fs.StringVar(&dims, "dims", "2,2,2,2", "comma-separated axis lengths")
	fs.StringVar(&f.Rule, "rule", f.Rule, "acceptance rule: auto, strict or nonincrease")
	fs.BoolVar(&f.BinarySearch, "binary", f.BinarySearch, "bisect check counts")
	fs.BoolVar(&f.Symmetry, "symmetry", f.Symmetry, "mirror edges when the grid allows it")
	fs.IntVar(&f.Workers, "workers", f.Workers, "parallel searches (0 = all CPUs)")
	fs.StringVar(&f.Strategy, "strategy", f.Strategy, "threshold search: linear, binary or bottleneck")
	fs.BoolVar(&f.ShowPath, "path", f.ShowPath, "print the containment path")
	fs.BoolVar(&verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return f, false, err
		}
		return f, false, fmt.Errorf("%w: %v", grid.ErrInvalidInput, err)
	}
	if fs.NArg() > 0 {
		return f, false, fmt.Errorf("%w: unexpected arguments %v", grid.ErrInvalidInput, fs.Args())
	}

	cfg := pipeline.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = pipeline.LoadConfig(configPath); err != nil {
			return cfg, false, fmt.Errorf("%w: %v", grid.ErrInvalidInput, err)
		}
	}

	var err error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "dims":
			var d []int
			if d, err = pipeline.ParseDims(dims); err == nil {
				cfg.Dims = d
			}
		case "rule":
			cfg.Rule = f.Rule
		case "binary":
			cfg.BinarySearch = f.BinarySearch
		case "symmetry":
			cfg.Symmetry = f.Symmetry
		case "workers":
			cfg.Workers = f.Workers
		case "strategy":
			cfg.Strategy = f.Strategy
		case "path":
			cfg.ShowPath = f.ShowPath
		}
	})
	if err != nil {
		return cfg, false, err
	}
	return cfg, verbose, cfg.Validate()
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, grid.ErrInvalidInput):
		return exitInvalid
	case errors.Is(err, search.ErrStructural):
		return exitStructural
	case errors.Is(err, minimax.ErrNoSolution):
		return exitNoSolution
	}
	return exitFailure
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"linepaint/internal/canvas"
	"linepaint/internal/config"
	"linepaint/internal/engine"
	"linepaint/internal/logging"
	"linepaint/internal/raster"
)

func main() {
	configPath := flag.String("config", "configs/default.yaml", "path to config file (built-in defaults when empty)")
	input := flag.String("input", "inputs", "input image or directory of images")
	output := flag.String("output", "", "output directory (overrides config)")
	maxEpochs := flag.Int("max-epochs", -1, "stop after this many epochs (overrides config, 0 = unbounded)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *output != "" {
		cfg.Output.Dir = *output
	}
	if *maxEpochs >= 0 {
		cfg.Stop.MaxEpochs = *maxEpochs
	}

	logger, err := logging.New(cfg.Logging.Level, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetLogger(logger)

	inputs, err := raster.ListInputs(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing inputs: %v\n", err)
		os.Exit(1)
	}
	if len(inputs) == 0 {
		fmt.Fprintf(os.Stderr, "No images found in %s\n", *input)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Line painter - %d input(s)\n", len(inputs))
	fmt.Printf("Population: %d, Survivors: %d, Offspring: %d, Rounds: %d, Workers: %d\n",
		cfg.Evolution.Population, cfg.Evolution.Survivors, cfg.Evolution.Offspring,
		cfg.Evolution.Rounds, cfg.Eval.Workers)
	fmt.Println("---")

	for _, path := range inputs {
		if err := paint(ctx, cfg, path); err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Fprintln(os.Stderr, "Interrupted")
				os.Exit(130)
			}
			fmt.Fprintf(os.Stderr, "Error painting %s: %v\n", path, err)
			os.Exit(1)
		}
	}
}

// paint approximates one input image, writing a numbered snapshot per epoch
// plus metrics, the stroke log and a progress chart.
func paint(ctx context.Context, cfg *config.Config, path string) error {
	target, err := raster.Load(path)
	if err != nil {
		return err
	}
	start, err := raster.New(target.Width(), target.Height())
	if err != nil {
		return err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dir := filepath.Join(cfg.Output.Dir, name)
	fmt.Printf("%s: %dx%d -> %s\n", path, target.Width(), target.Height(), dir)

	if err := raster.Save(start, filepath.Join(dir, fmt.Sprintf(cfg.Output.Pattern, 0))); err != nil {
		return err
	}

	metrics, err := logging.NewMetricsLogger(
		filepath.Join(dir, cfg.Output.CSVPath),
		filepath.Join(dir, cfg.Output.JSONPath),
		os.Stdout,
	)
	if err != nil {
		return err
	}
	if err := metrics.Init(); err != nil {
		return err
	}
	defer metrics.Close()

	replay := canvas.NewReplay(path, target.Width(), target.Height(), cfg.Seed)
	eng := engine.New(engine.OptionsFromConfig(cfg))

	began := time.Now()
	res, runErr := eng.Run(ctx, target, start, func(r engine.Report) error {
		replay.Record(r.Elite)
		if err := raster.Save(r.Canvas, filepath.Join(dir, fmt.Sprintf(cfg.Output.Pattern, r.Epoch))); err != nil {
			return err
		}
		return metrics.LogEpoch(r.Stats)
	})

	// Keep whatever was committed, even on interrupt.
	if err := replay.Save(filepath.Join(dir, cfg.Output.Replay)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save stroke log: %v\n", err)
	}
	if err := logging.PlotProgress(filepath.Join(dir, cfg.Output.PlotPath), name, res.History); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save progress plot: %v\n", err)
	}
	if runErr != nil {
		return runErr
	}

	totals := canvas.Aggregate(res.History)
	fmt.Println("---")
	fmt.Printf("Done %s: %d epochs (%s), %d lines, improvement %.1f, %d evaluations in %v\n",
		name, totals.Epochs, res.Reason, totals.Lines, totals.Improvement,
		eng.Evaluated(), time.Since(began).Round(time.Millisecond))
	return nil
}

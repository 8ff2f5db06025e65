package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the root configuration structure
type Config struct {
	Seed      int64           `yaml:"seed"`
	Evolution EvolutionConfig `yaml:"evolution"`
	Mutation  MutationConfig  `yaml:"mutation"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Eval      EvalConfig      `yaml:"eval"`
	Stop      StopConfig      `yaml:"stop"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LogConfig       `yaml:"logging"`
}

// EvolutionConfig sizes the per-epoch search
type EvolutionConfig struct {
	Population int `yaml:"population"` // lines per round
	Survivors  int `yaml:"survivors"`  // kept after truncation
	Offspring  int `yaml:"offspring"`  // children per surviving line
	Rounds     int `yaml:"rounds"`     // rounds per epoch, the last one selects the elite
}

// MutationConfig bounds random construction and reproduction
type MutationConfig struct {
	SlopeRange     float64 `yaml:"slope_range"`
	SlopeDelta     float64 `yaml:"slope_delta"`
	InterceptDelta int     `yaml:"intercept_delta"`
	ColorDelta     int     `yaml:"color_delta"`
}

// ScheduleConfig controls how many lines are accepted per epoch:
// clamp((width + epoch*growth) / divisor, min, cap)
type ScheduleConfig struct {
	Growth  int `yaml:"growth"`
	Divisor int `yaml:"divisor"`
	Min     int `yaml:"min"`
	Cap     int `yaml:"cap"`
}

// EvalConfig defines evaluation parallelism
type EvalConfig struct {
	Workers   int `yaml:"workers"`
	ShardSize int `yaml:"shard_size"`
}

// StopConfig defines when the epoch loop ends besides a zero-improvement epoch
type StopConfig struct {
	MaxEpochs  int     `yaml:"max_epochs"`  // 0 means unbounded
	CheckEvery int     `yaml:"check_every"` // 0 disables the similarity check
	Threshold  float64 `yaml:"threshold"`   // fraction of width*height*100
}

// OutputConfig defines where snapshots and artifacts go. Paths are
// relative to the per-input output directory.
type OutputConfig struct {
	Dir      string `yaml:"dir"`
	Pattern  string `yaml:"pattern"` // fmt pattern taking the epoch number
	CSVPath  string `yaml:"csv_path"`
	JSONPath string `yaml:"json_path"`
	Replay   string `yaml:"replay"`
	PlotPath string `yaml:"plot_path"`
}

// LogConfig defines logging parameters
type LogConfig struct {
	Level      string `yaml:"level"` // debug|info|warn|error
	EveryRound bool   `yaml:"every_round"`
}

// Load reads a YAML config file and returns a Config
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Seed == 0 {
		cfg.Seed = 1337
	}
	if cfg.Evolution.Population == 0 {
		cfg.Evolution.Population = 500
	}
	if cfg.Evolution.Survivors == 0 {
		cfg.Evolution.Survivors = 100
	}
	if cfg.Evolution.Offspring == 0 {
		cfg.Evolution.Offspring = 4
	}
	if cfg.Evolution.Rounds == 0 {
		cfg.Evolution.Rounds = 100
	}
	if cfg.Mutation.SlopeRange == 0 {
		cfg.Mutation.SlopeRange = 5
	}
	if cfg.Mutation.SlopeDelta == 0 {
		cfg.Mutation.SlopeDelta = 3
	}
	if cfg.Mutation.InterceptDelta == 0 {
		cfg.Mutation.InterceptDelta = 10
	}
	if cfg.Mutation.ColorDelta == 0 {
		cfg.Mutation.ColorDelta = 20
	}
	if cfg.Schedule.Growth == 0 {
		cfg.Schedule.Growth = 1
	}
	if cfg.Schedule.Divisor == 0 {
		cfg.Schedule.Divisor = 100
	}
	if cfg.Schedule.Min == 0 {
		cfg.Schedule.Min = 1
	}
	if cfg.Schedule.Cap == 0 {
		cfg.Schedule.Cap = 100
	}
	if cfg.Eval.Workers == 0 {
		cfg.Eval.Workers = 5
	}
	if cfg.Eval.ShardSize == 0 {
		cfg.Eval.ShardSize = 100
	}
	if cfg.Stop.Threshold == 0 {
		cfg.Stop.Threshold = 0.98
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "output"
	}
	if cfg.Output.Pattern == "" {
		cfg.Output.Pattern = "output%d.png"
	}
	if cfg.Output.CSVPath == "" {
		cfg.Output.CSVPath = "run.csv"
	}
	if cfg.Output.JSONPath == "" {
		cfg.Output.JSONPath = "run.jsonl"
	}
	if cfg.Output.Replay == "" {
		cfg.Output.Replay = "strokes.json"
	}
	if cfg.Output.PlotPath == "" {
		cfg.Output.PlotPath = "progress.png"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// Validate rejects settings the search cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Evolution.Population <= 0:
		return fmt.Errorf("%w: evolution.population must be positive", ErrInvalid)
	case c.Evolution.Survivors <= 0 || c.Evolution.Survivors > c.Evolution.Population:
		return fmt.Errorf("%w: evolution.survivors must be in [1, population]", ErrInvalid)
	case c.Evolution.Offspring < 0:
		return fmt.Errorf("%w: evolution.offspring must not be negative", ErrInvalid)
	case c.Evolution.Rounds <= 0:
		return fmt.Errorf("%w: evolution.rounds must be positive", ErrInvalid)
	case c.Mutation.SlopeRange <= 0 || c.Mutation.SlopeDelta < 0:
		return fmt.Errorf("%w: mutation slope bounds", ErrInvalid)
	case c.Mutation.InterceptDelta < 0 || c.Mutation.ColorDelta < 0:
		return fmt.Errorf("%w: mutation deltas must not be negative", ErrInvalid)
	case c.Schedule.Divisor <= 0 || c.Schedule.Growth < 0:
		return fmt.Errorf("%w: schedule.divisor must be positive and growth not negative", ErrInvalid)
	case c.Schedule.Min < 0 || c.Schedule.Min > c.Schedule.Cap:
		return fmt.Errorf("%w: schedule.min must be in [0, cap]", ErrInvalid)
	case c.Schedule.Cap > c.Evolution.Survivors:
		return fmt.Errorf("%w: schedule.cap exceeds evolution.survivors", ErrInvalid)
	case c.Eval.Workers <= 0 || c.Eval.ShardSize <= 0:
		return fmt.Errorf("%w: eval.workers and eval.shard_size must be positive", ErrInvalid)
	case c.Stop.MaxEpochs < 0 || c.Stop.CheckEvery < 0:
		return fmt.Errorf("%w: stop counters must not be negative", ErrInvalid)
	case c.Stop.Threshold <= 0 || c.Stop.Threshold > 1:
		return fmt.Errorf("%w: stop.threshold must be in (0, 1]", ErrInvalid)
	}
	return nil
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Evolution.Population != 500 || cfg.Evolution.Survivors != 100 ||
		cfg.Evolution.Offspring != 4 || cfg.Evolution.Rounds != 100 {
		t.Errorf("evolution defaults = %+v", cfg.Evolution)
	}
	if cfg.Eval.Workers != 5 || cfg.Eval.ShardSize != 100 {
		t.Errorf("eval defaults = %+v", cfg.Eval)
	}
	if cfg.Schedule.Cap != 100 || cfg.Schedule.Min != 1 {
		t.Errorf("schedule defaults = %+v", cfg.Schedule)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
seed: 7
evolution:
  population: 60
  survivors: 12
  rounds: 5
schedule:
  cap: 10
stop:
  max_epochs: 3
  check_every: 2
  threshold: 0.5
logging:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Seed != 7 || cfg.Evolution.Population != 60 || cfg.Evolution.Survivors != 12 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Evolution.Offspring != 4 {
		t.Errorf("offspring = %d, want default 4", cfg.Evolution.Offspring)
	}
	if cfg.Stop.Threshold != 0.5 || cfg.Stop.MaxEpochs != 3 {
		t.Errorf("stop = %+v", cfg.Stop)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"survivors above population", "evolution:\n  population: 10\n  survivors: 20\n  rounds: 1\nschedule:\n  cap: 5\n"},
		{"cap above survivors", "evolution:\n  survivors: 10\nschedule:\n  cap: 50\n"},
		{"threshold above one", "stop:\n  threshold: 1.5\n"},
		{"negative workers", "eval:\n  workers: -2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Load() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) = nil error")
	}
}

func TestShippedConfigMatchesDefault(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "default.yaml"))
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("configs/default.yaml = %+v, want %+v", *cfg, *Default())
	}
}

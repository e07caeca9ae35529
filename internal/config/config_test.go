package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("hashbench", nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Input != DefaultInput {
		t.Errorf("Expected input %s, got %s", DefaultInput, cfg.Input)
	}
	if cfg.Report != DefaultReport {
		t.Errorf("Expected report %s, got %s", DefaultReport, cfg.Report)
	}
	if cfg.Dump != "" {
		t.Errorf("Expected no dump, got %s", cfg.Dump)
	}
	if len(cfg.Sizes) != 10 || cfg.Sizes[0] != 1001 || cfg.Sizes[9] != 10000 {
		t.Errorf("Unexpected default sizes: %v", cfg.Sizes)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("Expected log level %s, got %s", DefaultLogLevel, cfg.LogLevel)
	}
	if cfg.LogSizeMB != DefaultLogSizeMB {
		t.Errorf("Expected log size %d, got %d", DefaultLogSizeMB, cfg.LogSizeMB)
	}
}

func TestLoadFlags(t *testing.T) {
	cfg, err := Load("hashbench", []string{
		"-input", "films.csv",
		"-dump", "-",
		"-sizes", "7, 11,13",
		"-log-level", "debug",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Input != "films.csv" {
		t.Errorf("Expected films.csv, got %s", cfg.Input)
	}
	if cfg.Dump != "-" {
		t.Errorf("Expected dump to stdout, got %s", cfg.Dump)
	}
	if len(cfg.Sizes) != 3 || cfg.Sizes[1] != 11 {
		t.Errorf("Unexpected sizes: %v", cfg.Sizes)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected debug, got %s", cfg.LogLevel)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("HASHBENCH_INPUT", "env.csv")
	t.Setenv("HASHBENCH_SIZES", "5,6")
	t.Setenv("HASHBENCH_LOG_MAX_SIZE", "3")

	cfg, err := Load("hashbench", nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Input != "env.csv" {
		t.Errorf("Expected env.csv, got %s", cfg.Input)
	}
	if len(cfg.Sizes) != 2 || cfg.Sizes[0] != 5 {
		t.Errorf("Unexpected sizes: %v", cfg.Sizes)
	}
	if cfg.LogSizeMB != 3 {
		t.Errorf("Expected log size 3, got %d", cfg.LogSizeMB)
	}

	cfg, err = Load("hashbench", []string{"-input", "flag.csv"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Input != "flag.csv" {
		t.Errorf("Expected flag to win over env, got %s", cfg.Input)
	}
}

func TestLoadInvalid(t *testing.T) {
	invalid := [][]string{
		{"-sizes", "10"},
		{"-sizes", "10,abc"},
		{"-sizes", "0,10"},
		{"-log-max-size", "0"},
		{"-unknown"},
	}
	for _, args := range invalid {
		if _, err := Load("hashbench", args); err == nil {
			t.Errorf("Expected error for %v", args)
		}
	}
}

func TestParseSizes(t *testing.T) {
	sizes, err := ParseSizes("1001, 2000,,3000")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := []uint64{1001, 2000, 3000}
	if len(sizes) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, sizes)
	}
	for i := range expected {
		if sizes[i] != expected[i] {
			t.Errorf("Expected %d at %d, got %d", expected[i], i, sizes[i])
		}
	}
}

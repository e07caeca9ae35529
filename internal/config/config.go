package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/xyproto/env/v2"
)

const (
	DefaultInput     = "movies.csv"
	DefaultReport    = "collisions.txt"
	DefaultSizes     = "1001,2000,3000,4000,5000,6000,7000,8000,9000,10000"
	DefaultLogLevel  = "info"
	DefaultLogSizeMB = 10
)

type Config struct {
	Input     string
	Report    string
	Dump      string
	Sizes     []uint64
	LogLevel  string
	LogFile   string
	LogSizeMB int
}

// Load parses command-line flags. Every flag falls back to a HASHBENCH_*
// environment variable before its built-in default.
func Load(name string, args []string) (*Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	input := fs.String("input", env.Str("HASHBENCH_INPUT", DefaultInput), "CSV file with movie records")
	report := fs.String("report", env.Str("HASHBENCH_REPORT", DefaultReport), "Collision report file")
	dump := fs.String("dump", env.Str("HASHBENCH_DUMP", ""), "Table dump file, - for stdout (empty = no dump)")
	sizes := fs.String("sizes", env.Str("HASHBENCH_SIZES", DefaultSizes), "Comma-separated requested table sizes")
	logLevel := fs.String("log-level", env.Str("HASHBENCH_LOG_LEVEL", DefaultLogLevel), "Log level: debug, info, warn, error")
	logFile := fs.String("log-file", env.Str("HASHBENCH_LOG_FILE", ""), "Rotated JSON log file (empty = stderr only)")
	logSize := fs.Int("log-max-size", env.Int("HASHBENCH_LOG_MAX_SIZE", DefaultLogSizeMB), "Log file size in MB before rotation")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	parsed, err := ParseSizes(*sizes)
	if err != nil {
		return nil, err
	}
	if *logSize <= 0 {
		return nil, fmt.Errorf("invalid log-max-size %d: must be positive", *logSize)
	}

	return &Config{
		Input:     *input,
		Report:    *report,
		Dump:      *dump,
		Sizes:     parsed,
		LogLevel:  *logLevel,
		LogFile:   *logFile,
		LogSizeMB: *logSize,
	}, nil
}

func ParseSizes(s string) ([]uint64, error) {
	parts := strings.Split(s, ",")
	sizes := make([]uint64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid table size %q: %w", part, err)
		}
		if n == 0 {
			return nil, fmt.Errorf("invalid table size %q: must be positive", part)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) < 2 {
		return nil, fmt.Errorf("need at least two table sizes, got %d", len(sizes))
	}
	return sizes, nil
}

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/lojhan/hashbench/internal/bench"
	"github.com/lojhan/hashbench/internal/config"
	"github.com/lojhan/hashbench/internal/logging"
	"github.com/lojhan/hashbench/internal/movie"
	"github.com/lojhan/hashbench/internal/store"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:     cfg.LogLevel,
		File:      cfg.LogFile,
		MaxSizeMB: cfg.LogSizeMB,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()

	if err != nil {
		logger.Error("hashbench failed", zap.Error(err))
	}
	if cerr := closeLog(); cerr != nil {
		fmt.Fprintln(os.Stderr, cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	movies, err := loadMovies(cfg.Input, logger)
	if err != nil {
		return err
	}
	if len(movies) == 0 {
		return errors.New("no movies found or failed to load movies")
	}
	logger.Info("Loaded movies", zap.String("file", cfg.Input), zap.Int("count", len(movies)))

	res, err := bench.Run(ctx, movies, bench.Options{
		Sizes: cfg.Sizes,
		Observers: func(strategy bench.Strategy, index int) store.Observer {
			return logging.NewObserver(logger, zap.String("strategy", string(strategy)), zap.Int("table", index))
		},
	})
	if err != nil {
		return fmt.Errorf("failed to build tables: %w", err)
	}

	for _, s := range res.Stats {
		logger.Info("Table built",
			zap.String("strategy", string(s.Strategy)),
			zap.Int("table", s.Index),
			zap.Uint64("requested", s.Requested),
			zap.Uint64("capacity", s.Capacity),
			zap.Uint64("collisions", s.Collisions),
			zap.Int("entries", s.Entries),
			zap.Int("rejected", s.Rejected),
		)
	}

	if err := writeFile(cfg.Report, func(w io.Writer) error { return bench.WriteReport(w, res) }); err != nil {
		return err
	}
	logger.Info("Wrote collision report", zap.String("file", cfg.Report), zap.Int64("inserts", res.Attempts))

	switch cfg.Dump {
	case "":
	case "-":
		if err := bench.WriteDumps(os.Stdout, res); err != nil {
			return err
		}
	default:
		if err := writeFile(cfg.Dump, func(w io.Writer) error { return bench.WriteDumps(w, res) }); err != nil {
			return err
		}
		logger.Info("Wrote table dumps", zap.String("file", cfg.Dump))
	}
	return nil
}

func loadMovies(path string, logger *zap.Logger) ([]movie.Movie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open movies file: %w", err)
	}
	defer f.Close()

	movies, err := movie.Load(f)
	for _, rowErr := range multierr.Errors(err) {
		var skipped *movie.RowError
		if !errors.As(rowErr, &skipped) {
			return nil, rowErr
		}
		logger.Warn("Skipping line", zap.Int("line", skipped.Line), zap.String("reason", skipped.Reason))
	}
	return movies, nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return err
	}
	return w.Flush()
}

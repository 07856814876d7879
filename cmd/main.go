package main

//
//  @title           b3ofer API
//  @version         1.0
//  @description     Run log of the B3 offer-file filter.
//  @termsOfService  https://github.com/guttosm/b3ofer
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/b3ofer
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        runs
//  @tag.description Recorded filter runs
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/b3ofer/config"
	_ "github.com/guttosm/b3ofer/docs" // swagger docs
	"github.com/guttosm/b3ofer/internal/app"
	"github.com/guttosm/b3ofer/internal/logger"
	"github.com/guttosm/b3ofer/internal/offers"
)

const dateLayout = "2006-01-02"

// startServer starts the HTTP server in a separate goroutine and returns it.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown blocks until SIGINT or SIGTERM, then shuts the server down
// and runs cleanup.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// cliFlags are the command-line overrides; empty strings keep the configured value.
type cliFlags struct {
	mode     string
	side     string
	in       string
	out      string
	target   string
	format   string
	dir      string
	outDir   string
	date     string
	days     int
	parallel int
	force    bool
	port     string
}

func parseFlags(args []string, cfg config.Config) (cliFlags, error) {
	var f cliFlags
	fs := flag.NewFlagSet("b3ofer", flag.ContinueOnError)
	fs.StringVar(&f.mode, "mode", "filter", "Mode: filter, batch or api")
	fs.StringVar(&f.side, "side", cfg.Offers.Side, "Order-book side: CPA or VDA")
	fs.StringVar(&f.in, "in", cfg.Offers.InputPath, "Input OFER file (filter mode)")
	fs.StringVar(&f.out, "out", "", "Output file (filter mode); defaults to the path of --target")
	fs.StringVar(&f.target, "target", cfg.Offers.OutputTarget, "Configured output target: CPA or VDA")
	fs.StringVar(&f.format, "format", cfg.Offers.OutputFormat, "Output format: csv or xlsx")
	fs.StringVar(&f.dir, "dir", cfg.Offers.InputDir, "Directory with OFER_<SIDE>_<YYYYMMDD>.txt files (batch mode)")
	fs.StringVar(&f.outDir, "out-dir", cfg.Offers.OutputDir, "Output root directory (batch mode)")
	fs.StringVar(&f.date, "date", "", "Last session date to process, YYYY-MM-DD (batch mode); defaults to today")
	fs.IntVar(&f.days, "days", 7, "Number of last business days to process (1-30)")
	fs.IntVar(&f.parallel, "parallel", 0, "How many files to process concurrently (0=auto up to CPU)")
	fs.BoolVar(&f.force, "force", false, "Reprocess days that already have a recorded run")
	fs.StringVar(&f.port, "port", cfg.Server.Port, "Port for API mode")
	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}
	return f, nil
}

// applyFlags returns the offers configuration with flag overrides applied.
func applyFlags(cfg config.OffersConfig, f cliFlags) (config.OffersConfig, error) {
	side, err := offers.ParseSide(f.side)
	if err != nil {
		return cfg, err
	}
	target, err := offers.ParseSide(f.target)
	if err != nil {
		return cfg, fmt.Errorf("target: %w", err)
	}
	format, err := offers.ParseFormat(f.format)
	if err != nil {
		return cfg, err
	}

	cfg.Side = string(side)
	cfg.OutputTarget = string(target)
	cfg.OutputFormat = string(format)
	cfg.InputPath = f.in
	cfg.InputDir = f.dir
	cfg.OutputDir = f.outDir
	if f.out != "" {
		if target == offers.SideSell {
			cfg.VDAOutputPath = f.out
		} else {
			cfg.CPAOutputPath = f.out
		}
	}
	return cfg, nil
}

// run executes one CLI invocation against the loaded configuration.
func run(ctx context.Context, cfg config.Config, args []string) error {
	f, err := parseFlags(args, cfg)
	if err != nil {
		return err
	}

	switch f.mode {
	case "filter", "batch":
		oc, err := applyFlags(cfg.Offers, f)
		if err != nil {
			return err
		}
		opts, err := offers.OptionsFromConfig(oc)
		if err != nil {
			return err
		}
		p, err := offers.NewPipeline(opts)
		if err != nil {
			return err
		}

		repo, closeRepo, err := app.OpenRunLog(cfg)
		if err != nil {
			return err
		}
		defer closeRepo()

		if f.mode == "filter" {
			logger.L().Info().Str("side", oc.Side).Str("input", oc.InputPath).Msg("running filter")
			_, err := offers.ProcessFile(ctx, p, oc.InputPath, oc.OutputPath(), repo)
			return err
		}

		var ref time.Time
		if f.date != "" {
			if ref, err = time.Parse(dateLayout, f.date); err != nil {
				return fmt.Errorf("invalid --date, expected YYYY-MM-DD: %w", err)
			}
		}
		logger.L().Info().Str("side", oc.Side).Str("dir", oc.InputDir).Int("days", f.days).Msg("running batch")
		return offers.ProcessDirectory(ctx, p, offers.BatchOptions{
			InputDir:  oc.InputDir,
			OutputDir: oc.OutputDir,
			Reference: ref,
			Days:      f.days,
			Parallel:  f.parallel,
			Force:     f.force,
		}, repo)

	case "api":
		logger.L().Info().Msg("starting API server")
		router, cleanup, err := app.InitializeApp()
		if err != nil {
			return fmt.Errorf("app init: %w", err)
		}
		server := startServer(router, f.port)
		// ctx is already cancelled by the signal that starts the shutdown
		gracefulShutdown(context.WithoutCancel(ctx), server, cleanup)
		return nil

	default:
		return fmt.Errorf("unknown mode %q", f.mode)
	}
}

// main is the entry point of b3ofer.
//
// Modes (selected via --mode flag):
//   - filter: Filters one OFER file into the configured CPA or VDA output.
//   - batch:  Filters the last --days business days of files in --dir.
//   - api:    Serves the run log over HTTP.
func main() {
	// config errors must still be logged before the configured logger exists
	logger.InitFromEnv()

	if err := config.LoadConfig(); err != nil {
		logger.L().Fatal().Err(err).Msg("config error")
	}
	logger.Init(logger.Options{Level: config.AppConfig.Log.Level, Pretty: config.AppConfig.Log.Pretty})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.AppConfig, os.Args[1:]); err != nil {
		stop()
		logger.L().Fatal().Err(err).Msg("b3ofer failed")
	}
	logger.L().Info().Msg("done")
}

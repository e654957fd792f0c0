package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"shift-scheduler/client"
	"shift-scheduler/config"
	"shift-scheduler/editor"
	"shift-scheduler/formatter"
	"shift-scheduler/logging"
	"shift-scheduler/metrics"
	"shift-scheduler/models"
	"shift-scheduler/parser"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/rs/zerolog"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes one command and returns the process exit code.
func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return 1
	}

	// Define flags
	fs := flag.NewFlagSet("shift-scheduler", flag.ContinueOnError)
	input := fs.String("input", "", "Schedule file to validate (.csv or .yaml)")
	agentsFile := fs.String("agents", "", "Agents CSV file (id, name) used to resolve display names")
	remote := fs.Bool("remote", false, "Load the schedule and agents from the backend instead of -input")
	apiURL := fs.String("api-url", cfg.APIBaseURL, "Scheduling backend base URL")
	format := fs.String("format", "text", "Output format: text|json|csv")
	apply := fs.Bool("apply", false, "Replace the backend schedule when validation passes")
	restore := fs.Bool("restore", false, "Restore the backend's previous schedule and exit")
	logLevel := fs.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	metricsAddr := fs.String("metrics-addr", cfg.MetricsBind, "Address to expose Prometheus metrics (e.g., :9090)")
	pushGateway := fs.String("push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	wait := fs.Bool("wait", false, "Keep process running after completion to allow for metric scraping")

	// Parse command-line flags
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := logging.Setup(cfg.Environment, *logLevel)

	// Start metrics server if address provided
	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			logger.Info().Str("addr", *metricsAddr).Msg("metrics server listening")
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				logger.Error().Err(err).Msg("metrics server error")
			}
		}()
	}

	// Validate format enum
	validFormats := map[string]bool{"text": true, "json": true, "csv": true}
	if !validFormats[*format] {
		fmt.Printf("Error: format must be one of: text, json, csv (got: %s)\n", *format)
		return 1
	}

	if !*restore && !*remote && *input == "" {
		fmt.Println("Error: -input or -remote is required")
		fmt.Println("\nUsage:")
		fs.PrintDefaults()
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend := client.New(*apiURL, cfg.APIToken, client.DefaultHTTPClient(cfg.HTTPTimeout), logger)

	if *restore {
		if err := backend.Restore(ctx); err != nil {
			logger.Error().Err(err).Msg("restore failed")
			return 1
		}
		logger.Info().Msg("previous schedule restored")
		finish(logger, *pushGateway, *metricsAddr, *wait)
		return 0
	}

	slots, agents, err := loadSchedule(ctx, backend, *remote, *input, *agentsFile)
	if err != nil {
		logger.Error().Err(err).Msg("loading schedule failed")
		return 1
	}
	dir := models.NewDirectory(agents)

	st := editor.Load(editor.State{}, slots)
	st, result, err := editor.Validate(st, dir)
	if err != nil {
		logger.Error().Err(err).Msg("validation not possible")
		return 1
	}
	logger.Info().
		Int("slots", len(st.Slots)).
		Bool("ok", result.OK).
		Int("errors", len(result.Errors)).
		Int("warnings", len(result.Warnings)).
		Msg("validation complete")

	report := formatter.Report{Slots: st.Slots, Agents: dir, Result: &result}

	// Output based on format
	switch *format {
	case "json":
		fmt.Print(formatter.FormatJSON(report))
	case "csv":
		fmt.Print(formatter.FormatCSV(report))
	default: // "text"
		fmt.Print(formatter.FormatText(report))
	}

	exitCode := 0
	if !result.OK {
		exitCode = 1
	} else if *apply {
		if err := backend.ReplaceShifts(ctx, st.Slots); err != nil {
			logger.Error().Err(err).Msg("applying schedule failed")
			exitCode = 1
		} else if st, err = editor.Apply(st); err != nil {
			logger.Error().Err(err).Msg("applying schedule failed")
			exitCode = 1
		} else {
			logger.Info().Int("slots", len(st.Slots)).Str("phase", st.Phase.String()).Msg("schedule applied")
		}
	}

	finish(logger, *pushGateway, *metricsAddr, *wait)
	return exitCode
}

func loadSchedule(ctx context.Context, backend *client.Client, remote bool, input, agentsFile string) ([]models.ShiftSlot, []models.Agent, error) {
	var slots []models.ShiftSlot
	var agents []models.Agent

	if remote {
		var err error
		if slots, err = backend.ListShifts(ctx); err != nil {
			return nil, nil, err
		}
		if agents, err = backend.ListAgents(ctx); err != nil {
			return nil, nil, err
		}
	} else {
		file, err := os.Open(input)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening file: %w", err)
		}
		defer file.Close()

		switch strings.ToLower(filepath.Ext(input)) {
		case ".yaml", ".yml":
			doc, err := parser.ParseYAML(file)
			if err != nil {
				return nil, nil, err
			}
			slots, agents = doc.Slots, doc.Agents
		default:
			if slots, err = parser.Parse(file); err != nil {
				return nil, nil, err
			}
		}
	}

	if agentsFile != "" {
		file, err := os.Open(agentsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening agents file: %w", err)
		}
		defer file.Close()
		extra, err := parser.ParseAgents(file)
		if err != nil {
			return nil, nil, err
		}
		agents = append(agents, extra...)
	}

	return slots, agents, nil
}

// finish pushes metrics or keeps the process alive for scraping.
func finish(logger zerolog.Logger, pushGateway, metricsAddr string, wait bool) {
	if pushGateway != "" {
		jobName := "shift_scheduler"
		if err := push.New(pushGateway, jobName).Gatherer(metrics.Registry).Push(); err != nil {
			logger.Error().Err(err).Msg("error pushing to Pushgateway")
		} else {
			logger.Info().Msg("metrics successfully pushed to Pushgateway")
		}
	}

	if wait && metricsAddr != "" {
		logger.Info().Msg("process kept alive for metric scraping, press Ctrl+C to exit")
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
	} else if metricsAddr != "" && pushGateway == "" {
		// Small delay to allow final scrape if not waiting explicitly
		time.Sleep(100 * time.Millisecond)
	}
}

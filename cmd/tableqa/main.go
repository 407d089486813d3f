package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	flag "github.com/spf13/pflag"

	"github.com/jonwraymond/tableqa/catalog"
	"github.com/jonwraymond/tableqa/config"
	"github.com/jonwraymond/tableqa/exec"
	"github.com/jonwraymond/tableqa/frame/duck"
	"github.com/jonwraymond/tableqa/llm"
	"github.com/jonwraymond/tableqa/workflow"
)

var (
	// Set by LDFLAGS
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to a YAML config file")
	dataPath := flag.String("data", "", "dataset to load (.csv, .tsv, .csv.gz or .parquet)")
	questions := flag.StringArrayP("question", "q", nil, "question to answer (repeat for a batch)")
	showCode := flag.Bool("show-code", false, "print the final generated code")
	verbose := flag.BoolP("verbose", "v", false, "enable debug logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("version: %s, commit: %s, date: %s\n", version, commit, date)
		return nil
	}
	if *dataPath == "" {
		return errors.New("--data is required")
	}
	if len(*questions) == 0 {
		return errors.New("at least one --question is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := newLogger(*verbose || cfg.Logging.Level == "debug")
	slog.SetDefault(log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	df, err := duck.Load(ctx, log, *dataPath)
	if err != nil {
		return err
	}

	cat := catalog.Default()
	if len(cfg.Workflow.AllowList) > 0 {
		if cat, err = cat.Subset(cfg.Workflow.AllowList...); err != nil {
			return fmt.Errorf("allow_list: %w", err)
		}
	}

	client, err := llm.New(llm.Config{
		Provider:  cfg.LLM.Provider,
		Model:     cfg.LLM.Model,
		APIKey:    cfg.LLM.APIKey,
		BaseURL:   cfg.LLM.BaseURL,
		MaxTokens: cfg.LLM.MaxTokens,
		Logger:    log,
	})
	if err != nil {
		return err
	}

	ex, err := exec.New(exec.Options{
		Dataset:        df,
		LLM:            client,
		Catalog:        cat,
		Logger:         log,
		Registerer:     prometheus.DefaultRegisterer,
		MaxAttempts:    cfg.Workflow.MaxAttempts,
		DefaultTimeout: cfg.ExecTimeoutDuration(),
		PreviewRows:    cfg.Workflow.PreviewRows,
		Concurrency:    cfg.Workflow.Concurrency,
		OnProgress: func(p workflow.Progress) {
			log.Debug("progress", "session", p.SessionID, "stage", p.Stage, "attempt", p.Iteration)
		},
	})
	if err != nil {
		return err
	}

	results, err := ex.AskBatch(ctx, *questions)
	if err != nil {
		return err
	}

	var failed error
	for _, r := range results {
		if len(results) > 1 {
			fmt.Printf("## %s\n\n", r.Question)
		}
		if *showCode && r.Code != "" {
			fmt.Printf("```go\n%s\n```\n\n", strings.TrimSpace(r.Code))
		}
		switch {
		case r.OK():
			fmt.Printf("%s\n\n", r.Answer)
		case errors.Is(r.Error, workflow.ErrNoAnswer):
			fmt.Printf("no answer: retries exhausted after %d attempts (last error: %s)\n\n", r.Attempts, r.LastError)
		default:
			failed = errors.Join(failed, r.Error)
			fmt.Printf("error: %v\n\n", r.Error)
		}
	}
	return failed
}

func newLogger(verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.Kitchen,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if s, ok := a.Value.Any().(string); ok && s == "" {
				return slog.Attr{}
			}
			return a
		},
	}))
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sangga"
	"github.com/fwojciec/sangga/collect"
	"github.com/fwojciec/sangga/config"
	"github.com/fwojciec/sangga/gemini"
	"github.com/fwojciec/sangga/goquery"
	"github.com/fwojciec/sangga/jsonschema"
	sanggaslog "github.com/fwojciec/sangga/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path. Empty selects the default location.
	ConfigPath string

	// .env files loaded before the config. Empty loads ./.env.
	DotenvPaths []string

	// Generator replaces the Gemini client for end-to-end testing.
	Generator gemini.Generator

	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close releases resources opened by Run.
func (m *Main) Close() error {
	var err error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if e := m.closers[i](); e != nil && err == nil {
			err = e
		}
	}
	m.closers = nil
	return err
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if err := config.LoadDotenv(m.DotenvPaths...); err != nil {
		return err
	}
	cfg, err := config.Load(m.ConfigPath)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set SANGGA_CONFIG to use a different config file")
		return err
	}

	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:        ctx,
		ConfigPath: m.ConfigPath,
		Stdout:     stdout,
		Stderr:     stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sangga"),
		kong.Description("AI-assisted search for commercial rental listings in Korea."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars{
			"addr":      cfg.Addr,
			"model":     cfg.Model,
			"log_level": cfg.LogLevel,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sangga --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Flags override the config file and environment.
	cfg.Model = cli.Model
	cfg.LogLevel = cli.LogLevel
	if cli.Serve.Addr != "" {
		cfg.Addr = cli.Serve.Addr
	}
	deps.Config = cfg

	logger, closeLogger, err := newLogger(stderr, cfg)
	if err != nil {
		return err
	}
	m.closers = append(m.closers, closeLogger)
	defer m.Close()
	deps.Logger = logger

	switch cmd := commandName(kongCtx); cmd {
	case "serve", "search":
		gen, err := m.generator(ctx, cfg, stderr)
		if err != nil {
			return err
		}
		withInsight := cmd == "serve" || cli.Search.Insight
		if cmd == "serve" && cfg.RateLimit > 0 {
			deps.Limiter = collect.NewKeyLimiter(cfg.RateLimit, cfg.RateBurst)
		}
		search, err := newSearchService(gen, cfg.Model, withInsight, deps.Limiter, logger)
		if err != nil {
			return err
		}
		deps.Search = search
	}

	return kongCtx.Run(deps)
}

// generator returns the test generator or connects to Gemini.
func (m *Main) generator(ctx context.Context, cfg config.Config, stderr io.Writer) (gemini.Generator, error) {
	if m.Generator != nil {
		return m.Generator, nil
	}
	if cfg.APIKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}
	client, err := gemini.NewClient(ctx, cfg.APIKey)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return client.Models, nil
}

// newSearchService assembles the search pipeline: schema validation and
// sanitizing inside the Gemini searcher, logging around each stage and
// retries plus rate limiting in the collector.
func newSearchService(gen gemini.Generator, model string, withInsight bool, limiter *collect.KeyLimiter, logger *slog.Logger) (sangga.SearchService, error) {
	validator, err := jsonschema.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to compile listing schema: %w", err)
	}

	searcher := gemini.NewSearcher(gen,
		gemini.WithModel(model),
		gemini.WithValidator(validator),
		gemini.WithSanitizer(goquery.NewSanitizer()),
	)

	collector := &collect.Collector{
		Searcher: sanggaslog.NewLoggingSearcher(searcher, logger),
		OnRetry: func(attempt int, err error) {
			logger.Warn("retrying property search", "attempt", attempt, "err", err)
		},
	}
	if withInsight {
		collector.Insights = sanggaslog.NewLoggingInsightProvider(gemini.NewInsighter(gen, model), logger)
	}
	if limiter != nil {
		collector.Limiter = limiter
	}

	return sanggaslog.NewLoggingSearchService(collector, logger), nil
}

// commandName returns the top-level command of a parsed command line.
func commandName(kongCtx *kong.Context) string {
	fields := strings.Fields(kongCtx.Command())
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mohamedkhairy/stock-analysis/internal/config"
	"github.com/mohamedkhairy/stock-analysis/internal/models"
	"github.com/mohamedkhairy/stock-analysis/internal/pipeline"
	"github.com/mohamedkhairy/stock-analysis/internal/presentation"
	"github.com/mohamedkhairy/stock-analysis/internal/selection"
	"github.com/mohamedkhairy/stock-analysis/internal/storage"
	"github.com/mohamedkhairy/stock-analysis/pkg/logger"
)

// Exit codes
const (
	exitOK        = 0
	exitError     = 1
	exitUsage     = 2
	exitSelection = 3
)

type options struct {
	category string
	symbol   string
	from     string
	to       string
	format   string
	rows     int
	list     bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "%v\n", err)
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return exitError
	}

	if err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return exitError
	}
	defer logger.Sync()

	store, err := storage.Open(cfg)
	if err != nil {
		logger.Error("Failed to open record store", logger.ErrorField(err))
		return exitError
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	controller := selection.NewController(store)
	if opts.list {
		if err := listCatalog(ctx, controller, stdout); err != nil {
			logger.Error("Failed to list categories", logger.ErrorField(err))
			return exitError
		}
		return exitOK
	}

	return analyze(ctx, controller, opts, stdout, stderr)
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.category, "category", "", "category to select")
	fs.StringVar(&opts.symbol, "symbol", "", "symbol within the category")
	fs.StringVar(&opts.from, "from", "", "first date to include (YYYY-MM-DD)")
	fs.StringVar(&opts.to, "to", "", "last date to include (YYYY-MM-DD)")
	fs.StringVar(&opts.format, "format", "text", "output format: text or json")
	fs.IntVar(&opts.rows, "rows", 0, "show only the last N metric rows in text output (0 = all)")
	fs.BoolVar(&opts.list, "list", false, "list categories and their symbols")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.list {
		return opts, nil
	}
	if opts.category == "" || opts.symbol == "" {
		fs.Usage()
		return options{}, errors.New("both -category and -symbol are required")
	}
	if opts.rows < 0 {
		return options{}, errors.New("-rows must not be negative")
	}
	return opts, nil
}

func analyze(ctx context.Context, controller *selection.Controller, opts options, stdout, stderr io.Writer) int {
	renderer, err := presentation.NewRenderer(opts.format, opts.rows)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return exitUsage
	}

	sel := models.Selection{Category: opts.category, Symbol: opts.symbol}
	if sel.From, err = parseDate(opts.from); err != nil {
		fmt.Fprintf(stderr, "invalid -from: %v\n", err)
		return exitUsage
	}
	if sel.To, err = parseDate(opts.to); err != nil {
		fmt.Fprintf(stderr, "invalid -to: %v\n", err)
		return exitUsage
	}

	report, err := pipeline.New(controller).Run(ctx, sel)
	if err != nil {
		if errors.Is(err, models.ErrInvalidSelection) {
			fmt.Fprintf(stderr, "%v\n", err)
			return exitSelection
		}
		logger.Error("Failed to run analysis", logger.ErrorField(err))
		return exitError
	}

	if err := renderer.Render(stdout, report); err != nil {
		logger.Error("Failed to render report", logger.ErrorField(err))
		return exitError
	}
	return exitOK
}

func listCatalog(ctx context.Context, controller *selection.Controller, w io.Writer) error {
	categories, err := controller.Categories(ctx)
	if err != nil {
		return err
	}
	logger.Debug("Listing catalog", logger.Strings("categories", categories))

	for _, category := range categories {
		symbols, err := controller.Symbols(ctx, category)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n", category)
		for _, symbol := range symbols {
			fmt.Fprintf(w, "  %s\n", symbol)
		}
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(models.DateLayout, value)
}

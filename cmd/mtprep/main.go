package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/apperr"
	"github.com/DjordjeVuckovic/mt-score-prep/pkg/config/env"
	"github.com/alecthomas/kong"
	"github.com/google/uuid"
)

const (
	exitOK         = 0
	exitFailure    = 1
	exitValidation = 2
)

// Globals is bound into every command's Run method.
type Globals struct {
	Ctx   context.Context
	Out   io.Writer
	RunID uuid.UUID
}

type CLI struct {
	LogLevel string `name:"log-level" env:"LOG_LEVEL" default:"info" enum:"debug,info,warn,error" help:"Log level (${enum})."`

	Prepare PrepareCmd `cmd:"" default:"withargs" help:"Join corpus and hypotheses, split into segments and export them."`
	Pairs   PairsCmd   `cmd:"" help:"List recognised language pairs."`
	Inspect InspectCmd `cmd:"" help:"Summarise the xcomet-xl export of a language pair."`
	Verify  VerifyCmd  `cmd:"" help:"Check exported files against the pair's manifest."`
	Schema  SchemaCmd  `cmd:"" help:"Print the JSON schema of the YAML run file."`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	slog.SetDefault(newLogger(stderr, "info"))

	if err := env.LoadDotEnv(".env"); err != nil {
		slog.Error("Failed to load environment", "error", err)
		return exitValidation
	}

	var cli CLI
	exitCode := -1
	parser, err := kong.New(&cli,
		kong.Name("mtprep"),
		kong.Description("Prepare machine translation outputs for XCOMET-XL, MetricX-24 and GEMBA scoring."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	kctx, err := parser.Parse(args)
	if exitCode >= 0 {
		return exitCode
	}
	if err != nil {
		fmt.Fprintf(stderr, "mtprep: error: %v\n", err)
		return exitValidation
	}

	slog.SetDefault(newLogger(stderr, cli.LogLevel))

	err = kctx.Run(&Globals{Ctx: ctx, Out: stdout, RunID: uuid.New()})
	return exitCodeFor(err, stderr)
}

func exitCodeFor(err error, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)

	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return exitValidation
	}
	return exitFailure
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

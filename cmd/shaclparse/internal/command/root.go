package command

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

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/geoknoesis/shacl-go/internal/config"
)

// Version is set at build time with -ldflags "-X ...command.Version=v1.2.3".
var Version = "dev"

// errProblems signals a non-zero exit after the report was already written.
var errProblems = errors.New("")

// CLI is the state shared by every subcommand.
type CLI struct {
	Out    io.Writer
	Err    io.Writer
	Config *config.Config
	Logger *slog.Logger
	RunID  string

	lookupEnv func(string) (string, bool)
}

// NewCLI returns a CLI writing to out and err and reading the process
// environment.
func NewCLI(out, err io.Writer) *CLI {
	return &CLI{
		Out:       out,
		Err:       err,
		Config:    config.Default(),
		Logger:    slog.New(slog.DiscardHandler),
		lookupEnv: os.LookupEnv,
	}
}

// globalFlags mirror the configuration file. A flag only overrides the
// configuration when it is set on the command line.
type globalFlags struct {
	configPath string
	envFile    string

	format     string
	baseIRI    string
	safeLimits bool
	strictIRIs bool

	roots         string
	concurrency   int
	strictBounds  bool
	skipMalformed bool

	output      string
	logLevel    string
	logFormat   string
	metricsFile string
}

// NewRootCommand builds the shaclparse command tree around cli.
func NewRootCommand(cli *CLI) *cobra.Command {
	flags := &globalFlags{}
	cmd := &cobra.Command{
		Use:   "shaclparse",
		Short: "Parse SHACL shapes graphs and check that the shapes are well formed",
		Long: Highlight("shaclparse [global options] <command> <file>") + "\n\n" +
			"shaclparse loads a shapes graph (Turtle, N-Triples, RDF/XML or JSON-LD),\n" +
			"builds its node and property shapes and reports conflicts such as\n" +
			"minCount above maxCount, wrong parameter datatypes or broken lists.\n",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cli.configure(cmd, flags)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&flags.envFile, "env-file", ".env", "dotenv file with SHACLPARSE_* defaults")
	pf.StringVar(&flags.format, "format", "", "Input format: auto, turtle, ntriples, rdfxml or jsonld")
	pf.StringVar(&flags.baseIRI, "base-iri", "", "Base IRI for relative references")
	pf.BoolVar(&flags.safeLimits, "safe-limits", false, "Apply input limits suitable for untrusted files")
	pf.BoolVar(&flags.strictIRIs, "strict-iris", false, "Reject IRIs that fail RFC 3987 checks")
	pf.StringVar(&flags.roots, "roots", "", "Root discovery: unreferenced or declared")
	pf.IntVar(&flags.concurrency, "concurrency", 0, "Number of root shapes parsed in parallel")
	pf.BoolVar(&flags.strictBounds, "strict-bounds", false, "Treat a lower bound above its upper bound as an error")
	pf.BoolVar(&flags.skipMalformed, "skip-malformed", false, "Skip root shapes with structural errors")
	pf.StringVarP(&flags.output, "output", "o", "", "Report format: text, json or yaml")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: text or json")
	pf.StringVar(&flags.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file")

	cmd.AddCommand(
		NewParseCommand(cli),
		NewRootsCommand(cli),
		NewGraphCommand(cli),
		NewVersionCommand(cli),
	)
	return cmd
}

// configure layers defaults, the config file, the environment and flags,
// then builds the logger.
func (cli *CLI) configure(cmd *cobra.Command, flags *globalFlags) error {
	if err := config.LoadEnvFile(flags.envFile); err != nil {
		return err
	}
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(cli.lookupEnv); err != nil {
		return err
	}

	set := cmd.Flags().Changed
	if set("format") {
		cfg.Load.Format = flags.format
	}
	if set("base-iri") {
		cfg.Load.BaseIRI = flags.baseIRI
	}
	if set("safe-limits") {
		cfg.Load.SafeLimits = flags.safeLimits
	}
	if set("strict-iris") {
		cfg.Load.StrictIRIs = flags.strictIRIs
	}
	if set("roots") {
		cfg.Parse.Roots = flags.roots
	}
	if set("concurrency") {
		cfg.Parse.Concurrency = flags.concurrency
	}
	if set("strict-bounds") {
		cfg.Parse.StrictBounds = flags.strictBounds
	}
	if set("skip-malformed") {
		cfg.Parse.SkipMalformed = flags.skipMalformed
	}
	if set("output") {
		cfg.Output = flags.output
	}
	if set("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if set("log-format") {
		cfg.Log.Format = flags.logFormat
	}
	if set("metrics-file") {
		cfg.Metrics.File = flags.metricsFile
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cli.Config = cfg
	cli.RunID = uuid.NewString()
	cli.Logger = setupLogger(cli.Err, cfg.Log.Level, cfg.Log.Format).With("run_id", cli.RunID)
	return nil
}

func setupLogger(w io.Writer, level, format string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Highlight colours a usage heading.
func Highlight(format string, a ...any) string {
	return color.RGB(50, 108, 229).Sprintf(format, a...)
}

// Run executes the command tree with args and returns the exit code.
func Run(ctx context.Context, cli *CLI, args []string) int {
	cmd := NewRootCommand(cli)
	cmd.SetArgs(args)
	cmd.SetOut(cli.Out)
	cmd.SetErr(cli.Err)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(cli.Err, "Error:", msg)
		}
		return 1
	}
	return 0
}

// Execute runs shaclparse with the process arguments.
func Execute() int {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		color.NoColor = true
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Run(ctx, NewCLI(os.Stdout, os.Stderr), os.Args[1:])
}

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/geoknoesis/shacl-go/internal/report"
	"github.com/geoknoesis/shacl-go/rdf"
	"github.com/geoknoesis/shacl-go/shacl"
)

// ParseOptions holds the options of the parse command.
type ParseOptions struct {
	FailOnConflict bool
}

func NewParseCommand(cli *CLI) *cobra.Command {
	opts := ParseOptions{}
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse the shapes in a shapes graph and report problems",
		Long: Highlight("shaclparse parse <file>") + "\n\n" +
			"Build every shape reachable from the roots of the graph and report\n" +
			"the shapes found, their conflicts and any structural error.\n\n" +
			"Exits with status 1 on a structural error, or on conflicts when\n" +
			"--fail-on-conflict is set.\n",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.runParse(cmd.Context(), args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.FailOnConflict, "fail-on-conflict", false, "Exit with status 1 when conflicts are found")
	return cmd
}

func (cli *CLI) runParse(ctx context.Context, path string, opts ParseOptions) error {
	cfg := cli.Config

	var registry *prometheus.Registry
	var metrics *shacl.Metrics
	if cfg.Metrics.File != "" {
		registry = prometheus.NewRegistry()
		m, err := shacl.NewMetrics(registry)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		metrics = m
	}

	rep, err := cli.parseFile(ctx, path, metrics)
	if err != nil {
		rep = report.Failed(cli.RunID, path, err)
	}
	if writeErr := report.Write(cli.Out, cfg.Output, rep); writeErr != nil {
		return writeErr
	}
	if registry != nil {
		if err := prometheus.WriteToTextfile(cfg.Metrics.File, registry); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	switch {
	case rep.Status == report.StatusFailed:
		return errProblems
	case rep.Status == report.StatusConflicts && opts.FailOnConflict:
		return errProblems
	}
	return nil
}

func (cli *CLI) parseFile(ctx context.Context, path string, metrics *shacl.Metrics) (*report.Report, error) {
	g, err := cli.loadGraph(ctx, path)
	if err != nil {
		return nil, err
	}
	opts := append(cli.Config.ShaclOptions(),
		shacl.WithLogger(cli.Logger),
		shacl.WithMetrics(metrics),
	)
	res, err := shacl.Parse(ctx, g, opts...)
	if err != nil {
		cli.Logger.Error("parse failed", "source", path, "code", shacl.Code(err), "error", err)
		return nil, err
	}
	cli.Logger.Info("parse finished",
		"source", path,
		"shapes", res.Len(),
		"conflicts", len(res.Conflicts()),
		"failures", len(res.Failures))
	return report.New(cli.RunID, path, g, res), nil
}

// loadGraph reads path with the configured format, or by extension and
// content when the format is auto.
func (cli *CLI) loadGraph(ctx context.Context, path string) (*rdf.Graph, error) {
	cfg := cli.Config
	opts := cfg.RDFOptions()

	var (
		g   *rdf.Graph
		err error
	)
	if format := cfg.Format(); format == rdf.FormatAuto {
		g, err = rdf.LoadFile(ctx, path, opts...)
	} else {
		f, openErr := os.Open(path)
		if openErr != nil {
			return nil, &rdf.LoadError{Format: format, Source: path, IO: true, Err: openErr}
		}
		defer f.Close()
		g, err = rdf.Load(ctx, f, format, append(opts, rdf.OptSource(path))...)
	}
	if err != nil {
		cli.Logger.Error("load failed", "source", path, "code", rdf.Code(err), "error", err)
		return nil, err
	}
	cli.Logger.Debug("graph loaded", "source", path, "triples", g.Len())
	return g, nil
}

package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geoknoesis/shacl-go/rdf"
	"github.com/geoknoesis/shacl-go/shacl"
)

// RootsOptions holds the options of the roots command.
type RootsOptions struct {
	Candidates bool
}

func NewRootsCommand(cli *CLI) *cobra.Command {
	opts := RootsOptions{}
	cmd := &cobra.Command{
		Use:   "roots <file>",
		Short: "List the shapes parsing would start from",
		Long: Highlight("shaclparse roots <file>") + "\n\n" +
			"Print the root shapes found with the configured discovery mode,\n" +
			"one per line in N-Triples syntax. With --candidates, print the\n" +
			"property shapes that are not nested in another shape instead.\n",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := cli.loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			var terms []rdf.Term
			if opts.Candidates {
				terms = shacl.PropertyShapeCandidates(g)
			} else {
				mode, err := shacl.ParseRootMode(cli.Config.Parse.Roots)
				if err != nil {
					return err
				}
				terms = shacl.DiscoverRoots(g, mode)
			}
			for _, t := range terms {
				fmt.Fprintln(cli.Out, rdf.RenderTerm(t))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.Candidates, "candidates", false, "List standalone property shapes")
	return cmd
}

func NewGraphCommand(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "graph <file>",
		Short: "Print the loaded graph as N-Triples",
		Long: Highlight("shaclparse graph <file>") + "\n\n" +
			"Load the file with the configured format and limits and write the\n" +
			"resulting triples as N-Triples, in input order.\n",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := cli.loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return rdf.WriteNTriples(cli.Out, g)
		},
	}
}

func NewVersionCommand(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintln(cli.Out, "shaclparse", Version)
		},
	}
}

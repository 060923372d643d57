package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewViewsCommand creates the views command.
func NewViewsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "views <spec.cue>",
		Short: "List the views a spec declares",
		Long: `List the public view names a collection spec derives, with their
kind and source path.

Example:
  facet views ./views.cue
  facet views ./views.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViews(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runViews(opts *RootOptions, specPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	views, err := declaredViews(specPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to compile spec", err)
	}

	if opts.Format == "json" {
		return formatter.Success(views)
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tPATH")
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", v.Name, v.Kind, v.Path)
	}
	return tw.Flush()
}

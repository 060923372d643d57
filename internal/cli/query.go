package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/facet/internal/canon"
	"github.com/roach88/facet/internal/collection"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	View string
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <spec.cue> <dataset>",
		Short: "Read a declared view of a dataset",
		Long: `Build a collection from the spec and dataset, then read one declared
view and print it as deterministic JSON (object keys in canonical order).

The dataset is a YAML or JSON list of records.

Example:
  facet query ./views.cue ./tasks.yaml --view byKind
  facet query ./views.cue ./tasks.yaml --view inPriorityOrder --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.View, "view", "", "public view name to read (required)")
	_ = cmd.MarkFlagRequired("view")

	return cmd
}

func runQuery(opts *QueryOptions, specPath, datasetPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	c, err := buildCollection(specPath, datasetPath, formatter)
	if err != nil {
		return err
	}

	value, err := c.View(opts.View)
	if err != nil {
		if outErr := formatter.Error(errorCode(err), err.Error(), c.ViewNames()); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitFailure, "view read failed", err)
	}

	payload, err := canon.Marshal(value)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to serialize view", err)
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]any{
			"view":  opts.View,
			"value": json.RawMessage(payload),
		})
	}
	return formatter.SuccessRaw(payload)
}

// errorCode maps collection errors onto CLI error codes.
func errorCode(err error) string {
	var cerr *collection.Error
	if errors.As(err, &cerr) {
		return string(cerr.Code)
	}
	return "E_GENERIC"
}

package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/facet/internal/collection"
	"github.com/roach88/facet/internal/spec"
)

// newFormatter builds the output formatter for one command invocation,
// stamping it with a fresh trace id for correlation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
		TraceID:   uuid.NewString(),
	}
}

// buildCollection compiles the spec, loads the dataset and constructs the
// collection. All failures here are command errors (exit code 2): nothing
// has been computed yet.
func buildCollection(specPath, datasetPath string, f *OutputFormatter) (*collection.Collection[map[string]any], error) {
	s, err := spec.Load(specPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to compile spec", err)
	}
	f.VerboseLog("spec compiled: %d group, %d index, %d order view(s), immutable=%v",
		len(s.Group), len(s.Index), len(s.Order), s.Immutable)

	records, err := LoadDataset(datasetPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load dataset", err)
	}
	f.VerboseLog("dataset loaded: %d record(s)", len(records))

	c, err := collection.New(collection.Config[map[string]any]{
		Group:      s.Group,
		Index:      s.Index,
		Order:      s.Order,
		InitialSet: records,
		Immutable:  s.Immutable,
	})
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to build collection", err)
	}
	return c, nil
}

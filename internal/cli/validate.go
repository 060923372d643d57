package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/facet/internal/collection"
	"github.com/roach88/facet/internal/spec"
)

// ValidationResult holds the outcome of validating a spec.
type ValidationResult struct {
	Valid bool       `json:"valid"`
	Views []ViewInfo `json:"views,omitempty"`
	Error string     `json:"error,omitempty"`
}

// ViewInfo describes one declared view.
type ViewInfo struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	Path string `json:"path"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <spec.cue>",
		Short: "Validate a collection spec",
		Long: `Validate a CUE collection spec without loading any data.

Checks syntax, field types, and that the derived public view names are
unique across the group, index and order declarations.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, specPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	views, err := declaredViews(specPath)
	if err != nil {
		if opts.Format == "json" {
			if err := formatter.Success(ValidationResult{Valid: false, Error: err.Error()}); err != nil {
				return err
			}
		} else if err := formatter.Error("INVALID_SPEC", err.Error(), nil); err != nil {
			return err
		}
		return WrapExitError(ExitFailure, "spec is invalid", err)
	}

	if opts.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Views: views})
	}
	formatter.VerboseLog("spec %s declares %d view(s)", specPath, len(views))
	return formatter.Success("spec is valid")
}

// declaredViews compiles the spec and derives its view declarations by
// constructing an empty collection, which also catches public-name
// collisions across the three kinds.
func declaredViews(specPath string) ([]ViewInfo, error) {
	s, err := spec.Load(specPath)
	if err != nil {
		return nil, err
	}

	c, err := collection.New(collection.Config[map[string]any]{
		Group: s.Group,
		Index: s.Index,
		Order: s.Order,
	})
	if err != nil {
		return nil, err
	}

	decls := c.Declarations()
	views := make([]ViewInfo, len(decls))
	for i, d := range decls {
		views[i] = ViewInfo{Name: d.Name, Kind: d.Kind.String(), Path: d.Path}
	}
	return views, nil
}

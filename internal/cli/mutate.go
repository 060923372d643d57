package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/facet/internal/canon"
	"github.com/roach88/facet/internal/collection"
)

// MutateOptions holds flags for the mutate command.
type MutateOptions struct {
	*RootOptions
	Op     string
	Record []string
	Start  int
	Delete int
}

// ValidOps lists the supported mutation operations.
var ValidOps = []string{"append", "pushfront", "popback", "popfront", "splice", "reverse"}

// NewMutateCommand creates the mutate command.
func NewMutateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MutateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "mutate <spec.cue> <dataset>",
		Short: "Apply one mutation and print the resulting sequence",
		Long: `Build a collection from the spec and dataset, apply a single mutating
operation, and print the resulting record sequence as deterministic JSON.

On an immutable spec the mutation capability does not exist and the
command fails.

Example:
  facet mutate ./views.cue ./tasks.yaml --op append --record '{"kind":"bug","id":9}'
  facet mutate ./views.cue ./tasks.yaml --op splice --start 1 --delete 2
  facet mutate ./views.cue ./tasks.yaml --op reverse`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutate(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Op, "op", "", fmt.Sprintf("operation, one of %v (required)", ValidOps))
	cmd.Flags().StringArrayVar(&opts.Record, "record", nil, "record to insert, as JSON (repeatable; append/pushfront/splice)")
	cmd.Flags().IntVar(&opts.Start, "start", 0, "splice start index (negative counts from the end)")
	cmd.Flags().IntVar(&opts.Delete, "delete", 0, "splice delete count")
	_ = cmd.MarkFlagRequired("op")

	return cmd
}

func runMutate(opts *MutateOptions, specPath, datasetPath string, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))

	formatter := newFormatter(opts.RootOptions, cmd)

	records, err := parseRecords(opts.Record)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to parse --record", err)
	}

	c, err := buildCollection(specPath, datasetPath, formatter)
	if err != nil {
		return err
	}

	m, ok := c.Mutable()
	if !ok {
		err := fmt.Errorf("spec declares the collection immutable; no mutation capability exists")
		if outErr := formatter.Error("IMMUTABLE_COLLECTION", err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitFailure, "mutation unavailable", err)
	}

	if err := applyOp(m, opts, records); err != nil {
		return WrapExitError(ExitCommandError, "mutation failed", err)
	}
	slog.Debug("mutation applied", "op", opts.Op, "length", c.Len())

	payload, err := canon.Marshal(c.Records())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to serialize records", err)
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]any{
			"op":      opts.Op,
			"length":  c.Len(),
			"records": json.RawMessage(payload),
		})
	}
	return formatter.SuccessRaw(payload)
}

// applyOp dispatches one mutation on the collection's mutator.
func applyOp(m *collection.Mutator[map[string]any], opts *MutateOptions, records []map[string]any) error {
	switch opts.Op {
	case "append":
		if len(records) == 0 {
			return fmt.Errorf("append requires at least one --record")
		}
		m.Append(records...)
	case "pushfront":
		if len(records) == 0 {
			return fmt.Errorf("pushfront requires at least one --record")
		}
		m.PushFront(records...)
	case "popback":
		if _, ok := m.PopBack(); !ok {
			return fmt.Errorf("popback on an empty collection")
		}
	case "popfront":
		if _, ok := m.PopFront(); !ok {
			return fmt.Errorf("popfront on an empty collection")
		}
	case "splice":
		m.Splice(opts.Start, opts.Delete, records...)
	case "reverse":
		m.Reverse()
	default:
		return fmt.Errorf("unknown op %q: must be one of %v", opts.Op, ValidOps)
	}
	return nil
}

// parseRecords decodes the --record flags. YAML parsing accepts both JSON
// and YAML record literals.
func parseRecords(raw []string) ([]map[string]any, error) {
	records := make([]map[string]any, 0, len(raw))
	for i, r := range raw {
		var rec map[string]any
		if err := yaml.Unmarshal([]byte(r), &rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

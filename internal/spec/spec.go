// Package spec compiles CUE collection specs into the configuration the
// collection is constructed from.
//
// A spec file declares which paths to derive views from and whether the
// collection is mutable:
//
//	group: ["kind"]
//	index: ["id"]
//	order: ["priority"]
//	immutable: false
//
// All fields are optional; an empty file is a valid spec declaring zero
// views.
package spec

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Spec is a compiled collection spec.
type Spec struct {
	Group     []string
	Index     []string
	Order     []string
	Immutable bool
}

// CompileError represents a spec compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads and compiles a single CUE spec file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec: %w", err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	return Compile(v)
}

// Compile parses a CUE value into a Spec. Uses the CUE SDK's Go API
// directly (not CLI subprocess). Path lists must be lists of non-empty
// strings; immutable must be a bool. Name-collision detection between the
// derived view names is the collection's job, not the compiler's.
func Compile(v cue.Value) (*Spec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	s := &Spec{}
	var err error

	if s.Group, err = parsePathList(v, "group"); err != nil {
		return nil, err
	}
	if s.Index, err = parsePathList(v, "index"); err != nil {
		return nil, err
	}
	if s.Order, err = parsePathList(v, "order"); err != nil {
		return nil, err
	}

	immutableVal := v.LookupPath(cue.ParsePath("immutable"))
	if immutableVal.Exists() {
		b, err := immutableVal.Bool()
		if err != nil {
			return nil, &CompileError{
				Field:   "immutable",
				Message: "must be a bool",
				Pos:     immutableVal.Pos(),
			}
		}
		s.Immutable = b
	}

	return s, nil
}

// parsePathList parses an optional list-of-strings field.
func parsePathList(v cue.Value, field string) ([]string, error) {
	listVal := v.LookupPath(cue.ParsePath(field))
	if !listVal.Exists() {
		return nil, nil
	}

	iter, err := listVal.List()
	if err != nil {
		return nil, &CompileError{
			Field:   field,
			Message: "must be a list of path expressions",
			Pos:     listVal.Pos(),
		}
	}

	var paths []string
	for iter.Next() {
		elem := iter.Value()
		p, err := elem.String()
		if err != nil {
			return nil, &CompileError{
				Field:   field,
				Message: "path expressions must be strings",
				Pos:     elem.Pos(),
			}
		}
		if p == "" {
			return nil, &CompileError{
				Field:   field,
				Message: "path expressions must not be empty",
				Pos:     elem.Pos(),
			}
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}

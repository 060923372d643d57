package collection

import (
	"encoding/json"
	"iter"
	"slices"

	"github.com/roach88/facet/internal/view"
)

// Config describes the views and initial content of a collection.
// All fields are optional: absent path lists declare zero views of that
// kind, an absent InitialSet yields an empty collection, and a false
// Immutable yields a mutable one.
type Config[T any] struct {
	// Group lists the path expressions to declare group-by views for.
	Group []string

	// Index lists the path expressions to declare index-by views for.
	Index []string

	// Order lists the path expressions to declare order-by views for.
	Order []string

	// InitialSet seeds the collection, in order, through the same append
	// path as any later mutation.
	InitialSet []T

	// Immutable withholds the mutator capability for the collection's
	// entire lifetime.
	Immutable bool
}

// Collection is an ordered sequence of records that maintains named derived
// views of its content. Views are declared once at construction, computed
// lazily on first read, cached, and all invalidated together by every
// structural mutation, so a view read always reflects the content as of the
// latest completed mutation.
//
// The Collection type itself is read-only. Mutations go through the
// *Mutator capability returned by Mutable, which is withheld when the
// collection is constructed immutable.
type Collection[T any] struct {
	// seq is the publicly observed sequence: Len, At and All read it.
	seq []T

	// mirror is the ground-truth sequence the views and the serialization
	// hook are computed from. Every mutation is applied to both seq and
	// mirror; they are identical in length, content and order between
	// completed operations.
	mirror []T

	reg *registry[T]

	// mut is the mutation capability, nil when constructed immutable.
	mut *Mutator[T]
}

// New constructs a collection from cfg. Group views are declared first,
// then index views, then order views; a public-name collision anywhere in
// that sequence fails construction with a configuration error and no
// collection is returned. The initial set is then seeded through the
// ordinary append path, so views are consistent with the content
// immediately after construction.
func New[T any](cfg Config[T]) (*Collection[T], error) {
	c := &Collection[T]{reg: newRegistry[T]()}

	if _, err := c.reg.declare(cfg.Group, KindGroup, view.GroupName); err != nil {
		return nil, err
	}
	if _, err := c.reg.declare(cfg.Index, KindIndex, view.IndexName); err != nil {
		return nil, err
	}
	if _, err := c.reg.declare(cfg.Order, KindOrder, view.OrderName); err != nil {
		return nil, err
	}

	m := &Mutator[T]{c: c}
	if len(cfg.InitialSet) > 0 {
		m.Append(cfg.InitialSet...)
	}
	if !cfg.Immutable {
		c.mut = m
	}
	return c, nil
}

// Mutable returns the mutation capability. The second return is false when
// the collection was constructed immutable; in that case no mutating
// operation exists for the collection's lifetime.
func (c *Collection[T]) Mutable() (*Mutator[T], bool) {
	if c.mut == nil {
		return nil, false
	}
	return c.mut, true
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	return len(c.seq)
}

// At returns the record at index i, or false when i is out of range.
func (c *Collection[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(c.seq) {
		var zero T
		return zero, false
	}
	return c.seq[i], true
}

// All iterates the records in order. Mutating the collection during
// iteration is undefined.
func (c *Collection[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, rec := range c.seq {
			if !yield(rec) {
				return
			}
		}
	}
}

// Records returns a copy of the record sequence.
func (c *Collection[T]) Records() []T {
	return slices.Clone(c.mirror)
}

// ViewNames returns the declared public view names in declaration order:
// group views, then index views, then order views.
func (c *Collection[T]) ViewNames() []string {
	return c.reg.names()
}

// Declarations returns the view declarations in declaration order.
func (c *Collection[T]) Declarations() []Declaration[T] {
	return slices.Clone(c.reg.decls)
}

// View reads a declared view by public name, computing and caching it if
// the cache is absent. Repeated reads with no intervening mutation return
// the identical cached value. Unknown names fail with an UNKNOWN_VIEW
// error.
func (c *Collection[T]) View(name string) (any, error) {
	return c.reg.read(name, c.mirror)
}

// Group reads a group-by view by public name.
func (c *Collection[T]) Group(name string) (map[string][]T, error) {
	v, err := c.viewOfKind(name, KindGroup)
	if err != nil {
		return nil, err
	}
	return v.(map[string][]T), nil
}

// Index reads an index-by view by public name.
func (c *Collection[T]) Index(name string) (map[string]T, error) {
	v, err := c.viewOfKind(name, KindIndex)
	if err != nil {
		return nil, err
	}
	return v.(map[string]T), nil
}

// Order reads an order-by view by public name.
func (c *Collection[T]) Order(name string) ([]T, error) {
	v, err := c.viewOfKind(name, KindOrder)
	if err != nil {
		return nil, err
	}
	return v.([]T), nil
}

func (c *Collection[T]) viewOfKind(name string, kind Kind) (any, error) {
	d, ok := c.reg.lookup(name)
	if !ok {
		return nil, newUnknownViewError(name)
	}
	if d.Kind != kind {
		return nil, &Error{
			Code:    ErrCodeUnknownView,
			Message: "view is declared as " + d.Kind.String() + ", not " + kind.String(),
			View:    name,
			Path:    d.Path,
		}
	}
	return c.reg.read(name, c.mirror)
}

// SetView rejects every external write to a view's public name. Declared
// views are read-only for the collection's lifetime; the write never takes
// effect and the view's state is unchanged. Invalidation is a distinct
// internal operation reachable only from the mutation path.
func (c *Collection[T]) SetView(name string, _ any) error {
	if _, ok := c.reg.lookup(name); ok {
		return newImmutableViewError(name)
	}
	return newUnknownViewError(name)
}

// MarshalJSON serializes the plain ordered record sequence. Declared views
// are derived state and never appear in serialized output.
func (c *Collection[T]) MarshalJSON() ([]byte, error) {
	if c.mirror == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.mirror)
}

package collection

import (
	"github.com/roach88/facet/internal/pathexpr"
	"github.com/roach88/facet/internal/view"
)

// Kind identifies which builder a view declaration is bound to.
type Kind int

const (
	// KindGroup maps each key to the list of records sharing it.
	KindGroup Kind = iota + 1
	// KindIndex maps each key to a single record, last write wins.
	KindIndex
	// KindOrder holds all records stably sorted ascending by key.
	KindOrder
)

// String returns the configuration-surface name of the kind.
func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindIndex:
		return "index"
	case KindOrder:
		return "order"
	default:
		return "unknown"
	}
}

// Declaration binds a source path to a view kind under a derived public
// name. Declarations are created once at construction and never change.
type Declaration[T any] struct {
	Kind Kind
	Path string
	Name string

	key view.KeyFunc[T]
}

// viewCache holds one view's materialized value, or marks it absent.
// Read and invalidate are distinct operations: external callers only ever
// reach read (through the registry), invalidate is reachable only from the
// owning collection's mutation path.
type viewCache struct {
	valid bool
	value any
}

func (c *viewCache) invalidate() {
	c.valid = false
	c.value = nil
}

// registry owns every view declaration and cache for one collection.
type registry[T any] struct {
	decls  []Declaration[T]
	caches map[string]*viewCache
}

func newRegistry[T any]() *registry[T] {
	return &registry[T]{caches: make(map[string]*viewCache)}
}

// declare installs one view per path under the name derived by nameFor.
// Declaring zero paths is valid and common. A derived name colliding with
// any earlier declaration fails with a configuration error; no partial
// declarations from the failing call survive the caller (construction
// discards the whole collection).
func (r *registry[T]) declare(paths []string, kind Kind, nameFor func(string) string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(paths))
	for _, path := range paths {
		if path == "" {
			return nil, newEmptyPathError()
		}
		name := nameFor(path)
		if _, exists := r.caches[name]; exists {
			return nil, newDuplicateViewError(name, path)
		}
		r.decls = append(r.decls, Declaration[T]{
			Kind: kind,
			Path: path,
			Name: name,
			key: func(rec T) any {
				v, _ := pathexpr.Resolve(rec, path)
				return v
			},
		})
		r.caches[name] = &viewCache{}
		names = append(names, name)
	}
	return names, nil
}

// lookup returns the declaration registered under name.
func (r *registry[T]) lookup(name string) (Declaration[T], bool) {
	for _, d := range r.decls {
		if d.Name == name {
			return d, true
		}
	}
	return Declaration[T]{}, false
}

// read returns the view's cached value, computing it from source first if
// the cache is absent. The cached value is returned as-is on repeated
// reads: callers observe the identical value until the next invalidation.
func (r *registry[T]) read(name string, source []T) (any, error) {
	d, ok := r.lookup(name)
	if !ok {
		return nil, newUnknownViewError(name)
	}
	c := r.caches[name]
	if !c.valid {
		c.value = build(d, source)
		c.valid = true
	}
	return c.value, nil
}

// invalidateAll marks every cache absent. Called exactly once per completed
// structure-mutating operation on the owning collection, after the mutation
// is applied and before control returns.
func (r *registry[T]) invalidateAll() {
	for _, c := range r.caches {
		c.invalidate()
	}
}

// names returns the public view names in declaration order.
func (r *registry[T]) names() []string {
	out := make([]string, len(r.decls))
	for i, d := range r.decls {
		out[i] = d.Name
	}
	return out
}

// build runs the declaration's builder against source. The result is exactly
// what the builder would produce fresh at read time; caches are recomputed
// whole, never incrementally patched.
func build[T any](d Declaration[T], source []T) any {
	switch d.Kind {
	case KindGroup:
		return view.GroupBy(source, d.key)
	case KindIndex:
		return view.IndexBy(source, d.key)
	case KindOrder:
		return view.SortBy(source, d.key)
	default:
		return nil
	}
}

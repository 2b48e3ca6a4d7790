// Package schema provides the Schema builder façade and the immutable
// TransitionTable it compiles to. Schema objects are constructed with a
// fluent, hierarchical API; as soon as Compile is called the resulting
// table is read-only and safe for concurrent use by many Adapters.
package schema

import (
	"github.com/hanju/tagstream/tagerr"
)

// entry is one declared path in the schema: its canonical tag name, any
// aliases for that name, and the set of attribute names it whitelists.
type entry struct {
	path   string
	names  []string
	attrs  map[string]struct{}
	parent string
}

// Schema is a builder for a hierarchical tag schema. The zero value is
// not usable; construct one with Root.
type Schema struct {
	root    *Schema
	path    string
	entries []*entry
	last    *entry
}

// Root begins a new schema at the document root ("/").
func Root() *Schema {
	s := &Schema{path: "/"}
	s.root = s
	return s
}

// Tag declares a child tag of the current schema level. builders, if
// given, are invoked with a child Schema scoped to the new tag so that
// nested tags can be declared; only the first builder is used, but more
// than one may be passed for readability when the caller wants the
// nesting visually grouped.
func (s *Schema) Tag(name string, builders ...func(*Schema)) *Schema {
	if name == "" {
		panicConfig(tagerr.EmptyName, s.path, name)
	}

	childPath := joinPath(s.path, name)
	e := &entry{path: childPath, names: []string{name}, attrs: map[string]struct{}{}, parent: s.path}
	s.root.entries = append(s.root.entries, e)
	s.last = e

	if len(builders) > 0 {
		if builders[0] == nil {
			panicConfig(tagerr.NilBuilder, childPath, name)
		}
		child := &Schema{root: s.root, path: childPath}
		builders[0](child)
		s.last = e
	}

	return s
}

// Alias adds additional names that resolve to the most recently
// declared tag. Alias must follow a Tag call at the same nesting level;
// calling it before any Tag is a configuration error.
func (s *Schema) Alias(names ...string) *Schema {
	if s.last == nil {
		panicConfig(tagerr.AliasBeforeTag, s.path, "")
	}
	if len(names) == 0 {
		panicConfig(tagerr.EmptyName, s.path, "")
	}
	for _, n := range names {
		if n == "" {
			panicConfig(tagerr.EmptyName, s.path, "")
		}
		s.last.names = append(s.last.names, n)
	}
	return s
}

// Attr whitelists attribute names on the most recently declared tag.
// Attributes observed on an open tag that are not in this whitelist are
// filtered out of the emitted Open event.
func (s *Schema) Attr(names ...string) *Schema {
	if s.last == nil {
		panicConfig(tagerr.AttrBeforeTag, s.path, "")
	}
	if len(names) == 0 {
		panicConfig(tagerr.EmptyName, s.path, "")
	}
	for _, n := range names {
		if n == "" {
			panicConfig(tagerr.EmptyName, s.path, "")
		}
		s.last.attrs[n] = struct{}{}
	}
	return s
}

func joinPath(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}

func panicConfig(t tagerr.Type, path, name string) {
	panic(tagerr.New(t, tagerr.WithPath(path), tagerr.WithName(name)))
}

package schema

import (
	"sort"
	"strings"

	"github.com/hanju/tagstream/tagerr"
)

// StateNode is one node of the compiled transition tree. Nodes are
// stored in a single arena slice inside TransitionTable; Parent and
// Children reference nodes by index rather than pointer so the tree has
// no cycles for the garbage collector to walk and the whole arena can be
// copied or shared freely once built.
type StateNode struct {
	Path     string
	TagName  string
	Parent   int // -1 at root
	Children map[string]int
}

// IsRoot reports whether n is the document root ("/").
func (n *StateNode) IsRoot() bool { return n.Parent == -1 }

// TransitionTable is the immutable, compiled form of a Schema. It is
// safe for concurrent use by any number of Adapters.
type TransitionTable struct {
	nodes       []StateNode
	attrs       []map[string]struct{}
	allTagNames map[string]struct{}
}

// Compile builds an immutable TransitionTable from the schema's
// declared paths. Each declared path contributes one canonical
// StateNode; every alias of that path becomes an additional key in the
// parent's Children map, resolving to the same node index.
func (s *Schema) Compile() (*TransitionTable, error) {
	root := s.root
	if root == nil {
		return nil, tagerr.New(tagerr.NilSchema)
	}

	entries := append([]*entry(nil), root.entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		return depth(entries[i].path) < depth(entries[j].path)
	})

	t := &TransitionTable{allTagNames: map[string]struct{}{}}
	t.nodes = append(t.nodes, StateNode{Path: "/", Parent: -1, Children: map[string]int{}})
	t.attrs = append(t.attrs, nil)

	pathToIndex := map[string]int{"/": 0}

	for _, e := range entries {
		parentIdx, ok := pathToIndex[e.parent]
		if !ok {
			// The parent path was declared out of order relative to its
			// nesting; this cannot happen via the Tag/Alias builder API,
			// which always declares a parent before its children.
			continue
		}

		idx, exists := pathToIndex[e.path]
		if !exists {
			idx = len(t.nodes)
			tagName := e.names[0]
			t.nodes = append(t.nodes, StateNode{
				Path:     e.path,
				TagName:  tagName,
				Parent:   parentIdx,
				Children: map[string]int{},
			})
			t.attrs = append(t.attrs, e.attrs)
			pathToIndex[e.path] = idx
		}

		for _, name := range e.names {
			t.nodes[parentIdx].Children[name] = idx
			t.allTagNames[name] = struct{}{}
		}
	}

	return t, nil
}

func depth(path string) int {
	if path == "/" {
		return 0
	}
	return strings.Count(path, "/")
}

// Root returns the root node's index, always 0.
func (t *TransitionTable) Root() int { return 0 }

// Node returns the StateNode at idx.
func (t *TransitionTable) Node(idx int) *StateNode { return &t.nodes[idx] }

// TryOpen resolves the child of current named name, or -1 if no such
// transition is permitted.
func (t *TransitionTable) TryOpen(current int, name string) int {
	next, ok := t.nodes[current].Children[name]
	if !ok {
		return -1
	}
	return next
}

// TryClose resolves the parent of current if name is a valid alias for
// current under its parent, or -1 if current is root or name does not
// match. Because every alias of current's tag is inserted as a key in
// the parent's Children map pointing at current, this check accepts any
// alias symmetrically with TryOpen.
func (t *TransitionTable) TryClose(current int, name string) int {
	node := &t.nodes[current]
	if node.IsRoot() {
		return -1
	}
	parent := &t.nodes[node.Parent]
	if child, ok := parent.Children[name]; ok && child == current {
		return node.Parent
	}
	return -1
}

// AllowedAttributes returns the attribute whitelist declared for the
// node at idx, or nil if none was declared (root, or a tag with no
// Attr calls).
func (t *TransitionTable) AllowedAttributes(idx int) map[string]struct{} {
	return t.attrs[idx]
}

// Path returns the path string of the node at idx.
func (t *TransitionTable) Path(idx int) string { return t.nodes[idx].Path }

// AllTagNames returns the full set of canonical names and aliases
// declared anywhere in the schema.
func (t *TransitionTable) AllTagNames() []string {
	out := make([]string, 0, len(t.allTagNames))
	for n := range t.allTagNames {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

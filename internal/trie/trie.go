// Package trie implements an immutable multi-pattern Aho-Corasick
// automaton over byte patterns. It is built once from a schema's
// tag-derived pattern set and shared, read-only, by every matcher that
// walks it.
package trie

import (
	"github.com/hanju/tagstream/tagerr"
)

// Node is a single trie state. Fields are exported for use by the
// matcher package, which walks the trie directly; Node is otherwise
// opaque and immutable once New returns.
type Node struct {
	Children map[byte]*Node
	Fail     *Node
	// Out holds every pattern ending at this node, aggregated along the
	// failure-link chain so a single node lookup reveals every match
	// reachable by suffix.
	Out   []string
	Depth int
}

// Trie is an immutable Aho-Corasick automaton.
type Trie struct {
	root             *Node
	patterns         map[string]struct{}
	maxPatternLength int
}

// New builds a Trie from patterns. Patterns is deduplicated internally;
// it must be non-empty and must not contain an empty string.
func New(patterns []string) (*Trie, error) {
	if len(patterns) == 0 {
		return nil, tagerr.New(tagerr.EmptyPatternSet)
	}

	unique := make(map[string]struct{}, len(patterns))
	maxLen := 0
	for _, p := range patterns {
		if p == "" {
			return nil, tagerr.New(tagerr.EmptyPattern)
		}
		unique[p] = struct{}{}
		if len(p) > maxLen {
			maxLen = len(p)
		}
	}

	t := &Trie{
		root:             &Node{Children: make(map[byte]*Node)},
		patterns:         unique,
		maxPatternLength: maxLen,
	}
	t.build()
	t.buildFailureLinks()
	return t, nil
}

func (t *Trie) build() {
	for p := range t.patterns {
		node := t.root
		for i := 0; i < len(p); i++ {
			c := p[i]
			next, ok := node.Children[c]
			if !ok {
				next = &Node{Children: make(map[byte]*Node), Depth: node.Depth + 1}
				node.Children[c] = next
			}
			node = next
		}
		node.Out = append(node.Out, p)
	}
}

func (t *Trie) buildFailureLinks() {
	queue := make([]*Node, 0, len(t.root.Children))
	for _, child := range t.root.Children {
		child.Fail = t.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for c, child := range current.Children {
			queue = append(queue, child)

			failNode := current.Fail
			for failNode != nil {
				if _, ok := failNode.Children[c]; ok {
					break
				}
				failNode = failNode.Fail
			}

			if failNode != nil {
				child.Fail = failNode.Children[c]
			} else {
				child.Fail = t.root
			}
			child.Out = append(child.Out, child.Fail.Out...)
		}
	}
}

// Root returns the trie's root node. Walking from Root never mutates
// the trie.
func (t *Trie) Root() *Node { return t.root }

// MaxPatternLength returns the length of the longest registered pattern.
func (t *Trie) MaxPatternLength() int { return t.maxPatternLength }

// Patterns returns the deduplicated pattern set the trie was built from.
// The returned map must not be mutated.
func (t *Trie) Patterns() map[string]struct{} { return t.patterns }

// PatternCount returns the number of distinct patterns registered.
func (t *Trie) PatternCount() int { return len(t.patterns) }

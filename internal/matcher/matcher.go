// Package matcher drives the pattern trie over the token buffer,
// producing a stream of safe text runs and pattern hits with greedy
// longest-match disambiguation across chunk boundaries.
package matcher

import (
	"github.com/hanju/tagstream/internal/buffer"
	"github.com/hanju/tagstream/internal/trie"
)

// ResultKind discriminates a Result's payload.
type ResultKind int

const (
	// KindTextRun carries boundary-preserving fragments safely clear of
	// any live pattern prefix.
	KindTextRun ResultKind = iota
	// KindPatternHit carries the text preceding a matched pattern, and
	// the matched pattern literal itself.
	KindPatternHit
	// kindNoMatch is internal only: it signals "need more input" and is
	// never returned from Feed.
	kindNoMatch
)

// Result is a tagged union over KindTextRun/KindPatternHit.
type Result struct {
	Kind ResultKind

	// Set when Kind == KindTextRun.
	TextFragments []string

	// Set when Kind == KindPatternHit.
	TextBefore     []string
	PatternLiteral string
	// Overflow is true when this hit is a pending match forced to commit
	// early because the buffer exceeded bufferCap, rather than a match
	// that completed naturally.
	Overflow bool
}

type pending struct {
	pattern string
	start   int
}

// Matcher streams chunks through a fixed trie, maintaining a private
// token buffer and a greedy pending-match candidate between calls.
type Matcher struct {
	trie      *trie.Trie
	buf       buffer.Buffer
	bufferCap int
	pending   *pending
}

// New creates a Matcher over t. A bufferCap of 0 selects the default of
// twice the longest registered pattern's length.
func New(t *trie.Trie, bufferCap int) *Matcher {
	if bufferCap <= 0 {
		bufferCap = t.MaxPatternLength() * 2
	}
	return &Matcher{trie: t, bufferCap: bufferCap}
}

// Feed appends chunk to the internal buffer and drains every available
// result. Feed never returns a kindNoMatch entry; it stops once the
// buffer needs more input to make progress.
func (m *Matcher) Feed(chunk string) []Result {
	if chunk != "" {
		m.buf.Push(chunk)
	}

	var results []Result
	for !m.buf.IsEmpty() {
		r, ok := m.processBuffer()
		if !ok {
			break
		}
		results = append(results, r)
	}
	return results
}

// processBuffer walks the trie over the buffered text, checking for a
// forced commit of a pending greedy match (either because the walk hit a
// dead end or because the buffer has grown past bufferCap), then falls
// back to extracting a safe text-run window clear of any live prefix. ok
// is false exactly when neither a commit nor a safe window is available
// and more input is needed.
func (m *Matcher) processBuffer() (Result, bool) {
	if m.buf.IsEmpty() {
		return Result{}, false
	}

	text := m.buf.ContentAsString()
	state := m.trie.Root()
	longestMatchingPrefixDepth := 0

	for i := 0; i < len(text); i++ {
		c := text[i]

		for state != m.trie.Root() {
			if _, ok := state.Children[c]; ok {
				break
			}
			state = state.Fail
		}

		if next, ok := state.Children[c]; ok {
			state = next
		} else if m.pending != nil {
			return m.commitPending(false), true
		}

		if len(state.Out) > 0 {
			longest := longestOf(state.Out)
			start := i - len(longest) + 1

			if len(state.Children) > 0 {
				m.pending = &pending{pattern: longest, start: start}
			} else {
				m.pending = nil
				return m.emitHit(start, len(longest)), true
			}
		}

		if i == len(text)-1 {
			longestMatchingPrefixDepth = state.Depth
			for cur := state.Fail; cur != nil && cur != m.trie.Root(); cur = cur.Fail {
				if cur.Depth > longestMatchingPrefixDepth {
					longestMatchingPrefixDepth = cur.Depth
				}
			}
		}
	}

	if m.pending != nil && m.buf.TotalLength() > m.bufferCap {
		return m.commitPending(true), true
	}

	safe := m.buf.TotalLength() - longestMatchingPrefixDepth
	if m.pending != nil && m.pending.start < safe {
		safe = m.pending.start
	}
	if m.buf.TotalLength() > m.bufferCap {
		overflowFloor := m.buf.TotalLength() - m.trie.MaxPatternLength()
		if overflowFloor > safe {
			safe = overflowFloor
		}
	}

	if safe > 0 {
		frags, err := m.buf.ExtractUpTo(safe)
		if err != nil {
			// safe is always >= 0 here by construction.
			panic(err)
		}
		return Result{Kind: KindTextRun, TextFragments: frags}, true
	}

	return Result{}, false
}

func (m *Matcher) commitPending(overflow bool) Result {
	p := m.pending
	m.pending = nil
	r := m.emitHit(p.start, len(p.pattern))
	r.Overflow = overflow
	return r
}

func (m *Matcher) emitHit(start, patternLen int) Result {
	before, err := m.buf.ExtractUpTo(start)
	if err != nil {
		panic(err)
	}
	literal, err := m.buf.ExtractAsString(patternLen)
	if err != nil {
		panic(err)
	}
	return Result{Kind: KindPatternHit, TextBefore: before, PatternLiteral: literal}
}

func longestOf(patterns []string) string {
	longest := patterns[0]
	for _, p := range patterns[1:] {
		if len(p) > len(longest) {
			longest = p
		}
	}
	return longest
}

// FlushRemaining discards any live pending match and returns every
// remaining buffered fragment, boundary-preserved.
func (m *Matcher) FlushRemaining() []string {
	m.pending = nil
	return m.buf.FlushAll()
}

// BufferLength reports the current quiescent buffer occupancy, used by
// metrics and by the buffer-bound property test.
func (m *Matcher) BufferLength() int { return m.buf.TotalLength() }

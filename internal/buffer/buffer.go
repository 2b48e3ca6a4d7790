// Package buffer implements the token-boundary-preserving buffer the
// matcher drains as it walks the trie. Fragments are appended in
// arrival order and extracted front-first; extraction that lands mid
// -fragment splits a new string off the front without mutating the
// stored slice, and the first fragment's logical start is tracked via
// splitOffset so repeated small extractions stay O(1) amortised.
package buffer

import (
	"strings"
	"sync"

	"github.com/golang/glog"
	"github.com/hanju/tagstream/tagerr"
)

// compactAt is the start-index threshold at which the consumed prefix
// of frags is physically dropped. This is a policy knob, not a
// correctness requirement.
const compactAt = 50

var warnEmptyPushOnce sync.Once

// Buffer is an ordered sequence of non-empty fragments with O(1)
// amortised front-truncation. The zero value is a ready-to-use empty
// buffer.
type Buffer struct {
	frags       []string
	startIndex  int
	splitOffset int
	totalLength int
}

// Push appends text to the buffer. Empty text is silently ignored (some
// upstream LLM providers emit spurious empty deltas); the first such
// occurrence per process logs a verbose notice.
func (b *Buffer) Push(text string) {
	if text == "" {
		warnEmptyPushOnce.Do(func() {
			glog.V(2).Info("buffer: empty chunk ignored")
		})
		return
	}
	b.frags = append(b.frags, text)
	b.totalLength += len(text)
}

// ExtractUpTo returns the earliest n bytes as an ordered list of
// fragments, preserving original boundaries; a fragment straddling n is
// split and its suffix remains at the front of the buffer. n=0 returns
// nil; n greater than TotalLength behaves as n=TotalLength. Negative n
// is a caller error.
func (b *Buffer) ExtractUpTo(n int) ([]string, error) {
	if n < 0 {
		return nil, ErrNegativeLength
	}
	if n == 0 {
		return nil, nil
	}
	if n > b.totalLength {
		n = b.totalLength
	}

	var extracted []string
	remaining := n

	for remaining > 0 && b.startIndex < len(b.frags) {
		frag := b.frags[b.startIndex][b.splitOffset:]
		if len(frag) <= remaining {
			extracted = append(extracted, frag)
			remaining -= len(frag)
			b.totalLength -= len(frag)
			b.startIndex++
			b.splitOffset = 0
		} else {
			extracted = append(extracted, frag[:remaining])
			b.splitOffset += remaining
			b.totalLength -= remaining
			remaining = 0
		}
	}

	b.maybeCompact()
	return extracted, nil
}

// ExtractAsString behaves like ExtractUpTo but returns a single
// concatenated string with boundaries discarded.
func (b *Buffer) ExtractAsString(n int) (string, error) {
	frags, err := b.ExtractUpTo(n)
	if err != nil {
		return "", err
	}
	if len(frags) == 0 {
		return "", nil
	}
	var sb strings.Builder
	for _, f := range frags {
		sb.WriteString(f)
	}
	return sb.String(), nil
}

// FlushAll returns every remaining fragment (the first sliced by the
// current split offset) and clears the buffer.
func (b *Buffer) FlushAll() []string {
	if b.startIndex >= len(b.frags) {
		b.reset()
		return nil
	}
	out := make([]string, 0, len(b.frags)-b.startIndex)
	out = append(out, b.frags[b.startIndex][b.splitOffset:])
	out = append(out, b.frags[b.startIndex+1:]...)
	b.reset()
	return out
}

func (b *Buffer) reset() {
	b.frags = nil
	b.startIndex = 0
	b.splitOffset = 0
	b.totalLength = 0
}

// ContentAsString returns the buffer's current contents concatenated
// into a single string. Used by the matcher to walk the trie; not O(1)
// and not intended for use on every byte.
func (b *Buffer) ContentAsString() string {
	if b.startIndex >= len(b.frags) {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(b.frags[b.startIndex][b.splitOffset:])
	for _, f := range b.frags[b.startIndex+1:] {
		sb.WriteString(f)
	}
	return sb.String()
}

// TotalLength returns the logical remaining length of the buffer.
func (b *Buffer) TotalLength() int { return b.totalLength }

// IsEmpty reports whether the buffer currently holds no content.
func (b *Buffer) IsEmpty() bool { return b.totalLength == 0 }

// TokenCount returns the number of logical fragments remaining.
func (b *Buffer) TokenCount() int {
	if b.startIndex >= len(b.frags) {
		return 0
	}
	return len(b.frags) - b.startIndex
}

func (b *Buffer) maybeCompact() {
	if b.startIndex < compactAt {
		return
	}
	b.frags = append([]string(nil), b.frags[b.startIndex:]...)
	b.startIndex = 0
}

// ErrNegativeLength is returned by extraction entry points that accept
// caller-supplied lengths at an external API boundary (the matcher's
// own calls are always non-negative by construction and use
// ExtractUpTo/ExtractAsString directly).
var ErrNegativeLength = tagerr.New(tagerr.NegativeLength)

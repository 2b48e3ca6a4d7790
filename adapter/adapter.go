// Package adapter ties the matcher, the open-tag parser, and the
// compiled schema transition table together. It is the orchestrator:
// Feed drains a chunk into an ordered slice of event.Event values,
// advancing the current schema path as open/close tags are recognised.
package adapter

import (
	"strings"

	"github.com/golang/glog"
	"github.com/hanju/tagstream/event"
	"github.com/hanju/tagstream/internal/matcher"
	"github.com/hanju/tagstream/internal/tagparser"
	"github.com/hanju/tagstream/internal/trie"
	"github.com/hanju/tagstream/metrics"
	"github.com/hanju/tagstream/schema"
	"github.com/hanju/tagstream/tagerr"
)

// Adapter converts a stream of arbitrarily-segmented text chunks into
// path-tagged events against a compiled schema. An Adapter is not safe
// for concurrent use; the raw accumulator and transition state are
// mutated in place by Feed and Flush.
type Adapter struct {
	table   *schema.TransitionTable
	matcher *matcher.Matcher
	tags    tagparser.Parser
	current int
	raw     strings.Builder
	metrics *metrics.Recorder

	bufferCap int
}

// New compiles s and builds an Adapter from it. The pattern set fed to
// the matcher is derived once, from the schema's full tag-name universe
// (canonical names and aliases alike): "<" + name and "</" + name + ">"
// for every name.
func New(s *schema.Schema, opts ...Option) (*Adapter, error) {
	if s == nil {
		return nil, tagerr.New(tagerr.NilSchema)
	}

	table, err := s.Compile()
	if err != nil {
		return nil, err
	}

	patterns := generatePatterns(table.AllTagNames())
	tr, err := trie.New(patterns)
	if err != nil {
		return nil, err
	}

	a := &Adapter{table: table, current: table.Root()}
	for _, opt := range opts {
		opt(a)
	}
	a.matcher = matcher.New(tr, a.bufferCap)
	return a, nil
}

func generatePatterns(tagNames []string) []string {
	patterns := make([]string, 0, len(tagNames)*2)
	for _, name := range tagNames {
		patterns = append(patterns, "<"+name, "</"+name+">")
	}
	return patterns
}

// CurrentPath returns the path of the node the adapter currently
// occupies in the schema tree.
func (a *Adapter) CurrentPath() string { return a.table.Path(a.current) }

// Raw returns every character fed to the adapter so far, unmodified.
func (a *Adapter) Raw() string { return a.raw.String() }

// Feed appends chunk to the adapter's internal state and returns every
// event that can be emitted without further input.
func (a *Adapter) Feed(chunk string) []event.Event {
	if chunk == "" {
		return nil
	}
	a.raw.WriteString(chunk)
	defer func() { a.metrics.ObserveBufferOccupancy(a.matcher.BufferLength()) }()

	var events []event.Event

	if a.tags.IsParsing() {
		remaining, ok := a.feedTagParser(chunk, &events)
		if !ok {
			return events
		}
		chunk = remaining
		if chunk == "" {
			return events
		}
	}

	for _, r := range a.matcher.Feed(chunk) {
		a.processMatchResult(r, &events)
	}
	return events
}

// feedTagParser forwards chunk to the in-progress tag parser. ok is
// false if the parser consumed the whole chunk without completing, in
// which case the caller must stop (more input is needed).
func (a *Adapter) feedTagParser(chunk string, events *[]event.Event) (string, bool) {
	parsed := a.tags.Feed(chunk)
	if parsed == nil {
		return "", false
	}
	a.emitOpenTag(parsed, events)
	return a.tags.Remaining(), true
}

func (a *Adapter) processMatchResult(r matcher.Result, events *[]event.Event) {
	switch r.Kind {
	case matcher.KindTextRun:
		if a.tags.IsParsing() {
			combined := strings.Join(r.TextFragments, "")
			if combined == "" {
				return
			}
			remaining, ok := a.feedTagParser(combined, events)
			if !ok {
				return
			}
			if remaining != "" {
				*events = append(*events, event.Text{Path: a.CurrentPath(), Content: remaining})
			}
			return
		}
		for _, frag := range r.TextFragments {
			if frag != "" {
				*events = append(*events, event.Text{Path: a.CurrentPath(), Content: frag})
				a.metrics.ObserveEvent("text")
			}
		}

	case matcher.KindPatternHit:
		if a.tags.IsParsing() {
			combined := strings.Join(r.TextBefore, "")
			if combined != "" {
				remaining, ok := a.feedTagParser(combined, events)
				if !ok {
					return
				}
				if remaining != "" {
					*events = append(*events, event.Text{Path: a.CurrentPath(), Content: remaining})
				}
			}
		} else {
			for _, frag := range r.TextBefore {
				if frag != "" {
					*events = append(*events, event.Text{Path: a.CurrentPath(), Content: frag})
					a.metrics.ObserveEvent("text")
				}
			}
		}

		a.metrics.ObservePatternHit()
		if r.Overflow {
			a.metrics.ObserveOverflowCommit()
		}
		if strings.HasSuffix(r.PatternLiteral, ">") {
			a.emitCloseTag(r.PatternLiteral, events)
		} else {
			a.tags.Start(r.PatternLiteral)
		}
	}
}

func (a *Adapter) emitOpenTag(parsed *tagparser.ParsedTag, events *[]event.Event) {
	pathBefore := a.CurrentPath()
	next := a.table.TryOpen(a.current, parsed.TagName)
	if next == -1 {
		*events = append(*events, event.Text{Path: pathBefore, Content: parsed.RawTag})
		glog.V(2).Infof("tagstream: %q not permitted at %s, passed through as text", parsed.TagName, pathBefore)
		return
	}

	a.current = next
	attrs := filterAttributes(parsed.Attributes, a.table.AllowedAttributes(next))
	*events = append(*events, event.Open{Path: a.CurrentPath(), Attributes: attrs})
	a.metrics.ObserveEvent("open")
}

func (a *Adapter) emitCloseTag(pattern string, events *[]event.Event) {
	name := pattern[2 : len(pattern)-1]
	pathBefore := a.CurrentPath()
	prev := a.table.TryClose(a.current, name)
	if prev == -1 {
		*events = append(*events, event.Text{Path: pathBefore, Content: pattern})
		glog.V(2).Infof("tagstream: close tag %q does not match current state at %s, passed through as text", name, pathBefore)
		return
	}

	a.current = prev
	*events = append(*events, event.Close{Path: pathBefore})
	a.metrics.ObserveEvent("close")
}

func filterAttributes(attrs map[string]string, allowed map[string]struct{}) map[string]string {
	out := make(map[string]string)
	if len(allowed) == 0 {
		return out
	}
	for k, v := range attrs {
		if _, ok := allowed[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Flush finalises the stream: any in-progress open tag is force-
// completed (discarding half-parsed attributes), any pending match is
// dropped, and all text still buffered in the matcher, including an
// unfinished tag prefix, is emitted as text at the current path.
// Flush does not reset the adapter's state; it may be fed further
// input afterward, but concurrent use during a Flush call is not
// supported.
func (a *Adapter) Flush() []event.Event {
	var events []event.Event

	if a.tags.IsParsing() {
		if parsed := a.tags.ForceComplete(); parsed != nil {
			a.emitOpenTag(parsed, &events)
		}
	}

	for _, frag := range a.matcher.FlushRemaining() {
		if frag != "" {
			events = append(events, event.Text{Path: a.CurrentPath(), Content: frag})
			a.metrics.ObserveEvent("text")
		}
	}

	a.metrics.ObserveBufferOccupancy(a.matcher.BufferLength())
	return events
}

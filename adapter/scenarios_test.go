package adapter_test

import (
	"testing"

	"github.com/hanju/tagstream/adapter"
	"github.com/hanju/tagstream/event"
	"github.com/hanju/tagstream/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedAll drains every chunk through a and flattens the resulting events.
func feedAll(a *adapter.Adapter, chunks ...string) []event.Event {
	var all []event.Event
	for _, c := range chunks {
		all = append(all, a.Feed(c)...)
	}
	return all
}

func TestSplitOpenTagAcrossChunks(t *testing.T) {
	a, err := adapter.New(schema.Root().Tag("thinking"))
	require.NoError(t, err)

	got := feedAll(a, "<thi", "nking>", "Let me ", "think", "...", "</", "thi", "nking>")

	want := []event.Event{
		event.Open{Path: "/thinking", Attributes: map[string]string{}},
		event.Text{Path: "/thinking", Content: "Let me "},
		event.Text{Path: "/thinking", Content: "think"},
		event.Text{Path: "/thinking", Content: "..."},
		event.Close{Path: "/thinking"},
	}
	assert.Equal(t, want, got)
}

func TestAliasClose(t *testing.T) {
	a, err := adapter.New(schema.Root().Tag("cite").Alias("rag"))
	require.NoError(t, err)

	got := a.Feed("<rag>x</cite>")

	want := []event.Event{
		event.Open{Path: "/cite", Attributes: map[string]string{}},
		event.Text{Path: "/cite", Content: "x"},
		event.Close{Path: "/cite"},
	}
	assert.Equal(t, want, got)
}

func TestAttributeWhitelist(t *testing.T) {
	a, err := adapter.New(schema.Root().Tag("cite").Attr("id"))
	require.NoError(t, err)

	got := a.Feed(`<cite id="r1" source="wiki">c</cite>`)

	want := []event.Event{
		event.Open{Path: "/cite", Attributes: map[string]string{"id": "r1"}},
		event.Text{Path: "/cite", Content: "c"},
		event.Close{Path: "/cite"},
	}
	assert.Equal(t, want, got)
}

func TestDisallowedTransitionPassesThroughAsText(t *testing.T) {
	a, err := adapter.New(schema.Root().Tag("answer"))
	require.NoError(t, err)

	// Fed as one literal chunk, "<invalid>x</invalid>" never separates
	// into token-level fragments: none of the intermediate prefixes
	// ("<", "<i", ...) ever produce a pattern hit, so the whole run is
	// the text before the "<answer" hit and stays one buffer fragment,
	// giving one Text event rather than three.
	got := a.Feed("<invalid>x</invalid><answer>y</answer>")

	want := []event.Event{
		event.Text{Path: "/", Content: "<invalid>x</invalid>"},
		event.Open{Path: "/answer", Attributes: map[string]string{}},
		event.Text{Path: "/answer", Content: "y"},
		event.Close{Path: "/answer"},
	}
	assert.Equal(t, want, got)
}

func TestQuoteStraddlingChunks(t *testing.T) {
	a, err := adapter.New(schema.Root().Tag("cite").Attr("expr"))
	require.NoError(t, err)

	got := feedAll(a, `<cite expr="a>`, `b">c</cite>`)

	want := []event.Event{
		event.Open{Path: "/cite", Attributes: map[string]string{"expr": "a>b"}},
		event.Text{Path: "/cite", Content: "c"},
		event.Close{Path: "/cite"},
	}
	assert.Equal(t, want, got)
}

func TestTruncatedTagAtEOF(t *testing.T) {
	a, err := adapter.New(schema.Root().Tag("cite").Attr("id"))
	require.NoError(t, err)

	got := a.Feed(`Text <cite id="ref1"`)
	assert.Equal(t, []event.Event{event.Text{Path: "/", Content: "Text "}}, got)

	flushed := a.Flush()
	assert.Equal(t, []event.Event{event.Open{Path: "/cite", Attributes: map[string]string{"id": "ref1"}}}, flushed)
}

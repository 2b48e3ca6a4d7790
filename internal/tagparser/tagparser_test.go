package tagparser_test

import (
	"testing"

	"github.com/hanju/tagstream/internal/tagparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleTagNoAttrs(t *testing.T) {
	var p tagparser.Parser
	p.Start("<cite")
	got := p.Feed(">content")
	require.NotNil(t, got)
	assert.Equal(t, "cite", got.TagName)
	assert.Empty(t, got.Attributes)
	assert.Equal(t, "<cite>", got.RawTag)
	assert.Equal(t, "content", p.Remaining())
}

func TestQuotedAttribute(t *testing.T) {
	var p tagparser.Parser
	p.Start("<cite")
	got := p.Feed(` id="ref">content`)
	require.NotNil(t, got)
	assert.Equal(t, map[string]string{"id": "ref"}, got.Attributes)
	assert.Equal(t, `<cite id="ref">`, got.RawTag)
	assert.Equal(t, "content", p.Remaining())
}

func TestQuoteStraddlesChunks(t *testing.T) {
	var p tagparser.Parser
	p.Start("<cite")
	first := p.Feed(` expr="a>`)
	assert.Nil(t, first)
	second := p.Feed(`b">c`)
	require.NotNil(t, second)
	assert.Equal(t, map[string]string{"expr": "a>b"}, second.Attributes)
	assert.Equal(t, "c", p.Remaining())
}

func TestBareAttribute(t *testing.T) {
	var p tagparser.Parser
	p.Start("<cite")
	got := p.Feed(" disabled>x")
	require.NotNil(t, got)
	assert.Equal(t, map[string]string{"disabled": ""}, got.Attributes)
}

func TestUnquotedAttribute(t *testing.T) {
	var p tagparser.Parser
	p.Start("<cite")
	got := p.Feed(" id=ref123>x")
	require.NotNil(t, got)
	assert.Equal(t, map[string]string{"id": "ref123"}, got.Attributes)
}

func TestMultipleAttributes(t *testing.T) {
	var p tagparser.Parser
	p.Start("<cite")
	got := p.Feed(` id="r1" source='wiki' lang=en>body`)
	require.NotNil(t, got)
	assert.Equal(t, map[string]string{"id": "r1", "source": "wiki", "lang": "en"}, got.Attributes)
}

func TestRepeatedAttributeLastWriteWins(t *testing.T) {
	var p tagparser.Parser
	p.Start("<cite")
	got := p.Feed(` id="first" id="second">x`)
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Attributes["id"])
}

func TestSplitAcrossManyChunks(t *testing.T) {
	var p tagparser.Parser
	p.Start("<ci")
	assert.Nil(t, p.Feed("te"))
	assert.Nil(t, p.Feed(" id"))
	assert.Nil(t, p.Feed("=\"r"))
	got := p.Feed("1\">body")
	require.NotNil(t, got)
	assert.Equal(t, "cite", got.TagName)
	assert.Equal(t, map[string]string{"id": "r1"}, got.Attributes)
	assert.Equal(t, "<cite id=\"r1\">", got.RawTag)
}

func TestForceCompleteDropsHalfParsedAttribute(t *testing.T) {
	var p tagparser.Parser
	p.Start("<cite")
	assert.Nil(t, p.Feed(` id="ref1"`))
	assert.Nil(t, p.Feed(` unclosed="oops`))

	got := p.ForceComplete()
	require.NotNil(t, got)
	assert.Equal(t, map[string]string{"id": "ref1"}, got.Attributes)
	assert.NotContains(t, got.Attributes, "unclosed")
}

func TestForceCompleteNameOnlyWithPendingEquals(t *testing.T) {
	var p tagparser.Parser
	p.Start("<cite")
	assert.Nil(t, p.Feed(" id="))

	got := p.ForceComplete()
	require.NotNil(t, got)
	assert.Empty(t, got.Attributes)
}

func TestForceCompleteWhenNotParsing(t *testing.T) {
	var p tagparser.Parser
	assert.Nil(t, p.ForceComplete())
}

func TestIsParsingLifecycle(t *testing.T) {
	var p tagparser.Parser
	assert.False(t, p.IsParsing())
	p.Start("<a")
	assert.True(t, p.IsParsing())
	p.Feed(">x")
	assert.False(t, p.IsParsing())
}

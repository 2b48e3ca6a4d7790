package event_test

import (
	"testing"

	"github.com/hanju/tagstream/event"
	"github.com/stretchr/testify/assert"
)

func TestEventKinds(t *testing.T) {
	var e event.Event

	e = event.Text{Path: "/a", Content: "hi"}
	if _, ok := e.(event.Text); !ok {
		t.Fatalf("expected Text, got %T", e)
	}

	e = event.Open{Path: "/a", Attributes: map[string]string{"id": "1"}}
	open, ok := e.(event.Open)
	assert.True(t, ok)
	assert.Equal(t, "1", open.Attributes["id"])

	e = event.Close{Path: "/a"}
	closeEv, ok := e.(event.Close)
	assert.True(t, ok)
	assert.Equal(t, "/a", closeEv.Path)
}

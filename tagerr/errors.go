// Package tagerr defines the configuration and input-shape error taxonomy
// for the schema builder, the trie, the buffer, and the adapter. Content
// anomalies (unknown tags, disallowed transitions, whitelist misses) are
// never represented here: those are recoverable content anomalies and
// surface only as events, never as errors.
package tagerr

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

// Type enumerates the kind of configuration or input-shape failure.
type Type int

const (
	// NilSchema indicates a nil *schema.Schema was passed where one is required.
	NilSchema Type = iota
	// EmptyName indicates a tag, alias, or attribute name was empty or absent.
	EmptyName
	// AliasBeforeTag indicates Alias was called before any Tag.
	AliasBeforeTag
	// AttrBeforeTag indicates Attr was called before any Tag.
	AttrBeforeTag
	// NilBuilder indicates a nested-tag builder function was nil.
	NilBuilder
	// EmptyPatternSet indicates the trie was built from zero patterns.
	EmptyPatternSet
	// EmptyPattern indicates the pattern set contained an empty string.
	EmptyPattern
	// NegativeLength indicates a negative length was passed to an extraction call.
	NegativeLength
)

func (t Type) String() string {
	switch t {
	case NilSchema:
		return "nil schema"
	case EmptyName:
		return "empty name"
	case AliasBeforeTag:
		return "alias before tag"
	case AttrBeforeTag:
		return "attr before tag"
	case NilBuilder:
		return "nil builder"
	case EmptyPatternSet:
		return "empty pattern set"
	case EmptyPattern:
		return "empty pattern"
	case NegativeLength:
		return "negative length"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ConfigError is a fail-fast error raised during schema construction or
// component wiring. It is never raised in response to stream content.
type ConfigError struct {
	Type Type
	// Path is the schema path under construction when the error occurred, if any.
	Path string
	// Name is the tag, alias, or attribute name involved, if any.
	Name string
}

func (e *ConfigError) Error() string {
	s := e.Type.String()
	if e.Name != "" {
		s += fmt.Sprintf(" (name=%q)", e.Name)
	}
	if e.Path != "" {
		s += fmt.Sprintf(" (path=%q)", e.Path)
	}
	return s
}

// Option configures a ConfigError's context fields.
type Option func(*ConfigError)

// WithName sets the name involved in the error.
func WithName(name string) Option {
	return func(e *ConfigError) { e.Name = name }
}

// WithPath sets the schema path involved in the error.
func WithPath(path string) Option {
	return func(e *ConfigError) { e.Path = path }
}

// New builds a *ConfigError of the given type, wrapped with a stack trace.
func New(t Type, opts ...Option) error {
	e := &ConfigError{Type: t}
	for _, opt := range opts {
		opt(e)
	}
	return errors.WithStack(e)
}

// Is reports whether err is a ConfigError of type t, following wrapped
// errors via errors.As.
func Is(err error, t Type) bool {
	var ce *ConfigError
	if !stderrors.As(err, &ce) {
		return false
	}
	return ce.Type == t
}

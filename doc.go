/*
Package tagstream is a streaming parser that converts arbitrarily
-segmented text chunks, as produced by LLM token streams, into a
sequence of path-tagged events.

Callers declare a hierarchical schema of XML-like tags up front with
the schema package. As chunks arrive, an adapter.Adapter recognises
schema-defined open and close tags no matter how they are split across
chunks, tracks a current path through the schema tree, and emits an
ordered stream of event.Event values carrying either plain text (with
its originating chunk boundaries preserved) or tag-open/tag-close
markers with parsed and whitelist-filtered attributes. Tags or
transitions the schema does not permit are surfaced as plain text and
never mutate the current path.

Three components do the heavy lifting under adapter.Adapter:

  - internal/matcher drives a multi-pattern Aho-Corasick automaton
    (internal/trie) over an internal/buffer token buffer, greedily
    preferring the longest pattern reachable from any live prefix.
  - internal/tagparser is a resumable six-state machine that consumes
    an open tag's attributes, across any number of Feed calls, from the
    "<tagname" prefix the matcher surfaces through to the closing ">".
  - schema compiles a hierarchical tag declaration into an immutable
    TransitionTable: an arena of StateNodes supporting O(1) alias-aware
    open/close lookups and a per-path attribute whitelist.

See the schema, adapter, and event packages for the primary API
surface, and tagerr for the configuration-error taxonomy raised at
construction time.
*/
package tagstream

package adlib

// FieldResult holds the outcome of one field's fallback chain: the
// extracted value and the name of the strategy that produced it. A zero
// Strategy means the chain exhausted without a match, which is a valid,
// expected terminal state.
type FieldResult[T any] struct {
	Value    T
	Strategy string
}

// Found reports whether any strategy in the chain matched.
func (r FieldResult[T]) Found() bool {
	return r.Strategy != ""
}

// StrategyEvent describes one strategy attempt inside a fallback chain.
// Events exist so a caller can observe extraction provenance without
// the engine depending on any process-wide logging state.
type StrategyEvent struct {
	SourceURL string
	Field     string
	Strategy  string
	Matched   bool
}

// ObserverFunc receives strategy-level detail as extraction proceeds.
// Observers must be safe for concurrent use when extraction sessions
// run in parallel.
type ObserverFunc func(event StrategyEvent)

// Extractor is the extraction engine's entry point, invoked once per
// fetched page. Implementations never return nil and never panic: an
// unexpected fault inside any single field extractor degrades to a
// field-level absence, and a session-level fault yields a record with
// StatusError carrying whatever identity fields exist.
type Extractor interface {
	Extract(page *Page) *AdRecord
}

// TextExtractor extracts the main free-text content from an HTML
// fragment. Used as the lowest-priority fallback tier for ad copy when
// structural selectors fail.
type TextExtractor interface {
	ExtractText(html string) (string, error)
}

// Converter converts an HTML fragment to plain markdown text,
// preserving line breaks and links in the ad copy.
type Converter interface {
	Convert(html string) (string, error)
}

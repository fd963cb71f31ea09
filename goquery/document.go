// Package goquery implements the adlib extraction engine on top of a
// goquery-parsed document model. Each logical field is extracted by an
// ordered chain of independent strategies evaluated against the same
// immutable document until one succeeds.
package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is a normalized, queryable representation of one fetched
// page: the parsed markup tree plus the raw source text. It is never
// mutated after construction, so all field extractors read the same
// snapshot and results are deterministic for a given input.
type Document struct {
	tree *goquery.Document
	raw  string
}

// NewDocument parses raw page content into a Document. Parsing is
// permissive: malformed markup (unterminated tags, missing closing
// elements) yields a best-effort tree rather than an error, since
// malformed input is routine for third-party pages. An error is
// returned only when no tree could be constructed at all.
func NewDocument(html string) (*Document, error) {
	tree, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	return &Document{tree: tree, raw: html}, nil
}

// Find returns elements matching the CSS selector, in document order.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.tree.Find(selector)
}

// RawText returns the full serialized source text. Some page data is
// embedded as JSON-like key/value pairs inside script-adjacent text
// rather than as DOM attributes; raw-text search is the deliberate
// fallback for those. A future structured-payload parser can replace
// the pattern matching behind this accessor without touching the
// extractor call sites.
func (d *Document) RawText() string {
	return d.raw
}

// PayloadValue searches the raw source for a quoted "key":"value" pair
// and returns the unescaped value. When lastWins is true the last
// occurrence in source order is taken (later occurrences of creative
// payloads are empirically higher resolution); otherwise the first.
func (d *Document) PayloadValue(key string, lastWins bool) (string, bool) {
	re, err := regexp.Compile(`"` + regexp.QuoteMeta(key) + `"\s*:\s*"((?:\\.|[^"\\])*)"`)
	if err != nil {
		return "", false
	}

	matches := re.FindAllStringSubmatch(d.raw, -1)
	if len(matches) == 0 {
		return "", false
	}

	var escaped string
	if lastWins {
		escaped = matches[len(matches)-1][1]
	} else {
		escaped = matches[0][1]
	}

	value := unescapePayload(escaped)
	if value == "" {
		return "", false
	}
	return value, true
}

// unescapePayload strips JSON string escapes from an inline payload
// value. Escaped slashes are handled separately because strconv does
// not recognize them.
func unescapePayload(s string) string {
	s = strings.ReplaceAll(s, `\/`, `/`)
	unquoted, err := strconv.Unquote(`"` + s + `"`)
	if err != nil {
		return s
	}
	return unquoted
}

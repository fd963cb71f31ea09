package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/adlib"
)

// strategy is one tier of a fallback chain: a named pure function from
// the document to a candidate value. Returning false means this tier
// found nothing and the next tier should be tried.
type strategy[T any] struct {
	name string
	fn   func(doc *Document) (T, bool)
}

// runChain evaluates tiers in strict priority order and returns the
// first successful result. Tier ordering is data, not control flow, so
// individual tiers can be re-tuned and tested in isolation.
//
// A panic inside a tier is contained at the tier boundary and treated
// as a non-match: the first failure of any single strategy must never
// throw the extraction process off track.
func runChain[T any](doc *Document, sourceURL, field string, tiers []strategy[T], observe adlib.ObserverFunc) adlib.FieldResult[T] {
	for _, tier := range tiers {
		value, ok := attempt(doc, tier)
		if observe != nil {
			observe(adlib.StrategyEvent{
				SourceURL: sourceURL,
				Field:     field,
				Strategy:  tier.name,
				Matched:   ok,
			})
		}
		if ok {
			return adlib.FieldResult[T]{Value: value, Strategy: tier.name}
		}
	}
	return adlib.FieldResult[T]{}
}

// attempt runs a single tier with panic containment.
func attempt[T any](doc *Document, tier strategy[T]) (value T, ok bool) {
	defer func() {
		if recover() != nil {
			var zero T
			value, ok = zero, false
		}
	}()
	return tier.fn(doc)
}

// firstAttr returns the first non-empty attribute value in the
// selection, in document order, that satisfies pred. A nil pred accepts
// any non-empty value.
func firstAttr(sel *goquery.Selection, attr string, pred func(string) bool) (string, bool) {
	var found string
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr(attr)
		if !ok || v == "" {
			return true
		}
		if pred != nil && !pred(v) {
			return true
		}
		found = v
		return false
	})
	return found, found != ""
}

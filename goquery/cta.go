package goquery

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// ctaChain returns the destination-link tiers in priority order. URL
// parsing failures inside a tier are local faults: the candidate is
// skipped, never propagated.
func (e *Extractor) ctaChain(sourceURL string) []strategy[string] {
	cfg := e.cfg
	serviceDomain := coreDomain(sourceURL)
	return []strategy[string]{
		{"inline_link_payload", func(doc *Document) (string, bool) {
			return doc.PayloadValue(cfg.InlineLinkKey, cfg.LastPayloadWins)
		}},
		{"redirect_anchor", func(doc *Document) (string, bool) {
			var target string
			doc.Find(`a[href*="` + cfg.RedirectPath + `"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
				href, ok := s.Attr("href")
				if !ok {
					return true
				}
				u, err := url.Parse(href)
				if err != nil {
					return true
				}
				target = u.Query().Get(cfg.RedirectParam)
				return target == ""
			})
			return target, target != ""
		}},
		{"external_anchor", func(doc *Document) (string, bool) {
			var external string
			doc.Find(`a[href^="http"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
				href, ok := s.Attr("href")
				if !ok {
					return true
				}
				u, err := url.Parse(href)
				if err != nil || u.Hostname() == "" {
					return true
				}
				if isInternalHost(u.Hostname(), serviceDomain) {
					return true
				}
				external = href
				return false
			})
			return external, external != ""
		}},
	}
}

// ctaTextChain returns the call-to-action button label tiers.
func (e *Extractor) ctaTextChain() []strategy[string] {
	cfg := e.cfg
	return []strategy[string]{
		{"inline_cta_text_payload", func(doc *Document) (string, bool) {
			return doc.PayloadValue(cfg.InlineCTATextKey, cfg.LastPayloadWins)
		}},
		{"button_span_text", func(doc *Document) (string, bool) {
			var label string
			doc.Find(`div[role="button"] span, a[role="button"] span`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
				text := strings.TrimSpace(s.Text())
				if utf8.RuneCountInString(text) < 2 {
					return true
				}
				label = text
				return false
			})
			return label, label != ""
		}},
	}
}

// normalizeDomain derives the CTA domain from a CTA URL: the hostname
// with a leading "www." label stripped. A parse failure yields an
// absent domain, not a record failure.
func normalizeDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// isInternalHost reports whether host belongs to the source service:
// the service domain itself or any of its subdomains. Suffix matching
// alone would misclassify unrelated hosts that merely end in the same
// string, so the subdomain check requires a dot boundary.
func isInternalHost(host, serviceDomain string) bool {
	if serviceDomain == "" {
		return false
	}
	return host == serviceDomain || strings.HasSuffix(host, "."+serviceDomain)
}

// coreDomain returns the source service's domain with any leading
// "www." stripped, for classifying anchors as internal or external.
func coreDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

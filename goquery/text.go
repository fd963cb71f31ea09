package goquery

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// advertiserChain returns the advertiser identity tiers: page metadata
// first, then an attribute-based fallback on the profile link.
func (e *Extractor) advertiserChain() []strategy[string] {
	return []strategy[string]{
		{"og_title_meta", func(doc *Document) (string, bool) {
			name, ok := firstAttr(doc.Find(`meta[property="og:title"]`), "content", nil)
			return strings.TrimSpace(name), ok && strings.TrimSpace(name) != ""
		}},
		{"profile_link_label", func(doc *Document) (string, bool) {
			label, ok := firstAttr(doc.Find("a[aria-label]"), "aria-label", nil)
			return strings.TrimSpace(label), ok && strings.TrimSpace(label) != ""
		}},
	}
}

// libraryIDChain returns the library identifier tiers: the rendered
// label element first, then a raw-source pattern search.
func (e *Extractor) libraryIDChain() []strategy[string] {
	label := e.cfg.LibraryIDLabel
	digitsRE := regexp.MustCompile(e.cfg.LibraryIDPattern)
	rawRE := regexp.MustCompile(regexp.QuoteMeta(label) + `\D{0,10}(` + e.cfg.LibraryIDPattern + `)`)
	return []strategy[string]{
		{"library_label_element", func(doc *Document) (string, bool) {
			var id string
			doc.Find(`span:containsOwn('` + label + `'), div:containsOwn('` + label + `')`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
				id = digitsRE.FindString(s.Text())
				return id == ""
			})
			return id, id != ""
		}},
		{"library_raw_pattern", func(doc *Document) (string, bool) {
			m := rawRE.FindStringSubmatch(doc.RawText())
			if m == nil {
				return "", false
			}
			return m[1], true
		}},
	}
}

// sponsoredChain returns the sponsorship disclosure tiers. The flag
// defaults to false when indeterminate, so the chain only ever yields
// true.
func (e *Extractor) sponsoredChain() []strategy[bool] {
	label := e.cfg.SponsoredLabel
	payloadRE := regexp.MustCompile(`"` + regexp.QuoteMeta(e.cfg.SponsoredPayloadKey) + `"\s*:\s*true`)
	return []strategy[bool]{
		{"sponsored_label_element", func(doc *Document) (bool, bool) {
			found := doc.Find(`span:containsOwn('`+label+`')`).Length() > 0
			return found, found
		}},
		{"inline_sponsored_payload", func(doc *Document) (bool, bool) {
			found := payloadRE.MatchString(doc.RawText())
			return found, found
		}},
	}
}

// adTextChain returns the ad copy tiers: the semantically-tagged message
// container first, then generic main-text extraction over the whole
// page. Both tiers apply the minimum-length filter, since short matches
// are typically UI chrome rather than content.
func (e *Extractor) adTextChain() []strategy[string] {
	return []strategy[string]{
		{"message_container", func(doc *Document) (string, bool) {
			sel := doc.Find(`div[data-ad-preview="message"]`).First()
			if sel.Length() == 0 {
				return "", false
			}
			text := e.containerText(sel)
			return text, e.longEnough(text)
		}},
		{"main_text_extraction", func(doc *Document) (string, bool) {
			if e.text == nil {
				return "", false
			}
			extracted, err := e.text.ExtractText(doc.RawText())
			if err != nil {
				return "", false
			}
			extracted = strings.TrimSpace(extracted)
			return extracted, e.longEnough(extracted)
		}},
	}
}

// containerText renders the ad-copy container. When a converter is
// configured the container's inner HTML is converted to markdown to
// preserve line breaks and links; otherwise the plain text is used.
func (e *Extractor) containerText(sel *goquery.Selection) string {
	if e.conv != nil {
		if inner, err := sel.Html(); err == nil {
			if text, err := e.conv.Convert(inner); err == nil {
				return strings.TrimSpace(text)
			}
		}
	}
	return strings.TrimSpace(sel.Text())
}

func (e *Extractor) longEnough(text string) bool {
	return utf8.RuneCountInString(text) >= e.cfg.MinAdTextLen
}

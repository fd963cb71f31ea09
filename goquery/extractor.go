package goquery

import (
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/fwojciec/adlib"
)

// Ensure Extractor implements adlib.Extractor at compile time.
var _ adlib.Extractor = (*Extractor)(nil)

// Extractor is the extraction session entry point, invoked once per
// fetched page. It is stateless and safe for concurrent use: every
// field extractor is a pure function over an immutable Document, so
// arbitrarily many sessions may run in parallel.
type Extractor struct {
	cfg      Config
	text     adlib.TextExtractor
	conv     adlib.Converter
	observer adlib.ObserverFunc
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConfig overrides the default page heuristics.
func WithConfig(cfg Config) Option {
	return func(e *Extractor) { e.cfg = cfg }
}

// WithTextExtractor supplies the main-text extractor used as the lowest
// ad-copy tier. Without it the chain stops at the structural tier.
func WithTextExtractor(text adlib.TextExtractor) Option {
	return func(e *Extractor) { e.text = text }
}

// WithConverter supplies the HTML-to-markdown converter used to render
// the ad-copy container. Without it the container's plain text is used.
func WithConverter(conv adlib.Converter) Option {
	return func(e *Extractor) { e.conv = conv }
}

// WithObserver supplies a callback receiving strategy-level provenance
// events. The observer must be safe for concurrent use.
func WithObserver(observer adlib.ObserverFunc) Option {
	return func(e *Extractor) { e.observer = observer }
}

// NewExtractor creates an Extractor with the default configuration.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var numericRE = regexp.MustCompile(`^[0-9]+$`)

// Extract runs one extraction session and returns exactly one finalized
// record. It never returns nil and never panics: per-field faults are
// contained at the chain boundary, and a session-level fault finalizes
// the record with StatusError and whatever identity fields exist.
func (e *Extractor) Extract(page *adlib.Page) (rec *adlib.AdRecord) {
	rec = &adlib.AdRecord{
		SourceURL:    page.URL,
		CrawledAt:    page.FetchedAt,
		CreativeType: adlib.CreativeTypeUnknown,
		Status:       adlib.StatusSuccess,
	}
	if rec.CrawledAt.IsZero() {
		rec.CrawledAt = time.Now().UTC()
	}

	defer func() {
		if p := recover(); p != nil {
			rec.Status = adlib.StatusError
			rec.Error = fmt.Sprintf("extraction session: %v", p)
		}
	}()

	rec.AdID = e.adID(page.URL)

	doc, err := NewDocument(page.HTML)
	if err != nil {
		rec.Status = adlib.StatusError
		rec.Error = fmt.Sprintf("document construction: %v", err)
		return rec
	}

	// Field extractors are mutually independent: none depends on
	// another's outcome, and absence of any of them leaves the record
	// at StatusSuccess.
	if cr := runChain(doc, page.URL, "creative", e.creativeChain(), e.observer); cr.Found() {
		rec.CreativeURL = cr.Value.URL
		rec.CreativeType = cr.Value.Type
	}

	if cta := runChain(doc, page.URL, "cta_url", e.ctaChain(page.URL), e.observer); cta.Found() {
		rec.CTAURL = cta.Value
		rec.CTADomain = normalizeDomain(cta.Value)
	}

	if text := runChain(doc, page.URL, "cta_text", e.ctaTextChain(), e.observer); text.Found() {
		rec.CTAText = text.Value
	}

	if name := runChain(doc, page.URL, "advertiser_name", e.advertiserChain(), e.observer); name.Found() {
		rec.AdvertiserName = name.Value
	}

	if id := runChain(doc, page.URL, "library_id", e.libraryIDChain(), e.observer); id.Found() {
		rec.LibraryID = id.Value
	}

	if sponsored := runChain(doc, page.URL, "is_sponsored", e.sponsoredChain(), e.observer); sponsored.Found() {
		rec.IsSponsored = sponsored.Value
	}

	if copyText := runChain(doc, page.URL, "ad_text", e.adTextChain(), e.observer); copyText.Found() {
		rec.AdText = copyText.Value
	}

	return rec
}

// adID parses the numeric ad identifier from the source URL's query
// string. Absence of a match is recorded as an empty value, not
// treated as fatal.
func (e *Extractor) adID(sourceURL string) string {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return ""
	}
	id := u.Query().Get(e.cfg.AdIDParam)
	if !numericRE.MatchString(id) {
		return ""
	}
	return id
}

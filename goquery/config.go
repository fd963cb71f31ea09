package goquery

// Config names the empirically-tuned heuristics the extraction chains
// depend on. The archive pages are third-party and unversioned, so
// these values are observations of current page structure, not logical
// necessities; they are kept here so they can be re-tuned without
// restructuring any chain.
type Config struct {
	// AssetHostToken is a substring identifying the service's known
	// creative asset host. Creative candidates that do not reference
	// this host are rejected.
	AssetHostToken string

	// ThumbnailToken is the low-resolution dimension token. Image URLs
	// containing it are thumbnails and are never selected as the
	// creative.
	ThumbnailToken string

	// RedirectPath is the path of the service's outbound-redirect
	// endpoint; RedirectParam is the query parameter carrying the
	// redirect target.
	RedirectPath  string
	RedirectParam string

	// AdIDParam is the source URL query parameter carrying the numeric
	// ad identifier.
	AdIDParam string

	// Inline payload keys searched for in the raw page source. The
	// page embeds progressively-resized creative variants in ascending
	// order, so for these keys the last occurrence wins (see
	// LastPayloadWins).
	InlineImageKey   string
	InlineVideoKey   string
	InlineLinkKey    string
	InlineCTATextKey string

	// LastPayloadWins selects the last raw-source occurrence of an
	// inline payload key instead of the first. DOM-based tiers always
	// take the first match in document order (the primary creative
	// renders first); this switch only affects raw-source tiers.
	LastPayloadWins bool

	// LibraryIDLabel and SponsoredLabel are the rendered text labels
	// marking the library identifier and the sponsorship disclosure.
	LibraryIDLabel string
	SponsoredLabel string

	// SponsoredPayloadKey is the inline payload flag consulted when no
	// sponsorship label is rendered.
	SponsoredPayloadKey string

	// LibraryIDPattern is the regular expression matching the library
	// identifier's digits, both near the rendered label and in the raw
	// source.
	LibraryIDPattern string

	// MinAdTextLen is the minimum ad-copy length in runes. Shorter
	// matches are typically UI chrome rather than content.
	MinAdTextLen int
}

// DefaultConfig returns the currently-observed page heuristics.
func DefaultConfig() Config {
	return Config{
		AssetHostToken:      "fbcdn",
		ThumbnailToken:      "64x64",
		RedirectPath:        "/l.php",
		RedirectParam:       "u",
		AdIDParam:           "id",
		InlineImageKey:      "original_image_url",
		InlineVideoKey:      "playable_url_hd",
		InlineLinkKey:       "link_url",
		InlineCTATextKey:    "cta_text",
		LastPayloadWins:     true,
		LibraryIDLabel:      "Library ID",
		SponsoredLabel:      "Sponsored",
		SponsoredPayloadKey: "is_sponsored",
		LibraryIDPattern:    `[0-9]{6,}`,
		MinAdTextLen:        20,
	}
}

package goquery

import (
	"strings"

	"github.com/fwojciec/adlib"
)

// creative holds a creative chain candidate: the asset URL and the
// asset class implied by the tier that produced it.
type creative struct {
	URL  string
	Type adlib.CreativeType
}

// creativeChain returns the creative asset tiers in priority order.
// Embedded structured data beats rendered DOM, and full-resolution
// assets beat thumbnails; the video poster is last because it is a
// static preview substituting for true video content.
func (e *Extractor) creativeChain() []strategy[creative] {
	cfg := e.cfg
	return []strategy[creative]{
		{"video_src", func(doc *Document) (creative, bool) {
			src, ok := firstAttr(doc.Find("video[src]"), "src", e.assetHost)
			return creative{src, adlib.CreativeTypeVideo}, ok
		}},
		{"hover_link_thumbnail", func(doc *Document) (creative, bool) {
			src, ok := firstAttr(doc.Find(`a[data-lynx-mode="hover"] img[src]`), "src", e.fullSizeAsset)
			return creative{src, adlib.CreativeTypeImage}, ok
		}},
		{"ad_container_image", func(doc *Document) (creative, bool) {
			sel := doc.Find(`div[data-ad-preview="video"] img[src], div[data-ad-preview="image"] img[src]`)
			src, ok := firstAttr(sel, "src", e.fullSizeAsset)
			return creative{src, adlib.CreativeTypeImage}, ok
		}},
		{"inline_image_payload", func(doc *Document) (creative, bool) {
			u, ok := doc.PayloadValue(cfg.InlineImageKey, cfg.LastPayloadWins)
			return creative{u, adlib.CreativeTypeImage}, ok
		}},
		{"inline_hd_video_payload", func(doc *Document) (creative, bool) {
			u, ok := doc.PayloadValue(cfg.InlineVideoKey, cfg.LastPayloadWins)
			return creative{u, adlib.CreativeTypeVideo}, ok
		}},
		{"asset_host_image", func(doc *Document) (creative, bool) {
			src, ok := firstAttr(doc.Find("img[src]"), "src", e.fullSizeAsset)
			return creative{src, adlib.CreativeTypeImage}, ok
		}},
		{"video_poster", func(doc *Document) (creative, bool) {
			poster, ok := firstAttr(doc.Find("video[poster]"), "poster", nil)
			return creative{poster, adlib.CreativeTypeVideoThumbnail}, ok
		}},
	}
}

// assetHost reports whether the URL references the known asset host.
func (e *Extractor) assetHost(u string) bool {
	return strings.Contains(u, e.cfg.AssetHostToken)
}

// fullSizeAsset reports whether the URL references the known asset host
// and is not a known low-resolution thumbnail variant.
func (e *Extractor) fullSizeAsset(u string) bool {
	return e.assetHost(u) && !strings.Contains(u, e.cfg.ThumbnailToken)
}

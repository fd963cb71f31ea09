package goquery_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/adlib"
	"github.com/fwojciec/adlib/goquery"
	"github.com/fwojciec/adlib/mock"
	"github.com/stretchr/testify/assert"
)

func TestAdvertiserName(t *testing.T) {
	t.Parallel()

	t.Run("og:title meta", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta property="og:title" content="Acme Outdoor Gear"></head>
			<body><a aria-label="Something Else">x</a></body></html>`

		rec := extract(t, html)
		assert.Equal(t, "Acme Outdoor Gear", rec.AdvertiserName)
	})

	t.Run("aria-label fallback", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><a aria-label="Acme Outdoor Gear" href="/acme">Acme</a></body></html>`

		rec := extract(t, html)
		assert.Equal(t, "Acme Outdoor Gear", rec.AdvertiserName)
	})

	t.Run("absent", func(t *testing.T) {
		t.Parallel()

		rec := extract(t, `<html><body></body></html>`)
		assert.Empty(t, rec.AdvertiserName)
		assert.Equal(t, adlib.StatusSuccess, rec.Status)
	})
}

func TestLibraryID(t *testing.T) {
	t.Parallel()

	t.Run("label element", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><span>Library ID: 714596372584921</span></body></html>`

		rec := extract(t, html)
		assert.Equal(t, "714596372584921", rec.LibraryID)
	})

	t.Run("raw source pattern fallback", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><script>"label":"Library ID: 714596372584921"</script></body></html>`

		rec := extract(t, html)
		assert.Equal(t, "714596372584921", rec.LibraryID)
	})

	t.Run("absent", func(t *testing.T) {
		t.Parallel()

		rec := extract(t, `<html><body><span>Library card</span></body></html>`)
		assert.Empty(t, rec.LibraryID)
	})

	t.Run("digit pattern is configurable", func(t *testing.T) {
		t.Parallel()

		cfg := goquery.DefaultConfig()
		cfg.LibraryIDPattern = `[0-9]{4,}`

		rec := extract(t, `<html><body><span>Library ID: 7145</span></body></html>`,
			goquery.WithConfig(cfg))
		assert.Equal(t, "7145", rec.LibraryID)
	})
}

func TestIsSponsored(t *testing.T) {
	t.Parallel()

	t.Run("label element", func(t *testing.T) {
		t.Parallel()

		rec := extract(t, `<html><body><span>Sponsored</span></body></html>`)
		assert.True(t, rec.IsSponsored)
	})

	t.Run("inline payload", func(t *testing.T) {
		t.Parallel()

		rec := extract(t, `<html><body><script>{"is_sponsored":true}</script></body></html>`)
		assert.True(t, rec.IsSponsored)
	})

	t.Run("defaults to false when indeterminate", func(t *testing.T) {
		t.Parallel()

		rec := extract(t, `<html><body></body></html>`)
		assert.False(t, rec.IsSponsored)
		assert.Equal(t, adlib.StatusSuccess, rec.Status)
	})

	t.Run("payload key is configurable", func(t *testing.T) {
		t.Parallel()

		cfg := goquery.DefaultConfig()
		cfg.SponsoredPayloadKey = "paid_placement"

		rec := extract(t, `<html><body><script>{"paid_placement":true}</script></body></html>`,
			goquery.WithConfig(cfg))
		assert.True(t, rec.IsSponsored)
	})
}

func TestAdText_MinimumLengthFilter(t *testing.T) {
	t.Parallel()

	t.Run("short candidate rejected", func(t *testing.T) {
		t.Parallel()

		// 10 runes: below the 20-rune threshold.
		html := `<html><body><div data-ad-preview="message">Click here</div></body></html>`

		rec := extract(t, html)
		assert.Empty(t, rec.AdText)
		assert.Equal(t, adlib.StatusSuccess, rec.Status)
	})

	t.Run("long candidate accepted", func(t *testing.T) {
		t.Parallel()

		// 25 runes from the same container.
		html := `<html><body><div data-ad-preview="message">Huge savings on all boots</div></body></html>`

		rec := extract(t, html)
		assert.Equal(t, "Huge savings on all boots", rec.AdText)
	})
}

func TestAdText_MainTextFallback(t *testing.T) {
	t.Parallel()

	t.Run("used when structural tier misses", func(t *testing.T) {
		t.Parallel()

		text := &mock.TextExtractor{
			ExtractTextFn: func(html string) (string, error) {
				return "Fallback ad copy extracted from the page body", nil
			},
		}

		rec := extract(t, `<html><body><p>unstructured</p></body></html>`,
			goquery.WithTextExtractor(text))
		assert.Equal(t, "Fallback ad copy extracted from the page body", rec.AdText)
	})

	t.Run("extraction error is field absence", func(t *testing.T) {
		t.Parallel()

		text := &mock.TextExtractor{
			ExtractTextFn: func(html string) (string, error) {
				return "", errors.New("boom")
			},
		}

		rec := extract(t, `<html><body></body></html>`, goquery.WithTextExtractor(text))
		assert.Empty(t, rec.AdText)
		assert.Equal(t, adlib.StatusSuccess, rec.Status)
	})

	t.Run("short fallback text rejected", func(t *testing.T) {
		t.Parallel()

		text := &mock.TextExtractor{
			ExtractTextFn: func(html string) (string, error) {
				return "too short", nil
			},
		}

		rec := extract(t, `<html><body></body></html>`, goquery.WithTextExtractor(text))
		assert.Empty(t, rec.AdText)
	})
}

func TestAdText_ConverterRendersContainer(t *testing.T) {
	t.Parallel()

	conv := &mock.Converter{
		ConvertFn: func(html string) (string, error) {
			// Stand-in for markdown conversion.
			return strings.ReplaceAll(html, "<br/>", "\n"), nil
		},
	}

	html := `<html><body><div data-ad-preview="message">First line of the ad<br/>second line here</div></body></html>`

	rec := extract(t, html, goquery.WithConverter(conv))
	assert.Equal(t, "First line of the ad\nsecond line here", rec.AdText)
}

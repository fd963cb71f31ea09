// Package trafilatura provides a go-trafilatura based implementation of
// adlib.TextExtractor, used as the lowest-priority ad-copy tier when
// the structural selectors miss.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/adlib"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements adlib.TextExtractor at compile time.
var _ adlib.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main text content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText processes raw HTML and returns the main text content with
// boilerplate removed.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", adlib.Errorf(adlib.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result.ContentText), nil
}

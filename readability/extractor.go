// Package readability provides a go-readability based implementation of
// adlib.TextExtractor, selectable as an alternative to the trafilatura
// implementation.
package readability

import (
	"strings"

	"github.com/fwojciec/adlib"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements adlib.TextExtractor at compile time.
var _ adlib.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main text content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText processes raw HTML and returns the main text content.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", adlib.Errorf(adlib.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(article.TextContent), nil
}

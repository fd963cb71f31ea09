package mock

import "github.com/fwojciec/adlib"

var _ adlib.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of adlib.Extractor.
type Extractor struct {
	ExtractFn func(page *adlib.Page) *adlib.AdRecord
}

func (e *Extractor) Extract(page *adlib.Page) *adlib.AdRecord {
	return e.ExtractFn(page)
}

var _ adlib.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of adlib.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *TextExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}

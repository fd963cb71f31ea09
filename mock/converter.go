package mock

import "github.com/fwojciec/adlib"

var _ adlib.Converter = (*Converter)(nil)

// Converter is a mock implementation of adlib.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

package mock

import (
	"time"

	"github.com/fwojciec/newsparse"
)

var _ newsparse.Converter = (*Converter)(nil)

// Converter is a mock implementation of newsparse.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ newsparse.DateConverter = (*DateConverter)(nil)

// DateConverter is a mock implementation of newsparse.DateConverter.
type DateConverter struct {
	ToGregorianFn func(d newsparse.Date) (time.Time, error)
}

func (c *DateConverter) ToGregorian(d newsparse.Date) (time.Time, error) {
	return c.ToGregorianFn(d)
}

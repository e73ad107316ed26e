// Package horizon holds the monthly and annual period catalogs and resolves
// horizon tokens to ordinals and windows.
package horizon

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/rxdash/internal/domain"
)

// Catalog is an ordered list of horizon options of a single granularity.
type Catalog struct {
	granularity domain.Granularity
	options     []domain.HorizonOption
	index       map[string]int
}

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Monthly is the 20-month catalog Jan-25 .. Aug-26.
var Monthly = newMonthlyCatalog(2025, 1, 20)

// Annual is the catalog 2025 .. 2030.
var Annual = newAnnualCatalog(2025, 2030)

func newMonthlyCatalog(startYear, startMonth, count int) *Catalog {
	opts := make([]domain.HorizonOption, 0, count)
	year, month := startYear, startMonth
	for i := 0; i < count; i++ {
		name := monthNames[month-1]
		suffix := fmt.Sprintf("%02d", year%100)
		opts = append(opts, domain.HorizonOption{
			Token:   strings.ToLower(name) + "-" + suffix,
			Label:   name + "-" + suffix,
			Ordinal: i,
			Year:    year,
		})
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return newCatalog(domain.GranularityMonthly, opts)
}

func newAnnualCatalog(first, last int) *Catalog {
	opts := make([]domain.HorizonOption, 0, last-first+1)
	for y := first; y <= last; y++ {
		token := fmt.Sprintf("%d", y)
		opts = append(opts, domain.HorizonOption{Token: token, Label: token, Ordinal: y - first, Year: y})
	}
	return newCatalog(domain.GranularityAnnually, opts)
}

func newCatalog(g domain.Granularity, opts []domain.HorizonOption) *Catalog {
	idx := make(map[string]int, len(opts))
	for i, o := range opts {
		idx[o.Token] = i
	}
	return &Catalog{granularity: g, options: opts, index: idx}
}

// For returns the catalog for a granularity. Anything but annually is monthly.
func For(g domain.Granularity) *Catalog {
	if g == domain.GranularityAnnually {
		return Annual
	}
	return Monthly
}

// Granularity returns the granularity the catalog serves.
func (c *Catalog) Granularity() domain.Granularity {
	return c.granularity
}

// Options returns a copy of the catalog options in order.
func (c *Catalog) Options() []domain.HorizonOption {
	return append([]domain.HorizonOption(nil), c.options...)
}

// Len returns the number of options.
func (c *Catalog) Len() int {
	return len(c.options)
}

// Contains reports whether token belongs to the catalog.
func (c *Catalog) Contains(token string) bool {
	_, ok := c.index[token]
	return ok
}

// Lookup returns the option for token.
func (c *Catalog) Lookup(token string) (domain.HorizonOption, bool) {
	i, ok := c.index[token]
	if !ok {
		return domain.HorizonOption{}, false
	}
	return c.options[i], true
}

// Label returns the display label for token, or the token itself if unknown.
func (c *Catalog) Label(token string) string {
	if o, ok := c.Lookup(token); ok {
		return o.Label
	}
	return token
}

// ResolveIndex returns the ordinal of token within the catalog.
func ResolveIndex(c *Catalog, token string) (int, bool) {
	i, ok := c.index[token]
	return i, ok
}

// Window returns the closed range [start, end] of the catalog. Unknown tokens
// or start after end give an empty window.
func Window(c *Catalog, start, end string) []domain.HorizonOption {
	si, ok1 := ResolveIndex(c, start)
	ei, ok2 := ResolveIndex(c, end)
	if !ok1 || !ok2 || si > ei {
		return nil
	}
	return append([]domain.HorizonOption(nil), c.options[si:ei+1]...)
}

// WindowLen returns the number of periods in [start, end], 0 when empty.
func WindowLen(c *Catalog, start, end string) int {
	return len(Window(c, start, end))
}

// DefaultWindow returns the default start and end tokens for a granularity
// and view variant.
func DefaultWindow(g domain.Granularity, v domain.Variant) (string, string) {
	if g == domain.GranularityAnnually {
		return "2025", "2026"
	}
	if v == domain.VariantWaterfall {
		return "jan-25", "dec-25"
	}
	return "jan-25", "aug-26"
}

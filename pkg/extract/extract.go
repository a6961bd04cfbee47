package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Field names produced by the default selector table.
const (
	FieldTitle          = "title"
	FieldReviews        = "reviews"
	FieldEaseUse        = "seo_ease_use_average"
	FieldQualitySupport = "seo_quality_support_average"
	FieldEaseSetup      = "seo_ease_setup_average"
)

// FieldSelector binds a record field to the CSS query that locates it on the
// page. Index picks the n-th match when several elements share a query.
type FieldSelector struct {
	Name  string `yaml:"name"`
	Query string `yaml:"query"`
	Index int    `yaml:"index,omitempty"`
}

// Record is the flat field-to-text mapping produced for a single page. A field
// whose selector matched nothing is absent from the map.
type Record map[string]string

// Get returns the value for a field and whether the field was extracted.
func (r Record) Get(name string) (string, bool) {
	v, ok := r[name]
	return v, ok
}

// Has reports whether a field was extracted.
func (r Record) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// DefaultSelectors returns the selector table for a G2 product page. The
// quality-support and ease-setup scores share one query, distinguished by
// match index.
func DefaultSelectors() []FieldSelector {
	return []FieldSelector{
		{Name: FieldTitle, Query: `a.c-midnight-100`},
		{Name: FieldReviews, Query: `a.link.js-log-click`},
		{Name: FieldEaseUse, Query: `div.center-center.fw-semibold.text-medium[style*="#ff492c"]`},
		{Name: FieldQualitySupport, Query: `div.center-center.fw-semibold.text-medium[style*="#5a39a2"]`, Index: 0},
		{Name: FieldEaseSetup, Query: `div.center-center.fw-semibold.text-medium[style*="#5a39a2"]`, Index: 1},
	}
}

// Extract runs the selector table over a rendered HTML snapshot and returns
// the resulting record. A selector that matches no element leaves its field
// absent rather than failing the page.
func Extract(html string, selectors []FieldSelector) (Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing page HTML: %w", err)
	}

	record := make(Record, len(selectors))
	for _, fs := range selectors {
		sel := doc.Find(fs.Query)
		if fs.Index < 0 || fs.Index >= sel.Length() {
			continue
		}
		record[fs.Name] = strings.TrimSpace(sel.Eq(fs.Index).Text())
	}

	return record, nil
}

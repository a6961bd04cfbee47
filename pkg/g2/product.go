package g2

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/asieldev/G2Crowd-Scraper/pkg/extract"
)

// Product holds the fields scraped from a single G2 product page. Fields whose
// selector matched nothing keep their zero value.
type Product struct {
	URL                      string  `json:"url"`
	Title                    string  `json:"title"`
	Reviews                  int     `json:"reviews"`
	SEOEaseUseAverage        float64 `json:"seo_ease_use_average"`
	SEOQualitySupportAverage float64 `json:"seo_quality_support_average"`
	SEOEaseSetupAverage      float64 `json:"seo_ease_setup_average"`
}

// ProductList collects the products scraped during one run.
type ProductList struct {
	Products []Product `json:"products"`
}

// Add appends a product to the list.
func (l *ProductList) Add(p Product) {
	l.Products = append(l.Products, p)
}

// Len returns the number of collected products.
func (l *ProductList) Len() int {
	return len(l.Products)
}

var reviewCountRe = regexp.MustCompile(`\d[\d,]*`)

// ParseReviewCount pulls the first integer out of review link text such as
// "(1,024 reviews)". Returns false when the text carries no number.
func ParseReviewCount(text string) (int, bool) {
	match := reviewCountRe.FindString(text)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(match, ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseRating parses a decimal score such as "4.5". Returns false when the
// text is not a number.
func ParseRating(text string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FromRecord builds the typed product out of an extracted record. Absent or
// unparseable fields degrade to the zero value instead of failing the page.
func FromRecord(pageURL string, record extract.Record) Product {
	p := Product{URL: pageURL}

	if title, ok := record.Get(extract.FieldTitle); ok {
		p.Title = title
	}
	if text, ok := record.Get(extract.FieldReviews); ok {
		if n, ok := ParseReviewCount(text); ok {
			p.Reviews = n
		}
	}
	if text, ok := record.Get(extract.FieldEaseUse); ok {
		if f, ok := ParseRating(text); ok {
			p.SEOEaseUseAverage = f
		}
	}
	if text, ok := record.Get(extract.FieldQualitySupport); ok {
		if f, ok := ParseRating(text); ok {
			p.SEOQualitySupportAverage = f
		}
	}
	if text, ok := record.Get(extract.FieldEaseSetup); ok {
		if f, ok := ParseRating(text); ok {
			p.SEOEaseSetupAverage = f
		}
	}

	return p
}

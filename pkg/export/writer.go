package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/asieldev/G2Crowd-Scraper/pkg/g2"
)

var csvHeader = []string{
	"url",
	"title",
	"reviews",
	"seo_ease_use_average",
	"seo_quality_support_average",
	"seo_ease_setup_average",
}

// Writer persists a scraped product list as <base>.csv and <base>.json.
type Writer struct {
	base string
}

// New creates a Writer for the given base path, creating the parent directory
// if needed.
func New(base string) (*Writer, error) {
	dir := filepath.Dir(base)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{base: base}, nil
}

// CSVPath returns the path of the CSV output file.
func (w *Writer) CSVPath() string { return w.base + ".csv" }

// JSONPath returns the path of the JSON output file.
func (w *Writer) JSONPath() string { return w.base + ".json" }

// WriteCSV writes the product list as a CSV file with a header row.
func (w *Writer) WriteCSV(list *g2.ProductList) error {
	file, err := os.Create(w.CSVPath())
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, p := range list.Products {
		row := []string{
			p.URL,
			p.Title,
			strconv.Itoa(p.Reviews),
			formatRating(p.SEOEaseUseAverage),
			formatRating(p.SEOQualitySupportAverage),
			formatRating(p.SEOEaseSetupAverage),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", p.URL, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV file: %w", err)
	}
	return nil
}

// WriteJSON writes the product list as an indented JSON array of objects.
func (w *Writer) WriteJSON(list *g2.ProductList) error {
	file, err := os.Create(w.JSONPath())
	if err != nil {
		return fmt.Errorf("creating JSON file: %w", err)
	}
	defer file.Close()

	products := list.Products
	if products == nil {
		products = []g2.Product{}
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(products); err != nil {
		return fmt.Errorf("encoding products to JSON: %w", err)
	}
	return nil
}

// WriteAll writes both output formats.
func (w *Writer) WriteAll(list *g2.ProductList) error {
	if err := w.WriteCSV(list); err != nil {
		return err
	}
	return w.WriteJSON(list)
}

func formatRating(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

package scrape

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/log"
	"github.com/chromedp/chromedp"

	"github.com/asieldev/G2Crowd-Scraper/pkg/extract"
	"github.com/asieldev/G2Crowd-Scraper/pkg/g2"
)

// Options configures the browser session and the per-page behaviour.
type Options struct {
	Headless  bool
	UserAgent string
	ExecPath  string
	Timeout   time.Duration
	WaitTime  time.Duration
	Selectors []extract.FieldSelector
}

// Scraper drives one headless browser session across a list of product pages.
type Scraper struct {
	opts          Options
	browserCtx    context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc
}

// New sets up the browser allocator and context. The browser process itself is
// launched lazily; call Start to surface environment failures up front.
func New(opts Options) (*Scraper, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if len(opts.Selectors) == 0 {
		opts.Selectors = extract.DefaultSelectors()
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
	)
	if !opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	return &Scraper{
		opts:          opts,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		allocCancel:   allocCancel,
	}, nil
}

// Start launches the browser process. chromedp allocates it on the first Run,
// so an empty task list here surfaces a missing or broken Chromium binary
// before any navigation happens.
func (s *Scraper) Start() error {
	if err := chromedp.Run(s.browserCtx); err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}
	return nil
}

// Close tears down the browser session. Safe to call after a failed Start.
func (s *Scraper) Close() {
	s.browserCancel()
	s.allocCancel()
}

// ScrapeProduct navigates to a product page in its own tab, waits for the
// document to become ready, and extracts the product fields from the rendered
// HTML. The tab is closed on all return paths.
func (s *Scraper) ScrapeProduct(targetURL string) (g2.Product, error) {
	tabCtx, cancel := chromedp.NewContext(s.browserCtx)
	defer cancel()

	timeoutCtx, timeoutCancel := context.WithTimeout(tabCtx, s.opts.Timeout)
	defer timeoutCancel()

	tasks := []chromedp.Action{
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body"),
	}
	if s.opts.WaitTime > 0 {
		tasks = append(tasks, chromedp.Sleep(s.opts.WaitTime))
	}

	var pageHTML string
	tasks = append(tasks, chromedp.OuterHTML("html", &pageHTML))

	if err := chromedp.Run(timeoutCtx, tasks...); err != nil {
		return g2.Product{}, fmt.Errorf("navigating to %s: %w", targetURL, err)
	}

	return s.ExtractHTML(targetURL, pageHTML)
}

// ExtractHTML builds a product from an already rendered page snapshot.
func (s *Scraper) ExtractHTML(pageURL, html string) (g2.Product, error) {
	record, err := extract.Extract(html, s.opts.Selectors)
	if err != nil {
		return g2.Product{}, err
	}

	for _, fs := range s.opts.Selectors {
		if !record.Has(fs.Name) {
			log.Debug("selector matched nothing", "url", pageURL, "field", fs.Name, "query", fs.Query)
		}
	}

	return g2.FromRecord(pageURL, record), nil
}

// Run visits each URL in order and collects one product per page that scraped
// successfully. A page that fails to load is logged and skipped; the run only
// fails when no page at all produced a product.
func (s *Scraper) Run(urls []string) (*g2.ProductList, error) {
	list := &g2.ProductList{}

	sp := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	for _, u := range urls {
		sp.Suffix = " " + u
		sp.Start()
		product, err := s.ScrapeProduct(u)
		sp.Stop()

		if err != nil {
			log.Error("scrape failed", "url", u, "error", err)
			continue
		}

		log.Info("scraped product", "url", u, "title", product.Title, "reviews", product.Reviews)
		list.Add(product)
	}

	if len(urls) > 0 && list.Len() == 0 {
		return list, errors.New("no pages scraped successfully")
	}

	return list, nil
}

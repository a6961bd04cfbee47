package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/asieldev/G2Crowd-Scraper/pkg/config"
	"github.com/asieldev/G2Crowd-Scraper/pkg/export"
	"github.com/asieldev/G2Crowd-Scraper/pkg/scrape"
)

// CLIFlags holds the command line flags. Anything left unset falls back to the
// config file and then to the built-in defaults.
type CLIFlags struct {
	ConfigFile string        `help:"Path to YAML configuration file" short:"f" optional:""`
	URL        []string      `help:"Product page URL to scrape (repeatable, overrides config)" short:"u"`
	Output     string        `help:"Base path for output files, written as <base>.csv and <base>.json" short:"o"`
	Timeout    time.Duration `help:"Per-page navigation timeout"`
	Wait       time.Duration `help:"Extra wait after the page reports ready"`
	NoHeadless bool          `help:"Run the browser with a visible window"`
	Verbose    bool          `help:"Enable debug logging" short:"v"`
}

func run(flags CLIFlags) error {
	cfg := config.Default()
	if flags.ConfigFile != "" {
		var err error
		cfg, err = config.Load(flags.ConfigFile)
		if err != nil {
			return err
		}
	}

	// Flags override the config file
	if len(flags.URL) > 0 {
		cfg.URLs = flags.URL
	}
	if flags.Output != "" {
		cfg.OutputBase = flags.Output
	}
	if flags.Timeout > 0 {
		cfg.Timeout = flags.Timeout
	}
	if flags.Wait > 0 {
		cfg.WaitTime = flags.Wait
	}
	if flags.NoHeadless {
		cfg.Headless = false
	}
	if flags.Verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	scraper, err := scrape.New(scrape.Options{
		Headless:  cfg.Headless,
		UserAgent: cfg.UserAgent,
		ExecPath:  cfg.ExecPath,
		Timeout:   cfg.Timeout,
		WaitTime:  cfg.WaitTime,
		Selectors: cfg.Selectors,
	})
	if err != nil {
		return err
	}
	defer scraper.Close()

	if err := scraper.Start(); err != nil {
		return err
	}

	log.Debug("browser started", "headless", cfg.Headless, "urls", len(cfg.URLs))

	list, err := scraper.Run(cfg.URLs)
	if err != nil {
		return err
	}

	writer, err := export.New(cfg.OutputBase)
	if err != nil {
		return err
	}
	if err := writer.WriteAll(list); err != nil {
		return err
	}

	log.Info("scrape complete",
		"products", list.Len(),
		"csv", writer.CSVPath(),
		"json", writer.JSONPath())

	return nil
}

func main() {
	var flags CLIFlags
	kong.Parse(&flags,
		kong.Name("g2scrape"),
		kong.Description("Scrape product fields from G2 product pages into CSV and JSON."))

	if err := run(flags); err != nil {
		log.Error("scrape aborted", "error", err)
		os.Exit(1)
	}
}

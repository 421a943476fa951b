// Scenario suite runner.
//
// Runs the scenario catalogue against the demo site outside `go test`,
// one fresh browser per scenario, and prints a summary that separates
// assertion failures from environment or driver faults.
//
// Usage:
//
//	go run ./cmd/suite
//	go run ./cmd/suite -run 'Hovers|IFrame' -headless=false
//	go run ./cmd/suite -config suite.yaml -v
//
// Exit status: 0 all passed, 1 an assertion failed, 2 a fault occurred.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thesyncim/theinternet/pkg/browser"
	"github.com/thesyncim/theinternet/pkg/scenario"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (optional)")
	baseURL := flag.String("base-url", "", "Override the site base URL")
	headless := flag.Bool("headless", true, "Run the browser headless")
	pattern := flag.String("run", "", "Only run scenarios matching this regexp")
	timeout := flag.Duration("timeout", 0, "Per-operation driver timeout (e.g., 30s)")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "headless" {
			cfg.Headless = *headless
		}
	})

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String("component", "suite"))

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	scenarios, err := scenario.Select(*pattern)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if len(scenarios) == 0 {
		log.Fatalf("No scenario matches %q", *pattern)
	}

	fmt.Printf("Scenario Suite\n")
	fmt.Printf("==============\n")
	fmt.Printf("Base URL:  %s\n", cfg.BaseURL)
	fmt.Printf("Headless:  %v\n", cfg.Headless)
	fmt.Printf("Scenarios: %d\n", len(scenarios))
	fmt.Printf("\n")

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Printf("\nReceived %v, finishing current scenario...\n", sig)
		cancel()
	}()

	start := time.Now()
	runner := scenario.NewRunner(cfg)
	results := runner.RunAll(ctx, scenarios)

	sum := printSummary(results, time.Since(start))
	switch {
	case sum.Faulted > 0:
		os.Exit(2)
	case sum.Failed > 0:
		os.Exit(1)
	}
}

// loadConfig layers the optional YAML file and the environment over the defaults.
func loadConfig(path string) (browser.Config, error) {
	cfg := browser.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = browser.LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.ApplyEnv()
}

func printSummary(results []scenario.Result, took time.Duration) scenario.Summary {
	for _, res := range results {
		fmt.Printf("%-6s %-24s %8v", res.Outcome, res.Name, res.Duration.Round(time.Millisecond))
		if res.Err != nil {
			fmt.Printf("  %v", res.Err)
		}
		fmt.Printf("\n")
	}

	sum := scenario.Summarize(results)
	fmt.Printf("\n")
	fmt.Printf("Suite Complete\n")
	fmt.Printf("==============\n")
	fmt.Printf("Duration: %v\n", took.Round(time.Second))
	fmt.Printf("Passed:   %d\n", sum.Passed)
	fmt.Printf("Failed:   %d\n", sum.Failed)
	fmt.Printf("Faulted:  %d\n", sum.Faulted)
	fmt.Printf("Status:   %s\n", checkMark(sum.OK()))
	return sum
}

func checkMark(pass bool) string {
	if pass {
		return "PASS"
	}
	return "FAIL"
}

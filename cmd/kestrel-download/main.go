// Command kestrel-download bulk-populates or refreshes the local market data
// store. Symbols come from -symbols, -file, or (for refresh) the store itself.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kestrelhq/kestrel/internal/app"
	"github.com/kestrelhq/kestrel/internal/models"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to config file (default: KESTREL_CONFIG or config/kestrel.toml)")
		symbolsFlag = flag.String("symbols", "", "comma-separated symbols to download (e.g., AAPL,MSFT)")
		symbolsFile = flag.String("file", "", "path to a file with one symbol per line")
		refresh     = flag.Bool("refresh", false, "refresh fast-moving data instead of a full download")
	)
	flag.Parse()

	symbols, err := resolveSymbols(*symbolsFlag, *symbolsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read symbols: %v\n", err)
		os.Exit(1)
	}
	if len(symbols) == 0 && !*refresh {
		fmt.Fprintln(os.Stderr, "no symbols given: use -symbols or -file (refresh mode falls back to the stored universe)")
		os.Exit(1)
	}

	a, err := app.NewApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := run(ctx, a, symbols, *refresh)
	if report != nil {
		fmt.Printf("run %s: %d/%d succeeded in %s\n",
			report.RunID, report.Succeeded, report.Total, report.Elapsed.Round(1e6))
		if len(report.FailedSymbols) > 0 {
			fmt.Printf("failed: %s\n", strings.Join(report.FailedSymbols, ", "))
		}
	}
	if err != nil {
		a.Logger.Error().Err(err).Msg("run aborted")
		os.Exit(1)
	}
	if report != nil && report.Failed > 0 {
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, symbols []string, refresh bool) (*models.DownloadReport, error) {
	if refresh {
		return a.CollectorService.RefreshAll(ctx, symbols)
	}
	return a.CollectorService.DownloadAll(ctx, symbols)
}

// resolveSymbols merges the flag list with the file list, uppercased and
// deduplicated in input order
func resolveSymbols(flagList, filePath string) ([]string, error) {
	var symbols []string
	seen := make(map[string]bool)

	add := func(s string) {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || strings.HasPrefix(s, "#") || seen[s] {
			return
		}
		seen[s] = true
		symbols = append(symbols, s)
	}

	for _, s := range strings.Split(flagList, ",") {
		add(s)
	}

	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			add(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	return symbols, nil
}

package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"

	"github.com/quantbed/stochtrail/internal/exchange/bybit"
	"github.com/quantbed/stochtrail/internal/logging"
)

const pageLimit = 1000

func main() {
	var (
		symbol   = flag.String("symbol", "EURUSDT", "Trading pair symbol")
		category = flag.String("category", "spot", "Bybit market category (spot, linear, inverse)")
		interval = flag.String("interval", "5", "Kline interval in Bybit notation (1, 5, 15, 60, ...)")
		days     = flag.Int("days", 30, "Number of days of history to download")
		outdir   = flag.String("outdir", "data/bybit", "Directory to write CSV files")
		envFile  = flag.String("env", ".env", "Environment file")
		logFile  = flag.String("log", "", "Optional rotating log file")
		testnet  = flag.Bool("testnet", false, "Use the Bybit testnet")
	)
	flag.Parse()

	if err := logging.Setup(*logFile); err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("could not load %s (%v)", *envFile, err)
	}

	client := bybit.NewClient(bybit.Config{
		APIKey:    os.Getenv("BYBIT_API_KEY"),
		APISecret: os.Getenv("BYBIT_API_SECRET"),
		Testnet:   *testnet,
	})

	ctx := context.Background()
	end := time.Now()
	start := end.AddDate(0, 0, -*days)

	klines, err := downloadRange(ctx, client, *category, *symbol, bybit.KlineInterval(*interval), start, end)
	if err != nil {
		log.Fatalf("download failed: %v", err)
	}
	if len(klines) == 0 {
		log.Fatalf("no klines returned for %s %s", *symbol, *interval)
	}

	path := filepath.Join(*outdir, fmt.Sprintf("%s_%sm.csv", *symbol, *interval))
	if err := writeCSV(path, klines); err != nil {
		log.Fatalf("failed to write %s: %v", path, err)
	}
	log.Printf("wrote %d bars to %s", len(klines), path)
}

// downloadRange pages backwards through the kline endpoint until the
// requested span is covered, then returns the bars in chronological
// order with duplicates removed.
func downloadRange(ctx context.Context, client *bybit.Client, category, symbol string, interval bybit.KlineInterval, start, end time.Time) ([]bybit.Kline, error) {
	seen := make(map[int64]bool)
	var all []bybit.Kline

	cursor := end
	for cursor.After(start) {
		page, err := client.GetKlines(ctx, bybit.KlineParams{
			Category: category,
			Symbol:   symbol,
			Interval: interval,
			End:      &cursor,
			Limit:    pageLimit,
		})
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		oldest := cursor
		for _, k := range page {
			if k.StartTime.Before(start) {
				continue
			}
			if !seen[k.StartTime.UnixMilli()] {
				seen[k.StartTime.UnixMilli()] = true
				all = append(all, k)
			}
			if k.StartTime.Before(oldest) {
				oldest = k.StartTime
			}
		}

		if !oldest.Before(cursor) {
			break // no progress, end of available history
		}
		cursor = oldest.Add(-time.Millisecond)
		log.Printf("fetched %d klines, back to %s", len(page), oldest.Format(time.RFC3339))
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].StartTime.Before(all[j].StartTime)
	})
	return all, nil
}

func writeCSV(path string, klines []bybit.Kline) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"timestamp", "open", "high", "low", "close", "volume"}); err != nil {
		return err
	}
	for _, k := range klines {
		record := []string{
			k.StartTime.UTC().Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%v", k.OpenPrice),
			fmt.Sprintf("%v", k.HighPrice),
			fmt.Sprintf("%v", k.LowPrice),
			fmt.Sprintf("%v", k.ClosePrice),
			fmt.Sprintf("%v", k.Volume),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}

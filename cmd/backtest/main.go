package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/quantbed/stochtrail/internal/backtest"
	"github.com/quantbed/stochtrail/internal/logging"
	"github.com/quantbed/stochtrail/internal/monitoring"
	"github.com/quantbed/stochtrail/pkg/config"
	"github.com/quantbed/stochtrail/pkg/data"
	"github.com/quantbed/stochtrail/pkg/reporting"
)

func main() {
	var (
		configFile  = flag.String("config", "configs/strategy.json", "Strategy config JSON file")
		dataFile    = flag.String("data", "", "Historical bar CSV file")
		envFile     = flag.String("env", ".env", "Environment file")
		logFile     = flag.String("log", "", "Optional rotating log file")
		xlsxPath    = flag.String("xlsx", "", "Optional Excel trade-log output path")
		showTrades  = flag.Bool("trades", false, "Print the per-trade table")
		metricsPort = flag.Int("metrics-port", 0, "Serve Prometheus metrics on this port (0 = off)")
		healthPort  = flag.Int("health-port", 0, "Serve the health endpoint on this port (0 = off)")
	)
	flag.Parse()

	if err := logging.Setup(*logFile); err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("could not load %s (%v)", *envFile, err)
	}

	if *dataFile == "" {
		fmt.Fprintln(os.Stderr, "missing required -data flag")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadStrategyConfig(*configFile)
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	provider := data.NewCSVProvider()
	bars, err := provider.LoadData(*dataFile)
	if err != nil {
		log.Fatalf("failed to load data: %v", err)
	}
	if err := provider.ValidateData(bars); err != nil {
		log.Fatalf("invalid data: %v", err)
	}
	log.Printf("loaded %d bars for %s from %s", len(bars), cfg.Symbol, *dataFile)

	runner, err := backtest.NewRunner(cfg)
	if err != nil {
		log.Fatalf("failed to build runner: %v", err)
	}

	health := monitoring.NewHealthChecker()
	runner.SetHealthChecker(health)
	serveMonitoring(*metricsPort, *healthPort, health)

	results, err := runner.Run(bars)
	if err != nil {
		health.AddError(err.Error())
		log.Fatalf("backtest failed: %v", err)
	}

	reporter := reporting.NewConsoleReporter()
	reporter.OutputResults(results)
	if *showTrades {
		reporter.OutputTrades(results)
	}

	if *xlsxPath != "" {
		if err := reporting.NewExcelReporter().WriteTradesXLSX(results, *xlsxPath); err != nil {
			log.Fatalf("failed to write Excel report: %v", err)
		}
		log.Printf("trade log written to %s", *xlsxPath)
	}
}

func serveMonitoring(metricsPort, healthPort int, health *monitoring.HealthChecker) {
	if metricsPort > 0 {
		go func() {
			log.Printf("serving Prometheus metrics on port %d", metricsPort)
			if err := http.ListenAndServe(fmt.Sprintf(":%d", metricsPort), monitoring.NewMetricsHandler()); err != nil {
				log.Printf("metrics server error: %v", err)
			}
		}()
	}
	if healthPort > 0 {
		mux := http.NewServeMux()
		mux.Handle("/health", health)
		go func() {
			log.Printf("serving health endpoint on port %d", healthPort)
			if err := http.ListenAndServe(fmt.Sprintf(":%d", healthPort), mux); err != nil {
				log.Printf("health server error: %v", err)
			}
		}()
	}
}

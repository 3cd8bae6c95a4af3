package reporting

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/quantbed/stochtrail/internal/backtest"
)

// ConsoleReporter prints backtest results to stdout.
type ConsoleReporter struct {
	printer *message.Printer
}

// NewConsoleReporter creates a new console reporter
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{
		printer: message.NewPrinter(language.English),
	}
}

// OutputResults prints the summary statistics of a run.
func (r *ConsoleReporter) OutputResults(results *backtest.Results) {
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Printf("BACKTEST RESULTS - %s\n", results.Symbol)
	fmt.Println(strings.Repeat("=", 50))

	r.printer.Printf("Bars Processed:   %d\n", results.BarsProcessed)
	r.printer.Printf("Total Trades:     %d\n", results.TotalTrades)

	winRate := 0.0
	if results.TotalTrades > 0 {
		winRate = float64(results.WinningTrades) / float64(results.TotalTrades) * 100
	}
	fmt.Printf("Winning Trades:   %d (%.1f%%)\n", results.WinningTrades, winRate)
	fmt.Printf("Losing Trades:    %d\n", results.LosingTrades)
	fmt.Printf("Net PnL:          %.5f\n", results.NetPnL)
	fmt.Printf("Gross Profit:     %.5f\n", results.GrossProfit)
	fmt.Printf("Gross Loss:       %.5f\n", results.GrossLoss)
	fmt.Printf("Profit Factor:    %.2f\n", results.ProfitFactor)
	fmt.Printf("Max Drawdown:     %.5f\n", results.MaxDrawdown)
}

// OutputTrades renders the per-trade log as a table.
func (r *ConsoleReporter) OutputTrades(results *backtest.Results) {
	if len(results.Trades) == 0 {
		fmt.Println("\nNo trades taken.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "Dir", "Entry Time", "Entry", "Exit Time", "Exit", "Reason", "PnL"})
	for i, trade := range results.Trades {
		t.AppendRow(table.Row{
			i + 1,
			trade.Direction.String(),
			trade.EntryTime.Format("2006-01-02 15:04"),
			fmt.Sprintf("%.5f", trade.EntryPrice),
			trade.ExitTime.Format("2006-01-02 15:04"),
			fmt.Sprintf("%.5f", trade.ExitPrice),
			trade.ExitReason,
			fmt.Sprintf("%+.5f", trade.PnL),
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

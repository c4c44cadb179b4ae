package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"tradeterm/internal/models"
)

var baseURL string

var rootCmd = &cobra.Command{
	Use:   "riskctl",
	Short: "Terminal risk inspection from the command line",
}

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Show the open-risk table",
	RunE: func(cmd *cobra.Command, args []string) error {
		var rows []models.RiskRow
		if err := fetchJSON("/api/portfolio/open-risk", &rows); err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Symbol", "Position", "Avg Cost", "Stop", "Size", "Alloc %", "Open Risk"})
		for _, row := range rows {
			alloc := "-"
			if row.Allocation != nil {
				alloc = fmt.Sprintf("%.2f", *row.Allocation)
			}
			t.AppendRow(table.Row{
				row.Symbol,
				fmt.Sprintf("%.0f", row.Position),
				fmt.Sprintf("%.2f", row.AvgCost),
				fmt.Sprintf("%.2f", row.StopPrice),
				fmt.Sprintf("%.2f", row.Size),
				alloc,
				fmt.Sprintf("%.2f", row.OpenRisk),
			})
		}
		t.SetStyle(table.StyleLight)
		t.Render()
		return nil
	},
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Show the pending-orders sweep",
	RunE: func(cmd *cobra.Command, args []string) error {
		var rows []models.PendingOrder
		if err := fetchJSON("/api/pending-orders", &rows); err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Symbol", "Stop", "Latest", "Size", "Source"})
		for _, row := range rows {
			t.AppendRow(table.Row{
				row.ID,
				row.Symbol,
				fmt.Sprintf("%.2f", row.StopPrice),
				fmt.Sprintf("%.2f", row.LatestPrice),
				row.PositionSize,
				row.Source,
			})
		}
		t.SetStyle(table.StyleLight)
		t.Render()
		return nil
	},
}

var exitsCmd = &cobra.Command{
	Use:   "exits",
	Short: "Show stored exit requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		var flags []models.ExitFlag
		if err := fetchJSON("/api/exits", &flags); err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Symbol", "Requested", "Updated"})
		for _, flag := range flags {
			t.AppendRow(table.Row{flag.Symbol, flag.Requested, flag.UpdatedAt.Format(time.RFC3339)})
		}
		t.SetStyle(table.StyleLight)
		t.Render()
		return nil
	},
}

func fetchJSON(path string, out any) error {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("terminal returned status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func main() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8000", "terminal base URL")
	rootCmd.AddCommand(riskCmd, pendingCmd, exitsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

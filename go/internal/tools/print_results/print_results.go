package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mcdev12/lotterydash/go/clients/lottery_api_client"
	"github.com/mcdev12/lotterydash/go/internal/catalog"
	"github.com/mcdev12/lotterydash/go/internal/dashboard"
	"github.com/mcdev12/lotterydash/go/internal/models"
	"github.com/mcdev12/lotterydash/go/internal/normalize"
)

func main() {
	baseURL := flag.String("url", envOr("RESULTS_BASE_URL", lottery_api_client.DefaultBaseURL), "results server base URL")
	catalogPath := flag.String("catalog", os.Getenv("CATALOG_PATH"), "optional jurisdiction catalog YAML")
	filter := flag.String("q", "", "only show jurisdictions matching this text")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()

	// 1) Load the jurisdiction catalog
	jurisdictions, err := catalog.LoadFile(*catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load catalog: %v\n", err)
		os.Exit(1)
	}

	// 2) Fetch once
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := lottery_api_client.NewLotteryApiClient(*baseURL, *timeout)
	resp, err := client.GetResults(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch results: %v\n", err)
		os.Exit(1)
	}

	// 3) Normalize and print
	snapshot := normalize.NewNormalizer(jurisdictions).Normalize(resp)
	rows := dashboard.BuildRows(jurisdictions, snapshot, *filter, time.Now())
	if err := render(os.Stdout, snapshot, rows); err != nil {
		fmt.Fprintf(os.Stderr, "write table: %v\n", err)
		os.Exit(1)
	}
}

// render writes rows as an aligned table followed by a summary line
func render(w io.Writer, snapshot models.Snapshot, rows []dashboard.Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "JURISDICTION\tDRAW TIME\tPICK 3\tPICK 4\tSTATUS")
	found := 0
	for _, row := range rows {
		if row.Status == dashboard.StatusFound {
			found++
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			row.DisplayName, orDash(row.DrawTime), cellText(row.Pick3), cellText(row.Pick4), row.StatusMessage)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nResults: %d of %d found, server time %s\n",
		found, len(rows), orDash(snapshot.LastUpdateTime))
	return err
}

func cellText(cell dashboard.Cell) string {
	if cell.Result == nil {
		return models.MessageUnavailable
	}
	if cell.Date == nil {
		return *cell.Result
	}
	return fmt.Sprintf("%s (%s)", *cell.Result, *cell.Date)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

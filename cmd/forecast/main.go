// Command forecast prints one NDFD point forecast for a US postal code.
//
// Usage:
//
//	go run ./cmd/forecast -zip 20910 [-time 1704889800] [-format JSON] [-elements maxt,mint]
//	go run ./cmd/forecast -list-elements
//
// Feed settings (NDFD_BASE_URL, NDFD_TIMEOUT, NDFD_ELEMENT_POLICY, ...) are
// read from the environment as for the service. Logs go to stderr.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/couchcryptid/ndfd-forecast-service/internal/adapter/ndfd"
	"github.com/couchcryptid/ndfd-forecast-service/internal/config"
	"github.com/couchcryptid/ndfd-forecast-service/internal/domain"
	"github.com/couchcryptid/ndfd-forecast-service/internal/forecast"
	"github.com/couchcryptid/ndfd-forecast-service/internal/observability"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "forecast:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("forecast", flag.ContinueOnError)
	zip := fs.String("zip", "", "5-digit US postal code")
	ts := fs.Int64("time", 0, "window start as unix seconds (default now)")
	format := fs.String("format", "", "output format, JSON or XML (default OUTPUT_FORMAT)")
	elements := fs.String("elements", "", "comma-separated element codes (default NDFD_ELEMENT_POLICY)")
	list := fs.Bool("list-elements", false, "print the element catalog and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *list {
		return printCatalog(stdout)
	}
	if *zip == "" {
		fs.Usage()
		return fmt.Errorf("missing required flag: -zip")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *format == "" {
		*format = cfg.OutputFormat
	}

	logger := observability.NewStderrLogger(cfg)
	metrics := observability.NewUnregisteredMetrics()
	client := ndfd.NewClient(cfg.FeedBaseURL, cfg.FeedUserAgent, cfg.FeedTimeout, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	policy, _ := domain.ParseElementPolicy(cfg.ElementPolicy)
	req := domain.ForecastRequest{
		PostalCode:    *zip,
		ReferenceTime: *ts,
		Elements:      splitList(*elements),
		Format:        domain.ParseFormat(*format),
	}
	session, err := forecast.New(ctx, client, client, req, forecast.Options{
		Policy:   policy,
		Elements: cfg.Elements,
		Observer: metrics,
	})
	if err != nil {
		return err
	}

	out, err := session.GetSinglePoint(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, out)
	return err
}

func printCatalog(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tDEFAULT\tLABEL")
	for _, e := range domain.Elements() {
		fmt.Fprintf(tw, "%s\t%t\t%s\n", e.Code, e.DefaultEnabled, e.Label)
	}
	return tw.Flush()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

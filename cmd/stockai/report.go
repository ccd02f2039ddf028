package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ndewijer/Stock-AI-Report/internal/catalog"
	"github.com/ndewijer/Stock-AI-Report/internal/logging"
	"github.com/ndewijer/Stock-AI-Report/internal/model"
	"github.com/ndewijer/Stock-AI-Report/internal/orchestrator"
	"github.com/ndewijer/Stock-AI-Report/internal/proxyclient"
	"github.com/ndewijer/Stock-AI-Report/internal/reveal"
	"github.com/ndewijer/Stock-AI-Report/internal/session"
	"github.com/ndewijer/Stock-AI-Report/internal/validation"
)

// defaultRangeDays is how far back the range starts when --from is omitted.
const defaultRangeDays = 3

type reportOptions struct {
	ticker  string
	from    string
	to      string
	noRetry bool
}

func newReportCmd(v *viper.Viper) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report --ticker CODE",
		Short: "Generate a report for one ticker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runReport(ctx, v, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.ticker, "ticker", "t", "", "ticker code, see 'stockai tickers'")
	cmd.Flags().StringVar(&opts.from, "from", "", "first day, YYYY-MM-DD (default 3 days ago)")
	cmd.Flags().StringVar(&opts.to, "to", "", "last day, YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&opts.noRetry, "no-retry", false, "exit after the first report")
	_ = cmd.MarkFlagRequired("ticker")

	return cmd
}

func runReport(ctx context.Context, v *viper.Viper, opts *reportOptions, in io.Reader, out io.Writer) error {
	logger := logging.New(v.GetString("log_level"), logging.FormatConsole, os.Stderr)

	c, err := catalog.Default()
	if err != nil {
		return err
	}
	ticker, err := c.Find(opts.ticker)
	if err != nil {
		return err
	}
	sel := ticker.Selection()

	rng, err := parseRange(opts.from, opts.to, time.Now())
	if err != nil {
		return err
	}

	baseURL := v.GetString("api_url")
	httpClient := &http.Client{}
	orch := orchestrator.New(
		proxyclient.NewDataClient(baseURL, httpClient),
		proxyclient.NewReportClient(baseURL, httpClient),
		logger,
	)

	view := newTerminalView(out, sel)
	m := session.New(orch, reveal.New(reveal.WithInterval(revealInterval(v))), view)
	defer m.Close()

	logger.Debug().
		Str("api_url", baseURL).
		Str("code", sel.Code).
		Str("from", rng.StartDate()).
		Str("to", rng.EndDate()).
		Msg("submitting report request")

	fmt.Fprintf(out, "%s (%s) %s to %s\n", sel.Name, sel.Code, rng.StartDate(), rng.EndDate())
	if err := m.Submit(ctx, sel, rng); err != nil {
		return err
	}

	prompt := bufio.NewReader(in)
	for {
		select {
		case <-view.revealed:
		case <-ctx.Done():
			return ctx.Err()
		}

		if opts.noRetry || !m.CanRetry() || !askRetry(prompt, out) {
			break
		}
		if err := m.Retry(ctx); err != nil {
			return err
		}
	}

	if outcome := m.Outcome(); outcome == nil || !outcome.OK() {
		return errReportFailed
	}
	return nil
}

// parseRange resolves the --from/--to flags. Missing ends default to the
// last defaultRangeDays days ending today.
func parseRange(from, to string, now time.Time) (model.DateRange, error) {
	rng := model.LastDays(now, defaultRangeDays)

	if from != "" {
		t, err := validation.ParseDate(from)
		if err != nil {
			return model.DateRange{}, fmt.Errorf("--from: %w", err)
		}
		rng.From = t
	}
	if to != "" {
		t, err := validation.ParseDate(to)
		if err != nil {
			return model.DateRange{}, fmt.Errorf("--to: %w", err)
		}
		rng.To = t
	}

	if err := validation.ValidateDateRange(rng); err != nil {
		return model.DateRange{}, err
	}
	return rng, nil
}

func askRetry(r *bufio.Reader, out io.Writer) bool {
	fmt.Fprint(out, "Retry? [y/N] ")
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

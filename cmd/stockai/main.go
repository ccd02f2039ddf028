// Command stockai requests AI-written stock reports from the proxy server
// and types them out in the terminal.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ndewijer/Stock-AI-Report/internal/reveal"
	"github.com/ndewijer/Stock-AI-Report/internal/version"
)

// errReportFailed is returned after a failure outcome has already been
// shown to the user.
var errReportFailed = errors.New("report failed")

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("STOCKAI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("api_url", "http://localhost:5001")
	v.SetDefault("reveal_interval", reveal.DefaultInterval)
	v.SetDefault("log_level", "warn")

	rootCmd := &cobra.Command{
		Use:           "stockai",
		Short:         "AI stock reports for NGX tickers",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("api-url", "", "proxy server base URL (env STOCKAI_API_URL)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (env STOCKAI_LOG_LEVEL)")
	rootCmd.PersistentFlags().Duration("reveal-interval", 0, "delay between revealed characters (env STOCKAI_REVEAL_INTERVAL)")

	// Flags only override the environment when set explicitly.
	cobra.OnInitialize(func() {
		for key, flag := range map[string]string{
			"api_url":         "api-url",
			"log_level":       "log-level",
			"reveal_interval": "reveal-interval",
		} {
			if f := rootCmd.PersistentFlags().Lookup(flag); f != nil && f.Changed {
				v.Set(key, f.Value.String())
			}
		}
	})

	rootCmd.AddCommand(newTickersCmd())
	rootCmd.AddCommand(newReportCmd(v))
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReportFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// revealInterval reads the configured interval, falling back to the default
// for unparsable or non-positive values.
func revealInterval(v *viper.Viper) time.Duration {
	if d := v.GetDuration("reveal_interval"); d > 0 {
		return d
	}
	return reveal.DefaultInterval
}

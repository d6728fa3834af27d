package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "laracheat",
	Short:        "Query the Laravel cheat sheet from your terminal",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `laracheat parses a Markdown cheat sheet into titled sections of tagged
snippets and answers queries against an in-memory keyword index.

A sheet ships inside the binary, so queries work immediately; point
--source (or LARACHEAT_SOURCE, or ~/.laracheat/laracheat.yaml) at a
file to use your own copy.`,
}

var (
	flagSource string
	flagStyle  string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSource, "source", "",
		`Cheat sheet to query ("-" reads stdin; default: config, then the embedded sheet)`)
	rootCmd.PersistentFlags().StringVar(&flagStyle, "style", "",
		"Output style: plain, pretty or json (default: config, then plain)")
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

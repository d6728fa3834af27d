package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/michaelsholadiran/laravel-cheat-code/internal/query"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/render"
)

var flagSearchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <keyword>...",
	Short: "Search snippets by keyword",
	Long: `Search the cheat sheet for snippets matching the given keywords.

A query equal to a section title returns that whole section first; the
remaining snippets rank by how many query keywords they contain, with
ties kept in sheet order. Finding nothing is a valid answer, not an
error: the command prints an empty result and exits 0.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&flagSearchLimit, "limit", 0, "Maximum number of results (0 = no limit)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	q := strings.Join(args, " ")

	snap, cfg, err := loadSnapshot()
	if err != nil {
		return err
	}
	style, err := resolveStyle(cfg)
	if err != nil {
		return err
	}

	limit := flagSearchLimit
	if !cmd.Flags().Changed("limit") && cfg.Limit > 0 {
		limit = cfg.Limit
	}

	results := query.Search(snap.Index, q, limit)

	if style == render.StyleJSON {
		return render.New(os.Stdout, style).Results(results)
	}

	fmt.Printf("\nlaracheat search %q\n", q)
	fmt.Printf("Results (%d found):\n", len(results))
	if len(results) == 0 {
		printMiss("", "no snippets matched")
		for _, s := range query.Suggest(snap.Index, q, 3) {
			printInfo("", fmt.Sprintf("closest section: %q", s))
		}
		return nil
	}
	return render.New(os.Stdout, style).Results(results)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michaelsholadiran/laravel-cheat-code/internal/query"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/render"
)

var showCmd = &cobra.Command{
	Use:   "show <section-title>",
	Short: "Show every snippet of one section",
	Long: `Show the snippets of the section whose title matches exactly
(case-insensitive). Quote titles containing spaces:

  laracheat show "Blade Templates"

An unknown title is reported, with close matches when any exist, and the
command still exits 0: asking for a section that does not exist is a
valid query with an empty answer, not a failure.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := args[0]

		snap, cfg, err := loadSnapshot()
		if err != nil {
			return err
		}
		style, err := resolveStyle(cfg)
		if err != nil {
			return err
		}

		sec := snap.Index.Section(title)
		if sec == nil {
			if style == render.StyleJSON {
				fmt.Println("[]")
				fmt.Fprintf(os.Stderr, "no section titled %q\n", title)
				return nil
			}
			printMiss("", fmt.Sprintf("no section titled %q", title))
			for _, s := range query.Suggest(snap.Index, title, 3) {
				printInfo("", fmt.Sprintf("did you mean %q?", s))
			}
			fmt.Println("\nRun 'laracheat list-sections' for every title.")
			return nil
		}

		return render.New(os.Stdout, style).Section(sec)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

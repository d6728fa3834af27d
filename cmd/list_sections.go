package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michaelsholadiran/laravel-cheat-code/internal/render"
)

var listSectionsCmd = &cobra.Command{
	Use:     "list-sections",
	Aliases: []string{"sections"},
	Short:   "List every section of the cheat sheet",
	Long: `List the cheat sheet's sections with their snippet counts and languages.

Section titles are the exact strings accepted by 'laracheat show'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, cfg, err := loadSnapshot()
		if err != nil {
			return err
		}
		style, err := resolveStyle(cfg)
		if err != nil {
			return err
		}

		r := render.New(os.Stdout, style)
		if err := r.Overview(snap.Doc); err != nil {
			return err
		}

		if style != render.StyleJSON {
			st := snap.Index.Stats()
			fmt.Printf("\n%d section(s), %d snippet(s), %d keyword(s) from %s\n",
				st.Sections, st.Snippets, st.Keywords, snap.Source)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listSectionsCmd)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michaelsholadiran/laravel-cheat-code/internal/asset"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap ~/.laracheat with config and the bundled sheet",
	Long: `Initialize ~/.laracheat/: write the default config and .env template,
install the bundled cheat sheet as ~/.laracheat/laravel.md, then parse
and index it once to prove the setup works.

Existing files are never overwritten; re-running init is safe.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	// ── 1. Resolve ~/.laracheat paths ─────────────────────────────────────────
	dir, err := config.LaracheatDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	// ── 2. Create ~/.laracheat/ if it doesn't exist ───────────────────────────
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}
	printOK("", fmt.Sprintf("laracheat directory ready: %s", dir))

	// ── 3. Write laracheat.yaml if missing ────────────────────────────────────
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg, err := config.DefaultConfig()
		if err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("Config written: %s", cfgPath))
	} else {
		printSkip("", fmt.Sprintf("Config already exists: %s", cfgPath))
	}

	// ── 4. Write the .env template if missing ─────────────────────────────────
	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}

	// ── 5. Install the bundled sheet if missing ───────────────────────────────
	def, err := config.DefaultConfig()
	if err != nil {
		return err
	}
	if _, err := os.Stat(def.Source); os.IsNotExist(err) {
		if err := asset.Install(def.Source, false); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("Bundled sheet installed: %s", def.Source))
	} else {
		printSkip("", fmt.Sprintf("Sheet already exists: %s", def.Source))
	}

	// ── 6. Parse and index the effective source once ──────────────────────────
	snap, _, err := loadSnapshot()
	if err != nil {
		return err
	}
	st := snap.Index.Stats()
	printOK("", fmt.Sprintf("Indexed %s: %d sections, %d snippets, %d keywords",
		snap.Source, st.Sections, st.Snippets, st.Keywords))

	fmt.Println("\n✓  laracheat init complete. Run 'laracheat doctor' to verify your setup.")
	return nil
}

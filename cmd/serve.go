package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/michaelsholadiran/laravel-cheat-code/internal/asset"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/index"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/server"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/watch"
)

var (
	flagServeListen string
	flagServeWatch  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the cheat sheet index over HTTP",
	Long: `Serve sections and search over HTTP from the in-memory index.

Routes:
  GET  /healthz          index stats
  GET  /sections         section overview
  GET  /sections/:title  snippets of one section (URL-escape the title)
  GET  /search?q=...     ranked snippets, optional &limit=N
  POST /reload           re-parse the source and swap the index

Reloads build the replacement index off to the side and swap it in
atomically; a reload that fails to parse keeps the previous index
serving. With --watch the source file is re-parsed automatically after
it changes.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeListen, "listen", "", "Address to bind (default: config, then 127.0.0.1:7340)")
	serveCmd.Flags().BoolVar(&flagServeWatch, "watch", false, "Rebuild the index when the source file changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	snap, cfg, err := loadSnapshot()
	if err != nil {
		return err
	}
	source := snap.Source
	holder := index.NewHolder(snap)

	// Stdin and the embedded sheet cannot change underneath the daemon,
	// so they get no reload hook and POST /reload reports disabled.
	var reload func() error
	if source != "-" && source != asset.Name {
		reload = func() error {
			d, err := loadDocument(source)
			if err != nil {
				return err
			}
			holder.Swap(index.NewSnapshot(d, source))
			return nil
		}
	}

	srv := server.New(holder, reload)

	addr := flagServeListen
	if addr == "" {
		addr = cfg.Listen
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagServeWatch {
		if reload == nil {
			printWarn("", fmt.Sprintf("--watch ignored: %s is not a watchable file", source))
		} else {
			w, err := watch.New(source, func() {
				if err := reload(); err != nil {
					log.Errorf("reload after change failed, keeping previous snapshot: %v", err)
					return
				}
				s := holder.Load()
				st := s.Index.Stats()
				log.Infof("reloaded %s: %d sections, %d snippets", s.Source, st.Sections, st.Snippets)
			})
			if err != nil {
				return err
			}
			if err := w.Start(ctx); err != nil {
				return err
			}
			defer w.Stop()
		}
	}

	st := snap.Index.Stats()
	log.Infof("laracheat serving %s on http://%s (%d sections, %d snippets, %d keywords)",
		source, addr, st.Sections, st.Snippets, st.Keywords)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Listen(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		return srv.Shutdown()
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	log.Info("laracheat server stopped")
	return nil
}

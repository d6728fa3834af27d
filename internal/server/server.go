// Package server exposes the in-memory index over HTTP for editors and
// tooling. Handlers read the current snapshot from a Holder, so requests
// never block on reloads, and snippet text travels through verbatim:
// the daemon serves it, never runs it.
package server

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/michaelsholadiran/laravel-cheat-code/internal/index"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/query"
)

// maxSuggestions caps the advisory titles attached to a 404.
const maxSuggestions = 3

// Server answers section and search queries from the holder's current
// snapshot.
type Server struct {
	app    *fiber.App
	holder *index.Holder

	// reload rebuilds the snapshot from the configured source and swaps
	// it into the holder. On error the holder must keep the previous
	// snapshot, so readers are never left without an index.
	reload func() error
}

// New wires all routes. reload may be nil; POST /reload then reports the
// endpoint as disabled.
func New(holder *index.Holder, reload func() error) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "laracheat",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return applyError(c, code, "internal", err.Error())
		},
	})

	s := &Server{app: app, holder: holder, reload: reload}
	s.register()
	return s
}

func (s *Server) register() {
	s.app.Use(logger.New())
	s.app.Get("/healthz", s.health)
	s.app.Get("/sections", s.sections)
	s.app.Get("/sections/:title", s.section)
	s.app.Get("/search", s.search)
	s.app.Post("/reload", s.reloadNow)
}

// Listen blocks serving on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) health(c *fiber.Ctx) error {
	return applySuccess(c, toStatsDTO(s.holder.Load()))
}

func (s *Server) sections(c *fiber.Ctx) error {
	snap := s.holder.Load()
	return applySuccess(c, toSectionDTOs(snap.Doc))
}

func (s *Server) section(c *fiber.Ctx) error {
	title, err := url.PathUnescape(c.Params("title"))
	if err != nil {
		return applyError(c, fiber.StatusBadRequest, "invalid_query", "malformed section title")
	}

	snap := s.holder.Load()
	sec := snap.Index.Section(title)
	if sec == nil {
		return applyError(c, fiber.StatusNotFound, "not_found",
			"section \""+title+"\" not found",
			query.Suggest(snap.Index, title, maxSuggestions)...)
	}
	return applySuccess(c, toSnippetDTOs(sec.Snippets))
}

func (s *Server) search(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return applyError(c, fiber.StatusBadRequest, "invalid_query", "missing query parameter q")
	}
	limit := c.QueryInt("limit", 0)

	snap := s.holder.Load()
	results := query.Search(snap.Index, q, limit)
	return applySuccess(c, toResultDTOs(results))
}

func (s *Server) reloadNow(c *fiber.Ctx) error {
	if s.reload == nil {
		return applyError(c, fiber.StatusNotImplemented, "reload_disabled", "no reloadable source configured")
	}
	if err := s.reload(); err != nil {
		log.Errorf("reload failed, keeping previous snapshot: %v", err)
		return applyError(c, fiber.StatusConflict, "reload_failed", err.Error())
	}

	snap := s.holder.Load()
	st := snap.Index.Stats()
	log.Infof("reloaded %s: %d sections, %d snippets", snap.Source, st.Sections, st.Snippets)
	return applySuccess(c, toStatsDTO(snap))
}

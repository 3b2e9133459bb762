package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hypergopher/sitesearch"
	"github.com/hypergopher/sitesearch/filterpanel"
	"github.com/hypergopher/sitesearch/tagstore"
)

// TagLister supplies the tag vocabulary with counts.
type TagLister interface {
	Tags() ([]tagstore.TagCount, error)
}

// Options is a struct for configuring a Server.
type Options struct {
	Addr      string             // Addr is the listen address.
	Client    *sitesearch.Client // Client holds the loaded index. Required.
	Tags      TagLister          // Tags lists the vocabulary. Default derives it from the index.
	StaticDir string             // StaticDir is served at / when set.
	Logger    *slog.Logger       // Logger is the logger used by the server. Default is slog.Default().
}

// Server previews a built site: the static files plus index, search and filter endpoints.
type Server struct {
	addr      string
	client    *sitesearch.Client
	logger    *slog.Logger
	staticDir string
	tags      TagLister
}

type errorResponse struct {
	Error string `json:"error"`
}

type postsResponse struct {
	View filterpanel.View      `json:"view"`
	Page filterpanel.Paginator `json:"page"`
}

// New creates a Server.
func New(opts Options) (*Server, error) {
	if opts.Client == nil {
		return nil, errors.New("server requires a search client")
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Server{
		addr:      opts.Addr,
		client:    opts.Client,
		logger:    opts.Logger,
		staticDir: opts.StaticDir,
		tags:      opts.Tags,
	}, nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/index.json", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/tags", s.handleTags)
		r.Get("/posts", s.handlePosts)
	})

	if s.staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.staticDir)))
	}

	return r
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("Serving site", slog.String("addr", s.addr))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.client.Entries())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.client.Search(r.URL.Query().Get("q")))
}

func (s *Server) handleTags(w http.ResponseWriter, _ *http.Request) {
	if s.tags == nil {
		s.writeJSON(w, http.StatusOK, countTags(s.client.Entries()))
		return
	}

	tags, err := s.tags.Tags()
	if err != nil {
		s.logger.Error("failed to list tags", slog.String("error", err.Error()))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list tags"})
		return
	}
	s.writeJSON(w, http.StatusOK, tags)
}

// handlePosts runs the filter panel over the index: ?month=2024-03&tag=go&tag=web&page=2&size=10
func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	cards := filterpanel.CardsFromEntries(s.client.Entries())
	panel := filterpanel.New(cards, filterpanel.VocabularyFromCards(cards))

	q := r.URL.Query()
	panel.SelectYearMonth(q.Get("month"))
	for _, tag := range q["tag"] {
		panel.AddTag(tag)
	}

	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))
	s.writeJSON(w, http.StatusOK, postsResponse{View: panel.View(), Page: panel.Page(page, size)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", slog.String("error", err.Error()))
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)))
	})
}

func countTags(entries []sitesearch.Entry) []tagstore.TagCount {
	counts := map[string]int{}
	for _, e := range entries {
		seen := map[string]bool{}
		for _, tag := range e.Tags {
			if !seen[tag] {
				seen[tag] = true
				counts[tag]++
			}
		}
	}

	tags := make([]tagstore.TagCount, 0, len(counts))
	for tag, n := range counts {
		tags = append(tags, tagstore.TagCount{Tag: tag, Count: n})
	}
	slices.SortFunc(tags, func(a, b tagstore.TagCount) int {
		return strings.Compare(a.Tag, b.Tag)
	})
	return tags
}

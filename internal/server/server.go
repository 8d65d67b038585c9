package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hetulpatel/valorfinder/internal/ledger"
	"github.com/hetulpatel/valorfinder/internal/matches"
)

// Server exposes the match feed and bet ledger over HTTP.
type Server struct {
	feed   *matches.Service
	ledger *ledger.Ledger
}

// New builds a server over the feed service and ledger.
func New(feed *matches.Service, l *ledger.Ledger) *Server {
	return &Server{feed: feed, ledger: l}
}

// Router assembles the chi router with middleware and all API routes.
func (s *Server) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(120 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/matches", s.handleListMatches)
		r.Get("/matches/leagues", s.handleListLeagues)
		r.Post("/matches/{id}/analysis", s.handleAnalyzeMatch)

		r.Route("/bets", func(r chi.Router) {
			r.Get("/", s.handleListBets)
			r.Post("/", s.handlePlaceBet)
			r.Get("/summary", s.handleBetSummary)
			r.Post("/{id}/resolve", s.handleResolveBet)
			r.Delete("/{id}", s.handleDeleteBet)
		})
	})

	return r
}

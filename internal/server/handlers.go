package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hetulpatel/valorfinder/internal/ledger"
	"github.com/hetulpatel/valorfinder/internal/logging"
	"github.com/hetulpatel/valorfinder/internal/matches"
	"github.com/hetulpatel/valorfinder/internal/models"
	"github.com/hetulpatel/valorfinder/internal/source"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// handleListMatches loads the derived list for a date (cache-aware), applies
// the user filters, and returns the visible subset.
func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", err)
		return
	}
	lang := source.NormalizeLanguage(r.URL.Query().Get("lang"))
	force := r.URL.Query().Get("refresh") == "true"

	list, err := s.feed.Load(r.Context(), date, lang, force)
	if err != nil {
		respondSourceError(w, err)
		return
	}

	filters := matches.Filters{
		League:        r.URL.Query().Get("league"),
		Time:          matches.TimeBucket(r.URL.Query().Get("time")),
		MinConfidence: queryInt(r, "minConfidence", 0),
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"date":    matches.DateKey(date),
		"matches": matches.Filter(list, filters),
		"leagues": matches.Leagues(list),
	})
}

func (s *Server) handleListLeagues(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", err)
		return
	}
	lang := source.NormalizeLanguage(r.URL.Query().Get("lang"))

	list, err := s.feed.Load(r.Context(), date, lang, false)
	if err != nil {
		respondSourceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"leagues": matches.Leagues(list)})
}

func (s *Server) handleAnalyzeMatch(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", err)
		return
	}
	lang := source.NormalizeLanguage(r.URL.Query().Get("lang"))

	list, err := s.feed.Load(r.Context(), date, lang, false)
	if err != nil {
		respondSourceError(w, err)
		return
	}

	match, ok := matches.FindByID(list, chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, "match not found for date", nil)
		return
	}

	analysis, err := s.feed.Analyze(r.Context(), match, lang)
	if err != nil {
		respondSourceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"matchId": match.ID, "analysis": analysis})
}

type placeBetRequest struct {
	MatchID string  `json:"matchId"`
	Date    string  `json:"date"`
	Lang    string  `json:"lang"`
	Stake   float64 `json:"stake"`
}

// handlePlaceBet places a bet on a listed match's single best market. The
// match and market snapshots are copied into the bet at placement time.
func (s *Server) handlePlaceBet(w http.ResponseWriter, r *http.Request) {
	var req placeBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", err)
		return
	}

	list, err := s.feed.Load(r.Context(), date, source.NormalizeLanguage(req.Lang), false)
	if err != nil {
		respondSourceError(w, err)
		return
	}

	match, ok := matches.FindByID(list, req.MatchID)
	if !ok || len(match.Markets) == 0 {
		respondError(w, http.StatusNotFound, "match not found for date", nil)
		return
	}

	bet, err := s.ledger.Place(r.Context(), match, match.Markets[0], req.Stake)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidStake) {
			respondError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to place bet", err)
		return
	}
	respondJSON(w, http.StatusCreated, bet)
}

func (s *Server) handleListBets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"bets": s.ledger.List()})
}

func (s *Server) handleBetSummary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.ledger.Summarize())
}

type resolveBetRequest struct {
	Outcome models.Outcome `json:"outcome"`
}

func (s *Server) handleResolveBet(w http.ResponseWriter, r *http.Request) {
	var req resolveBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	bet, err := s.ledger.Resolve(r.Context(), chi.URLParam(r, "id"), req.Outcome)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidOutcome):
			respondError(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, ledger.ErrBetNotFound):
			respondError(w, http.StatusNotFound, err.Error(), nil)
		case errors.Is(err, ledger.ErrAlreadySettled):
			respondError(w, http.StatusConflict, err.Error(), nil)
		default:
			respondError(w, http.StatusInternalServerError, "failed to resolve bet", err)
		}
		return
	}
	respondJSON(w, http.StatusOK, bet)
}

func (s *Server) handleDeleteBet(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ledger.ErrBetNotFound) {
			respondError(w, http.StatusNotFound, err.Error(), nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete bet", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// queryDate reads the date parameter, defaulting to today (UTC).
func queryDate(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse("2006-01-02", raw)
}

func queryInt(r *http.Request, key string, def int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			return parsed
		}
	}
	return def
}

// respondSourceError maps collaborator failures to distinct user-facing
// messages so "service is down" and "service replied unreadably" stay apart.
func respondSourceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, source.ErrSourceUnavailable):
		respondError(w, http.StatusBadGateway, "match source is unavailable", err)
	case errors.Is(err, source.ErrMalformedSourceData):
		respondError(w, http.StatusBadGateway, "match source returned unreadable data", err)
	default:
		respondError(w, http.StatusInternalServerError, "failed to load matches", err)
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Errorf("[server] encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		logging.Errorf("[server] %s: %v", message, err)
	}
	respondJSON(w, status, errorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

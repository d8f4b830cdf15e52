/* handlers.go
 * Contains the HTTP routes and handlers of the JSON API
 */

package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"pickems-tracker/api/shared"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
)

// NewServer builds the router for cfg. The API must be non-nil
func NewServer(cfg Config) *Server {
	s := &Server{api: cfg.API, router: mux.NewRouter()}

	r := s.router
	r.HandleFunc("/health", s.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/matches", s.MatchesHandler).Methods(http.MethodGet)
	r.HandleFunc("/matches/{number:[0-9]+}", s.MatchHandler).Methods(http.MethodGet)
	r.HandleFunc("/picks", s.PicksHandler).Methods(http.MethodGet)
	r.HandleFunc("/users", s.UsersHandler).Methods(http.MethodGet)
	r.HandleFunc("/scores", s.ScoresHandler).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard", s.LeaderboardHandler).Methods(http.MethodGet)
	r.HandleFunc("/multipliers", s.MultipliersHandler).Methods(http.MethodGet)
	r.HandleFunc("/webhooks/recompute", s.RecomputeWebhookHandler).Methods(http.MethodPost)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler).Methods(http.MethodGet)
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// HealthHandler reports that the process is serving
func (s *Server) HealthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// MatchesHandler lists every match with its lifecycle state, ordered by number
func (s *Server) MatchesHandler(w http.ResponseWriter, r *http.Request) {
	views, err := s.api.GetMatchViews(r.Context())
	if err != nil {
		log.Error("Failed to get matches", "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("failed to get matches"))
		return
	}

	out := make([]matchResponse, 0, len(views))
	for _, v := range views {
		out = append(out, newMatchResponse(v))
	}
	writeJSON(w, http.StatusOK, out)
}

// MatchHandler returns a single match by number
func (s *Server) MatchHandler(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(mux.Vars(r)["number"])
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("match number must be an integer"))
		return
	}

	view, err := s.api.GetMatch(r.Context(), number)
	if errors.Is(err, shared.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		log.Error("Failed to get match", "match", number, "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("failed to get match"))
		return
	}
	writeJSON(w, http.StatusOK, newMatchResponse(view))
}

// PicksHandler lists every pick, or only one user's when the user query parameter is set
func (s *Server) PicksHandler(w http.ResponseWriter, r *http.Request) {
	var picks []shared.Pick
	var err error
	if user := r.URL.Query().Get("user"); user != "" {
		picks, err = s.api.GetUserPicks(r.Context(), user)
	} else {
		picks, err = s.api.GetPicks(r.Context())
	}
	if err != nil {
		log.Error("Failed to get picks", "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("failed to get picks"))
		return
	}
	writeJSON(w, http.StatusOK, newPickResponses(picks))
}

// UsersHandler lists every user that has made a pick
func (s *Server) UsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := s.api.GetUsers(r.Context())
	if err != nil {
		log.Error("Failed to get users", "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("failed to get users"))
		return
	}
	if users == nil {
		users = []string{}
	}
	writeJSON(w, http.StatusOK, users)
}

// ScoresHandler returns the scores cached by the last recomputation, ordered by user id
func (s *Server) ScoresHandler(w http.ResponseWriter, r *http.Request) {
	scores, err := s.api.GetScores(r.Context())
	if err != nil {
		log.Error("Failed to get scores", "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("failed to get scores"))
		return
	}
	writeJSON(w, http.StatusOK, newScoreResponses(scores, false))
}

// LeaderboardHandler recomputes the scores and returns them ranked
func (s *Server) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	leaderboard, err := s.api.GetLeaderboard(r.Context())
	if err != nil {
		s.writeRecomputeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newScoreResponses(leaderboard, true))
}

// MultipliersHandler lists the points per stage
func (s *Server) MultipliersHandler(w http.ResponseWriter, r *http.Request) {
	multipliers, err := s.api.GetMultipliers(r.Context())
	if err != nil {
		log.Error("Failed to get multipliers", "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("failed to get multipliers"))
		return
	}

	out := make([]multiplierResponse, 0, len(multipliers))
	for _, m := range multipliers {
		out = append(out, multiplierResponse{Stage: m.Stage, Points: m.Points})
	}
	writeJSON(w, http.StatusOK, out)
}

// RecomputeWebhookHandler lets an external results feed trigger a score recomputation once it has ended matches.
// Preconditions: HTTP server has been started, receives a POST request (the body is ignored)
// Postconditions: Recomputes and persists every score and returns them ordered by user id
func (s *Server) RecomputeWebhookHandler(w http.ResponseWriter, r *http.Request) {
	scores, err := s.api.RecomputeScores(r.Context())
	if err != nil {
		s.writeRecomputeError(w, err)
		return
	}
	log.Info("Scores recomputed by webhook", "users", len(scores), "remote", r.RemoteAddr)
	writeJSON(w, http.StatusOK, newScoreResponses(scores, false))
}

// writeRecomputeError reports a missing stage multiplier as a conflict the operator must fix
func (s *Server) writeRecomputeError(w http.ResponseWriter, err error) {
	var lookupErr *shared.LookupError
	if errors.As(err, &lookupErr) {
		writeError(w, http.StatusConflict, lookupErr)
		return
	}
	log.Error("Failed to recompute scores", "error", err)
	writeError(w, http.StatusInternalServerError, errors.New("failed to recompute scores"))
}

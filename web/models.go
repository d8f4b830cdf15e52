/* models.go
 * Contains the web server configuration and the JSON bodies it returns
 */

package web

import (
	"net/http"

	"pickems-tracker/api/api"
	"pickems-tracker/api/shared"

	"github.com/gorilla/mux"
)

// Config holds the configuration for the web server
type Config struct {
	Addr string
	API  *api.API
	// MetricsHandler is mounted at /metrics when set
	MetricsHandler http.Handler
}

// Server serves the read-only JSON view of the tracker
type Server struct {
	api    *api.API
	router *mux.Router
}

type matchResponse struct {
	Number        int    `json:"number"`
	Team1         string `json:"team1"`
	Team2         string `json:"team2"`
	Result        string `json:"result"`
	Stage         string `json:"stage"`
	ScheduledTime int64  `json:"scheduled_time"`
	Done          bool   `json:"done"`
	Winner        string `json:"winner,omitempty"`
	Status        string `json:"status"`
}

type pickResponse struct {
	MatchNumber int    `json:"match_number"`
	UserID      string `json:"user_id"`
	Choice      string `json:"choice"`
	Username    string `json:"username,omitempty"`
}

type scoreResponse struct {
	Rank   int    `json:"rank,omitempty"`
	UserID string `json:"user_id"`
	Score  int    `json:"score"`
}

type multiplierResponse struct {
	Stage  string `json:"stage"`
	Points int    `json:"points"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newMatchResponse(v api.MatchView) matchResponse {
	return matchResponse{
		Number:        v.Number,
		Team1:         v.Team1,
		Team2:         v.Team2,
		Result:        v.Result.String(),
		Stage:         v.Stage,
		ScheduledTime: v.ScheduledTime,
		Done:          v.Done,
		Winner:        v.Winner,
		Status:        v.Status.String(),
	}
}

func newPickResponses(picks []shared.Pick) []pickResponse {
	out := make([]pickResponse, 0, len(picks))
	for _, p := range picks {
		out = append(out, pickResponse{MatchNumber: p.MatchNumber, UserID: p.UserID, Choice: p.Choice, Username: p.Username})
	}
	return out
}

// newScoreResponses ranks the scores when ranked is set, assuming they are already in leaderboard order
func newScoreResponses(scores []shared.Score, ranked bool) []scoreResponse {
	out := make([]scoreResponse, 0, len(scores))
	for i, s := range scores {
		r := scoreResponse{UserID: s.UserID, Score: s.Value}
		if ranked {
			r.Rank = i + 1
		}
		out = append(out, r)
	}
	return out
}

/* api.go
 * This file contains the public methods for interacting with the tracker. Front-ends (bot, web, cli) should only call
 * into this file, never into the logic or store packages directly, so every mutation goes through the same lock
 */

package api

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"pickems-tracker/api/logic"
	"pickems-tracker/api/metrics"
	"pickems-tracker/api/shared"
	"pickems-tracker/api/store"

	"github.com/charmbracelet/log"
)

// API provides methods for interacting with the pick'ems data layer
type API struct {
	Store   store.Interface
	Metrics metrics.Metrics

	// mu serialises every read-modify-write so a pick can never interleave with the end of its match
	mu  sync.RWMutex
	now func() time.Time
}

// Option customises an API at construction
type Option func(*API)

// WithClock replaces the clock used to decide whether a match has started
func WithClock(now func() time.Time) Option {
	return func(a *API) {
		a.now = now
	}
}

// NewAPI creates a new API instance over an already opened store
func NewAPI(s store.Interface, m metrics.Metrics, opts ...Option) (*API, error) {
	if s == nil {
		return nil, fmt.Errorf("store is required")
	}
	if m == nil {
		return nil, fmt.Errorf("metrics are required")
	}

	a := &API{Store: s, Metrics: m, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Close releases the underlying store
func (a *API) Close(ctx context.Context) error {
	return a.Store.Close(ctx)
}

// StatusOf reports a match's lifecycle state right now. Every display of a match uses this so that what users see
// agrees with what RegisterPick enforces
func (a *API) StatusOf(m shared.Match) logic.Status {
	return logic.StatusOf(m, a.now())
}

// region Picks

// RegisterPick records a user's choice for a match.
// Preconditions: Receives the match number, a non-empty user id and the team the user is backing
// Postconditions: Stores or overwrites the user's pick and returns an accepted outcome with the canonical team name,
// or a rejected outcome (match not found, closed, or choice names neither team) with nothing stored. Storage
// failures are returned as errors
func (a *API) RegisterPick(ctx context.Context, number int, userID string, choice string) (PickOutcome, error) {
	return a.RegisterPickAs(ctx, number, shared.User{UserID: userID}, choice)
}

// RegisterPickAs is RegisterPick for a user whose display name differs from their id. Picks are keyed on
// user.UserID and user.Username is stored alongside for display
func (a *API) RegisterPickAs(ctx context.Context, number int, user shared.User, choice string) (PickOutcome, error) {
	user.UserID = strings.TrimSpace(user.UserID)
	if user.UserID == "" {
		return PickOutcome{}, fmt.Errorf("%w: user id cannot be empty", shared.ErrInvalidInput)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	outcome, err := a.registerPick(ctx, number, user, choice)
	if err != nil {
		return PickOutcome{}, err
	}

	a.Metrics.IncPicks(outcome.Status.String())
	log.Info("Pick processed", "match", number, "user", user.UserID, "outcome", outcome.Status, "choice", outcome.Choice)
	return outcome, nil
}

func (a *API) registerPick(ctx context.Context, number int, user shared.User, choice string) (PickOutcome, error) {
	matches, err := a.Store.LoadMatches(ctx)
	if err != nil {
		return PickOutcome{}, fmt.Errorf("failed to load matches: %w", err)
	}

	m, ok := logic.FindMatch(matches, number)
	if !ok {
		return PickOutcome{Status: PickMatchNotFound}, nil
	}
	now := a.now()
	if !logic.IsOpenForPicks(m, now) {
		return PickOutcome{Status: PickClosed, Match: m}, nil
	}

	team, ok := logic.ResolveChoice(choice, m.Team1, m.Team2)
	if !ok {
		return PickOutcome{Status: PickInvalidChoice, Match: m}, nil
	}

	// The lock only covers this process, so the store checks the match is still open as part of the write
	pick := shared.Pick{MatchNumber: number, UserID: user.UserID, Choice: team, Username: user.Username}
	if err := a.Store.UpsertPick(ctx, pick, now.Unix()); err != nil {
		if errors.Is(err, shared.ErrClosedForPicking) {
			return PickOutcome{Status: PickClosed, Match: m}, nil
		}
		return PickOutcome{}, err
	}
	return PickOutcome{Status: PickAccepted, Choice: team, Match: m}, nil
}

// GetPicks returns every stored pick ordered by match number then user id
func (a *API) GetPicks(ctx context.Context) ([]shared.Pick, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.Store.LoadPicks(ctx)
}

// GetUserPicks returns the picks of a single user ordered by match number
func (a *API) GetUserPicks(ctx context.Context, userID string) ([]shared.Pick, error) {
	picks, err := a.GetPicks(ctx)
	if err != nil {
		return nil, err
	}

	var mine []shared.Pick
	for _, pick := range picks {
		if pick.UserID == userID {
			mine = append(mine, pick)
		}
	}
	return mine, nil
}

// GetUsers returns the ids of every user with at least one pick, sorted
func (a *API) GetUsers(ctx context.Context) ([]string, error) {
	picks, err := a.GetPicks(ctx)
	if err != nil {
		return nil, err
	}
	return logic.DistinctUsers(picks), nil
}

// endregion

// region Matches

// AddMatch creates a new unplayed match numbered one past the highest existing number.
// Preconditions: Receives two distinct, non-empty team names, a non-empty stage and the unix time picks close
// Postconditions: Stores and returns the new match, or returns an error wrapping ErrInvalidInput if a field is bad
func (a *API) AddMatch(ctx context.Context, team1 string, team2 string, stage string, scheduledTime int64) (shared.Match, error) {
	team1, team2, stage = strings.TrimSpace(team1), strings.TrimSpace(team2), strings.TrimSpace(stage)
	if team1 == "" || team2 == "" || stage == "" {
		return shared.Match{}, fmt.Errorf("%w: teams and stage cannot be empty", shared.ErrInvalidInput)
	}
	if strings.EqualFold(team1, team2) {
		return shared.Match{}, fmt.Errorf("%w: a team cannot play itself", shared.ErrInvalidInput)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	matches, err := a.Store.LoadMatches(ctx)
	if err != nil {
		return shared.Match{}, fmt.Errorf("failed to load matches: %w", err)
	}

	m := shared.Match{
		Number:        logic.NextMatchNumber(matches),
		Team1:         team1,
		Team2:         team2,
		Result:        shared.UnplayedResult,
		Stage:         stage,
		ScheduledTime: scheduledTime,
	}
	if err := a.Store.InsertMatch(ctx, m); err != nil {
		return shared.Match{}, err
	}

	a.Metrics.IncMatchesAdded()
	log.Info("Match added", "match", m.Number, "team1", team1, "team2", team2, "stage", stage, "time", scheduledTime)
	return m, nil
}

// ChangeMatchVariable overwrites one field of a match. This is an operator override, so no lifecycle rules are applied.
// Preconditions: Receives a match number, a field name (team1, team2, result, stage, time, done or winner) and its value
// Postconditions: Returns the updated match. Bad fields or values wrap ErrInvalidInput and nothing is written; an
// unknown match wraps ErrNotFound
func (a *API) ChangeMatchVariable(ctx context.Context, number int, field string, value string) (shared.Match, error) {
	patch, err := shared.ParseMatchPatch(field, value)
	if err != nil {
		return shared.Match{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.Store.PatchMatchField(ctx, number, patch); err != nil {
		return shared.Match{}, err
	}

	matches, err := a.Store.LoadMatches(ctx)
	if err != nil {
		return shared.Match{}, fmt.Errorf("failed to reload matches: %w", err)
	}
	m, ok := logic.FindMatch(matches, number)
	if !ok {
		return shared.Match{}, fmt.Errorf("match %d: %w", number, shared.ErrNotFound)
	}

	log.Warn("Match overridden", "match", number, "field", patch.Field, "value", value)
	return m, nil
}

// EndMatch records the final result of a match and its winner.
// Preconditions: Receives a match number and a result string "a-b" where a is team1's score
// Postconditions: Marks the match done with its result and winner in a single write and returns a success outcome.
// Returns a not-found outcome for an unknown match, or an error wrapping ErrInvalidInput for a malformed or tied
// result. Ending an already finished match overwrites it
func (a *API) EndMatch(ctx context.Context, number int, result string) (EndOutcome, error) {
	r, err := shared.ParseResult(result)
	if err != nil {
		return EndOutcome{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	matches, err := a.Store.LoadMatches(ctx)
	if err != nil {
		return EndOutcome{}, fmt.Errorf("failed to load matches: %w", err)
	}
	m, ok := logic.FindMatch(matches, number)
	if !ok {
		return EndOutcome{Status: EndMatchNotFound}, nil
	}

	winner, err := logic.DetermineWinner(m, r)
	if err != nil {
		return EndOutcome{}, err
	}

	err = a.Store.UpdateMatchResult(ctx, number, r, winner)
	if errors.Is(err, shared.ErrNotFound) {
		return EndOutcome{Status: EndMatchNotFound}, nil
	}
	if err != nil {
		return EndOutcome{}, err
	}

	if m.Done {
		log.Warn("Overwriting result of finished match", "match", number, "previous", m.Result, "result", r)
	}
	m.Result, m.Winner, m.Done = r, winner, true

	a.Metrics.IncMatchesEnded()
	log.Info("Match ended", "match", number, "result", r, "winner", winner)
	return EndOutcome{Status: EndSuccess, Match: m}, nil
}

// GetMatches returns every match ordered by number
func (a *API) GetMatches(ctx context.Context) ([]shared.Match, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.Store.LoadMatches(ctx)
}

// GetMatchViews returns every match with its current lifecycle state
func (a *API) GetMatchViews(ctx context.Context) ([]MatchView, error) {
	matches, err := a.GetMatches(ctx)
	if err != nil {
		return nil, err
	}

	now := a.now()
	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, MatchView{Match: m, Status: logic.StatusOf(m, now)})
	}
	return views, nil
}

// GetMatch returns a single match with its current lifecycle state, or an error wrapping ErrNotFound
func (a *API) GetMatch(ctx context.Context, number int) (MatchView, error) {
	matches, err := a.GetMatches(ctx)
	if err != nil {
		return MatchView{}, err
	}
	m, ok := logic.FindMatch(matches, number)
	if !ok {
		return MatchView{}, fmt.Errorf("match %d: %w", number, shared.ErrNotFound)
	}
	return MatchView{Match: m, Status: a.StatusOf(m)}, nil
}

// endregion

// region Scores

// RecomputeScores derives every user's score from scratch and caches the result.
// Preconditions: None, reads the current matches, picks and stage multipliers
// Postconditions: Persists and returns one score per user with a pick, sorted by user id. If a finished match's stage
// has no multiplier a *shared.LookupError is returned and nothing is persisted
func (a *API) RecomputeScores(ctx context.Context) ([]shared.Score, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	start := time.Now()

	matches, err := a.Store.LoadMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}
	picks, err := a.Store.LoadPicks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load picks: %w", err)
	}
	multipliers, err := a.Store.LoadMultipliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stage multipliers: %w", err)
	}

	scores, err := logic.CalculateScores(matches, picks, multipliers)
	if err != nil {
		var lookupErr *shared.LookupError
		if errors.As(err, &lookupErr) {
			a.Metrics.IncLookupFailures()
			log.Error("Score recomputation aborted", "match", lookupErr.MatchNumber, "stage", lookupErr.Stage)
		}
		return nil, err
	}

	if err := a.Store.UpsertScores(ctx, scores); err != nil {
		return nil, fmt.Errorf("failed to store scores: %w", err)
	}

	a.Metrics.ObserveRecompute(time.Since(start).Seconds())
	log.Debug("Scores recomputed", "users", len(scores), "duration", time.Since(start))
	return scores, nil
}

// GetScores returns the cached scores from the last recomputation, sorted by user id
func (a *API) GetScores(ctx context.Context) ([]shared.Score, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	totals, err := a.Store.LoadScores(ctx)
	if err != nil {
		return nil, err
	}
	return logic.SortScores(totals), nil
}

// GetLeaderboard recomputes scores and ranks them highest first, ties broken by user id
func (a *API) GetLeaderboard(ctx context.Context) ([]shared.Score, error) {
	scores, err := a.RecomputeScores(ctx)
	if err != nil {
		return nil, err
	}
	return logic.RankScores(scores), nil
}

// endregion

// region Multipliers

// GetMultipliers returns every stage multiplier sorted by stage name
func (a *API) GetMultipliers(ctx context.Context) ([]shared.Multiplier, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	byStage, err := a.Store.LoadMultipliers(ctx)
	if err != nil {
		return nil, err
	}

	multipliers := make([]shared.Multiplier, 0, len(byStage))
	for stage, points := range byStage {
		multipliers = append(multipliers, shared.Multiplier{Stage: stage, Points: points})
	}
	slices.SortFunc(multipliers, func(x, y shared.Multiplier) int {
		return cmp.Compare(x.Stage, y.Stage)
	})
	return multipliers, nil
}

// SetMultiplier creates or replaces the points a correct pick is worth in a stage. Operator seeding only
func (a *API) SetMultiplier(ctx context.Context, stage string, points int) error {
	stage = strings.TrimSpace(stage)
	if stage == "" {
		return fmt.Errorf("%w: stage cannot be empty", shared.ErrInvalidInput)
	}
	if points <= 0 {
		return fmt.Errorf("%w: multiplier must be positive, got %d", shared.ErrInvalidInput, points)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.Store.UpsertMultiplier(ctx, shared.Multiplier{Stage: stage, Points: points}); err != nil {
		return err
	}
	log.Info("Stage multiplier set", "stage", stage, "points", points)
	return nil
}

// endregion

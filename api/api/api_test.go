/* api_test.go
 * Contains unit tests for api.go - testing all public API methods against the in-memory MockStore
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"pickems-tracker/api/logic"
	"pickems-tracker/api/metrics"
	"pickems-tracker/api/shared"
	"pickems-tracker/api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Between the kick-off of sample match 1 and sample match 2, so match 1 is finished and matches 2 and 3 are open
var testNow = time.Unix(1700005000, 0)

type testEnv struct {
	api     *API
	store   *MockStore
	metrics *metrics.Mock
	now     time.Time
}

func newTestEnv(t *testing.T, s *MockStore) *testEnv {
	t.Helper()

	env := &testEnv{store: s, metrics: metrics.NewMock(), now: testNow}
	a, err := NewAPI(s, env.metrics, WithClock(func() time.Time { return env.now }))
	require.NoError(t, err)
	env.api = a
	return env
}

// region NewAPI tests

func TestNewAPI_MissingDependencies(t *testing.T) {
	_, err := NewAPI(nil, metrics.NewMock())
	assert.ErrorContains(t, err, "store is required")

	_, err = NewAPI(NewMockStore(), nil)
	assert.ErrorContains(t, err, "metrics are required")
}

func TestNewAPI_DefaultClock(t *testing.T) {
	a, err := NewAPI(NewMockStore(), metrics.NewMock())
	require.NoError(t, err)

	future := shared.Match{ScheduledTime: time.Now().Add(time.Hour).Unix()}
	assert.Equal(t, logic.StatusOpen, a.StatusOf(future))
}

func TestAPI_Close(t *testing.T) {
	env := newTestEnv(t, NewMockStore())

	require.NoError(t, env.api.Close(context.Background()))
	assert.True(t, env.store.Closed)
}

// endregion

// region RegisterPick tests

func TestRegisterPick_Accepted(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())

	outcome, err := env.api.RegisterPick(context.Background(), 2, "alice", "team c")

	require.NoError(t, err)
	assert.True(t, outcome.Accepted())
	assert.NoError(t, outcome.Reason())
	assert.Equal(t, "Team C", outcome.Choice, "the canonical team name is stored")
	assert.Equal(t, 2, outcome.Match.Number)

	picks, err := env.api.GetPicks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []shared.Pick{{MatchNumber: 2, UserID: "alice", Choice: "Team C"}}, picks)
	assert.Equal(t, 1, env.metrics.Picks("accepted"))
}

func TestRegisterPick_SecondPickOverwrites(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())
	ctx := context.Background()

	_, err := env.api.RegisterPick(ctx, 2, "alice", "Team C")
	require.NoError(t, err)
	outcome, err := env.api.RegisterPick(ctx, 2, "alice", "Team D")
	require.NoError(t, err)
	assert.True(t, outcome.Accepted())

	picks, err := env.api.GetPicks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []shared.Pick{{MatchNumber: 2, UserID: "alice", Choice: "Team D"}}, picks)
}

func TestRegisterPick_MatchNotFound(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())

	outcome, err := env.api.RegisterPick(context.Background(), 999, "alice", "Team C")

	require.NoError(t, err)
	assert.Equal(t, PickMatchNotFound, outcome.Status)
	assert.ErrorIs(t, outcome.Reason(), shared.ErrNotFound)
	assert.Zero(t, env.store.Writes)
	assert.Equal(t, 1, env.metrics.Picks("not_found"))
}

func TestRegisterPick_ClosedAfterKickOff(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())
	ctx := context.Background()
	_, err := env.api.RegisterPick(ctx, 2, "alice", "Team C")
	require.NoError(t, err)

	env.now = time.Unix(1700010000, 0) // the scheduled instant of match 2
	beforeMatches, beforePicks, beforeScores := env.store.Snapshot()

	outcome, err := env.api.RegisterPick(ctx, 2, "alice", "Team D")

	require.NoError(t, err)
	assert.Equal(t, PickClosed, outcome.Status)
	assert.ErrorIs(t, outcome.Reason(), shared.ErrClosedForPicking)
	afterMatches, afterPicks, afterScores := env.store.Snapshot()
	assert.Equal(t, beforeMatches, afterMatches)
	assert.Equal(t, beforePicks, afterPicks)
	assert.Equal(t, beforeScores, afterScores)
}

func TestRegisterPick_ClosedOnceFinished(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())

	outcome, err := env.api.RegisterPick(context.Background(), 1, "alice", "Team A")

	require.NoError(t, err)
	assert.Equal(t, PickClosed, outcome.Status)
	assert.Zero(t, env.store.Writes)
}

func TestRegisterPick_ClosedWhenEndedBeforeKickOff(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())
	ctx := context.Background()
	_, err := env.api.EndMatch(ctx, 3, "2-0")
	require.NoError(t, err)

	outcome, err := env.api.RegisterPick(ctx, 3, "alice", "Team A")

	require.NoError(t, err)
	assert.Equal(t, PickClosed, outcome.Status)
}

func TestRegisterPick_InvalidChoice(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())

	outcome, err := env.api.RegisterPick(context.Background(), 2, "alice", "Team Z")

	require.NoError(t, err)
	assert.Equal(t, PickInvalidChoice, outcome.Status)
	assert.ErrorIs(t, outcome.Reason(), shared.ErrInvalidChoice)
	assert.Zero(t, env.store.Writes)
}

func TestRegisterPick_EmptyUser(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())

	_, err := env.api.RegisterPick(context.Background(), 2, "  ", "Team C")

	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestRegisterPick_StoreErrors(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name   string
		inject func(*MockStore)
	}{
		{"load matches", func(s *MockStore) { s.LoadMatchesError = boom }},
		{"upsert pick", func(s *MockStore) { s.UpsertPickError = boom }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSeededMockStore()
			tt.inject(s)
			env := newTestEnv(t, s)

			_, err := env.api.RegisterPick(context.Background(), 2, "alice", "Team C")

			assert.ErrorIs(t, err, boom)
		})
	}
}

func TestRegisterPick_Concurrent(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			choice := "Team C"
			if i%2 == 0 {
				choice = "Team D"
			}
			_, err := env.api.RegisterPick(ctx, 2, fmt.Sprintf("user%02d", i), choice)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	users, err := env.api.GetUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 20)
}

func TestRegisterPickAs_StoresUsername(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())
	ctx := context.Background()

	outcome, err := env.api.RegisterPickAs(ctx, 2, shared.User{UserID: "1234", Username: "alice"}, "Team C")
	require.NoError(t, err)
	assert.True(t, outcome.Accepted())
	_, err = env.api.RegisterPickAs(ctx, 2, shared.User{UserID: "1234", Username: "alice_renamed"}, "Team D")
	require.NoError(t, err)

	picks, err := env.api.GetPicks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []shared.Pick{{MatchNumber: 2, UserID: "1234", Choice: "Team D", Username: "alice_renamed"}}, picks)
	assert.Equal(t, "alice_renamed", picks[0].DisplayName())
}

func TestRegisterPick_ClosedByStoreAtWrite(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())
	env.store.UpsertPickError = fmt.Errorf("match 2: %w", shared.ErrClosedForPicking)

	outcome, err := env.api.RegisterPick(context.Background(), 2, "alice", "Team C")

	require.NoError(t, err)
	assert.Equal(t, PickClosed, outcome.Status)
	assert.Equal(t, 1, env.metrics.Picks("closed"))
}

// endsMatchOnLoad records a result through another API right after its first LoadMatches, the way an operator
// running the CLI against the same database file can
type endsMatchOnLoad struct {
	store.Interface
	once sync.Once
	end  func()
}

func (s *endsMatchOnLoad) LoadMatches(ctx context.Context) ([]shared.Match, error) {
	matches, err := s.Interface.LoadMatches(ctx)
	s.once.Do(s.end)
	return matches, err
}

func TestRegisterPick_MatchEndedByAnotherProcess(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shared.db")
	botStore, err := store.NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	cliStore, err := store.NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Seed(ctx, cliStore, store.CreateSampleMatches(), store.CreateSampleMultipliers()))

	clock := WithClock(func() time.Time { return testNow })
	cli, err := NewAPI(cliStore, metrics.NewMock(), clock)
	require.NoError(t, err)
	defer cli.Close(ctx)
	racing := &endsMatchOnLoad{Interface: botStore, end: func() {
		_, err := cli.EndMatch(ctx, 3, "2-0")
		require.NoError(t, err)
	}}
	bot, err := NewAPI(racing, metrics.NewMock(), clock)
	require.NoError(t, err)
	defer bot.Close(ctx)

	outcome, err := bot.RegisterPick(ctx, 3, "late", "Team D")

	require.NoError(t, err)
	assert.Equal(t, PickClosed, outcome.Status)
	match, err := cli.GetMatch(ctx, 3)
	require.NoError(t, err)
	assert.True(t, match.Done)
	picks, err := cli.GetPicks(ctx)
	require.NoError(t, err)
	assert.Empty(t, picks)
}

// endregion

// region AddMatch tests

func TestAddMatch_NumbersSequentially(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())

	m, err := env.api.AddMatch(context.Background(), " Team E ", "Team F", "Semifinal", 1700030000)

	require.NoError(t, err)
	assert.Equal(t, shared.Match{
		Number:        4,
		Team1:         "Team E",
		Team2:         "Team F",
		Result:        shared.UnplayedResult,
		Stage:         "Semifinal",
		ScheduledTime: 1700030000,
	}, m)
	assert.Equal(t, 1, env.metrics.MatchesAdded())

	view, err := env.api.GetMatch(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, view.Open())
}

func TestAddMatch_FirstMatchIsOne(t *testing.T) {
	env := newTestEnv(t, NewMockStore())

	m, err := env.api.AddMatch(context.Background(), "Team A", "Team B", "Final", 1700030000)

	require.NoError(t, err)
	assert.Equal(t, 1, m.Number)
}

func TestAddMatch_InvalidInput(t *testing.T) {
	tests := []struct {
		name, team1, team2, stage string
	}{
		{"empty team1", "", "Team B", "Final"},
		{"empty team2", "Team A", " ", "Final"},
		{"empty stage", "Team A", "Team B", ""},
		{"same team", "Team A", "team a", "Final"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, NewMockStore())

			_, err := env.api.AddMatch(context.Background(), tt.team1, tt.team2, tt.stage, 0)

			assert.ErrorIs(t, err, shared.ErrInvalidInput)
			assert.Zero(t, env.store.Writes)
		})
	}
}

func TestAddMatch_InsertError(t *testing.T) {
	s := NewMockStore()
	s.InsertMatchError = errors.New("disk full")
	env := newTestEnv(t, s)

	_, err := env.api.AddMatch(context.Background(), "Team A", "Team B", "Final", 0)

	assert.ErrorContains(t, err, "disk full")
	assert.Zero(t, env.metrics.MatchesAdded())
}

// endregion

// region ChangeMatchVariable tests

func TestChangeMatchVariable(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())
	ctx := context.Background()

	m, err := env.api.ChangeMatchVariable(ctx, 2, "TIME", "1600000000")
	require.NoError(t, err)
	assert.Equal(t, int64(1600000000), m.ScheduledTime)
	assert.Equal(t, logic.StatusStarted, env.api.StatusOf(m))

	m, err = env.api.ChangeMatchVariable(ctx, 2, "stage", "Semifinal")
	require.NoError(t, err)
	assert.Equal(t, "Semifinal", m.Stage)

	m, err = env.api.ChangeMatchVariable(ctx, 1, "done", "0")
	require.NoError(t, err)
	assert.False(t, m.Done, "overrides skip lifecycle validation")
}

func TestChangeMatchVariable_InvalidInputWritesNothing(t *testing.T) {
	tests := []struct {
		name, field, value string
	}{
		{"unknown field", "started", "1"},
		{"bad time", "time", "tomorrow"},
		{"bad result", "result", "two-one"},
		{"bad done", "done", "maybe"},
		{"empty team", "team1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, NewSeededMockStore())

			_, err := env.api.ChangeMatchVariable(context.Background(), 2, tt.field, tt.value)

			assert.ErrorIs(t, err, shared.ErrInvalidInput)
			assert.Zero(t, env.store.Writes)
		})
	}
}

func TestChangeMatchVariable_NotFound(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())

	_, err := env.api.ChangeMatchVariable(context.Background(), 999, "stage", "Final")

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

// endregion

// region EndMatch tests

func TestEndMatch_RecordsWinner(t *testing.T) {
	tests := []struct {
		result string
		winner string
	}{
		{"2-0", "Team C"},
		{"1-2", "Team D"},
	}

	for _, tt := range tests {
		t.Run(tt.result, func(t *testing.T) {
			env := newTestEnv(t, NewSeededMockStore())

			outcome, err := env.api.EndMatch(context.Background(), 2, tt.result)

			require.NoError(t, err)
			assert.True(t, outcome.Found())
			assert.True(t, outcome.Match.Done)
			assert.Equal(t, tt.winner, outcome.Match.Winner)
			assert.Equal(t, tt.result, outcome.Match.Result.String())
			assert.Equal(t, outcome.Match, env.store.Matches[2])
		})
	}
}

func TestEndMatch_TwiceLastWriteWins(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())
	ctx := context.Background()

	_, err := env.api.EndMatch(ctx, 2, "2-0")
	require.NoError(t, err)
	outcome, err := env.api.EndMatch(ctx, 2, "0-3")
	require.NoError(t, err)

	assert.Equal(t, "Team D", outcome.Match.Winner)
	assert.Equal(t, "Team D", env.store.Matches[2].Winner)
	assert.Equal(t, 2, env.metrics.MatchesEnded())
}

func TestEndMatch_NotFoundLeavesStateUnchanged(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())
	beforeMatches, beforePicks, beforeScores := env.store.Snapshot()

	outcome, err := env.api.EndMatch(context.Background(), 999, "2-1")

	require.NoError(t, err)
	assert.False(t, outcome.Found())
	assert.Equal(t, EndMatchNotFound, outcome.Status)
	afterMatches, afterPicks, afterScores := env.store.Snapshot()
	assert.Equal(t, beforeMatches, afterMatches)
	assert.Equal(t, beforePicks, afterPicks)
	assert.Equal(t, beforeScores, afterScores)
}

func TestEndMatch_MalformedResultLeavesStateUnchanged(t *testing.T) {
	for _, result := range []string{"notaresult", "", "2", "a-b", "-1-2", "2-1-0"} {
		t.Run(result, func(t *testing.T) {
			env := newTestEnv(t, NewSeededMockStore())

			_, err := env.api.EndMatch(context.Background(), 2, result)

			assert.ErrorIs(t, err, shared.ErrInvalidInput)
			assert.Zero(t, env.store.Writes)
		})
	}
}

func TestEndMatch_TieRejected(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())

	_, err := env.api.EndMatch(context.Background(), 2, "1-1")

	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	assert.False(t, env.store.Matches[2].Done)
}

func TestEndMatch_RaceWithMissingRow(t *testing.T) {
	s := NewSeededMockStore()
	s.UpdateMatchResultError = fmt.Errorf("match 2: %w", shared.ErrNotFound)
	env := newTestEnv(t, s)

	outcome, err := env.api.EndMatch(context.Background(), 2, "2-0")

	require.NoError(t, err)
	assert.Equal(t, EndMatchNotFound, outcome.Status)
}

// endregion

// region Score tests

func TestRecomputeScores_QuarterfinalScenario(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())
	ctx := context.Background()

	_, err := env.api.RegisterPick(ctx, 2, "u1", "Team C")
	require.NoError(t, err)
	_, err = env.api.RegisterPick(ctx, 2, "u2", "Team D")
	require.NoError(t, err)
	_, err = env.api.EndMatch(ctx, 2, "2-1")
	require.NoError(t, err)

	scores, err := env.api.RecomputeScores(ctx)

	require.NoError(t, err)
	assert.Equal(t, []shared.Score{{UserID: "u1", Value: 2}, {UserID: "u2", Value: 0}}, scores)
	assert.Equal(t, map[string]int{"u1": 2, "u2": 0}, env.store.Scores)
	assert.Equal(t, 1, env.metrics.Recomputations())
}

func TestRecomputeScores_Idempotent(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())
	ctx := context.Background()
	_, err := env.api.RegisterPick(ctx, 3, "u1", "Team A")
	require.NoError(t, err)
	_, err = env.api.EndMatch(ctx, 3, "1-0")
	require.NoError(t, err)

	first, err := env.api.RecomputeScores(ctx)
	require.NoError(t, err)
	second, err := env.api.RecomputeScores(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []shared.Score{{UserID: "u1", Value: 5}}, second)
}

func TestRecomputeScores_LookupFailurePersistsNothing(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())
	ctx := context.Background()
	m, err := env.api.AddMatch(ctx, "Team E", "Team F", "Playoffs", 1700030000)
	require.NoError(t, err)
	_, err = env.api.RegisterPick(ctx, m.Number, "u1", "Team E")
	require.NoError(t, err)
	_, err = env.api.EndMatch(ctx, m.Number, "2-0")
	require.NoError(t, err)
	env.store.Scores["u1"] = 7

	_, err = env.api.RecomputeScores(ctx)

	var lookupErr *shared.LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, m.Number, lookupErr.MatchNumber)
	assert.Equal(t, "Playoffs", lookupErr.Stage)
	assert.Equal(t, map[string]int{"u1": 7}, env.store.Scores)
	assert.Equal(t, 1, env.metrics.LookupFailures())
	assert.Zero(t, env.metrics.Recomputations())
}

func TestRecomputeScores_StoreErrors(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name   string
		inject func(*MockStore)
	}{
		{"load matches", func(s *MockStore) { s.LoadMatchesError = boom }},
		{"load picks", func(s *MockStore) { s.LoadPicksError = boom }},
		{"load multipliers", func(s *MockStore) { s.LoadMultipliersError = boom }},
		{"upsert scores", func(s *MockStore) { s.UpsertScoresError = boom }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSeededMockStore()
			tt.inject(s)
			env := newTestEnv(t, s)

			_, err := env.api.RecomputeScores(context.Background())

			assert.ErrorIs(t, err, boom)
		})
	}
}

func TestGetScores_ReturnsCacheSortedByUser(t *testing.T) {
	s := NewMockStore()
	s.Scores = map[string]int{"zed": 4, "amy": 9, "bob": 0}
	env := newTestEnv(t, s)

	scores, err := env.api.GetScores(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []shared.Score{{UserID: "amy", Value: 9}, {UserID: "bob", Value: 0}, {UserID: "zed", Value: 4}}, scores)
}

func TestGetLeaderboard_RanksByScore(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())
	ctx := context.Background()
	for _, pick := range []struct{ user, choice string }{{"amy", "Team D"}, {"bob", "Team C"}, {"cat", "Team C"}} {
		_, err := env.api.RegisterPick(ctx, 2, pick.user, pick.choice)
		require.NoError(t, err)
	}
	_, err := env.api.EndMatch(ctx, 2, "3-0")
	require.NoError(t, err)

	leaderboard, err := env.api.GetLeaderboard(ctx)

	require.NoError(t, err)
	assert.Equal(t, []shared.Score{{UserID: "bob", Value: 2}, {UserID: "cat", Value: 2}, {UserID: "amy", Value: 0}}, leaderboard)
}

// endregion

// region Read tests

func TestGetMatchViews(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())
	env.now = time.Unix(1700015000, 0)

	views, err := env.api.GetMatchViews(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, logic.StatusFinished, views[0].Status)
	assert.Equal(t, logic.StatusStarted, views[1].Status)
	assert.Equal(t, logic.StatusOpen, views[2].Status)
	assert.True(t, views[2].Open())
}

func TestGetMatch_NotFound(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())

	_, err := env.api.GetMatch(context.Background(), 42)

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGetUserPicksAndUsers(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())
	ctx := context.Background()
	_, err := env.api.RegisterPick(ctx, 3, "bob", "Team A")
	require.NoError(t, err)
	_, err = env.api.RegisterPick(ctx, 2, "bob", "Team C")
	require.NoError(t, err)
	_, err = env.api.RegisterPick(ctx, 2, "amy", "Team D")
	require.NoError(t, err)

	picks, err := env.api.GetUserPicks(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []shared.Pick{
		{MatchNumber: 2, UserID: "bob", Choice: "Team C"},
		{MatchNumber: 3, UserID: "bob", Choice: "Team A"},
	}, picks)

	users, err := env.api.GetUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"amy", "bob"}, users)
}

func TestGetMultipliers_SortedByStage(t *testing.T) {
	env := newTestEnv(t, NewSeededMockStore())

	multipliers, err := env.api.GetMultipliers(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []shared.Multiplier{{Stage: "Final", Points: 5}, {Stage: "Quarterfinal", Points: 2}}, multipliers)
}

func TestSetMultiplier(t *testing.T) {
	env := newTestEnv(t, NewMockStore())
	ctx := context.Background()

	require.NoError(t, env.api.SetMultiplier(ctx, "Semifinal", 3))
	assert.Equal(t, 3, env.store.Multipliers["Semifinal"])

	assert.ErrorIs(t, env.api.SetMultiplier(ctx, "", 3), shared.ErrInvalidInput)
	assert.ErrorIs(t, env.api.SetMultiplier(ctx, "Final", 0), shared.ErrInvalidInput)
}

func TestPickStatus_String(t *testing.T) {
	assert.Equal(t, "accepted", PickAccepted.String())
	assert.Equal(t, "not_found", PickMatchNotFound.String())
	assert.Equal(t, "closed", PickClosed.String())
	assert.Equal(t, "invalid_choice", PickInvalidChoice.String())
	assert.Equal(t, "unknown", PickStatus(9).String())
}

// endregion

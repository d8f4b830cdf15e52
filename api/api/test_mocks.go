/* test_mocks.go
 * Contains mock structures and interfaces for testing the API package
 */

package api

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"pickems-tracker/api/shared"
	"pickems-tracker/api/store"
)

var _ store.Interface = (*MockStore)(nil)

// MockStore implements store.Interface in memory for testing
type MockStore struct {
	mu sync.Mutex

	// Storage for mock data
	Matches     map[int]shared.Match
	Picks       map[pickKey]shared.Pick
	Scores      map[string]int
	Multipliers map[string]int

	// Error injection for testing error paths
	LoadMatchesError       error
	LoadPicksError         error
	LoadScoresError        error
	LoadMultipliersError   error
	UpsertPickError        error
	UpsertScoresError      error
	InsertMatchError       error
	PatchMatchFieldError   error
	UpdateMatchResultError error
	UpsertMultiplierError  error

	// Writes counts every successful mutation so tests can assert nothing was written
	Writes int
	Closed bool
}

type pickKey struct {
	match int
	user  string
}

// NewMockStore creates an empty MockStore
func NewMockStore() *MockStore {
	return &MockStore{
		Matches:     make(map[int]shared.Match),
		Picks:       make(map[pickKey]shared.Pick),
		Scores:      make(map[string]int),
		Multipliers: make(map[string]int),
	}
}

// NewSeededMockStore creates a MockStore holding the sample matches and multipliers from the store package
func NewSeededMockStore() *MockStore {
	m := NewMockStore()
	if err := store.Seed(context.Background(), m, store.CreateSampleMatches(), store.CreateSampleMultipliers()); err != nil {
		panic(err)
	}
	m.Writes = 0
	return m
}

func (m *MockStore) LoadMatches(_ context.Context) ([]shared.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadMatchesError != nil {
		return nil, m.LoadMatchesError
	}

	matches := make([]shared.Match, 0, len(m.Matches))
	for _, match := range m.Matches {
		matches = append(matches, match)
	}
	slices.SortFunc(matches, func(a, b shared.Match) int { return cmp.Compare(a.Number, b.Number) })
	return matches, nil
}

func (m *MockStore) LoadPicks(_ context.Context) ([]shared.Pick, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadPicksError != nil {
		return nil, m.LoadPicksError
	}

	picks := make([]shared.Pick, 0, len(m.Picks))
	for _, pick := range m.Picks {
		picks = append(picks, pick)
	}
	slices.SortFunc(picks, func(a, b shared.Pick) int {
		if c := cmp.Compare(a.MatchNumber, b.MatchNumber); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})
	return picks, nil
}

func (m *MockStore) LoadScores(_ context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadScoresError != nil {
		return nil, m.LoadScoresError
	}

	scores := make(map[string]int, len(m.Scores))
	for user, score := range m.Scores {
		scores[user] = score
	}
	return scores, nil
}

func (m *MockStore) LoadMultipliers(_ context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadMultipliersError != nil {
		return nil, m.LoadMultipliersError
	}

	multipliers := make(map[string]int, len(m.Multipliers))
	for stage, points := range m.Multipliers {
		multipliers[stage] = points
	}
	return multipliers, nil
}

func (m *MockStore) UpsertPick(_ context.Context, pick shared.Pick, now int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertPickError != nil {
		return m.UpsertPickError
	}
	match, ok := m.Matches[pick.MatchNumber]
	if !ok || match.Done || now >= match.ScheduledTime {
		return fmt.Errorf("match %d: %w", pick.MatchNumber, shared.ErrClosedForPicking)
	}

	m.Picks[pickKey{match: pick.MatchNumber, user: pick.UserID}] = pick
	m.Writes++
	return nil
}

// AddPick stores a pick without checking its match, for fixtures that need picks on finished matches
func (m *MockStore) AddPick(pick shared.Pick) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Picks[pickKey{match: pick.MatchNumber, user: pick.UserID}] = pick
}

func (m *MockStore) UpsertScore(ctx context.Context, score shared.Score) error {
	return m.UpsertScores(ctx, []shared.Score{score})
}

func (m *MockStore) UpsertScores(_ context.Context, scores []shared.Score) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertScoresError != nil {
		return m.UpsertScoresError
	}

	for _, score := range scores {
		m.Scores[score.UserID] = score.Value
	}
	m.Writes++
	return nil
}

func (m *MockStore) InsertMatch(_ context.Context, match shared.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertMatchError != nil {
		return m.InsertMatchError
	}
	if _, exists := m.Matches[match.Number]; exists {
		return fmt.Errorf("match %d already exists", match.Number)
	}

	m.Matches[match.Number] = match
	m.Writes++
	return nil
}

func (m *MockStore) PatchMatchField(_ context.Context, number int, patch shared.MatchPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PatchMatchFieldError != nil {
		return m.PatchMatchFieldError
	}

	match, ok := m.Matches[number]
	if !ok {
		return fmt.Errorf("match %d: %w", number, shared.ErrNotFound)
	}
	m.Matches[number] = patch.Apply(match)
	m.Writes++
	return nil
}

func (m *MockStore) UpdateMatchResult(_ context.Context, number int, result shared.Result, winner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateMatchResultError != nil {
		return m.UpdateMatchResultError
	}

	match, ok := m.Matches[number]
	if !ok {
		return fmt.Errorf("match %d: %w", number, shared.ErrNotFound)
	}
	match.Result, match.Winner, match.Done = result, winner, true
	m.Matches[number] = match
	m.Writes++
	return nil
}

func (m *MockStore) UpsertMultiplier(_ context.Context, multiplier shared.Multiplier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertMultiplierError != nil {
		return m.UpsertMultiplierError
	}

	m.Multipliers[multiplier.Stage] = multiplier.Points
	m.Writes++
	return nil
}

func (m *MockStore) Close(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// Snapshot returns copies of every record set, for before/after comparisons
func (m *MockStore) Snapshot() ([]shared.Match, []shared.Pick, map[string]int) {
	matches, _ := m.LoadMatches(context.Background())
	picks, _ := m.LoadPicks(context.Background())
	scores, _ := m.LoadScores(context.Background())
	return matches, picks, scores
}

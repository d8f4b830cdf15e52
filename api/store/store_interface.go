/* store_interface.go
 * Contains the store Interface for dependency injection and testing
 */

package store

import (
	"context"

	"pickems-tracker/api/shared"
)

// Interface defines the persistence operations the engine relies on. Both SQLiteStore and MongoStore
// implement it, and the api package mocks it in tests.
type Interface interface {
	// LoadMatches returns every match ordered by number
	LoadMatches(ctx context.Context) ([]shared.Match, error)
	// LoadPicks returns every pick ordered by match number then user id
	LoadPicks(ctx context.Context) ([]shared.Pick, error)
	// LoadScores returns the cached score of every user that has been scored
	LoadScores(ctx context.Context) (map[string]int, error)
	// LoadMultipliers returns the points per correct pick for every known stage
	LoadMultipliers(ctx context.Context) (map[string]int, error)

	// UpsertPick stores or overwrites a pick, but only while its match is still open at now (unix seconds): not done
	// and now before the scheduled time. The check and the write are one atomic operation, so a result recorded by
	// another process in between can never leave a pick on a finished match. Returns an error wrapping
	// shared.ErrClosedForPicking, and writes nothing, when the match is closed or missing
	UpsertPick(ctx context.Context, pick shared.Pick, now int64) error
	UpsertScore(ctx context.Context, score shared.Score) error
	// UpsertScores writes a whole recomputation in one batch
	UpsertScores(ctx context.Context, scores []shared.Score) error

	InsertMatch(ctx context.Context, m shared.Match) error
	// PatchMatchField overwrites a single field. Returns shared.ErrNotFound if no match has that number
	PatchMatchField(ctx context.Context, number int, patch shared.MatchPatch) error
	// UpdateMatchResult records a result and winner and marks the match done in the same write.
	// Returns shared.ErrNotFound if no match has that number
	UpdateMatchResult(ctx context.Context, number int, result shared.Result, winner string) error

	UpsertMultiplier(ctx context.Context, m shared.Multiplier) error

	Close(ctx context.Context) error
}

// Ensure both stores implement Interface
var (
	_ Interface = (*SQLiteStore)(nil)
	_ Interface = (*MongoStore)(nil)
)

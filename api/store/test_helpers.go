/* test_helpers.go
 * Contains sample data shared by the store tests and the packages that seed a store in their own tests
 */

package store

import (
	"context"
	"fmt"

	"pickems-tracker/api/shared"
)

// CreateSampleMatches returns two unplayed matches and one finished match
func CreateSampleMatches() []shared.Match {
	return []shared.Match{
		{Number: 1, Team1: "Team A", Team2: "Team B", Result: shared.Result{Team1Score: 2, Team2Score: 1}, Stage: "Quarterfinal", ScheduledTime: 1700000000, Done: true, Winner: "Team A"},
		{Number: 2, Team1: "Team C", Team2: "Team D", Result: shared.UnplayedResult, Stage: "Quarterfinal", ScheduledTime: 1700010000},
		{Number: 3, Team1: "Team A", Team2: "Team D", Result: shared.UnplayedResult, Stage: "Final", ScheduledTime: 1700020000},
	}
}

// CreateSampleMultipliers returns multipliers for every stage used by CreateSampleMatches
func CreateSampleMultipliers() []shared.Multiplier {
	return []shared.Multiplier{
		{Stage: "Quarterfinal", Points: 2},
		{Stage: "Final", Points: 5},
	}
}

// Seed writes matches and multipliers into any store
func Seed(ctx context.Context, s Interface, matches []shared.Match, multipliers []shared.Multiplier) error {
	for _, m := range matches {
		if err := s.InsertMatch(ctx, m); err != nil {
			return fmt.Errorf("seed match %d: %w", m.Number, err)
		}
	}
	for _, m := range multipliers {
		if err := s.UpsertMultiplier(ctx, m); err != nil {
			return fmt.Errorf("seed multiplier %s: %w", m.Stage, err)
		}
	}
	return nil
}

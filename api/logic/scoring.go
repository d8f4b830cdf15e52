/* scoring.go
 * Contains the score engine: a pure function from matches, picks and stage multipliers to user totals
 */

package logic

import (
	"cmp"
	"slices"

	"pickems-tracker/api/shared"
)

// CalculateScores recomputes every user's total from scratch.
// Preconditions: Receives every stored match, pick and stage multiplier
// Postconditions: Returns one Score per distinct user that has at least one pick, sorted by user id. A user
// earns the stage multiplier for each finished match where their choice equals the winner. If a scoring
// match's stage has no multiplier a *shared.LookupError is returned and no scores are produced
func CalculateScores(matches []shared.Match, picks []shared.Pick, multipliers map[string]int) ([]shared.Score, error) {
	totals := make(map[string]int)
	picksByMatch := make(map[int][]shared.Pick)
	for _, pick := range picks {
		totals[pick.UserID] += 0
		picksByMatch[pick.MatchNumber] = append(picksByMatch[pick.MatchNumber], pick)
	}

	// Walk finished matches in number order so a lookup failure always names the same match
	finished := make([]shared.Match, 0, len(matches))
	for _, m := range matches {
		if m.Done {
			finished = append(finished, m)
		}
	}
	slices.SortFunc(finished, func(a, b shared.Match) int {
		return cmp.Compare(a.Number, b.Number)
	})

	for _, m := range finished {
		for _, pick := range picksByMatch[m.Number] {
			if pick.Choice != m.Winner {
				continue
			}
			points, ok := multipliers[m.Stage]
			if !ok {
				return nil, &shared.LookupError{MatchNumber: m.Number, Stage: m.Stage}
			}
			totals[pick.UserID] += points
		}
	}

	return SortScores(totals), nil
}

// SortScores flattens a user -> score map into a slice ordered by user id
func SortScores(totals map[string]int) []shared.Score {
	scores := make([]shared.Score, 0, len(totals))
	for userID, value := range totals {
		scores = append(scores, shared.Score{UserID: userID, Value: value})
	}
	slices.SortFunc(scores, func(a, b shared.Score) int {
		return cmp.Compare(a.UserID, b.UserID)
	})
	return scores
}

// RankScores orders scores for a leaderboard: highest first, ties broken by user id
func RankScores(scores []shared.Score) []shared.Score {
	ranked := slices.Clone(scores)
	slices.SortFunc(ranked, func(a, b shared.Score) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})
	return ranked
}

// DistinctUsers returns the ids of every user with at least one pick, sorted
func DistinctUsers(picks []shared.Pick) []string {
	seen := make(map[string]bool)
	var users []string
	for _, pick := range picks {
		if seen[pick.UserID] {
			continue
		}
		seen[pick.UserID] = true
		users = append(users, pick.UserID)
	}
	slices.Sort(users)
	return users
}

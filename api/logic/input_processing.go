/* input_processing.go
 * Contains the logic for resolving the team a user typed into one of the teams playing a match
 */

package logic

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ResolveChoice matches a user's typed choice against the two teams of a match.
// Preconditions: receives the raw choice and the match's two team names
// Postconditions: returns the canonical team name and true, or "" and false if the choice names neither team
// or could equally be either of them
func ResolveChoice(choice string, team1 string, team2 string) (string, bool) {
	choice = strings.TrimSpace(cleanQuotes(choice))
	if choice == "" {
		return "", false
	}

	// An exact (case-insensitive) match always wins over a fuzzy one
	for _, team := range []string{team1, team2} {
		if strings.EqualFold(choice, team) {
			return team, true
		}
	}

	fuzzyResults := fuzzy.RankFindFold(choice, []string{team1, team2})
	switch len(fuzzyResults) {
	case 0:
		return "", false
	case 1:
		return fuzzyResults[0].Target, true
	}

	// Both teams matched, take the closer one unless it is a draw
	sort.Sort(fuzzyResults)
	if fuzzyResults[0].Distance == fuzzyResults[1].Distance {
		return "", false
	}
	return fuzzyResults[0].Target, true
}

// cleanQuotes strips the straight and curly double quotes discord clients insert around multi-word names
func cleanQuotes(s string) string {
	s = strings.ReplaceAll(s, "\"", "")
	s = strings.ReplaceAll(s, "“", "")
	s = strings.ReplaceAll(s, "”", "")
	return s
}

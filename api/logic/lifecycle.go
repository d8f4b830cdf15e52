/* lifecycle.go
 * Contains the match lifecycle rules: when a match is open for picks, when it has started, and who won it
 */

package logic

import (
	"fmt"
	"time"

	"pickems-tracker/api/shared"
)

// Status is the lifecycle state of a match at a given instant
type Status int

const (
	StatusOpen Status = iota
	StatusStarted
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusStarted:
		return "started"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// StatusOf derives the lifecycle state of a match. A recorded result always means finished; otherwise the
// match has started once now reaches its scheduled time.
func StatusOf(m shared.Match, now time.Time) Status {
	if m.Done {
		return StatusFinished
	}
	if now.Unix() >= m.ScheduledTime {
		return StatusStarted
	}
	return StatusOpen
}

// IsOpenForPicks is the single openness check used by picking and by every display of a match
func IsOpenForPicks(m shared.Match, now time.Time) bool {
	return StatusOf(m, now) == StatusOpen
}

// DetermineWinner picks the winner of a match from its result.
// Preconditions: Receives the match and a parsed result where Team1Score belongs to m.Team1
// Postconditions: Returns m.Team1 if it scored more, m.Team2 if it scored more, or an error wrapping
// ErrInvalidInput for a tie since a finished match must have a winner
func DetermineWinner(m shared.Match, r shared.Result) (string, error) {
	if r.IsTie() {
		return "", fmt.Errorf("%w: result %s is a tie, match %d needs a winner", shared.ErrInvalidInput, r, m.Number)
	}
	if r.Team1Score > r.Team2Score {
		return m.Team1, nil
	}
	return m.Team2, nil
}

// NextMatchNumber returns max(existing numbers) + 1, or 1 when there are no matches
func NextMatchNumber(matches []shared.Match) int {
	highest := 0
	for _, m := range matches {
		if m.Number > highest {
			highest = m.Number
		}
	}
	return highest + 1
}

// FindMatch looks a match up by number
func FindMatch(matches []shared.Match, number int) (shared.Match, bool) {
	for _, m := range matches {
		if m.Number == number {
			return m, true
		}
	}
	return shared.Match{}, false
}

/* result.go
 * Contains the match result type and its parsing from and formatting to the "x-y" form
 */

package shared

import (
	"fmt"
	"strconv"
	"strings"
)

// UnplayedResult is the result stored on a match that has not been played
var UnplayedResult = Result{}

// Result is a final score in the form "a-b", where a belongs to Team1 and b to Team2
type Result struct {
	Team1Score int
	Team2Score int
}

// ParseResult parses a result string such as "2-1".
// Preconditions: Receives a string containing two non-negative integers separated by a single hyphen
// Postconditions: Returns the parsed Result, or an error wrapping ErrInvalidInput if the string is malformed
func ParseResult(s string) (Result, error) {
	left, right, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return Result{}, invalidInput("result %q must be in the form a-b", s)
	}

	a, err := parseGoals(left)
	if err != nil {
		return Result{}, invalidInput("result %q: %s", s, err)
	}
	b, err := parseGoals(right)
	if err != nil {
		return Result{}, invalidInput("result %q: %s", s, err)
	}
	return Result{Team1Score: a, Team2Score: b}, nil
}

// parseGoals only accepts plain digits, so "+1", " 1" and "-1" are all rejected
func parseGoals(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("missing score")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("score %q is not a non-negative integer", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("score %q is out of range", s)
	}
	return n, nil
}

func (r Result) String() string {
	return fmt.Sprintf("%d-%d", r.Team1Score, r.Team2Score)
}

// IsTie reports whether both teams scored the same
func (r Result) IsTie() bool {
	return r.Team1Score == r.Team2Score
}

/* errors.go
 * Contains the sentinel errors and error types returned across the tracker
 */

package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a match number does not resolve to a stored match
	ErrNotFound = errors.New("match not found")
	// ErrInvalidInput covers malformed results, unknown patch fields and bad patch values
	ErrInvalidInput = errors.New("invalid input")
	// ErrLookupFailure is returned when a finished match's stage has no multiplier
	ErrLookupFailure = errors.New("stage multiplier lookup failed")
	// ErrClosedForPicking is the rejection reason for picks made after a match started
	ErrClosedForPicking = errors.New("match is closed for picking")
	// ErrInvalidChoice is the rejection reason for picks naming neither team of the match
	ErrInvalidChoice = errors.New("choice does not name a team in the match")
)

// LookupError names the match and stage that could not be scored
type LookupError struct {
	MatchNumber int
	Stage       string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: match %d has stage %q with no multiplier", ErrLookupFailure, e.MatchNumber, e.Stage)
}

func (e *LookupError) Unwrap() error {
	return ErrLookupFailure
}

// invalidInput wraps ErrInvalidInput with a description of what was wrong
func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

/* models.go
 * This file contains the outcome types returned to api consumers
 */

package api

import (
	"pickems-tracker/api/logic"
	"pickems-tracker/api/shared"
)

// PickStatus is the result of a pick submission
type PickStatus int

const (
	PickAccepted PickStatus = iota
	PickMatchNotFound
	PickClosed
	PickInvalidChoice
)

func (s PickStatus) String() string {
	switch s {
	case PickAccepted:
		return "accepted"
	case PickMatchNotFound:
		return "not_found"
	case PickClosed:
		return "closed"
	case PickInvalidChoice:
		return "invalid_choice"
	default:
		return "unknown"
	}
}

// PickOutcome describes what happened to a pick. Rejections are outcomes, not errors
type PickOutcome struct {
	Status PickStatus
	// Choice is the canonical team name that was stored, set only when the pick was accepted
	Choice string
	// Match is the match the pick was made against, zero when it was not found
	Match shared.Match
}

// Accepted reports whether the pick was stored
func (o PickOutcome) Accepted() bool {
	return o.Status == PickAccepted
}

// Reason returns the sentinel error describing a rejection, or nil for an accepted pick
func (o PickOutcome) Reason() error {
	switch o.Status {
	case PickMatchNotFound:
		return shared.ErrNotFound
	case PickClosed:
		return shared.ErrClosedForPicking
	case PickInvalidChoice:
		return shared.ErrInvalidChoice
	default:
		return nil
	}
}

// EndStatus is the result of recording a match result
type EndStatus int

const (
	EndSuccess EndStatus = iota
	EndMatchNotFound
)

// EndOutcome describes a recorded result. Match holds the finished match on success
type EndOutcome struct {
	Status EndStatus
	Match  shared.Match
}

// Found reports whether the match existed and was ended
func (o EndOutcome) Found() bool {
	return o.Status == EndSuccess
}

// MatchView is a match together with its lifecycle state at the time it was read
type MatchView struct {
	shared.Match
	Status logic.Status
}

// Open reports whether picks are still accepted for the match
func (v MatchView) Open() bool {
	return v.Status == logic.StatusOpen
}

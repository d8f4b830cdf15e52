/* models.go
 * This file contain the domain records shared between the engine, the stores and the front-ends
 */

package shared

// User identifies whoever submitted a pick
type User struct {
	UserID   string
	Username string
}

// Match is a single fixture between two teams. Winner is only meaningful once Done is set
type Match struct {
	Number        int
	Team1         string
	Team2         string
	Result        Result
	Stage         string
	ScheduledTime int64 // unix seconds, picks close at this instant
	Done          bool
	Winner        string
}

// HasTeam reports whether team is one of the two sides of the match
func (m Match) HasTeam(team string) bool {
	return team == m.Team1 || team == m.Team2
}

// Pick is a user's prediction of the winner of one match. (MatchNumber, UserID) is unique.
// Username is the name the user had when the pick was last written and is only used for display
type Pick struct {
	MatchNumber int
	UserID      string
	Choice      string
	Username    string
}

// DisplayName returns the username recorded with the pick, falling back to the user id
func (p Pick) DisplayName() string {
	if p.Username != "" {
		return p.Username
	}
	return p.UserID
}

// Score is the cached total for a user. It is always derived from matches, picks and multipliers
type Score struct {
	UserID string
	Value  int
}

// Multiplier is the number of points a correct pick is worth in a stage
type Multiplier struct {
	Stage  string
	Points int
}

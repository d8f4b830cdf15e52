/* patch.go
 * Contains the closed set of match fields an operator may overwrite, and the typed patch built from
 * free-form "field value" input
 */

package shared

import "strings"

// MatchField is one overwritable attribute of a Match
type MatchField int

const (
	FieldTeam1 MatchField = iota + 1
	FieldTeam2
	FieldResult
	FieldStage
	FieldTime
	FieldDone
	FieldWinner
)

var matchFieldNames = map[MatchField]string{
	FieldTeam1:  "team1",
	FieldTeam2:  "team2",
	FieldResult: "result",
	FieldStage:  "stage",
	FieldTime:   "time",
	FieldDone:   "done",
	FieldWinner: "winner",
}

func (f MatchField) String() string {
	if name, ok := matchFieldNames[f]; ok {
		return name
	}
	return "unknown"
}

// MatchFields lists every patchable field in a stable order
func MatchFields() []MatchField {
	return []MatchField{FieldTeam1, FieldTeam2, FieldResult, FieldStage, FieldTime, FieldDone, FieldWinner}
}

// ParseMatchField resolves a field name, case-insensitively
func ParseMatchField(name string) (MatchField, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for field, fieldName := range matchFieldNames {
		if fieldName == name {
			return field, nil
		}
	}
	return 0, invalidInput("unknown match field %q", name)
}

// MatchPatch is a single typed overwrite of one match field. Only the value matching Field is used
type MatchPatch struct {
	Field  MatchField
	Text   string // team1, team2, stage, winner
	Result Result // result
	Time   int64  // time
	Done   bool   // done
}

// ParseMatchPatch validates a field name and value pair and converts it into a typed patch.
// Preconditions: Receives the field name and raw value exactly as the operator typed them
// Postconditions: Returns a MatchPatch ready to be applied by a store, or an error wrapping ErrInvalidInput
func ParseMatchPatch(fieldName string, value string) (MatchPatch, error) {
	field, err := ParseMatchField(fieldName)
	if err != nil {
		return MatchPatch{}, err
	}
	value = strings.TrimSpace(value)

	patch := MatchPatch{Field: field}
	switch field {
	case FieldTeam1, FieldTeam2, FieldStage:
		if value == "" {
			return MatchPatch{}, invalidInput("%s cannot be empty", field)
		}
		patch.Text = value
	case FieldWinner:
		// An empty winner clears it
		patch.Text = value
	case FieldResult:
		result, err := ParseResult(value)
		if err != nil {
			return MatchPatch{}, err
		}
		patch.Result = result
	case FieldTime:
		t, err := ParseTimestamp(value)
		if err != nil {
			return MatchPatch{}, err
		}
		patch.Time = t
	case FieldDone:
		done, err := parseFlag(value)
		if err != nil {
			return MatchPatch{}, err
		}
		patch.Done = done
	}
	return patch, nil
}

// Apply returns a copy of m with the patch applied
func (p MatchPatch) Apply(m Match) Match {
	switch p.Field {
	case FieldTeam1:
		m.Team1 = p.Text
	case FieldTeam2:
		m.Team2 = p.Text
	case FieldStage:
		m.Stage = p.Text
	case FieldWinner:
		m.Winner = p.Text
	case FieldResult:
		m.Result = p.Result
	case FieldTime:
		m.ScheduledTime = p.Time
	case FieldDone:
		m.Done = p.Done
	}
	return m
}

// parseFlag coerces the boolean spellings operators use, including the 0/1 integers the old tables held
func parseFlag(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "1", "true", "yes":
		return true, nil
	case "0", "false", "no":
		return false, nil
	}
	return false, invalidInput("done %q is not a boolean", value)
}

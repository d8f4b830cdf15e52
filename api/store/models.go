/* models.go
 * This file contains the structs that describe how records are stored as MongoDB documents, and the
 * conversions between them and the shared domain records
 */

package store

import (
	"fmt"

	"pickems-tracker/api/shared"
)

type matchDocument struct {
	Number int    `bson:"number"`
	Team1  string `bson:"team1"`
	Team2  string `bson:"team2"`
	Result string `bson:"result"`
	Stage  string `bson:"stage"`
	Time   int64  `bson:"time"`
	Done   bool   `bson:"done"`
	Winner string `bson:"winner,omitempty"`
}

type pickDocument struct {
	MatchNumber int    `bson:"match_number"`
	UserID      string `bson:"user_id"`
	Choice      string `bson:"choice"`
	Username    string `bson:"username,omitempty"`
}

type scoreDocument struct {
	UserID string `bson:"user_id"`
	Score  int    `bson:"score"`
}

type multiplierDocument struct {
	Stage      string `bson:"stage"`
	Multiplier int    `bson:"multiplier"`
}

func newMatchDocument(m shared.Match) matchDocument {
	return matchDocument{
		Number: m.Number,
		Team1:  m.Team1,
		Team2:  m.Team2,
		Result: m.Result.String(),
		Stage:  m.Stage,
		Time:   m.ScheduledTime,
		Done:   m.Done,
		Winner: m.Winner,
	}
}

func (d matchDocument) toMatch() (shared.Match, error) {
	result, err := shared.ParseResult(d.Result)
	if err != nil {
		return shared.Match{}, fmt.Errorf("match %d has a corrupt result: %w", d.Number, err)
	}
	return shared.Match{
		Number:        d.Number,
		Team1:         d.Team1,
		Team2:         d.Team2,
		Result:        result,
		Stage:         d.Stage,
		ScheduledTime: d.Time,
		Done:          d.Done,
		Winner:        d.Winner,
	}, nil
}

func (d pickDocument) toPick() shared.Pick {
	return shared.Pick{MatchNumber: d.MatchNumber, UserID: d.UserID, Choice: d.Choice, Username: d.Username}
}

// patchValue returns the document key and value a patch overwrites
func patchValue(patch shared.MatchPatch) (string, any, error) {
	switch patch.Field {
	case shared.FieldTeam1:
		return "team1", patch.Text, nil
	case shared.FieldTeam2:
		return "team2", patch.Text, nil
	case shared.FieldStage:
		return "stage", patch.Text, nil
	case shared.FieldWinner:
		return "winner", patch.Text, nil
	case shared.FieldResult:
		return "result", patch.Result.String(), nil
	case shared.FieldTime:
		return "time", patch.Time, nil
	case shared.FieldDone:
		return "done", patch.Done, nil
	}
	return "", nil, fmt.Errorf("%w: unknown match field %d", shared.ErrInvalidInput, patch.Field)
}

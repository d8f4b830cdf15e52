/* store.go
 * Contains the SQLiteStore struct and NewSQLiteStore function, the default persistence for matches, picks,
 * scores and stage multipliers. The schema is managed by goose from the embedded migrations directory
 */

package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"pickems-tracker/api/shared"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens the database file and migrates it to the latest schema
// Preconditions: Receives the path of the sqlite file, which is created if it does not exist
// Postconditions: Returns a migrated store, or an error if the file cannot be opened or migrated
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serialises writers and keeps every statement on the same file handle
	db.SetMaxOpenConns(1)
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	log.Info("SQLite store ready", "path", path)
	return &SQLiteStore{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(log.Default())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close(_ context.Context) error {
	return s.db.Close()
}

// region Matches

func (s *SQLiteStore) LoadMatches(ctx context.Context) ([]shared.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT number, team1, team2, result, stage, time, done, winner FROM matches ORDER BY number`)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []shared.Match
	for rows.Next() {
		var (
			m      shared.Match
			result string
		)
		if err := rows.Scan(&m.Number, &m.Team1, &m.Team2, &result, &m.Stage, &m.ScheduledTime, &m.Done, &m.Winner); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		if m.Result, err = shared.ParseResult(result); err != nil {
			return nil, fmt.Errorf("match %d has a corrupt result: %w", m.Number, err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *SQLiteStore) InsertMatch(ctx context.Context, m shared.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO matches (number, team1, team2, result, stage, time, done, winner)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Number, m.Team1, m.Team2, m.Result.String(), m.Stage, m.ScheduledTime, m.Done, m.Winner)
	if err != nil {
		return fmt.Errorf("failed to insert match %d: %w", m.Number, err)
	}
	return nil
}

// matchColumns maps each patchable field to its column. Column names are never taken from input
var matchColumns = map[shared.MatchField]string{
	shared.FieldTeam1:  "team1",
	shared.FieldTeam2:  "team2",
	shared.FieldResult: "result",
	shared.FieldStage:  "stage",
	shared.FieldTime:   "time",
	shared.FieldDone:   "done",
	shared.FieldWinner: "winner",
}

func (s *SQLiteStore) PatchMatchField(ctx context.Context, number int, patch shared.MatchPatch) error {
	column, ok := matchColumns[patch.Field]
	if !ok {
		return fmt.Errorf("%w: unknown match field %d", shared.ErrInvalidInput, patch.Field)
	}

	var value any
	switch patch.Field {
	case shared.FieldResult:
		value = patch.Result.String()
	case shared.FieldTime:
		value = patch.Time
	case shared.FieldDone:
		value = patch.Done
	default:
		value = patch.Text
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "UPDATE matches SET "+column+" = ? WHERE number = ?", value, number)
	if err != nil {
		return fmt.Errorf("failed to update %s of match %d: %w", column, number, err)
	}
	return requireRow(res, number)
}

func (s *SQLiteStore) UpdateMatchResult(ctx context.Context, number int, result shared.Result, winner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `UPDATE matches SET result = ?, winner = ?, done = 1 WHERE number = ?`,
		result.String(), winner, number)
	if err != nil {
		return fmt.Errorf("failed to record result of match %d: %w", number, err)
	}
	return requireRow(res, number)
}

func requireRow(res sql.Result, number int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("match %d: %w", number, shared.ErrNotFound)
	}
	return nil
}

// endregion

// region Picks

func (s *SQLiteStore) LoadPicks(ctx context.Context) ([]shared.Pick, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT match_number, user_id, choice, username FROM picks ORDER BY match_number, user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query picks: %w", err)
	}
	defer rows.Close()

	var picks []shared.Pick
	for rows.Next() {
		var p shared.Pick
		if err := rows.Scan(&p.MatchNumber, &p.UserID, &p.Choice, &p.Username); err != nil {
			return nil, fmt.Errorf("failed to scan pick: %w", err)
		}
		picks = append(picks, p)
	}
	return picks, rows.Err()
}

// upsertOpenPickSQL only produces a row while the match is unfinished and still in the future, so the openness
// check and the write happen in a single statement
const upsertOpenPickSQL = `
	INSERT INTO picks (match_number, user_id, choice, username)
	SELECT ?, ?, ?, ? WHERE EXISTS (SELECT 1 FROM matches WHERE number = ? AND done = 0 AND time > ?)
	ON CONFLICT(match_number, user_id) DO UPDATE SET choice = excluded.choice, username = excluded.username`

func (s *SQLiteStore) UpsertPick(ctx context.Context, pick shared.Pick, now int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, upsertOpenPickSQL,
		pick.MatchNumber, pick.UserID, pick.Choice, pick.Username, pick.MatchNumber, now)
	if err != nil {
		return fmt.Errorf("failed to store pick of %s for match %d: %w", pick.UserID, pick.MatchNumber, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("match %d: %w", pick.MatchNumber, shared.ErrClosedForPicking)
	}
	return nil
}

// endregion

// region Scores

const upsertScoreSQL = `
	INSERT INTO scores (user_id, score) VALUES (?, ?)
	ON CONFLICT(user_id) DO UPDATE SET score = excluded.score`

func (s *SQLiteStore) LoadScores(ctx context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT user_id, score FROM scores`)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	scores := make(map[string]int)
	for rows.Next() {
		var (
			userID string
			score  int
		)
		if err := rows.Scan(&userID, &score); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		scores[userID] = score
	}
	return scores, rows.Err()
}

func (s *SQLiteStore) UpsertScore(ctx context.Context, score shared.Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, upsertScoreSQL, score.UserID, score.Value); err != nil {
		return fmt.Errorf("failed to store score of %s: %w", score.UserID, err)
	}
	return nil
}

func (s *SQLiteStore) UpsertScores(ctx context.Context, scores []shared.Score) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin score transaction: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	stmt, err := tx.PrepareContext(ctx, upsertScoreSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare score upsert: %w", err)
	}
	defer stmt.Close()

	for _, score := range scores {
		if _, err = stmt.ExecContext(ctx, score.UserID, score.Value); err != nil {
			return fmt.Errorf("failed to store score of %s: %w", score.UserID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit scores: %w", err)
	}
	return nil
}

// endregion

// region Multipliers

func (s *SQLiteStore) LoadMultipliers(ctx context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT stage, multiplier FROM stage_multipliers`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stage multipliers: %w", err)
	}
	defer rows.Close()

	multipliers := make(map[string]int)
	for rows.Next() {
		var (
			stage  string
			points int
		)
		if err := rows.Scan(&stage, &points); err != nil {
			return nil, fmt.Errorf("failed to scan stage multiplier: %w", err)
		}
		multipliers[stage] = points
	}
	return multipliers, rows.Err()
}

func (s *SQLiteStore) UpsertMultiplier(ctx context.Context, m shared.Multiplier) error {
	if m.Points <= 0 {
		return fmt.Errorf("%w: multiplier for %q must be positive", shared.ErrInvalidInput, m.Stage)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stage_multipliers (stage, multiplier) VALUES (?, ?)
		ON CONFLICT(stage) DO UPDATE SET multiplier = excluded.multiplier`,
		m.Stage, m.Points)
	if err != nil {
		return fmt.Errorf("failed to store multiplier for %q: %w", m.Stage, err)
	}
	return nil
}

// endregion

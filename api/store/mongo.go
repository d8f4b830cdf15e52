/* mongo.go
 * Contains the MongoStore struct and NewMongoStore function, an alternative to SQLiteStore for deployments
 * that already run MongoDB. Each record set lives in its own collection
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"pickems-tracker/api/shared"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStore struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections struct {
		Matches     *mongo.Collection
		Picks       *mongo.Collection
		Scores      *mongo.Collection
		Multipliers *mongo.Collection
	}
}

// NewMongoStore connects to MongoDB and makes sure the unique indexes exist
// Preconditions: Receives a mongo connection uri and the name of the database to use
// Postconditions: Returns a pointer to a ready MongoStore, or an error if the connection or index creation failed
func NewMongoStore(ctx context.Context, mongoURI string, dbName string) (*MongoStore, error) {
	if dbName == "" {
		return nil, fmt.Errorf("database name cannot be empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	s := NewMongoStoreFromDatabase(client, client.Database(dbName))
	if err := s.EnsureIndexes(ctx); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}

	log.Info("Mongo store ready", "database", dbName)
	return s, nil
}

// NewMongoStoreFromDatabase wires the collections of an already connected database
func NewMongoStoreFromDatabase(client *mongo.Client, db *mongo.Database) *MongoStore {
	s := &MongoStore{Client: client, Database: db}
	s.Collections.Matches = db.Collection("matches")
	s.Collections.Picks = db.Collection("picks")
	s.Collections.Scores = db.Collection("scores")
	s.Collections.Multipliers = db.Collection("stage_multipliers")
	return s
}

// EnsureIndexes creates the unique keys each collection relies on for its upserts
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		coll *mongo.Collection
		keys bson.D
	}{
		{s.Collections.Matches, bson.D{{Key: "number", Value: 1}}},
		{s.Collections.Picks, bson.D{{Key: "match_number", Value: 1}, {Key: "user_id", Value: 1}}},
		{s.Collections.Scores, bson.D{{Key: "user_id", Value: 1}}},
		{s.Collections.Multipliers, bson.D{{Key: "stage", Value: 1}}},
	}
	for _, idx := range indexes {
		model := mongo.IndexModel{Keys: idx.keys, Options: options.Index().SetUnique(true)}
		if _, err := idx.coll.Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", idx.coll.Name(), err)
		}
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Disconnect(ctx)
}

// region Matches

func (s *MongoStore) LoadMatches(ctx context.Context) ([]shared.Match, error) {
	opts := options.Find().SetSort(bson.D{{Key: "number", Value: 1}})
	cursor, err := s.Collections.Matches.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching matches from db: %w", err)
	}

	var docs []matchDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of matches: %w", err)
	}

	matches := make([]shared.Match, 0, len(docs))
	for _, doc := range docs {
		m, err := doc.toMatch()
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func (s *MongoStore) InsertMatch(ctx context.Context, m shared.Match) error {
	if _, err := s.Collections.Matches.InsertOne(ctx, newMatchDocument(m)); err != nil {
		return fmt.Errorf("match insert failed: %w", err)
	}
	return nil
}

func (s *MongoStore) PatchMatchField(ctx context.Context, number int, patch shared.MatchPatch) error {
	key, value, err := patchValue(patch)
	if err != nil {
		return err
	}
	return s.updateMatch(ctx, number, bson.D{{Key: key, Value: value}})
}

func (s *MongoStore) UpdateMatchResult(ctx context.Context, number int, result shared.Result, winner string) error {
	return s.updateMatch(ctx, number, bson.D{
		{Key: "result", Value: result.String()},
		{Key: "winner", Value: winner},
		{Key: "done", Value: true},
	})
}

func (s *MongoStore) updateMatch(ctx context.Context, number int, set bson.D) error {
	res, err := s.Collections.Matches.UpdateOne(ctx, bson.M{"number": number}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return fmt.Errorf("match %d update failed: %w", number, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("match %d: %w", number, shared.ErrNotFound)
	}
	return nil
}

// endregion

// region Picks

func (s *MongoStore) LoadPicks(ctx context.Context) ([]shared.Pick, error) {
	opts := options.Find().SetSort(bson.D{{Key: "match_number", Value: 1}, {Key: "user_id", Value: 1}})
	cursor, err := s.Collections.Picks.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching picks from db: %w", err)
	}

	var docs []pickDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of picks: %w", err)
	}

	picks := make([]shared.Pick, 0, len(docs))
	for _, doc := range docs {
		picks = append(picks, doc.toPick())
	}
	return picks, nil
}

// UpsertPick claims the match document before writing the pick. A result recorded concurrently updates the same
// document, so the server aborts one of the two transactions and the driver retries it against the new state
func (s *MongoStore) UpsertPick(ctx context.Context, pick shared.Pick, now int64) error {
	open := bson.M{"number": pick.MatchNumber, "done": false, "time": bson.M{"$gt": now}}
	claim := bson.D{{Key: "$inc", Value: bson.D{{Key: "pick_writes", Value: 1}}}}
	filter := bson.M{"match_number": pick.MatchNumber, "user_id": pick.UserID}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "choice", Value: pick.Choice},
		{Key: "username", Value: pick.Username},
	}}}

	err := s.inTransaction(ctx, func(sc mongo.SessionContext) error {
		if err := s.Collections.Matches.FindOneAndUpdate(sc, open, claim).Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return fmt.Errorf("match %d: %w", pick.MatchNumber, shared.ErrClosedForPicking)
			}
			return err
		}
		_, err := s.Collections.Picks.UpdateOne(sc, filter, update, options.Update().SetUpsert(true))
		return err
	})
	if err != nil && !errors.Is(err, shared.ErrClosedForPicking) {
		return fmt.Errorf("failed to store pick of %s for match %d: %w", pick.UserID, pick.MatchNumber, err)
	}
	return err
}

// endregion

// region Scores

func (s *MongoStore) LoadScores(ctx context.Context) (map[string]int, error) {
	cursor, err := s.Collections.Scores.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("error fetching scores from db: %w", err)
	}

	var docs []scoreDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of scores: %w", err)
	}

	scores := make(map[string]int, len(docs))
	for _, doc := range docs {
		scores[doc.UserID] = doc.Score
	}
	return scores, nil
}

func scoreUpsert(score shared.Score) *mongo.UpdateOneModel {
	return mongo.NewUpdateOneModel().
		SetFilter(bson.M{"user_id": score.UserID}).
		SetUpdate(bson.D{{Key: "$set", Value: bson.D{{Key: "score", Value: score.Value}}}}).
		SetUpsert(true)
}

func (s *MongoStore) UpsertScore(ctx context.Context, score shared.Score) error {
	return s.UpsertScores(ctx, []shared.Score{score})
}

func (s *MongoStore) UpsertScores(ctx context.Context, scores []shared.Score) error {
	if len(scores) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(scores))
	for _, score := range scores {
		models = append(models, scoreUpsert(score))
	}
	err := s.inTransaction(ctx, func(sc mongo.SessionContext) error {
		_, err := s.Collections.Scores.BulkWrite(sc, models)
		return err
	})
	if err != nil {
		return fmt.Errorf("score update failed: %w", err)
	}
	return nil
}

// inTransaction runs fn inside a multi-document transaction, which the driver commits or aborts as a whole and
// retries on transient errors. Transactions need a replica set or sharded cluster
func (s *MongoStore) inTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	return s.Client.UseSession(ctx, func(sc mongo.SessionContext) error {
		_, err := sc.WithTransaction(sc, func(sc mongo.SessionContext) (any, error) {
			return nil, fn(sc)
		})
		return err
	})
}

// endregion

// region Multipliers

func (s *MongoStore) LoadMultipliers(ctx context.Context) (map[string]int, error) {
	cursor, err := s.Collections.Multipliers.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("error fetching stage multipliers from db: %w", err)
	}

	var docs []multiplierDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of multipliers: %w", err)
	}

	multipliers := make(map[string]int, len(docs))
	for _, doc := range docs {
		multipliers[doc.Stage] = doc.Multiplier
	}
	return multipliers, nil
}

func (s *MongoStore) UpsertMultiplier(ctx context.Context, m shared.Multiplier) error {
	if m.Points <= 0 {
		return fmt.Errorf("%w: multiplier for %q must be positive", shared.ErrInvalidInput, m.Stage)
	}
	filter := bson.M{"stage": m.Stage}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "multiplier", Value: m.Points}}}}

	if _, err := s.Collections.Multipliers.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to store multiplier for %q: %w", m.Stage, err)
	}
	return nil
}

// endregion

package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/models"
)

// MongoStore handles MongoDB operations for participants and messages.
type MongoStore struct {
	client       *mongo.Client
	participants *mongo.Collection
	messages     *mongo.Collection
}

// NewMongoStore connects to MongoDB and returns a store bound to the given
// database. The connection is verified before the store is handed out.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	db := client.Database(database)
	return &MongoStore{
		client:       client,
		participants: db.Collection("participants"),
		messages:     db.Collection("messages"),
	}, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping checks the MongoDB connection.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the unique name index on participants and the
// lastStatus index the sweep scan uses.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.participants.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "lastStatus", Value: 1}},
		},
	})
	return err
}

// FindParticipant returns the active participant with the given name,
// or nil if none exists.
func (s *MongoStore) FindParticipant(ctx context.Context, name string) (*models.Participant, error) {
	var p models.Participant
	err := s.participants.FindOne(ctx, bson.M{"name": name}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// ListParticipants returns all active participants.
func (s *MongoStore) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	cur, err := s.participants.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	participants := []models.Participant{}
	if err := cur.All(ctx, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

// InsertParticipant creates a participant record. Returns ErrDuplicateName
// when the unique index rejects the insert.
func (s *MongoStore) InsertParticipant(ctx context.Context, p models.Participant) error {
	_, err := s.participants.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateName
	}
	return err
}

// TouchParticipant sets lastStatus for the named participant. Returns false
// when no such participant exists.
func (s *MongoStore) TouchParticipant(ctx context.Context, name string, lastStatus int64) (bool, error) {
	res, err := s.participants.UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{"lastStatus": lastStatus}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// FindStaleParticipants returns participants with lastStatus <= cutoff.
func (s *MongoStore) FindStaleParticipants(ctx context.Context, cutoff int64) ([]models.Participant, error) {
	cur, err := s.participants.Find(ctx, bson.M{"lastStatus": bson.M{"$lte": cutoff}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	stale := []models.Participant{}
	if err := cur.All(ctx, &stale); err != nil {
		return nil, err
	}
	return stale, nil
}

// DeleteStaleParticipants removes participants with lastStatus <= cutoff in
// one batch and returns how many were deleted.
func (s *MongoStore) DeleteStaleParticipants(ctx context.Context, cutoff int64) (int64, error) {
	res, err := s.participants.DeleteMany(ctx, bson.M{"lastStatus": bson.M{"$lte": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// InsertMessage appends a single message.
func (s *MongoStore) InsertMessage(ctx context.Context, m models.Message) error {
	_, err := s.messages.InsertOne(ctx, m)
	return err
}

// InsertMessages appends a batch of messages.
func (s *MongoStore) InsertMessages(ctx context.Context, msgs []models.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	docs := make([]interface{}, len(msgs))
	for i, m := range msgs {
		docs[i] = m
	}
	_, err := s.messages.InsertMany(ctx, docs)
	return err
}

// ListMessages returns the whole message collection in insertion order.
// ULID ids keep that order stable across restarts.
func (s *MongoStore) ListMessages(ctx context.Context) ([]models.Message, error) {
	cur, err := s.messages.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	messages := []models.Message{}
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

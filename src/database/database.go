package database

import (
	"context"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const dbName = "formforge"

var (
	client     *mongo.Client
	once       sync.Once
	connectErr error

	UserCollection       *mongo.Collection
	FormCollection       *mongo.Collection
	SubmissionCollection *mongo.Collection
)

// Connect establishes the MongoDB connection once and binds the collection
// handles. Safe to call from multiple places; only the first call connects.
func Connect(mongoURI string) error {
	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		clientOptions := options.Client().ApplyURI(mongoURI)

		client, connectErr = mongo.Connect(ctx, clientOptions)
		if connectErr != nil {
			return
		}

		connectErr = client.Ping(ctx, readpref.Primary())
		if connectErr != nil {
			return
		}

		db := client.Database(dbName)
		UserCollection = db.Collection("users")
		FormCollection = db.Collection("forms")
		SubmissionCollection = db.Collection("submissions")

		connectErr = ensureIndexes(ctx)
		if connectErr != nil {
			return
		}

		log.Println("MongoDB connected successfully")
	})

	return connectErr
}

// ensureIndexes creates the uniqueness constraints the data model relies on:
// one account per email, one form per share link. forms.userId is indexed
// because every owner-scoped query filters on it.
func ensureIndexes(ctx context.Context) error {
	_, err := UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = FormCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "shareUrl", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
		},
	})
	return err
}

// WithTransaction runs fn inside a single MongoDB transaction. The public
// submit path uses it so the counter increment and the submission insert
// commit together or not at all.
func WithTransaction(ctx context.Context, fn func(sc mongo.SessionContext) (interface{}, error)) (interface{}, error) {
	session, err := client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	return session.WithTransaction(ctx, fn)
}

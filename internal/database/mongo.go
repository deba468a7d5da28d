package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect opens a MongoDB client and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, err
	}
	return client, nil
}

// EnsureIndexes creates the indexes the application relies on. Unique
// indexes back the Conflict semantics of the stores: duplicate user emails,
// a class selected twice, or a payment replayed with the same gateway
// transaction all fail at the database rather than racing a read-then-write.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	users := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, users); err != nil {
		return err
	}

	// Selection uniqueness is keyed on class_id alone: one selection per
	// class across all students. See SelectionRepo for why this is kept.
	selections := []mongo.IndexModel{
		{Keys: bson.D{{Key: "class_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := db.Collection("selected_classes").Indexes().CreateMany(ctx, selections); err != nil {
		return err
	}

	payments := []mongo.IndexModel{
		{Keys: bson.D{{Key: "transaction_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "date", Value: -1}}},
	}
	if _, err := db.Collection("payments").Indexes().CreateMany(ctx, payments); err != nil {
		return err
	}

	classes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	_, err := db.Collection("classes").Indexes().CreateMany(ctx, classes)
	return err
}

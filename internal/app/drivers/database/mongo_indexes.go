package database

import (
	"context"
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionIndexes lists the indexes the history and profile lookups rely on.
var CollectionIndexes = map[string][]mongo.IndexModel{
	constvars.MongoCollectionAssessments: {
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("userId_createdAt"),
		},
	},
	constvars.MongoCollectionProfiles: {
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName("userId"),
		},
	},
}

// EnsureIndexes creates missing indexes and returns the number of collections touched.
func EnsureIndexes(ctx context.Context, client *mongo.Client, dbName string) (int, error) {
	db := client.Database(dbName)
	applied := 0
	for _, collection := range []string{constvars.MongoCollectionAssessments, constvars.MongoCollectionProfiles} {
		_, err := db.Collection(collection).Indexes().CreateMany(ctx, CollectionIndexes[collection])
		if err != nil {
			return applied, exceptions.ErrMongoDBCreateIndex(err, collection)
		}
		applied++
	}
	return applied, nil
}

package profiles

import (
	"context"
	"neonatal-triage-service/internal/app/contracts"
	"neonatal-triage-service/internal/app/models"
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProfileMongoRepository struct {
	Collection *mongo.Collection
}

func NewProfileMongoRepository(db *mongo.Client, dbName string) contracts.ProfileRepository {
	return &ProfileMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionProfiles),
	}
}

func (r *ProfileMongoRepository) FindBySubjectID(ctx context.Context, subjectID string) (*models.ProfileDocument, error) {
	var profile models.ProfileDocument
	err := r.Collection.FindOne(ctx, bson.M{"_id": subjectID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &profile, nil
}

// Upsert replaces the profile fields of the subject, last write wins. createdAt
// is only written when the document is first inserted.
func (r *ProfileMongoRepository) Upsert(ctx context.Context, subjectID string, profile models.NeonatalProfile) error {
	now := time.Now().UTC()

	set := bson.M{
		"userId":    subjectID,
		"updatedAt": now,
	}
	for field, value := range profile.Fields() {
		set[field] = value
	}

	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"createdAt": now},
	}

	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": subjectID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

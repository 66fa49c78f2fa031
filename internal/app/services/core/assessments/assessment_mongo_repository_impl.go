package assessments

import (
	"context"
	"neonatal-triage-service/internal/app/contracts"
	"neonatal-triage-service/internal/app/models"
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AssessmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAssessmentMongoRepository(db *mongo.Client, dbName string) contracts.AssessmentRepository {
	return &AssessmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAssessments),
	}
}

func (r *AssessmentMongoRepository) Insert(ctx context.Context, record *models.AssessmentRecord) error {
	_, err := r.Collection.InsertOne(ctx, record)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

// FindByUserID lists the subject's records newest first.
func (r *AssessmentMongoRepository) FindByUserID(ctx context.Context, userID string) ([]models.AssessmentRecord, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	records := make([]models.AssessmentRecord, 0)
	err = cursor.All(ctx, &records)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return records, nil
}

func (r *AssessmentMongoRepository) FindLatestByUserID(ctx context.Context, userID string) (*models.AssessmentRecord, error) {
	var record models.AssessmentRecord
	findOptions := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	err := r.Collection.FindOne(ctx, bson.M{"userId": userID}, findOptions).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &record, nil
}

package assessments

import (
	"context"
	"neonatal-triage-service/internal/app/models"
	"neonatal-triage-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestAssessmentMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	namespace := "neonatal." + constvars.MongoCollectionAssessments

	mt.Run("Insert", func(mt *mtest.T) {
		repo := &AssessmentMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.Insert(context.Background(), &models.AssessmentRecord{ID: "a-1", UserID: "subject-1"})

		assert.NoError(t, err)
	})

	mt.Run("Insert failure", func(mt *mtest.T) {
		repo := &AssessmentMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		err := repo.Insert(context.Background(), &models.AssessmentRecord{ID: "a-1", UserID: "subject-1"})

		assert.Error(t, err)
	})

	mt.Run("FindByUserID", func(mt *mtest.T) {
		repo := &AssessmentMongoRepository{Collection: mt.Coll}
		first := mtest.CreateCursorResponse(1, namespace, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "a-2"}, {Key: "userId", Value: "subject-1"}, {Key: "resultado", Value: bson.D{{Key: "riskLevel", Value: "Alto"}}}},
		)
		next := mtest.CreateCursorResponse(1, namespace, mtest.NextBatch,
			bson.D{{Key: "_id", Value: "a-1"}, {Key: "userId", Value: "subject-1"}},
		)
		end := mtest.CreateCursorResponse(0, namespace, mtest.NextBatch)
		mt.AddMockResponses(first, next, end)

		records, err := repo.FindByUserID(context.Background(), "subject-1")

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "a-2", records[0].ID)
		assert.Equal(t, "Alto", records[0].Result.RiskLevel)
		assert.Equal(t, "a-1", records[1].ID)
	})

	mt.Run("FindByUserID without records", func(mt *mtest.T) {
		repo := &AssessmentMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace, mtest.FirstBatch))

		records, err := repo.FindByUserID(context.Background(), "subject-1")

		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	mt.Run("FindLatestByUserID without records", func(mt *mtest.T) {
		repo := &AssessmentMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace, mtest.FirstBatch))

		record, err := repo.FindLatestByUserID(context.Background(), "subject-1")

		assert.NoError(t, err)
		assert.Nil(t, record)
	})

	mt.Run("FindLatestByUserID", func(mt *mtest.T) {
		repo := &AssessmentMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "a-2"}, {Key: "userId", Value: "subject-1"}, {Key: "timestamp", Value: "2024-05-10T08:30:00Z"}},
		))

		record, err := repo.FindLatestByUserID(context.Background(), "subject-1")

		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, "a-2", record.ID)
		assert.Equal(t, "2024-05-10T08:30:00Z", record.Timestamp)
	})

	mt.Run("Find failure", func(mt *mtest.T) {
		repo := &AssessmentMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 0}, {Key: "code", Value: 2}, {Key: "errmsg", Value: "bad query"}})

		_, err := repo.FindLatestByUserID(context.Background(), "subject-1")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, mongo.ErrNoDocuments)
	})
}

package profiles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestProfileMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("FindBySubjectID", func(mt *mtest.T) {
		repo := &ProfileMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "neonatal.profiles", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "s-1"},
			{Key: "userId", Value: "s-1"},
			{Key: "riesgoMaternoInfeccioso", Value: "Alto"},
			{Key: "Sexo", Value: "F"},
		}))

		document, err := repo.FindBySubjectID(context.Background(), "s-1")

		require.NoError(t, err)
		require.NotNil(t, document)
		assert.Equal(t, "s-1", document.SubjectID)
		assert.Equal(t, "Alto", document.MaternalInfectiousRisk)
		assert.Equal(t, "F", document.Sex)
	})

	mt.Run("FindBySubjectID missing", func(mt *mtest.T) {
		repo := &ProfileMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "neonatal.profiles", mtest.FirstBatch))

		document, err := repo.FindBySubjectID(context.Background(), "s-1")

		assert.NoError(t, err)
		assert.Nil(t, document)
	})

	mt.Run("Upsert", func(mt *mtest.T) {
		repo := &ProfileMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 0}, {Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "s-1"}}}}})

		err := repo.Upsert(context.Background(), "s-1", testProfile())

		require.NoError(t, err)
		started := mt.GetStartedEvent()
		require.NotNil(t, started)
		assert.Equal(t, "update", started.CommandName)
	})

	mt.Run("Upsert failure", func(mt *mtest.T) {
		repo := &ProfileMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 0}, {Key: "code", Value: 2}, {Key: "errmsg", Value: "bad value"}})

		err := repo.Upsert(context.Background(), "s-1", testProfile())

		assert.Error(t, err)
	})
}

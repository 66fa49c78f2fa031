package database

import (
	"context"
	"neonatal-triage-service/internal/app/config"
	"neonatal-triage-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoConnectionString(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.MongoDB
		expected string
	}{
		{
			name:     "explicit uri wins",
			cfg:      config.MongoDB{URI: "mongodb+srv://cluster.example", Host: "ignored", Port: "1"},
			expected: "mongodb+srv://cluster.example",
		},
		{
			name:     "no credentials",
			cfg:      config.MongoDB{Host: "localhost", Port: "27017"},
			expected: "mongodb://localhost:27017",
		},
		{
			name:     "with credentials",
			cfg:      config.MongoDB{Host: "db", Port: "27017", Username: "user", Password: "pass"},
			expected: "mongodb://user:pass@db:27017",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MongoConnectionString(&config.DriverConfig{MongoDB: tt.cfg}))
		})
	}
}

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates indexes on both collections", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		applied, err := EnsureIndexes(context.Background(), mt.Client, "triage")

		require.NoError(mt, err)
		assert.Equal(mt, 2, applied)
	})

	mt.Run("stops at the first failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Message: "not authorized",
		}))

		applied, err := EnsureIndexes(context.Background(), mt.Client, "triage")

		require.Error(mt, err)
		assert.Equal(mt, 0, applied)
		assert.Contains(mt, err.Error(), constvars.MongoCollectionAssessments)
	})
}

package database

import (
	"context"
	"fmt"
	"log"
	"neonatal-triage-service/internal/app/config"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func NewMongoDB(driverConfig *config.DriverConfig) *mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	dbOptions := options.Client().ApplyURI(MongoConnectionString(driverConfig))
	client, err := mongo.Connect(ctx, dbOptions)
	if err != nil {
		log.Fatalf("Failed to connect to mongo database: %s", err.Error())
	}
	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatalf("Failed to ping or test the connection to mongo database: %s", err.Error())
	}
	log.Println("Successfully connected to mongo database")
	return client
}

// MongoConnectionString prefers an explicit URI and otherwise builds one from host parts.
func MongoConnectionString(driverConfig *config.DriverConfig) string {
	if driverConfig.MongoDB.URI != "" {
		return driverConfig.MongoDB.URI
	}
	if driverConfig.MongoDB.Username == "" {
		return fmt.Sprintf("mongodb://%s:%s", driverConfig.MongoDB.Host, driverConfig.MongoDB.Port)
	}
	return fmt.Sprintf(
		"mongodb://%s:%s@%s:%s",
		driverConfig.MongoDB.Username,
		driverConfig.MongoDB.Password,
		driverConfig.MongoDB.Host,
		driverConfig.MongoDB.Port,
	)
}

package main

import (
	"context"
	"neonatal-triage-service/internal/app/drivers/database"
	"neonatal-triage-service/internal/pkg/utils"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the MongoDB indexes used by profile and history lookups",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		client := database.NewMongoDB(driverConfig)
		defer client.Disconnect(context.Background())

		return utils.LogOperation(log, "ensure_mongo_indexes", utils.GenerateRequestID(), func() error {
			applied, err := database.EnsureIndexes(ctx, client, driverConfig.MongoDB.DbName)
			if err != nil {
				return err
			}
			log.Info("Indexes applied", zap.Int("collections", applied))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

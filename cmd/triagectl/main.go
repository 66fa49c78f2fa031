package main

import (
	"neonatal-triage-service/internal/app/config"
	"neonatal-triage-service/internal/app/drivers/logger"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version and Tag are set at build time.
var (
	Version = "develop"
	Tag     = "0.0.1-rc"
)

var (
	driverConfig   *config.DriverConfig
	internalConfig *config.InternalConfig
	log            *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "triagectl",
	Short: "Operational tooling for the neonatal triage service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		driverConfig = config.NewDriverConfig()
		internalConfig = config.NewInternalConfig()
		log = logger.NewZapLogger(driverConfig, internalConfig)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

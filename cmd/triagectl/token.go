package main

import (
	"fmt"
	"neonatal-triage-service/internal/pkg/utils"
	"time"

	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for a subject, for local testing",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if tokenSubject == "" {
			tokenSubject = utils.GenerateAssessmentID()
		}
		ttl := tokenTTL
		if ttl <= 0 {
			ttl = time.Duration(internalConfig.JWT.ExpTimeInHour) * time.Hour
		}

		token, err := utils.GenerateSubjectJWT(tokenSubject, internalConfig.JWT.Secret, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "subject: %s\ntoken: %s\n", tokenSubject, token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "subject id carried in the sub claim (random when empty)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (defaults to JWT_EXP_TIME_IN_HOUR)")
	rootCmd.AddCommand(tokenCmd)
}

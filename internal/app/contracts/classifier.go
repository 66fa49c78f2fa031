package contracts

import (
	"context"
	"neonatal-triage-service/internal/pkg/dto/requests"
	"neonatal-triage-service/internal/pkg/dto/responses"
)

type ClassifierClient interface {
	// Diagnose returns the decoded reply together with the raw body.
	Diagnose(ctx context.Context, request *requests.Diagnosis) (*responses.Diagnosis, []byte, error)
}

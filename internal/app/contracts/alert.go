package contracts

import (
	"context"
	"neonatal-triage-service/internal/pkg/dto/requests"
)

type AlertPublisher interface {
	PublishHighRisk(ctx context.Context, alert *requests.HighRiskAlert) error
	Close() error
}

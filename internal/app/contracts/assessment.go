package contracts

import (
	"context"
	"neonatal-triage-service/internal/app/models"
)

type AssessmentUsecase interface {
	// Resolve always yields a result. Classification failures produce the Error sentinel.
	Resolve(ctx context.Context, session models.SessionContext, symptoms models.SymptomSet) models.RiskResult
	FindHistory(ctx context.Context, subjectID string) ([]models.AssessmentRecord, error)
	FindLatest(ctx context.Context, subjectID string) (*models.AssessmentRecord, error)
}

type AssessmentRepository interface {
	Insert(ctx context.Context, record *models.AssessmentRecord) error
	FindByUserID(ctx context.Context, userID string) ([]models.AssessmentRecord, error)
	FindLatestByUserID(ctx context.Context, userID string) (*models.AssessmentRecord, error)
}

package contracts

import (
	"context"
	"neonatal-triage-service/internal/app/models"
	"neonatal-triage-service/internal/pkg/dto/requests"
	"neonatal-triage-service/internal/pkg/dto/responses"
)

type WizardUsecase interface {
	Current(ctx context.Context, subjectID string) (*responses.Wizard, error)
	SetField(ctx context.Context, subjectID string, request *requests.SetWizardField) (*responses.Wizard, error)
	Next(ctx context.Context, subjectID string) (*responses.Wizard, error)
	Back(ctx context.Context, subjectID string) (*responses.Wizard, error)
	Submit(ctx context.Context, subjectID string) (*responses.Wizard, error)
	NewAssessment(ctx context.Context, subjectID string) (*responses.Wizard, error)
	Exit(ctx context.Context, subjectID string) error
}

// WizardSessionRepository stores wizard sessions. Find returns nil, nil when absent.
type WizardSessionRepository interface {
	Find(ctx context.Context, subjectID string) (*models.WizardSession, error)
	Save(ctx context.Context, session *models.WizardSession) error
	Delete(ctx context.Context, subjectID string) error
}

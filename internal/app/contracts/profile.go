package contracts

import (
	"context"
	"neonatal-triage-service/internal/app/models"
	"neonatal-triage-service/internal/pkg/dto/requests"
)

type ProfileUsecase interface {
	LoadProfile(ctx context.Context, subjectID string) (*models.NeonatalProfile, error)
	SaveProfile(ctx context.Context, subjectID string, request *requests.SaveProfile) (*models.NeonatalProfile, error)
}

// ProfileRepository is the durable profile store. FindBySubjectID returns nil, nil when absent.
type ProfileRepository interface {
	FindBySubjectID(ctx context.Context, subjectID string) (*models.ProfileDocument, error)
	Upsert(ctx context.Context, subjectID string, profile models.NeonatalProfile) error
}

// ProfileCache is the best-effort local copy of the last known profile.
type ProfileCache interface {
	Get(ctx context.Context, subjectID string) (*models.NeonatalProfile, error)
	Set(ctx context.Context, subjectID string, profile models.NeonatalProfile) error
}

package wizard

import (
	"context"
	"neonatal-triage-service/internal/app/contracts"
	"neonatal-triage-service/internal/app/models"
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
)

type wizardSessionRedisRepository struct {
	RedisRepository contracts.RedisRepository
	SessionTTL      time.Duration
}

// NewWizardSessionRedisRepository stores sessions with a TTL that restarts on every save.
func NewWizardSessionRedisRepository(redisRepository contracts.RedisRepository, sessionTTL time.Duration) contracts.WizardSessionRepository {
	return &wizardSessionRedisRepository{
		RedisRepository: redisRepository,
		SessionTTL:      sessionTTL,
	}
}

func (r *wizardSessionRedisRepository) Find(ctx context.Context, subjectID string) (*models.WizardSession, error) {
	data, err := r.RedisRepository.Get(ctx, sessionKey(subjectID))
	if err != nil {
		return nil, err
	}
	if data == "" {
		return nil, nil
	}

	var session models.WizardSession
	err = json.Unmarshal([]byte(data), &session)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return &session, nil
}

func (r *wizardSessionRedisRepository) Save(ctx context.Context, session *models.WizardSession) error {
	return r.RedisRepository.Set(ctx, sessionKey(session.UserID), session, r.SessionTTL)
}

func (r *wizardSessionRedisRepository) Delete(ctx context.Context, subjectID string) error {
	return r.RedisRepository.Delete(ctx, sessionKey(subjectID))
}

func sessionKey(subjectID string) string {
	return constvars.RedisKeyWizardPrefix + subjectID
}

func lockKey(subjectID string) string {
	return constvars.RedisKeyWizardLockPrefix + subjectID
}

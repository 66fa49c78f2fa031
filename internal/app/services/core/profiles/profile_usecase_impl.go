package profiles

import (
	"context"
	"neonatal-triage-service/internal/app/contracts"
	"neonatal-triage-service/internal/app/models"
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/dto/requests"
	"neonatal-triage-service/internal/pkg/exceptions"
	"neonatal-triage-service/internal/pkg/utils"
	"sync"

	"go.uber.org/zap"
)

const (
	profileSourceDurable = "durable"
	profileSourceCache   = "cache"
)

type profileUsecase struct {
	ProfileRepository contracts.ProfileRepository
	ProfileCache      contracts.ProfileCache
	Log               *zap.Logger
}

var (
	profileUsecaseInstance contracts.ProfileUsecase
	onceProfileUsecase     sync.Once
)

func NewProfileUsecase(
	profileRepository contracts.ProfileRepository,
	profileCache contracts.ProfileCache,
	logger *zap.Logger,
) contracts.ProfileUsecase {
	onceProfileUsecase.Do(func() {
		profileUsecaseInstance = newProfileUsecase(profileRepository, profileCache, logger)
	})
	return profileUsecaseInstance
}

func newProfileUsecase(profileRepository contracts.ProfileRepository, profileCache contracts.ProfileCache, logger *zap.Logger) *profileUsecase {
	return &profileUsecase{
		ProfileRepository: profileRepository,
		ProfileCache:      profileCache,
		Log:               logger,
	}
}

// LoadProfile reads the durable store first and falls back to the cache when
// the durable store misses or fails. A cached profile may be stale.
func (uc *profileUsecase) LoadProfile(ctx context.Context, subjectID string) (*models.NeonatalProfile, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("profileUsecase.LoadProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, subjectID),
	)

	document, durableErr := uc.ProfileRepository.FindBySubjectID(ctx, subjectID)
	if durableErr != nil {
		uc.Log.Warn("profileUsecase.LoadProfile durable store failed, falling back to cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(durableErr),
		)
	}

	if document != nil {
		uc.writeThrough(ctx, subjectID, document.NeonatalProfile)
		uc.Log.Info("profileUsecase.LoadProfile succeeded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProfileSourceKey, profileSourceDurable),
		)
		return &document.NeonatalProfile, nil
	}

	cached, err := uc.ProfileCache.Get(ctx, subjectID)
	if err != nil {
		uc.Log.Warn("profileUsecase.LoadProfile error reading cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	if cached != nil {
		uc.Log.Info("profileUsecase.LoadProfile succeeded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProfileSourceKey, profileSourceCache),
		)
		return cached, nil
	}

	// Neither store could answer, so absence of the profile is unknown.
	if durableErr != nil && err != nil {
		uc.Log.Error("profileUsecase.LoadProfile error reading both stores",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(durableErr),
		)
		return nil, durableErr
	}

	uc.Log.Info("profileUsecase.LoadProfile profile not found",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, subjectID),
	)
	return nil, exceptions.ErrProfileNotFound(nil)
}

func (uc *profileUsecase) SaveProfile(ctx context.Context, subjectID string, request *requests.SaveProfile) (*models.NeonatalProfile, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("profileUsecase.SaveProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, subjectID),
	)

	err := utils.ValidateStruct(request)
	if err != nil {
		uc.Log.Error("profileUsecase.SaveProfile validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrInputValidation(err)
	}

	profile := models.NeonatalProfile{
		MaternalInfectiousRisk: request.RiesgoMaternoInfeccioso,
		GestationalAge:         request.EdadGestacional,
		SiblingJaundiceHistory: request.HistIctericiaHnos,
		FeedingType:            request.TipoAlimentacion,
		NeonatalAge:            request.EdadNeonatal,
		BirthOrder:             request.Primiparidad,
		Sex:                    request.Sexo,
	}

	err = uc.ProfileRepository.Upsert(ctx, subjectID, profile)
	if err != nil {
		uc.Log.Error("profileUsecase.SaveProfile error upserting profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.writeThrough(ctx, subjectID, profile)

	uc.Log.Info("profileUsecase.SaveProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, subjectID),
	)
	return &profile, nil
}

func (uc *profileUsecase) writeThrough(ctx context.Context, subjectID string, profile models.NeonatalProfile) {
	err := uc.ProfileCache.Set(ctx, subjectID, profile)
	if err != nil {
		uc.Log.Warn("profileUsecase cache write failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingSubjectIDKey, subjectID),
			zap.Error(err),
		)
	}
}

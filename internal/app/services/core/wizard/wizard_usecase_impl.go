package wizard

import (
	"context"
	"errors"
	"neonatal-triage-service/internal/app/config"
	"neonatal-triage-service/internal/app/contracts"
	"neonatal-triage-service/internal/app/models"
	"neonatal-triage-service/internal/app/services/shared/ratelimiter"
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/dto/requests"
	"neonatal-triage-service/internal/pkg/dto/responses"
	"neonatal-triage-service/internal/pkg/exceptions"
	"neonatal-triage-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

type wizardUsecase struct {
	SessionRepository contracts.WizardSessionRepository
	ProfileUsecase    contracts.ProfileUsecase
	AssessmentUsecase contracts.AssessmentUsecase
	LockerService     contracts.LockerService
	QuotaLimiter      *ratelimiter.QuotaLimiter
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
	now               func() time.Time
}

var (
	wizardUsecaseInstance contracts.WizardUsecase
	onceWizardUsecase     sync.Once
)

func NewWizardUsecase(
	sessionRepository contracts.WizardSessionRepository,
	profileUsecase contracts.ProfileUsecase,
	assessmentUsecase contracts.AssessmentUsecase,
	lockerService contracts.LockerService,
	quotaLimiter *ratelimiter.QuotaLimiter,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.WizardUsecase {
	onceWizardUsecase.Do(func() {
		wizardUsecaseInstance = &wizardUsecase{
			SessionRepository: sessionRepository,
			ProfileUsecase:    profileUsecase,
			AssessmentUsecase: assessmentUsecase,
			LockerService:     lockerService,
			QuotaLimiter:      quotaLimiter,
			InternalConfig:    internalConfig,
			Log:               logger,
			now:               time.Now,
		}
	})
	return wizardUsecaseInstance
}

// Current returns the subject's wizard, starting a fresh one on the first step when none exists.
func (uc *wizardUsecase) Current(ctx context.Context, subjectID string) (*responses.Wizard, error) {
	uc.Log.Info("wizardUsecase.Current called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingSubjectIDKey, subjectID),
	)

	session, err := uc.loadSession(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return BuildWizardResponse(session), nil
}

func (uc *wizardUsecase) SetField(ctx context.Context, subjectID string, request *requests.SetWizardField) (*responses.Wizard, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("wizardUsecase.SetField called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, subjectID),
		zap.String(constvars.LoggingWizardFieldKey, request.Field),
	)

	err := utils.ValidateStruct(request)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	return uc.transition(ctx, subjectID, "SetField", func(machine *Machine) error {
		return machine.SetField(request.Field, request.Value)
	})
}

func (uc *wizardUsecase) Next(ctx context.Context, subjectID string) (*responses.Wizard, error) {
	return uc.transition(ctx, subjectID, "Next", func(machine *Machine) error {
		return machine.Next()
	})
}

func (uc *wizardUsecase) Back(ctx context.Context, subjectID string) (*responses.Wizard, error) {
	return uc.transition(ctx, subjectID, "Back", func(machine *Machine) error {
		return machine.Back()
	})
}

func (uc *wizardUsecase) NewAssessment(ctx context.Context, subjectID string) (*responses.Wizard, error) {
	return uc.transition(ctx, subjectID, "NewAssessment", func(machine *Machine) error {
		return machine.NewAssessment()
	})
}

func (uc *wizardUsecase) Exit(ctx context.Context, subjectID string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("wizardUsecase.Exit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, subjectID),
	)

	session, err := uc.loadSession(ctx, subjectID)
	if err != nil {
		return err
	}

	err = uc.newMachine(session).Exit()
	if err != nil {
		return mapMachineError(err)
	}

	err = uc.SessionRepository.Delete(ctx, subjectID)
	if err != nil {
		uc.Log.Error("wizardUsecase.Exit error deleting session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("wizardUsecase.Exit succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, subjectID),
	)
	return nil
}

// Submit classifies the completed questionnaire. The per-subject lock is held
// for the whole analysis so that concurrent actions are rejected as busy.
func (uc *wizardUsecase) Submit(ctx context.Context, subjectID string) (*responses.Wizard, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("wizardUsecase.Submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, subjectID),
	)

	lockTTL := time.Duration(uc.InternalConfig.Wizard.LockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey(subjectID), lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrWizardLockNotAcquired(subjectID)
	}
	defer func() {
		unlockErr := uc.LockerService.Unlock(context.WithoutCancel(ctx), lockKey(subjectID), lockValue)
		if unlockErr != nil {
			uc.Log.Error("wizardUsecase.Submit error releasing lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(unlockErr),
			)
		}
	}()

	session, err := uc.SessionRepository.Find(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, exceptions.ErrWizardInvalidTransition(ErrInvalidTransition)
	}

	profile, err := uc.ProfileUsecase.LoadProfile(ctx, subjectID)
	if err != nil && !isNotFound(err) {
		uc.Log.Error("wizardUsecase.Submit error loading profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if err != nil || profile == nil {
		uc.Log.Info("wizardUsecase.Submit no profile for subject",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSubjectIDKey, subjectID),
		)
		return nil, exceptions.ErrProfileRequired(nil)
	}

	machine := uc.newMachine(session)
	err = machine.BeginSubmit()
	if err != nil {
		return nil, mapMachineError(err)
	}

	err = uc.applySubmitQuota(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	err = uc.SessionRepository.Save(ctx, session)
	if err != nil {
		uc.Log.Error("wizardUsecase.Submit error saving analyzing session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	result := uc.AssessmentUsecase.Resolve(ctx, models.SessionContext{
		SubjectID: subjectID,
		Profile:   *profile,
	}, session.Symptoms)

	// The classifier may have consumed the request deadline; the outcome is still recorded.
	persistCtx := context.WithoutCancel(ctx)
	refreshErr := uc.LockerService.Refresh(persistCtx, lockKey(subjectID), lockValue, lockTTL)
	if refreshErr != nil {
		uc.Log.Warn("wizardUsecase.Submit lock expired during analysis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(refreshErr),
		)
	}

	err = machine.Complete(result)
	if err != nil {
		return nil, mapMachineError(err)
	}

	err = uc.SessionRepository.Save(persistCtx, session)
	if err != nil {
		uc.Log.Error("wizardUsecase.Submit error saving result session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	uc.Log.Info("wizardUsecase.Submit succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, subjectID),
		zap.String(constvars.LoggingRiskLevelKey, result.RiskLevel),
		zap.Int(constvars.LoggingProbabilityKey, result.Probability),
	)
	return BuildWizardResponse(session), nil
}

func (uc *wizardUsecase) transition(ctx context.Context, subjectID, action string, apply func(machine *Machine) error) (*responses.Wizard, error) {
	requestID := utils.GetRequestID(ctx)

	session, err := uc.loadSession(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	err = apply(uc.newMachine(session))
	if err != nil {
		uc.Log.Info("wizardUsecase."+action+" rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingWizardStateKey, session.State),
			zap.Int(constvars.LoggingWizardStepKey, session.Step),
			zap.Error(err),
		)
		return nil, mapMachineError(err)
	}

	err = uc.SessionRepository.Save(ctx, session)
	if err != nil {
		uc.Log.Error("wizardUsecase."+action+" error saving session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("wizardUsecase."+action+" succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWizardStateKey, session.State),
		zap.Int(constvars.LoggingWizardStepKey, session.Step),
	)
	return BuildWizardResponse(session), nil
}

// loadSession returns the stored session or a new one. An analyzing session
// whose lock has expired is an abandoned submission and is closed with the
// error result.
func (uc *wizardUsecase) loadSession(ctx context.Context, subjectID string) (*models.WizardSession, error) {
	session, err := uc.SessionRepository.Find(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	if session == nil {
		session = NewSession(subjectID, uc.now())
		err = uc.SessionRepository.Save(ctx, session)
		if err != nil {
			return nil, err
		}
		return session, nil
	}

	if session.State != constvars.WizardStateAnalyzing {
		return session, nil
	}

	locked, err := uc.LockerService.IsLocked(ctx, lockKey(subjectID))
	if err != nil || locked {
		return session, err
	}

	uc.Log.Warn("wizardUsecase recovering abandoned analysis",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingSubjectIDKey, subjectID),
	)
	err = uc.newMachine(session).Complete(models.NewErrorRiskResult())
	if err != nil {
		return nil, mapMachineError(err)
	}
	err = uc.SessionRepository.Save(ctx, session)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (uc *wizardUsecase) applySubmitQuota(ctx context.Context, subjectID string) error {
	if uc.QuotaLimiter == nil {
		return nil
	}

	output, err := uc.QuotaLimiter.Apply(ctx, ratelimiter.QuotaInput{
		Group:      constvars.QuotaGroupSubmit,
		Subject:    subjectID,
		WindowSecs: int(time.Hour / time.Second),
		MaxQuota:   uc.InternalConfig.App.SubmitQuotaPerHour,
	})
	if err != nil {
		return err
	}
	if !output.Allowed {
		uc.Log.Warn("wizardUsecase.Submit quota exceeded",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingSubjectIDKey, subjectID),
			zap.Int("retry_after_secs", output.RetryAfterSecs),
		)
		return exceptions.ErrSubmitQuotaExceeded(nil)
	}
	return nil
}

func (uc *wizardUsecase) newMachine(session *models.WizardSession) *Machine {
	return &Machine{Session: session, Now: uc.now}
}

func mapMachineError(err error) error {
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		switch fieldErr.Err {
		case ErrUnknownField:
			return exceptions.ErrWizardUnknownField(err, fieldErr.Field)
		case ErrFieldNotOnStep:
			return exceptions.ErrWizardFieldNotOnStep(err, fieldErr.Field, fieldErr.Step)
		case ErrInvalidValue:
			return exceptions.ErrWizardInvalidValue(err, fieldErr.Field, fieldErr.Value)
		}
	}

	var incompleteErr *IncompleteError
	if errors.As(err, &incompleteErr) {
		return exceptions.ErrWizardIncomplete(err, incompleteErr.Field)
	}

	if errors.Is(err, ErrBusy) {
		return exceptions.ErrWizardBusy(err)
	}
	return exceptions.ErrWizardInvalidTransition(err)
}

func isNotFound(err error) bool {
	var customErr *exceptions.CustomError
	return errors.As(err, &customErr) && customErr.StatusCode == constvars.StatusNotFound
}

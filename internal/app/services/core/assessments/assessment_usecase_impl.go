package assessments

import (
	"context"
	"neonatal-triage-service/internal/app/contracts"
	"neonatal-triage-service/internal/app/models"
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/dto/requests"
	"neonatal-triage-service/internal/pkg/exceptions"
	"neonatal-triage-service/internal/pkg/utils"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type assessmentUsecase struct {
	AssessmentRepository contracts.AssessmentRepository
	ClassifierClient     contracts.ClassifierClient
	AlertPublisher       contracts.AlertPublisher
	Log                  *zap.Logger
	now                  func() time.Time
}

var (
	assessmentUsecaseInstance contracts.AssessmentUsecase
	onceAssessmentUsecase     sync.Once
)

func NewAssessmentUsecase(
	assessmentRepository contracts.AssessmentRepository,
	classifierClient contracts.ClassifierClient,
	alertPublisher contracts.AlertPublisher,
	logger *zap.Logger,
) contracts.AssessmentUsecase {
	onceAssessmentUsecase.Do(func() {
		assessmentUsecaseInstance = &assessmentUsecase{
			AssessmentRepository: assessmentRepository,
			ClassifierClient:     classifierClient,
			AlertPublisher:       alertPublisher,
			Log:                  logger,
			now:                  time.Now,
		}
	})
	return assessmentUsecaseInstance
}

// Resolve classifies the symptoms and records the outcome. Any classification
// failure yields the error result and nothing is recorded. Recording and
// alerting failures are logged and never change the returned result.
func (uc *assessmentUsecase) Resolve(ctx context.Context, session models.SessionContext, symptoms models.SymptomSet) models.RiskResult {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("assessmentUsecase.Resolve called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, session.SubjectID),
	)

	request := BuildDiagnosisRequest(session.Profile, symptoms)
	response, rawBody, err := uc.ClassifierClient.Diagnose(ctx, request)
	if err != nil {
		uc.Log.Error("assessmentUsecase.Resolve classifier call failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return models.NewErrorRiskResult()
	}

	result, err := MapClassifierResponse(*response.RecomendacionPrincipal, *response.Confianza)
	if err != nil {
		uc.Log.Error("assessmentUsecase.Resolve cannot map classifier response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClassifierLabelKey, *response.RecomendacionPrincipal),
			zap.Error(err),
		)
		return models.NewErrorRiskResult()
	}

	now := uc.now().UTC()
	record := &models.AssessmentRecord{
		ID:                    utils.GenerateAssessmentID(),
		UserID:                session.SubjectID,
		Timestamp:             now.Format(time.RFC3339),
		Profile:               session.Profile,
		Symptoms:              symptoms,
		Result:                result,
		RawClassifierResponse: decodeRawResponse(rawBody),
		CreatedAt:             now,
	}

	persistCtx := context.WithoutCancel(ctx)
	err = uc.AssessmentRepository.Insert(persistCtx, record)
	if err != nil {
		uc.Log.Error("assessmentUsecase.Resolve error recording assessment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAssessmentIDKey, record.ID),
			zap.Error(err),
		)
	}

	if result.RiskLevel == constvars.RiskLevelHigh {
		uc.publishHighRisk(persistCtx, record)
	}

	utils.LogBusinessEvent(uc.Log, "assessment_resolved", requestID,
		zap.String(constvars.LoggingSubjectIDKey, session.SubjectID),
		zap.String(constvars.LoggingAssessmentIDKey, record.ID),
		zap.String(constvars.LoggingRiskLevelKey, result.RiskLevel),
		zap.Int(constvars.LoggingProbabilityKey, result.Probability),
	)
	return result
}

func (uc *assessmentUsecase) FindHistory(ctx context.Context, subjectID string) ([]models.AssessmentRecord, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("assessmentUsecase.FindHistory called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, subjectID),
	)

	records, err := uc.AssessmentRepository.FindByUserID(ctx, subjectID)
	if err != nil {
		uc.Log.Error("assessmentUsecase.FindHistory error fetching records",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("assessmentUsecase.FindHistory succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAssessmentCountKey, len(records)),
	)
	return records, nil
}

func (uc *assessmentUsecase) FindLatest(ctx context.Context, subjectID string) (*models.AssessmentRecord, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("assessmentUsecase.FindLatest called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, subjectID),
	)

	record, err := uc.AssessmentRepository.FindLatestByUserID(ctx, subjectID)
	if err != nil {
		uc.Log.Error("assessmentUsecase.FindLatest error fetching record",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if record == nil {
		return nil, exceptions.ErrAssessmentNotFound(nil)
	}
	return record, nil
}

func (uc *assessmentUsecase) publishHighRisk(ctx context.Context, record *models.AssessmentRecord) {
	err := uc.AlertPublisher.PublishHighRisk(ctx, &requests.HighRiskAlert{
		UserID:       record.UserID,
		AssessmentID: record.ID,
		RiskLevel:    record.Result.RiskLevel,
		Probability:  record.Result.Probability,
		CreatedAt:    record.CreatedAt,
	})
	if err != nil {
		uc.Log.Error("assessmentUsecase.Resolve error publishing high risk alert",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingAssessmentIDKey, record.ID),
			zap.Error(err),
		)
	}
}

// decodeRawResponse keeps the classifier body as an opaque document. A body
// that is not a JSON object is not kept.
func decodeRawResponse(body []byte) map[string]any {
	if len(body) == 0 {
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}
	return raw
}

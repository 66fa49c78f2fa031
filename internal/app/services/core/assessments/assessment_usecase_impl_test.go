package assessments

import (
	"context"
	"errors"
	"neonatal-triage-service/internal/app/models"
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/dto/requests"
	"neonatal-triage-service/internal/pkg/dto/responses"
	"neonatal-triage-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockAssessmentRepository struct {
	mock.Mock
}

func (m *MockAssessmentRepository) Insert(ctx context.Context, record *models.AssessmentRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAssessmentRepository) FindByUserID(ctx context.Context, userID string) ([]models.AssessmentRecord, error) {
	args := m.Called(ctx, userID)
	records, _ := args.Get(0).([]models.AssessmentRecord)
	return records, args.Error(1)
}

func (m *MockAssessmentRepository) FindLatestByUserID(ctx context.Context, userID string) (*models.AssessmentRecord, error) {
	args := m.Called(ctx, userID)
	record, _ := args.Get(0).(*models.AssessmentRecord)
	return record, args.Error(1)
}

type MockClassifierClient struct {
	mock.Mock
}

func (m *MockClassifierClient) Diagnose(ctx context.Context, request *requests.Diagnosis) (*responses.Diagnosis, []byte, error) {
	args := m.Called(ctx, request)
	response, _ := args.Get(0).(*responses.Diagnosis)
	body, _ := args.Get(1).([]byte)
	return response, body, args.Error(2)
}

type MockAlertPublisher struct {
	mock.Mock
}

func (m *MockAlertPublisher) PublishHighRisk(ctx context.Context, alert *requests.HighRiskAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockAlertPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

var resolvedAt = time.Date(2024, 5, 10, 8, 30, 0, 0, time.UTC)

func newTestAssessmentUsecase() (*assessmentUsecase, *MockAssessmentRepository, *MockClassifierClient, *MockAlertPublisher) {
	repo := new(MockAssessmentRepository)
	classifier := new(MockClassifierClient)
	publisher := new(MockAlertPublisher)
	uc := &assessmentUsecase{
		AssessmentRepository: repo,
		ClassifierClient:     classifier,
		AlertPublisher:       publisher,
		Log:                  zap.NewNop(),
		now:                  func() time.Time { return resolvedAt },
	}
	return uc, repo, classifier, publisher
}

func testSessionContext() models.SessionContext {
	return models.SessionContext{
		SubjectID: "subject-1",
		Profile: models.NeonatalProfile{
			MaternalInfectiousRisk: "Bajo",
			GestationalAge:         "aTermino",
			SiblingJaundiceHistory: "No",
			FeedingType:            "Pecho",
			NeonatalAge:            "2_4Semanas",
			BirthOrder:             "Hnos",
			Sex:                    "M",
		},
	}
}

func testSymptoms() models.SymptomSet {
	return models.SymptomSet{
		AntibioticUse:        "No",
		Cough:                "Seca",
		Temperature:          "Normal",
		RespiratoryEffort:    "Normal",
		Appetite:             "Normal",
		WetDiaperFrequency:   "Normal",
		SkinColor:            "Normal",
		VomitCharacteristics: "Regurgitacion",
		ConsciousnessLevel:   "Alerta",
	}
}

func diagnosis(label string, confidence float64) *responses.Diagnosis {
	return &responses.Diagnosis{RecomendacionPrincipal: &label, Confianza: &confidence}
}

func TestAssessmentUsecase_Resolve(t *testing.T) {
	t.Run("Priority consult is recorded as moderate", func(t *testing.T) {
		uc, repo, classifier, publisher := newTestAssessmentUsecase()
		body := []byte(`{"recomendacion_principal":"Consulta_Prioritaria","confianza":0.75,"extra":true}`)
		classifier.On("Diagnose", mock.Anything, mock.AnythingOfType("*requests.Diagnosis")).
			Return(diagnosis(constvars.ClassifierLabelPriorityConsult, 0.75), body, nil)
		repo.On("Insert", mock.Anything, mock.AnythingOfType("*models.AssessmentRecord")).Return(nil)

		result := uc.Resolve(context.Background(), testSessionContext(), testSymptoms())

		assert.Equal(t, constvars.RiskLevelModerate, result.RiskLevel)
		assert.Equal(t, 75, result.Probability)
		assert.Equal(t, constvars.PrimarySuspectPriorityConsult, result.PrimarySuspect)

		repo.AssertNumberOfCalls(t, "Insert", 1)
		record := repo.Calls[0].Arguments.Get(1).(*models.AssessmentRecord)
		assert.NotEmpty(t, record.ID)
		assert.Equal(t, "subject-1", record.UserID)
		assert.Equal(t, "2024-05-10T08:30:00Z", record.Timestamp)
		assert.Equal(t, testSymptoms(), record.Symptoms)
		assert.Equal(t, testSessionContext().Profile, record.Profile)
		assert.Equal(t, result, record.Result)
		assert.Equal(t, true, record.RawClassifierResponse["extra"])
		publisher.AssertNotCalled(t, "PublishHighRisk", mock.Anything, mock.Anything)
	})

	t.Run("Classifier failure yields the error result and records nothing", func(t *testing.T) {
		uc, repo, classifier, _ := newTestAssessmentUsecase()
		classifier.On("Diagnose", mock.Anything, mock.Anything).
			Return(nil, nil, exceptions.ErrClassifierCall(errors.New("connection refused")))

		result := uc.Resolve(context.Background(), testSessionContext(), testSymptoms())

		assert.Equal(t, models.NewErrorRiskResult(), result)
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("Unknown label yields the error result", func(t *testing.T) {
		uc, repo, classifier, _ := newTestAssessmentUsecase()
		classifier.On("Diagnose", mock.Anything, mock.Anything).
			Return(diagnosis("Observacion", 0.9), []byte(`{}`), nil)

		result := uc.Resolve(context.Background(), testSessionContext(), testSymptoms())

		assert.True(t, result.IsError())
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("Recording failure does not change the result", func(t *testing.T) {
		uc, repo, classifier, _ := newTestAssessmentUsecase()
		classifier.On("Diagnose", mock.Anything, mock.Anything).
			Return(diagnosis(constvars.ClassifierLabelHomeCare, 0.68), []byte(`{}`), nil)
		repo.On("Insert", mock.Anything, mock.Anything).Return(exceptions.ErrMongoDBInsertDocument(errors.New("no primary")))

		result := uc.Resolve(context.Background(), testSessionContext(), testSymptoms())

		assert.Equal(t, constvars.RiskLevelLow, result.RiskLevel)
		assert.Equal(t, 68, result.Probability)
	})

	t.Run("High risk publishes an alert", func(t *testing.T) {
		uc, repo, classifier, publisher := newTestAssessmentUsecase()
		classifier.On("Diagnose", mock.Anything, mock.Anything).
			Return(diagnosis(constvars.ClassifierLabelHospitalUrgency, 0.93), []byte(`{}`), nil)
		repo.On("Insert", mock.Anything, mock.Anything).Return(nil)
		publisher.On("PublishHighRisk", mock.Anything, mock.AnythingOfType("*requests.HighRiskAlert")).
			Return(errors.New("channel closed"))

		result := uc.Resolve(context.Background(), testSessionContext(), testSymptoms())

		assert.Equal(t, constvars.RiskLevelHigh, result.RiskLevel)
		publisher.AssertNumberOfCalls(t, "PublishHighRisk", 1)
		alert := publisher.Calls[0].Arguments.Get(1).(*requests.HighRiskAlert)
		assert.Equal(t, "subject-1", alert.UserID)
		assert.Equal(t, 93, alert.Probability)
	})

	t.Run("Cancelled caller does not cancel recording", func(t *testing.T) {
		uc, repo, classifier, _ := newTestAssessmentUsecase()
		ctx, cancel := context.WithCancel(context.Background())
		classifier.On("Diagnose", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { cancel() }).
			Return(diagnosis(constvars.ClassifierLabelHomeCare, 0.5), []byte(`{}`), nil)
		repo.On("Insert", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), mock.Anything).Return(nil)

		result := uc.Resolve(ctx, testSessionContext(), testSymptoms())

		assert.Equal(t, constvars.RiskLevelLow, result.RiskLevel)
		repo.AssertNumberOfCalls(t, "Insert", 1)
	})
}

func TestAssessmentUsecase_FindLatest(t *testing.T) {
	t.Run("No records", func(t *testing.T) {
		uc, repo, _, _ := newTestAssessmentUsecase()
		repo.On("FindLatestByUserID", mock.Anything, "subject-1").Return(nil, nil)

		record, err := uc.FindLatest(context.Background(), "subject-1")

		assert.Nil(t, record)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("Latest record", func(t *testing.T) {
		uc, repo, _, _ := newTestAssessmentUsecase()
		expected := &models.AssessmentRecord{ID: "a-1", UserID: "subject-1"}
		repo.On("FindLatestByUserID", mock.Anything, "subject-1").Return(expected, nil)

		record, err := uc.FindLatest(context.Background(), "subject-1")

		require.NoError(t, err)
		assert.Equal(t, expected, record)
	})
}

func TestAssessmentUsecase_FindHistory(t *testing.T) {
	uc, repo, _, _ := newTestAssessmentUsecase()
	records := []models.AssessmentRecord{{ID: "a-2"}, {ID: "a-1"}}
	repo.On("FindByUserID", mock.Anything, "subject-1").Return(records, nil)

	history, err := uc.FindHistory(context.Background(), "subject-1")

	require.NoError(t, err)
	assert.Equal(t, records, history)
}

func TestDecodeRawResponse(t *testing.T) {
	assert.Nil(t, decodeRawResponse(nil))
	assert.Nil(t, decodeRawResponse([]byte(`["not","an","object"]`)))
	assert.Equal(t, map[string]any{"confianza": 0.5}, decodeRawResponse([]byte(`{"confianza":0.5}`)))
}

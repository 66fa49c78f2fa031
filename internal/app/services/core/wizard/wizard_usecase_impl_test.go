package wizard

import (
	"context"
	"errors"
	"neonatal-triage-service/internal/app/config"
	"neonatal-triage-service/internal/app/models"
	"neonatal-triage-service/internal/app/services/shared/ratelimiter"
	"neonatal-triage-service/internal/app/services/shared/redis"
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/dto/requests"
	"neonatal-triage-service/internal/pkg/exceptions"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockProfileUsecase struct {
	mock.Mock
}

func (m *MockProfileUsecase) LoadProfile(ctx context.Context, subjectID string) (*models.NeonatalProfile, error) {
	args := m.Called(ctx, subjectID)
	profile, _ := args.Get(0).(*models.NeonatalProfile)
	return profile, args.Error(1)
}

func (m *MockProfileUsecase) SaveProfile(ctx context.Context, subjectID string, request *requests.SaveProfile) (*models.NeonatalProfile, error) {
	args := m.Called(ctx, subjectID, request)
	profile, _ := args.Get(0).(*models.NeonatalProfile)
	return profile, args.Error(1)
}

type MockAssessmentUsecase struct {
	mock.Mock
}

func (m *MockAssessmentUsecase) Resolve(ctx context.Context, session models.SessionContext, symptoms models.SymptomSet) models.RiskResult {
	args := m.Called(ctx, session, symptoms)
	return args.Get(0).(models.RiskResult)
}

func (m *MockAssessmentUsecase) FindHistory(ctx context.Context, subjectID string) ([]models.AssessmentRecord, error) {
	args := m.Called(ctx, subjectID)
	records, _ := args.Get(0).([]models.AssessmentRecord)
	return records, args.Error(1)
}

func (m *MockAssessmentUsecase) FindLatest(ctx context.Context, subjectID string) (*models.AssessmentRecord, error) {
	args := m.Called(ctx, subjectID)
	record, _ := args.Get(0).(*models.AssessmentRecord)
	return record, args.Error(1)
}

// memoryLocker keeps locks in process; held locks never expire unless released.
type memoryLocker struct {
	mu       sync.Mutex
	held     map[string]string
	released int
}

func newMemoryLocker() *memoryLocker {
	return &memoryLocker{held: map[string]string{}}
}

func (l *memoryLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return false, "", nil
	}
	l.held[key] = "owner-" + key
	return true, l.held[key], nil
}

func (l *memoryLocker) Unlock(ctx context.Context, key, lockValue string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] == lockValue {
		delete(l.held, key)
		l.released++
	}
	return nil
}

func (l *memoryLocker) IsLocked(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.held[key]
	return ok, nil
}

func (l *memoryLocker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return nil
}

type wizardFixture struct {
	mr          *miniredis.Miniredis
	usecase     *wizardUsecase
	profiles    *MockProfileUsecase
	assessments *MockAssessmentUsecase
	locker      *memoryLocker
}

func setupWizardUsecase(t *testing.T, quotaPerHour int) *wizardFixture {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	redisRepository := redis.NewRedisRepository(client)

	internalConfig := &config.InternalConfig{
		App:    config.App{SubmitQuotaPerHour: quotaPerHour},
		Wizard: config.AppWizard{SessionTTLInMinutes: 60, LockTTLInSeconds: 45},
	}

	fixture := &wizardFixture{
		mr:          mr,
		profiles:    new(MockProfileUsecase),
		assessments: new(MockAssessmentUsecase),
		locker:      newMemoryLocker(),
	}
	fixture.usecase = &wizardUsecase{
		SessionRepository: NewWizardSessionRedisRepository(redisRepository, time.Hour),
		ProfileUsecase:    fixture.profiles,
		AssessmentUsecase: fixture.assessments,
		LockerService:     fixture.locker,
		QuotaLimiter:      ratelimiter.NewQuotaLimiter(redisRepository, zap.NewNop()),
		InternalConfig:    internalConfig,
		Log:               zap.NewNop(),
		now:               func() time.Time { return fixedNow },
	}
	return fixture
}

func testProfile() *models.NeonatalProfile {
	return &models.NeonatalProfile{
		MaternalInfectiousRisk: "Bajo",
		GestationalAge:         "aTermino",
		SiblingJaundiceHistory: "No",
		FeedingType:            "Pecho",
		NeonatalAge:            "2_4Semanas",
		BirthOrder:             "Hnos",
		Sex:                    "M",
	}
}

var testAnswers = map[string]string{
	constvars.FieldAntibioticUse:        "No",
	constvars.FieldCough:                "Productiva",
	constvars.FieldTemperature:          "Fiebre",
	constvars.FieldRespiratoryEffort:    "Normal",
	constvars.FieldAppetite:             "Normal",
	constvars.FieldWetDiaperFrequency:   "Normal",
	constvars.FieldVomitCharacteristics: "Ninguno",
	constvars.FieldSkinColor:            "Normal",
	constvars.FieldConsciousnessLevel:   "Alerta",
}

func fillQuestionnaire(t *testing.T, uc *wizardUsecase, subjectID string, skip string) {
	t.Helper()
	ctx := context.Background()
	for i, step := range Steps {
		for _, field := range step.Fields {
			if field == skip {
				continue
			}
			_, err := uc.SetField(ctx, subjectID, &requests.SetWizardField{Field: field, Value: testAnswers[field]})
			require.NoError(t, err)
		}
		if i < len(Steps)-1 {
			_, err := uc.Next(ctx, subjectID)
			require.NoError(t, err)
		}
	}
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, status, customErr.StatusCode, customErr.DevMessage)
}

func TestWizardUsecase_Current(t *testing.T) {
	f := setupWizardUsecase(t, 0)

	wizard, err := f.usecase.Current(context.Background(), "s-1")

	require.NoError(t, err)
	assert.Equal(t, constvars.WizardStateStep, wizard.State)
	assert.Equal(t, 1, wizard.Step)
	assert.Equal(t, 3, wizard.TotalSteps)
	assert.Equal(t, constvars.WizardStepTitleBreathing, wizard.StepTitle)
	assert.Len(t, wizard.Questions, 4)
	assert.True(t, f.mr.Exists(constvars.RedisKeyWizardPrefix+"s-1"))
	assert.Equal(t, time.Hour, f.mr.TTL(constvars.RedisKeyWizardPrefix+"s-1"))
}

func TestWizardUsecase_SubmitScenario(t *testing.T) {
	f := setupWizardUsecase(t, 0)
	ctx := context.Background()
	expected := models.RiskResult{
		RiskLevel:      constvars.RiskLevelModerate,
		Probability:    75,
		PrimarySuspect: constvars.PrimarySuspectPriorityConsult,
		Recommendation: constvars.RecommendationPriorityConsult,
	}
	f.profiles.On("LoadProfile", mock.Anything, "s-1").Return(testProfile(), nil)
	f.assessments.On("Resolve", mock.Anything, models.SessionContext{SubjectID: "s-1", Profile: *testProfile()}, mock.AnythingOfType("models.SymptomSet")).
		Return(expected)

	fillQuestionnaire(t, f.usecase, "s-1", "")
	wizard, err := f.usecase.Submit(ctx, "s-1")

	require.NoError(t, err)
	assert.Equal(t, constvars.WizardStateResult, wizard.State)
	require.NotNil(t, wizard.Result)
	assert.Equal(t, constvars.RiskLevelModerate, wizard.Result.RiskLevel)
	assert.Equal(t, 75, wizard.Result.Probability)
	assert.Empty(t, wizard.Questions)

	symptoms := f.assessments.Calls[0].Arguments.Get(2).(models.SymptomSet)
	assert.Equal(t, "Productiva", symptoms.Cough)
	assert.True(t, symptoms.IsComplete())
	assert.Equal(t, 1, f.locker.released, "lock must be released")

	t.Run("Result survives a reload", func(t *testing.T) {
		current, err := f.usecase.Current(ctx, "s-1")
		require.NoError(t, err)
		assert.Equal(t, constvars.WizardStateResult, current.State)
		assert.Equal(t, 75, current.Result.Probability)
	})

	t.Run("New assessment clears everything", func(t *testing.T) {
		fresh, err := f.usecase.NewAssessment(ctx, "s-1")
		require.NoError(t, err)
		assert.Equal(t, constvars.WizardStateStep, fresh.State)
		assert.Equal(t, 1, fresh.Step)
		assert.Nil(t, fresh.Result)
		for _, value := range fresh.Symptoms {
			assert.Empty(t, value)
		}
	})
}

func TestWizardUsecase_SubmitWithErrorResult(t *testing.T) {
	f := setupWizardUsecase(t, 0)
	f.profiles.On("LoadProfile", mock.Anything, "s-1").Return(testProfile(), nil)
	f.assessments.On("Resolve", mock.Anything, mock.Anything, mock.Anything).Return(models.NewErrorRiskResult())

	fillQuestionnaire(t, f.usecase, "s-1", "")
	wizard, err := f.usecase.Submit(context.Background(), "s-1")

	require.NoError(t, err)
	assert.Equal(t, constvars.WizardStateResult, wizard.State)
	assert.Equal(t, constvars.RiskLevelError, wizard.Result.RiskLevel)
	assert.Equal(t, 0, wizard.Result.Probability)
}

func TestWizardUsecase_SubmitWithoutProfile(t *testing.T) {
	f := setupWizardUsecase(t, 0)
	f.profiles.On("LoadProfile", mock.Anything, "s-1").Return(nil, exceptions.ErrProfileNotFound(nil))

	fillQuestionnaire(t, f.usecase, "s-1", "")
	_, err := f.usecase.Submit(context.Background(), "s-1")

	requireStatus(t, err, constvars.StatusPreconditionRequired)
	f.assessments.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)

	current, err := f.usecase.Current(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, constvars.WizardStateStep, current.State)
	assert.Equal(t, 3, current.Step)
}

func TestWizardUsecase_SubmitWhenProfileStoresFail(t *testing.T) {
	f := setupWizardUsecase(t, 0)
	f.profiles.On("LoadProfile", mock.Anything, "s-1").
		Return(nil, exceptions.ErrMongoDBFindDocument(errors.New("no primary")))

	fillQuestionnaire(t, f.usecase, "s-1", "")
	_, err := f.usecase.Submit(context.Background(), "s-1")

	requireStatus(t, err, constvars.StatusInternalServerError)
	f.assessments.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, f.locker.held, "lock must be released")
}

func TestWizardUsecase_SubmitIncomplete(t *testing.T) {
	f := setupWizardUsecase(t, 0)
	f.profiles.On("LoadProfile", mock.Anything, "s-1").Return(testProfile(), nil)

	fillQuestionnaire(t, f.usecase, "s-1", constvars.FieldWetDiaperFrequency)
	_, err := f.usecase.Submit(context.Background(), "s-1")

	requireStatus(t, err, constvars.StatusUnprocessableEntity)
	assert.Contains(t, err.Error(), constvars.FieldWetDiaperFrequency)
	f.assessments.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
}

func TestWizardUsecase_SubmitWithoutSession(t *testing.T) {
	f := setupWizardUsecase(t, 0)

	_, err := f.usecase.Submit(context.Background(), "s-1")

	requireStatus(t, err, constvars.StatusConflict)
}

func TestWizardUsecase_BusyWhileAnalyzing(t *testing.T) {
	f := setupWizardUsecase(t, 0)
	ctx := context.Background()
	fillQuestionnaire(t, f.usecase, "s-1", "")

	session, err := f.usecase.SessionRepository.Find(ctx, "s-1")
	require.NoError(t, err)
	session.State = constvars.WizardStateAnalyzing
	require.NoError(t, f.usecase.SessionRepository.Save(ctx, session))
	_, _, err = f.locker.TryLock(ctx, lockKey("s-1"), time.Minute)
	require.NoError(t, err)

	_, err = f.usecase.Submit(ctx, "s-1")
	requireStatus(t, err, constvars.StatusConflict)

	_, err = f.usecase.Back(ctx, "s-1")
	requireStatus(t, err, constvars.StatusConflict)

	_, err = f.usecase.SetField(ctx, "s-1", &requests.SetWizardField{Field: constvars.FieldSkinColor, Value: "Azulada"})
	requireStatus(t, err, constvars.StatusConflict)

	current, err := f.usecase.Current(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, constvars.WizardStateAnalyzing, current.State)
}

func TestWizardUsecase_RecoversAbandonedAnalysis(t *testing.T) {
	f := setupWizardUsecase(t, 0)
	ctx := context.Background()
	fillQuestionnaire(t, f.usecase, "s-1", "")

	session, err := f.usecase.SessionRepository.Find(ctx, "s-1")
	require.NoError(t, err)
	session.State = constvars.WizardStateAnalyzing
	require.NoError(t, f.usecase.SessionRepository.Save(ctx, session))

	current, err := f.usecase.Current(ctx, "s-1")

	require.NoError(t, err)
	assert.Equal(t, constvars.WizardStateResult, current.State)
	assert.Equal(t, constvars.RiskLevelError, current.Result.RiskLevel)
}

func TestWizardUsecase_SubmitQuota(t *testing.T) {
	f := setupWizardUsecase(t, 1)
	ctx := context.Background()
	f.profiles.On("LoadProfile", mock.Anything, "s-1").Return(testProfile(), nil)
	f.assessments.On("Resolve", mock.Anything, mock.Anything, mock.Anything).
		Return(models.RiskResult{RiskLevel: constvars.RiskLevelLow, Probability: 68})

	fillQuestionnaire(t, f.usecase, "s-1", "")
	_, err := f.usecase.Submit(ctx, "s-1")
	require.NoError(t, err)

	_, err = f.usecase.NewAssessment(ctx, "s-1")
	require.NoError(t, err)
	fillQuestionnaire(t, f.usecase, "s-1", "")

	_, err = f.usecase.Submit(ctx, "s-1")
	requireStatus(t, err, constvars.StatusTooManyRequests)
	f.assessments.AssertNumberOfCalls(t, "Resolve", 1)
}

func TestWizardUsecase_FieldErrors(t *testing.T) {
	f := setupWizardUsecase(t, 0)
	ctx := context.Background()

	_, err := f.usecase.SetField(ctx, "s-1", &requests.SetWizardField{Field: "heartRate", Value: "120"})
	requireStatus(t, err, constvars.StatusBadRequest)

	_, err = f.usecase.SetField(ctx, "s-1", &requests.SetWizardField{Field: constvars.FieldCough, Value: "Fuerte"})
	requireStatus(t, err, constvars.StatusBadRequest)

	_, err = f.usecase.SetField(ctx, "s-1", &requests.SetWizardField{Field: constvars.FieldSkinColor, Value: "Normal"})
	requireStatus(t, err, constvars.StatusConflict)

	_, err = f.usecase.SetField(ctx, "s-1", &requests.SetWizardField{Value: "Normal"})
	requireStatus(t, err, constvars.StatusBadRequest)

	_, err = f.usecase.Back(ctx, "s-1")
	requireStatus(t, err, constvars.StatusConflict)
}

func TestWizardUsecase_Exit(t *testing.T) {
	f := setupWizardUsecase(t, 0)
	ctx := context.Background()

	_, err := f.usecase.Next(ctx, "s-1")
	require.NoError(t, err)
	requireStatus(t, f.usecase.Exit(ctx, "s-1"), constvars.StatusConflict)

	_, err = f.usecase.Back(ctx, "s-1")
	require.NoError(t, err)
	require.NoError(t, f.usecase.Exit(ctx, "s-1"))
	assert.False(t, f.mr.Exists(constvars.RedisKeyWizardPrefix+"s-1"))
}

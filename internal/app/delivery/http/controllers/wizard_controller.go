package controllers

import (
	"context"
	"neonatal-triage-service/internal/app/config"
	"neonatal-triage-service/internal/app/contracts"
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/dto/requests"
	"neonatal-triage-service/internal/pkg/dto/responses"
	"neonatal-triage-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

type WizardController struct {
	Log            *zap.Logger
	WizardUsecase  contracts.WizardUsecase
	InternalConfig *config.InternalConfig
}

var (
	wizardControllerInstance *WizardController
	onceWizardController     sync.Once
)

func NewWizardController(logger *zap.Logger, wizardUsecase contracts.WizardUsecase, internalConfig *config.InternalConfig) *WizardController {
	onceWizardController.Do(func() {
		instance := &WizardController{
			Log:            logger,
			WizardUsecase:  wizardUsecase,
			InternalConfig: internalConfig,
		}
		wizardControllerInstance = instance
	})
	return wizardControllerInstance
}

type wizardAction func(ctx context.Context, subjectID string) (*responses.Wizard, error)

func (ctrl *WizardController) GetWizard(w http.ResponseWriter, r *http.Request) {
	ctrl.handle(w, r, "GetWizard", constvars.GetWizardSuccessMessage, ctrl.WizardUsecase.Current)
}

func (ctrl *WizardController) NextStep(w http.ResponseWriter, r *http.Request) {
	ctrl.handle(w, r, "NextStep", constvars.WizardNextStepSuccessMessage, ctrl.WizardUsecase.Next)
}

func (ctrl *WizardController) PreviousStep(w http.ResponseWriter, r *http.Request) {
	ctrl.handle(w, r, "PreviousStep", constvars.WizardPreviousStepSuccessMessage, ctrl.WizardUsecase.Back)
}

func (ctrl *WizardController) NewAssessment(w http.ResponseWriter, r *http.Request) {
	ctrl.handle(w, r, "NewAssessment", constvars.NewAssessmentSuccessMessage, ctrl.WizardUsecase.NewAssessment)
}

func (ctrl *WizardController) UpdateField(w http.ResponseWriter, r *http.Request) {
	requestID, _, err := requestIdentity(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.SetWizardField)
	if err := decodeRequestBody(r, request); err != nil {
		ctrl.Log.Error("WizardController.UpdateField error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.handle(w, r, "UpdateField", constvars.UpdateWizardFieldSuccessMessage, func(ctx context.Context, subjectID string) (*responses.Wizard, error) {
		return ctrl.WizardUsecase.SetField(ctx, subjectID, request)
	})
}

// Submit waits for the classifier, so its deadline covers the classifier timeout.
func (ctrl *WizardController) Submit(w http.ResponseWriter, r *http.Request) {
	requestID, subjectID, err := requestIdentity(r)
	if err != nil {
		ctrl.Log.Error("WizardController.Submit identity not found in context", zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	ctrl.Log.Info("WizardController.Submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	timeout := time.Duration(ctrl.InternalConfig.Classifier.TimeoutInSeconds)*time.Second + 10*time.Second
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	response, err := ctrl.WizardUsecase.Submit(ctx, subjectID)
	if err != nil {
		ctrl.Log.Error("WizardController.Submit error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, mapDeadline(err))
		return
	}

	message := constvars.SubmitAssessmentSuccessMessage
	if response.Result != nil && response.Result.RiskLevel == constvars.RiskLevelError {
		message = constvars.SubmitAssessmentFailedMessage
	}

	ctrl.Log.Info("WizardController.Submit succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWizardStateKey, response.State),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, message, response)
}

func (ctrl *WizardController) Exit(w http.ResponseWriter, r *http.Request) {
	requestID, subjectID, err := requestIdentity(r)
	if err != nil {
		ctrl.Log.Error("WizardController.Exit identity not found in context", zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	ctrl.Log.Info("WizardController.Exit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err = ctrl.WizardUsecase.Exit(ctx, subjectID)
	if err != nil {
		ctrl.Log.Error("WizardController.Exit error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, mapDeadline(err))
		return
	}

	ctrl.Log.Info("WizardController.Exit succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ExitWizardSuccessMessage, nil)
}

func (ctrl *WizardController) handle(w http.ResponseWriter, r *http.Request, name, successMessage string, action wizardAction) {
	requestID, subjectID, err := requestIdentity(r)
	if err != nil {
		ctrl.Log.Error("WizardController."+name+" identity not found in context", zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	ctrl.Log.Info("WizardController."+name+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := action(ctx, subjectID)
	if err != nil {
		ctrl.Log.Error("WizardController."+name+" error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, mapDeadline(err))
		return
	}

	ctrl.Log.Info("WizardController."+name+" succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWizardStateKey, response.State),
		zap.Int(constvars.LoggingWizardStepKey, response.Step),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, successMessage, response)
}

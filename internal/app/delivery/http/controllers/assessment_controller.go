package controllers

import (
	"context"
	"neonatal-triage-service/internal/app/contracts"
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

type AssessmentController struct {
	Log               *zap.Logger
	AssessmentUsecase contracts.AssessmentUsecase
}

var (
	assessmentControllerInstance *AssessmentController
	onceAssessmentController     sync.Once
)

func NewAssessmentController(logger *zap.Logger, assessmentUsecase contracts.AssessmentUsecase) *AssessmentController {
	onceAssessmentController.Do(func() {
		instance := &AssessmentController{
			Log:               logger,
			AssessmentUsecase: assessmentUsecase,
		}
		assessmentControllerInstance = instance
	})
	return assessmentControllerInstance
}

func (ctrl *AssessmentController) FindHistory(w http.ResponseWriter, r *http.Request) {
	requestID, subjectID, err := requestIdentity(r)
	if err != nil {
		ctrl.Log.Error("AssessmentController.FindHistory identity not found in context", zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	ctrl.Log.Info("AssessmentController.FindHistory called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	records, err := ctrl.AssessmentUsecase.FindHistory(ctx, subjectID)
	if err != nil {
		ctrl.Log.Error("AssessmentController.FindHistory error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, mapDeadline(err))
		return
	}

	ctrl.Log.Info("AssessmentController.FindHistory succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAssessmentCountKey, len(records)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAssessmentsSuccessMessage, records)
}

func (ctrl *AssessmentController) FindLatest(w http.ResponseWriter, r *http.Request) {
	requestID, subjectID, err := requestIdentity(r)
	if err != nil {
		ctrl.Log.Error("AssessmentController.FindLatest identity not found in context", zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	ctrl.Log.Info("AssessmentController.FindLatest called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	record, err := ctrl.AssessmentUsecase.FindLatest(ctx, subjectID)
	if err != nil {
		ctrl.Log.Error("AssessmentController.FindLatest error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, mapDeadline(err))
		return
	}

	ctrl.Log.Info("AssessmentController.FindLatest succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetLatestAssessmentSuccessMessage, record)
}

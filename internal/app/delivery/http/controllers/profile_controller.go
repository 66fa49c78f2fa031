package controllers

import (
	"context"
	"neonatal-triage-service/internal/app/contracts"
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/dto/requests"
	"neonatal-triage-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

type ProfileController struct {
	Log            *zap.Logger
	ProfileUsecase contracts.ProfileUsecase
}

var (
	profileControllerInstance *ProfileController
	onceProfileController     sync.Once
)

func NewProfileController(logger *zap.Logger, profileUsecase contracts.ProfileUsecase) *ProfileController {
	onceProfileController.Do(func() {
		instance := &ProfileController{
			Log:            logger,
			ProfileUsecase: profileUsecase,
		}
		profileControllerInstance = instance
	})
	return profileControllerInstance
}

func (ctrl *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	requestID, subjectID, err := requestIdentity(r)
	if err != nil {
		ctrl.Log.Error("ProfileController.GetProfile identity not found in context", zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	ctrl.Log.Info("ProfileController.GetProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	profile, err := ctrl.ProfileUsecase.LoadProfile(ctx, subjectID)
	if err != nil {
		ctrl.Log.Error("ProfileController.GetProfile error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, mapDeadline(err))
		return
	}

	ctrl.Log.Info("ProfileController.GetProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetProfileSuccessMessage, profile)
}

func (ctrl *ProfileController) SaveProfile(w http.ResponseWriter, r *http.Request) {
	requestID, subjectID, err := requestIdentity(r)
	if err != nil {
		ctrl.Log.Error("ProfileController.SaveProfile identity not found in context", zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	ctrl.Log.Info("ProfileController.SaveProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.SaveProfile)
	if err := decodeRequestBody(r, request); err != nil {
		ctrl.Log.Error("ProfileController.SaveProfile error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	profile, err := ctrl.ProfileUsecase.SaveProfile(ctx, subjectID, request)
	if err != nil {
		ctrl.Log.Error("ProfileController.SaveProfile error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, mapDeadline(err))
		return
	}

	ctrl.Log.Info("ProfileController.SaveProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SaveProfileSuccessMessage, profile)
}

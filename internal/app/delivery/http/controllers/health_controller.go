package controllers

import (
	"context"
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/exceptions"
	"neonatal-triage-service/internal/pkg/utils"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"
)

// DependencyCheck reports whether a backing service answers.
type DependencyCheck func(ctx context.Context) error

type HealthController struct {
	Log    *zap.Logger
	Checks map[string]DependencyCheck
}

func NewHealthController(logger *zap.Logger, checks map[string]DependencyCheck) *HealthController {
	return &HealthController{
		Log:    logger,
		Checks: checks,
	}
}

// Liveness only reports that the process serves requests.
func (ctrl *HealthController) Liveness(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, map[string]string{
		"status": constvars.ResponseSuccess,
	})
}

func (ctrl *HealthController) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(ctrl.Checks))
	for name := range ctrl.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := make(map[string]string, len(names))
	for _, name := range names {
		err := ctrl.Checks[name](ctx)
		if err != nil {
			ctrl.Log.Error("HealthController.Readiness dependency check failed",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String("dependency", name),
				zap.Error(err),
			)
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrDependencyUnavailable(err, name))
			return
		}
		status[name] = constvars.ResponseSuccess
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReadinessCheckSuccessMessage, status)
}

package routers

import (
	"neonatal-triage-service/internal/app/delivery/http/controllers"
	"neonatal-triage-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAssessmentRouter(router chi.Router, middlewares *middlewares.Middlewares, assessmentController *controllers.AssessmentController) {
	router.With(middlewares.Authenticate).Get("/", assessmentController.FindHistory)
	router.With(middlewares.Authenticate).Get("/latest", assessmentController.FindLatest)
}

package routers

import (
	"neonatal-triage-service/internal/app/delivery/http/controllers"
	"neonatal-triage-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachWizardRouter(router chi.Router, middlewares *middlewares.Middlewares, wizardController *controllers.WizardController) {
	submitLimiter := middlewares.NewSubmitRateLimiter()

	router.With(middlewares.Authenticate).Get("/", wizardController.GetWizard)
	router.With(middlewares.Authenticate).Put("/fields", wizardController.UpdateField)
	router.With(middlewares.Authenticate).Post("/next", wizardController.NextStep)
	router.With(middlewares.Authenticate).Post("/back", wizardController.PreviousStep)
	router.With(middlewares.Authenticate, submitLimiter.Limit).Post("/submit", wizardController.Submit)
	router.With(middlewares.Authenticate).Post("/new", wizardController.NewAssessment)
	router.With(middlewares.Authenticate).Delete("/", wizardController.Exit)
}

package routers

import (
	"fmt"
	"neonatal-triage-service/internal/app/config"
	"neonatal-triage-service/internal/app/delivery/http/controllers"
	"neonatal-triage-service/internal/app/delivery/http/middlewares"
	"neonatal-triage-service/internal/pkg/constvars"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	healthController *controllers.HealthController,
	profileController *controllers.ProfileController,
	wizardController *controllers.WizardController,
	assessmentController *controllers.AssessmentController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   internalConfig.App.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderXRequestID, constvars.HeaderRetryAfter},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.GlobalRateLimit())
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.BodyLimit)

	router.Get("/healthz", healthController.Liveness)
	router.Get("/readyz", healthController.Readiness)

	endpointPrefix := fmt.Sprintf("/%s", strings.Trim(internalConfig.App.EndpointPrefix, "/"))
	versionPrefix := fmt.Sprintf("/%s", strings.Trim(internalConfig.App.Version, "/"))

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/"+constvars.ResourceProfile, func(r chi.Router) {
				attachProfileRouter(r, middlewares, profileController)
			})

			r.Route("/"+constvars.ResourceWizard, func(r chi.Router) {
				attachWizardRouter(r, middlewares, wizardController)
			})

			r.Route("/"+constvars.ResourceAssessments, func(r chi.Router) {
				attachAssessmentRouter(r, middlewares, assessmentController)
			})
		})
	})
}

package routers

import (
	"neonatal-triage-service/internal/app/delivery/http/controllers"
	"neonatal-triage-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachProfileRouter(router chi.Router, middlewares *middlewares.Middlewares, profileController *controllers.ProfileController) {
	router.With(middlewares.Authenticate).Get("/", profileController.GetProfile)
	router.With(middlewares.Authenticate).Put("/", profileController.SaveProfile)
}

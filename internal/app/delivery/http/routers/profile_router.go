package routers

import (
	"carelink-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachProfileRoutes(router chi.Router, profileController *controllers.ProfileController) {
	router.Get("/", profileController.FindAll)
	router.Get("/me", profileController.GetMe)
	router.Put("/me", profileController.UpdateMe)
	router.Get("/{profile_id}", profileController.FindByID)
}

package routers

import (
	"carelink-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachAgencyRoutes(router chi.Router, agencyController *controllers.AgencyController) {
	router.Get("/", agencyController.FindAll)
	router.Post("/", agencyController.Create)

	router.Route("/{agency_id}", func(r chi.Router) {
		r.Get("/", agencyController.FindByID)
		r.Put("/", agencyController.Update)
		r.Delete("/", agencyController.Delete)
		r.Post("/verify", agencyController.Verify)

		r.Get("/members", agencyController.ListMembers)
		r.Post("/members", agencyController.AddMember)
		r.Delete("/members/{member_id}", agencyController.RemoveMember)
	})
}

package routers

import (
	"carelink-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachSwitchRequestRoutes(
	router chi.Router,
	switchRequestController *controllers.SwitchRequestController,
	documentController *controllers.DocumentController,
	esignatureController *controllers.ESignatureController,
) {
	router.Get("/", switchRequestController.FindAll)
	router.Post("/", switchRequestController.Create)

	router.Route("/{switch_request_id}", func(r chi.Router) {
		r.Get("/", switchRequestController.FindByID)
		r.Put("/status", switchRequestController.UpdateStatus)
		r.Get("/history", switchRequestController.History)

		r.Get("/documents", documentController.ListBySwitchRequest)
		r.Post("/documents", documentController.Upload)

		r.Get("/e-signatures", esignatureController.ListBySwitchRequest)
	})
}

package routers

import (
	"carelink-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachDocumentRoutes(router chi.Router, documentController *controllers.DocumentController) {
	router.Get("/{document_id}", documentController.FindByID)
	router.Delete("/{document_id}", documentController.Delete)
}

func attachESignatureRoutes(router chi.Router, esignatureController *controllers.ESignatureController) {
	router.Post("/", esignatureController.Sign)
	router.Get("/{signature_id}", esignatureController.FindByID)
	router.Get("/{signature_id}/verify", esignatureController.Verify)
}

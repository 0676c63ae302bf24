package routers

import (
	"fmt"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/delivery/http/controllers"
	"carelink-service/internal/app/delivery/http/middlewares"
	"carelink-service/internal/app/services/shared/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Controllers struct {
	Auth          *controllers.AuthController
	Profile       *controllers.ProfileController
	Agency        *controllers.AgencyController
	SwitchRequest *controllers.SwitchRequestController
	Document      *controllers.DocumentController
	ESignature    *controllers.ESignatureController
	Conversation  *controllers.ConversationController
	Notification  *controllers.NotificationController
	AuditLog      *controllers.AuditLogController
	Health        *controllers.HealthController
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	ctrls *Controllers,
) {
	allowedOrigins := []string{"*"}
	if internalConfig.App.FrontendDomain != "" {
		allowedOrigins = []string{internalConfig.App.FrontendDomain}
	}
	corsOptions := cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.RateLimit())
	router.Use(middlewares.Logging)
	router.Use(middlewares.Metrics)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.BodyLimit)

	router.Get("/healthz", ctrls.Health.Check)
	router.Method("GET", "/metrics", metrics.Handler())

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				attachAuthRoutes(r, middlewares, ctrls.Auth)
			})

			// Everything below requires a session and a matching policy line.
			r.Group(func(r chi.Router) {
				r.Use(middlewares.Authenticate)
				r.Use(middlewares.Authorize)

				r.Route("/profiles", func(r chi.Router) {
					attachProfileRoutes(r, ctrls.Profile)
				})

				r.Route("/agencies", func(r chi.Router) {
					attachAgencyRoutes(r, ctrls.Agency)
				})

				r.Route("/switch-requests", func(r chi.Router) {
					attachSwitchRequestRoutes(r, ctrls.SwitchRequest, ctrls.Document, ctrls.ESignature)
				})

				r.Route("/documents", func(r chi.Router) {
					attachDocumentRoutes(r, ctrls.Document)
				})

				r.Route("/e-signatures", func(r chi.Router) {
					attachESignatureRoutes(r, ctrls.ESignature)
				})

				r.Route("/conversations", func(r chi.Router) {
					attachConversationRoutes(r, ctrls.Conversation)
				})

				r.Route("/notifications", func(r chi.Router) {
					attachNotificationRoutes(r, ctrls.Notification)
				})

				r.Route("/admin/audit-logs", func(r chi.Router) {
					attachAuditLogRoutes(r, ctrls.AuditLog)
				})
			})
		})
	})
}

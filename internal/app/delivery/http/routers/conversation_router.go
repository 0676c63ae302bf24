package routers

import (
	"carelink-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachConversationRoutes(router chi.Router, conversationController *controllers.ConversationController) {
	router.Get("/", conversationController.ListConversations)

	router.Route("/{conversation_id}", func(r chi.Router) {
		r.Get("/messages", conversationController.ListMessages)
		r.Post("/messages", conversationController.SendMessage)
		r.Post("/read", conversationController.MarkRead)
		r.Get("/ws", conversationController.Subscribe)
	})
}

func attachNotificationRoutes(router chi.Router, notificationController *controllers.NotificationController) {
	router.Get("/", notificationController.FindAll)
	router.Post("/read-all", notificationController.MarkAllRead)
	router.Post("/{notification_id}/read", notificationController.MarkRead)
}

func attachAuditLogRoutes(router chi.Router, auditLogController *controllers.AuditLogController) {
	router.Get("/", auditLogController.FindAll)
	router.Get("/export", auditLogController.Export)
}

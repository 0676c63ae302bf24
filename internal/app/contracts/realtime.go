package contracts

import (
	"context"

	"carelink-service/internal/app/models"

	"github.com/gorilla/websocket"
)

type RealtimeHub interface {
	Publish(ctx context.Context, event *models.RealtimeEvent) error
	// Attach serves conn until it closes; events for conversationID are pushed to it.
	Attach(ctx context.Context, conn *websocket.Conn, conversationID, profileID string)
	Close()
}

package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/models"
	redisrepo "carelink-service/internal/app/services/shared/redis"
	"carelink-service/internal/pkg/constvars"

	"github.com/alicebob/miniredis/v2"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHub(t *testing.T) *hub {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.InternalConfig{}
	cfg.Messaging.SocketEventsPerSecond = 5
	cfg.Messaging.SocketEventBurst = 5
	cfg.Messaging.SocketWriteWaitInSecond = 2
	cfg.Messaging.SocketPongWaitInSecond = 30

	h, err := NewRealtimeHub(client, redisrepo.NewRedisRepository(client), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(h.Close)
	return h.(*hub)
}

func dialConversation(t *testing.T, h *hub, conversationID, profileID string) *websocket.Conn {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.Attach(context.Background(), conn, conversationID, profileID)
	}))
	t.Cleanup(server.Close)

	before := h.connectionCount(conversationID)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return h.connectionCount(conversationID) == before+1 }, 2*time.Second, 10*time.Millisecond)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) *models.RealtimeEvent {
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	event := new(models.RealtimeEvent)
	require.NoError(t, json.Unmarshal(data, event))
	return event
}

func TestHub_PublishReachesAttachedSockets(t *testing.T) {
	h := newTestHub(t)
	patient := dialConversation(t, h, "c-1", "patient-1")
	staff := dialConversation(t, h, "c-1", "staff-1")
	outsider := dialConversation(t, h, "c-2", "patient-2")

	err := h.Publish(context.Background(), &models.RealtimeEvent{
		Type:           constvars.RealtimeEventMessage,
		ConversationID: "c-1",
		SenderID:       "patient-1",
		Message:        &models.Message{ID: "m-1", ConversationID: "c-1", SenderID: "patient-1", Body: "hello"},
	})
	require.NoError(t, err)

	for _, conn := range []*websocket.Conn{patient, staff} {
		event := readEvent(t, conn)
		assert.Equal(t, constvars.RealtimeEventMessage, event.Type)
		require.NotNil(t, event.Message)
		assert.Equal(t, "hello", event.Message.Body)
	}

	_ = outsider.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = outsider.ReadMessage()
	assert.Error(t, err, "sockets on other conversations must not receive the event")
}

func TestHub_TypingIsNotEchoedToSender(t *testing.T) {
	h := newTestHub(t)
	patient := dialConversation(t, h, "c-1", "patient-1")
	staff := dialConversation(t, h, "c-1", "staff-1")

	require.NoError(t, patient.WriteMessage(websocket.TextMessage, []byte(`{"type":"typing"}`)))

	event := readEvent(t, staff)
	assert.Equal(t, constvars.RealtimeEventTyping, event.Type)
	assert.Equal(t, "patient-1", event.SenderID)

	_ = patient.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := patient.ReadMessage()
	assert.Error(t, err)
}

func TestHub_DetachesClosedSockets(t *testing.T) {
	h := newTestHub(t)
	conn := dialConversation(t, h, "c-9", "patient-1")

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return h.connectionCount("c-9") == 0 }, 2*time.Second, 10*time.Millisecond)
}

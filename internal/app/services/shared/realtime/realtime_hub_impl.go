package realtime

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/app/services/shared/metrics"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	sendBufferSize  = 32
	maxInboundBytes = 1024
)

// hub fans conversation events out to the sockets attached to this instance.
// Every instance subscribes to all conversation channels in redis, so an
// event published anywhere reaches every socket regardless of which
// instance accepted it.
type hub struct {
	redisRepo contracts.RedisRepository
	pubsub    *redis.PubSub
	cfg       config.AppMessaging
	Log       *zap.Logger

	mu    sync.RWMutex
	rooms map[string]map[*socket]struct{}

	cancel context.CancelFunc
	done   chan struct{}
}

type socket struct {
	conn      *websocket.Conn
	profileID string
	send      chan []byte
	closed    atomic.Bool
	closeOnce sync.Once
}

type inboundFrame struct {
	Type string `json:"type"`
}

func NewRealtimeHub(client *redis.Client, redisRepo contracts.RedisRepository, internalConfig *config.InternalConfig, logger *zap.Logger) (contracts.RealtimeHub, error) {
	ctx, cancel := context.WithCancel(context.Background())
	pubsub := client.PSubscribe(ctx, constvars.RedisConversationChannelPrefix+"*")
	if _, err := pubsub.Receive(ctx); err != nil {
		cancel()
		_ = pubsub.Close()
		return nil, err
	}

	h := &hub{
		redisRepo: redisRepo,
		pubsub:    pubsub,
		cfg:       internalConfig.Messaging,
		Log:       logger,
		rooms:     make(map[string]map[*socket]struct{}),
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	go h.run(ctx)
	return h, nil
}

func (h *hub) Publish(ctx context.Context, event *models.RealtimeEvent) error {
	if event.SentAt.IsZero() {
		event.SentAt = time.Now().UTC()
	}
	return h.redisRepo.Publish(ctx, utils.GenerateConversationChannel(event.ConversationID), event)
}

func (h *hub) run(ctx context.Context) {
	defer close(h.done)
	messages := h.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			h.dispatch(msg.Channel, []byte(msg.Payload))
		}
	}
}

func (h *hub) dispatch(channel string, payload []byte) {
	conversationID := strings.TrimPrefix(channel, constvars.RedisConversationChannelPrefix)

	event := new(models.RealtimeEvent)
	if err := json.Unmarshal(payload, event); err != nil {
		h.Log.Warn("realtimeHub.dispatch dropping malformed event",
			zap.String(constvars.LoggingChannelKey, channel),
			zap.Error(err),
		)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.rooms[conversationID] {
		if s.closed.Load() {
			continue
		}
		if event.Type == constvars.RealtimeEventTyping && event.SenderID == s.profileID {
			continue
		}
		select {
		case s.send <- payload:
		default:
			// Slow reader; the write pump closes the socket.
			s.close()
		}
	}
}

func (h *hub) register(conversationID string, s *socket) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[conversationID]
	if !ok {
		room = make(map[*socket]struct{})
		h.rooms[conversationID] = room
	}
	room[s] = struct{}{}
	metrics.RealtimeConnectionOpened()
}

func (h *hub) unregister(conversationID string, s *socket) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[conversationID]
	if !ok {
		return
	}
	if _, ok := room[s]; !ok {
		return
	}
	delete(room, s)
	if len(room) == 0 {
		delete(h.rooms, conversationID)
	}
	metrics.RealtimeConnectionClosed()
}

func (h *hub) connectionCount(conversationID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[conversationID])
}

// Attach blocks reading from conn until the peer goes away or ctx is done.
func (h *hub) Attach(ctx context.Context, conn *websocket.Conn, conversationID, profileID string) {
	s := &socket{
		conn:      conn,
		profileID: profileID,
		send:      make(chan []byte, sendBufferSize),
	}
	h.register(conversationID, s)

	h.Log.Info("realtimeHub.Attach socket attached",
		zap.String(constvars.LoggingConversationIDKey, conversationID),
		zap.String(constvars.LoggingProfileIDKey, profileID),
	)

	writeDone := make(chan struct{})
	go func() {
		defer close(writeDone)
		h.writePump(ctx, s)
	}()

	h.readPump(ctx, s, conversationID)

	// Unregister first so dispatch never sends on a closed channel.
	h.unregister(conversationID, s)
	s.close()
	<-writeDone

	h.Log.Info("realtimeHub.Attach socket detached",
		zap.String(constvars.LoggingConversationIDKey, conversationID),
		zap.String(constvars.LoggingProfileIDKey, profileID),
	)
}

func (h *hub) readPump(ctx context.Context, s *socket, conversationID string) {
	pongWait := time.Duration(h.cfg.SocketPongWaitInSecond) * time.Second
	limiter := rate.NewLimiter(rate.Limit(h.cfg.SocketEventsPerSecond), h.cfg.SocketEventBurst)

	s.conn.SetReadLimit(maxInboundBytes)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.Log.Warn("realtimeHub.readPump unexpected close",
					zap.String(constvars.LoggingConversationIDKey, conversationID),
					zap.Error(err),
				)
			}
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))

		if !limiter.Allow() {
			continue
		}

		frame := new(inboundFrame)
		if err := json.Unmarshal(data, frame); err != nil {
			continue
		}
		if frame.Type != constvars.RealtimeEventTyping {
			continue
		}

		err = h.Publish(ctx, &models.RealtimeEvent{
			Type:           constvars.RealtimeEventTyping,
			ConversationID: conversationID,
			SenderID:       s.profileID,
		})
		if err != nil {
			h.Log.Warn("realtimeHub.readPump error publishing typing event",
				zap.String(constvars.LoggingConversationIDKey, conversationID),
				zap.Error(err),
			)
		}
	}
}

func (h *hub) writePump(ctx context.Context, s *socket) {
	writeWait := time.Duration(h.cfg.SocketWriteWaitInSecond) * time.Second
	pingPeriod := time.Duration(h.cfg.SocketPongWaitInSecond) * time.Second * 9 / 10
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
			_ = s.conn.Close()
			return
		case payload, ok := <-s.send:
			if !ok {
				_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
				_ = s.conn.Close()
				return
			}
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				_ = s.conn.Close()
				return
			}
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				_ = s.conn.Close()
				return
			}
		}
	}
}

func (s *socket) close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.send)
	})
}

func (h *hub) Close() {
	h.cancel()
	_ = h.pubsub.Close()
	<-h.done

	h.mu.Lock()
	defer h.mu.Unlock()
	for conversationID, room := range h.rooms {
		for s := range room {
			s.close()
			metrics.RealtimeConnectionClosed()
		}
		delete(h.rooms, conversationID)
	}
}

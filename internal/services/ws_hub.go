package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"places-api/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Place event types
const (
	EventPlaceCreated = "place_created"
	EventPlaceUpdated = "place_updated"
	EventPlaceDeleted = "place_deleted"
)

const writeWait = 10 * time.Second

// Event represents a place change pushed to the owner's subscribers
type Event struct {
	Type      string        `json:"type"`
	PlaceID   string        `json:"place_id"`
	Place     *models.Place `json:"place,omitempty"`
	Timestamp int64         `json:"timestamp"`
}

// NewPlaceEvent creates an event for place stamped with the current time
func NewPlaceEvent(eventType string, place *models.Place) Event {
	return Event{
		Type:      eventType,
		PlaceID:   place.ID,
		Place:     place,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Notifier receives events after a change has been committed
type Notifier interface {
	Publish(ctx context.Context, userID string, event Event)
}

type wsClient struct {
	conn *websocket.Conn
	// gorilla connections allow one concurrent writer
	mu sync.Mutex
}

func (c *wsClient) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// WSHub manages WebSocket connections subscribed to a user's places
type WSHub struct {
	mu      sync.RWMutex
	clients map[string]map[*websocket.Conn]*wsClient
}

// NewWSHub creates a new WebSocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		clients: make(map[string]map[*websocket.Conn]*wsClient),
	}
}

// Register subscribes conn to the events of userID
func (h *WSHub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[userID]
	if !ok {
		conns = make(map[*websocket.Conn]*wsClient)
		h.clients[userID] = conns
	}
	conns[conn] = &wsClient{conn: conn}

	log.Info().
		Str("user_id", userID).
		Int("subscribers", len(conns)).
		Msg("WebSocket connection registered")
}

// Unregister closes conn and removes it from the subscribers of userID
func (h *WSHub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[userID]
	if !ok {
		return
	}
	if _, exists := conns[conn]; !exists {
		return
	}

	conn.Close()
	delete(conns, conn)
	if len(conns) == 0 {
		delete(h.clients, userID)
	}

	log.Info().Str("user_id", userID).Msg("WebSocket connection unregistered")
}

// Subscribers returns the number of open connections for userID
func (h *WSHub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Publish sends event to every connection of userID.
// Connections that fail to receive it are dropped.
func (h *WSHub) Publish(ctx context.Context, userID string, event Event) {
	h.mu.RLock()
	targets := make([]*wsClient, 0, len(h.clients[userID]))
	for _, c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("type", event.Type).Msg("Failed to marshal place event")
		return
	}

	for _, c := range targets {
		if err := c.write(data); err != nil {
			log.Ctx(ctx).Warn().
				Err(fmt.Errorf("failed to send message: %w", err)).
				Str("user_id", userID).
				Str("type", event.Type).
				Msg("Dropping WebSocket connection")
			h.Unregister(userID, c.conn)
		}
	}
}

// Close closes every registered connection
func (h *WSHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, conns := range h.clients {
		for conn := range conns {
			conn.Close()
		}
		delete(h.clients, userID)
	}
}

package protocol

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"

	"github.com/narvaezdelosreyesy-dev/Bingo/domain"
	"github.com/narvaezdelosreyesy-dev/Bingo/game"
)

// Handler dispatches decoded client events into the game registry. It owns
// the connection-id -> room-key association used to route claims and
// disconnects; that table is a weak reference for routing only, the room's
// member set stays authoritative.
type Handler struct {
	registry *game.Registry

	mu    sync.RWMutex
	rooms map[string]string
}

func NewHandler(registry *game.Registry) *Handler {
	return &Handler{
		registry: registry,
		rooms:    make(map[string]string),
	}
}

func (h *Handler) Handle(conn domain.Connection, data []byte) {
	var msg domain.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		slog.Warn("invalid message", "clientId", conn.ID(), "error", err)
		return
	}

	switch msg.Type {
	case domain.EventJoinRoom:
		h.handleJoin(conn, msg.Payload)
	case domain.EventPlayerBingo:
		h.handleBingo(conn, msg.Payload)
	default:
		slog.Warn("unknown event", "clientId", conn.ID(), "event", msg.Type)
	}
}

// Disconnect removes the connection from its room, if it had one.
func (h *Handler) Disconnect(conn domain.Connection) {
	h.mu.Lock()
	key, ok := h.rooms[conn.ID()]
	delete(h.rooms, conn.ID())
	h.mu.Unlock()

	if ok {
		h.registry.Leave(key, conn.ID())
	}
}

func (h *Handler) handleJoin(conn domain.Connection, payload json.RawMessage) {
	capacity, err := parseCapacity(payload)
	if err != nil {
		h.send(conn, domain.EventError, domain.ErrInvalidCapacity.Error())
		return
	}

	snap, err := h.registry.Join(capacity, conn)
	if err != nil {
		h.send(conn, domain.EventError, err.Error())
		return
	}

	h.mu.Lock()
	prev, hadPrev := h.rooms[conn.ID()]
	h.rooms[conn.ID()] = snap.RoomName
	h.mu.Unlock()

	// A re-join vacates the old room; without this the stale membership
	// would keep counting toward its capacity.
	if hadPrev && prev != snap.RoomName {
		h.registry.Leave(prev, conn.ID())
	}

	h.send(conn, domain.EventJoined, snap)
}

func (h *Handler) handleBingo(conn domain.Connection, payload json.RawMessage) {
	var claim domain.BingoClaim
	if err := json.Unmarshal(payload, &claim); err != nil {
		slog.Warn("invalid claim payload", "clientId", conn.ID(), "error", err)
		h.send(conn, domain.EventBingoResult, domain.BingoResult{Success: false})
		return
	}

	h.mu.RLock()
	key, ok := h.rooms[conn.ID()]
	h.mu.RUnlock()
	if !ok {
		h.send(conn, domain.EventBingoResult, domain.BingoResult{Success: false})
		return
	}

	result := h.registry.Claim(key, conn.ID(), claim.MarkedNumbers)
	h.send(conn, domain.EventBingoResult, result)
}

func (h *Handler) send(conn domain.Connection, eventType string, payload any) {
	data, err := domain.Encode(eventType, payload)
	if err != nil {
		slog.Error("encode event", "clientId", conn.ID(), "event", eventType, "error", err)
		return
	}
	if err := conn.Send(data); err != nil {
		slog.Warn("send failed", "clientId", conn.ID(), "event", eventType)
	}
}

// parseCapacity accepts a JSON number or a numeric string. The stock web
// client reads the size off a DOM dataset attribute and emits it as a
// string, so both shapes arrive in practice.
func parseCapacity(payload json.RawMessage) (int, error) {
	var n int
	if err := json.Unmarshal(payload, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(payload, &s); err != nil {
		return 0, domain.ErrInvalidCapacity
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, domain.ErrInvalidCapacity
	}
	return n, nil
}

package game

import (
	"fmt"
	"log/slog"

	"github.com/narvaezdelosreyesy-dev/Bingo/domain"
)

// Room is one game instance: its members, phase, undrawn pool and the
// append-only history of called numbers. All fields are guarded by the
// registry mutex; rooms are never touched outside it.
type Room struct {
	key        string
	capacity   int
	phase      domain.Phase
	members    map[string]domain.Connection
	pool       *Pool
	called     []int
	lastNumber int // 0 until the first draw
	caller     *caller
}

// roomKey derives the registry key for a capacity. One room per distinct
// capacity; the key doubles as the room name shown to clients.
func roomKey(capacity int) string {
	return fmt.Sprintf("room%d", capacity)
}

func newRoom(capacity int) *Room {
	return &Room{
		key:      roomKey(capacity),
		capacity: capacity,
		phase:    domain.PhaseWaiting,
		members:  make(map[string]domain.Connection),
		pool:     NewPool(),
	}
}

// snapshot builds the "joined" payload for the room's current state.
func (r *Room) snapshot() domain.RoomSnapshot {
	called := make([]int, len(r.called))
	copy(called, r.called)
	return domain.RoomSnapshot{
		RoomName:      r.key,
		Players:       len(r.members),
		Max:           r.capacity,
		NumbersCalled: called,
	}
}

// broadcast sends an event to every member. Sends are fire-and-forget: a
// slow or dead connection drops the frame and is cleaned up by its own
// read loop, never by the room.
func (r *Room) broadcast(eventType string, payload any) {
	r.broadcastExcept(eventType, payload, "")
}

func (r *Room) broadcastExcept(eventType string, payload any, skipID string) {
	data, err := domain.Encode(eventType, payload)
	if err != nil {
		slog.Error("encode broadcast", "room", r.key, "event", eventType, "error", err)
		return
	}
	for id, conn := range r.members {
		if id == skipID {
			continue
		}
		if err := conn.Send(data); err != nil {
			slog.Warn("dropped frame", "room", r.key, "clientId", id, "event", eventType)
		}
	}
}

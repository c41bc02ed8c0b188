package game

import (
	"log/slog"
	"time"

	"github.com/narvaezdelosreyesy-dev/Bingo/domain"
)

// caller drives the periodic number calls for one active room. Its goroutine
// only ever mutates the room from inside the registry mutex, so calls are
// strictly sequential and serialized with joins, leaves and claims. The
// stopped flag is read and written under that same mutex: once a room is
// stopped, a timer firing that lost the race exits without drawing, so stale
// listeners never see a late call.
type caller struct {
	quit    chan struct{}
	stopped bool
}

// startCaller arms the grace-delay timer for a room that just went active.
// Registry mutex held.
func (g *Registry) startCaller(room *Room) {
	if room.caller != nil {
		return
	}
	c := &caller{quit: make(chan struct{})}
	room.caller = c
	slog.Info("caller started", "room", room.key,
		"grace", g.graceDelay, "interval", g.callInterval)
	go g.runCaller(room, c)
}

// stopCaller cancels a room's caller. Idempotent. Registry mutex held.
func (g *Registry) stopCaller(room *Room) {
	c := room.caller
	if c == nil || c.stopped {
		return
	}
	c.stopped = true
	close(c.quit)
	room.caller = nil
	slog.Info("caller stopped", "room", room.key)
}

func (g *Registry) runCaller(room *Room, c *caller) {
	grace := time.NewTimer(g.graceDelay)
	defer grace.Stop()
	select {
	case <-c.quit:
		return
	case <-grace.C:
	}

	if !g.call(room, c) {
		return
	}
	ticker := time.NewTicker(g.callInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.quit:
			return
		case <-ticker.C:
			if !g.call(room, c) {
				return
			}
		}
	}
}

// call performs one firing: either the next draw or, on an empty pool, the
// game-over. Returns false when the caller should not fire again.
func (g *Registry) call(room *Room, c *caller) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c.stopped {
		return false
	}

	if room.pool.Remaining() == 0 {
		c.stopped = true
		room.caller = nil
		room.phase = domain.PhaseFinished
		room.broadcast(domain.EventGameOver, "All 75 numbers have been called. Game over!")
		delete(g.rooms, room.key)
		slog.Info("pool exhausted", "room", room.key)
		return false
	}

	n, err := room.pool.Draw()
	if err != nil {
		// Unreachable: Remaining was checked above.
		slog.Error("draw failed", "room", room.key, "error", err)
		return false
	}
	room.called = append(room.called, n)
	room.lastNumber = n
	room.broadcast(domain.EventNewNumber, n)
	slog.Debug("number called", "room", room.key, "number", n, "calls", len(room.called))
	return true
}

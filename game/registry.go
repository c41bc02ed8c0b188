package game

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/narvaezdelosreyesy-dev/Bingo/domain"
)

const (
	// MinCapacity and MaxCapacity bound the room sizes a client may request.
	MinCapacity = 2
	MaxCapacity = 5

	defaultGraceDelay   = 5 * time.Second
	defaultCallInterval = 3 * time.Second
)

// Config tunes a registry. Zero values fall back to the defaults above.
type Config struct {
	// GraceDelay is how long a full room waits before the first call.
	GraceDelay time.Duration
	// CallInterval is the period between calls after the first one.
	CallInterval time.Duration
	// Rule decides win claims. Defaults to MinMarkedRule{Min: 5}.
	Rule WinRule
}

// Registry is the process-wide room table. One mutex serializes every room
// mutation (join, leave, draw, claim), so no two operations on the same room
// ever interleave and a caller stop can never race an in-flight draw.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room

	graceDelay   time.Duration
	callInterval time.Duration
	rule         WinRule
}

func NewRegistry(cfg Config) *Registry {
	if cfg.GraceDelay <= 0 {
		cfg.GraceDelay = defaultGraceDelay
	}
	if cfg.CallInterval <= 0 {
		cfg.CallInterval = defaultCallInterval
	}
	if cfg.Rule == nil {
		cfg.Rule = MinMarkedRule{Min: DefaultMinMarked}
	}
	return &Registry{
		rooms:        make(map[string]*Room),
		graceDelay:   cfg.GraceDelay,
		callInterval: cfg.CallInterval,
		rule:         cfg.Rule,
	}
}

// Join admits a connection into the waiting room for the given capacity,
// creating the room if none exists. Reaching capacity flips the room to
// active and starts the number caller. The returned snapshot backs the
// "joined" reply.
func (g *Registry) Join(capacity int, conn domain.Connection) (domain.RoomSnapshot, error) {
	if capacity < MinCapacity || capacity > MaxCapacity {
		return domain.RoomSnapshot{}, domain.ErrInvalidCapacity
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	key := roomKey(capacity)
	room, ok := g.rooms[key]
	if !ok {
		room = newRoom(capacity)
		g.rooms[key] = room
		slog.Info("room created", "room", key, "capacity", capacity)
	}

	if room.phase != domain.PhaseWaiting {
		return domain.RoomSnapshot{}, domain.ErrGameStarted
	}
	if len(room.members) >= room.capacity {
		return domain.RoomSnapshot{}, domain.ErrRoomFull
	}

	room.members[conn.ID()] = conn
	slog.Info("player joined", "room", key, "clientId", conn.ID(),
		"players", len(room.members), "capacity", room.capacity)

	snap := room.snapshot()

	if len(room.members) == room.capacity {
		room.phase = domain.PhaseActive
		room.broadcast(domain.EventGameStart, "Room is full. The game begins!")
		g.startCaller(room)
	} else {
		room.broadcast(domain.EventPlayerUpdate, domain.PlayerUpdate{
			Players: len(room.members),
			Max:     room.capacity,
		})
	}
	return snap, nil
}

// Leave removes a connection from its room. The last member leaving an
// active room ends the game; an emptied waiting room is simply evicted.
func (g *Registry) Leave(key, connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.rooms[key]
	if !ok {
		return
	}
	if _, member := room.members[connID]; !member {
		return
	}
	delete(room.members, connID)
	slog.Info("player left", "room", key, "clientId", connID, "players", len(room.members))

	if len(room.members) == 0 {
		g.stopCaller(room)
		if room.phase == domain.PhaseActive {
			room.phase = domain.PhaseFinished
		}
		delete(g.rooms, key)
		slog.Info("room removed", "room", key)
		return
	}
	room.broadcast(domain.EventPlayerUpdate, domain.PlayerUpdate{
		Players: len(room.members),
		Max:     room.capacity,
	})
}

// Claim validates a win claim against the room's call history. A valid claim
// ends the game for the whole room; an invalid one is reported only through
// the returned result, with a false-alarm notice to the other members.
func (g *Registry) Claim(key, connID string, markedNumbers []int) domain.BingoResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.rooms[key]
	if !ok {
		return domain.BingoResult{Success: false}
	}

	if !g.rule.Evaluate(markedNumbers, room.called) {
		slog.Info("claim rejected", "room", key, "clientId", connID,
			"marked", len(markedNumbers))
		room.broadcastExcept(domain.EventStatusMessage,
			"False alarm! A bingo call did not check out. Keep playing.", connID)
		result := domain.BingoResult{Success: false}
		if room.lastNumber != 0 {
			last := room.lastNumber
			result.LastNumber = &last
		}
		return result
	}

	slog.Info("bingo", "room", key, "clientId", connID, "calls", len(room.called))
	g.stopCaller(room)
	room.phase = domain.PhaseFinished
	room.broadcast(domain.EventGameOver,
		fmt.Sprintf("BINGO! Player %s wins. Game over.", connID))
	delete(g.rooms, key)
	return domain.BingoResult{Success: true}
}

// Destroy stops a room's caller and evicts it. Safe to call on a missing or
// already-destroyed key.
func (g *Registry) Destroy(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.destroyLocked(key)
}

func (g *Registry) destroyLocked(key string) {
	room, ok := g.rooms[key]
	if !ok {
		return
	}
	g.stopCaller(room)
	if room.phase == domain.PhaseActive {
		room.phase = domain.PhaseFinished
	}
	delete(g.rooms, key)
	slog.Info("room removed", "room", key)
}

// Clear destroys every room. Used on shutdown and between tests.
func (g *Registry) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for key := range g.rooms {
		g.destroyLocked(key)
	}
}

// Stats reports room and player counts for the stats endpoint.
func (g *Registry) Stats() (rooms, players int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	rooms = len(g.rooms)
	for _, room := range g.rooms {
		players += len(room.members)
	}
	return rooms, players
}

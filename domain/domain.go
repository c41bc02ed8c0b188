package domain

import "encoding/json"

// Phase is a room's coarse lifecycle stage. Transitions only ever move
// forward: Waiting -> Active -> Finished.
type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhaseActive   Phase = "active"
	PhaseFinished Phase = "finished"
)

// Message is the envelope for all traffic in both directions. Payload is
// kept raw so each event type can decode its own shape.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client -> server event types.
const (
	EventJoinRoom    = "joinRoom"
	EventPlayerBingo = "playerBingo"
)

// Server -> client event types.
const (
	EventJoined        = "joined"
	EventError         = "error"
	EventPlayerUpdate  = "playerUpdate"
	EventGameStart     = "gameStart"
	EventNewNumber     = "newNumber"
	EventBingoResult   = "bingoResult"
	EventStatusMessage = "statusMessage"
	EventGameOver      = "gameOver"
)

// RoomSnapshot is the payload of a "joined" event: the state a client needs
// to render the room it just entered, including every number already called.
type RoomSnapshot struct {
	RoomName      string `json:"roomName"`
	Players       int    `json:"players"`
	Max           int    `json:"max"`
	NumbersCalled []int  `json:"numbersCalled"`
}

// PlayerUpdate is broadcast whenever a room's membership count changes.
type PlayerUpdate struct {
	Players int `json:"players"`
	Max     int `json:"max"`
}

// BingoClaim is the payload of a "playerBingo" event.
type BingoClaim struct {
	MarkedNumbers []int `json:"markedNumbers"`
}

// BingoResult is sent only to the claimant. LastNumber is included on a
// rejected claim so the client can show what the latest call actually was.
type BingoResult struct {
	Success    bool `json:"success"`
	LastNumber *int `json:"lastNumber,omitempty"`
}

// Encode wraps a payload in the wire envelope.
func Encode(eventType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: eventType, Payload: raw})
}

// Connection is a transport-agnostic handle to one connected player.
type Connection interface {
	ID() string
	Send(data []byte) error
	Close() error
}

// SessionHandler receives the lifecycle of a connection: every decoded frame
// and the eventual disconnect.
type SessionHandler interface {
	Handle(conn Connection, data []byte)
	Disconnect(conn Connection)
}

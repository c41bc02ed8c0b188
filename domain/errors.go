package domain

import "errors"

var (
	// ErrInvalidCapacity rejects join requests outside the 2-5 player range.
	ErrInvalidCapacity = errors.New("invalid room size")

	// ErrRoomFull rejects a join when the room already holds capacity players.
	ErrRoomFull = errors.New("room is full")

	// ErrGameStarted rejects a join once a room has left the waiting phase.
	ErrGameStarted = errors.New("game already started")

	// ErrPoolExhausted is returned by a draw on an empty pool. It is never
	// surfaced to clients; it triggers a graceful game over instead.
	ErrPoolExhausted = errors.New("number pool exhausted")

	// ErrUnknownRoom is returned when an operation targets an evicted or
	// never-created room.
	ErrUnknownRoom = errors.New("unknown room")
)

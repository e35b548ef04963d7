package room

import (
	"playground/game"
	"playground/protocol"
)

type Conn interface {
	Send([]byte) error
	Close() error
}

// Join: issued once after hello parsed
type Join struct {
	Conn  Conn
	Name  string
	Reply chan<- JoinResult
}

type JoinResult struct {
	PlayerID string
}

// Input: latest held input state for a player
type Input struct {
	PlayerID string
	Input    protocol.Input
}

// Spawn: create an object or NPC inside the room's world
type Spawn struct {
	Kind string
	X, Y float64
	Size float64
}

// Leave: issued on disconnect
type Leave struct {
	PlayerID string
}

// SaveWorld: snapshot the world state for persistence
type SaveWorld struct {
	Reply chan<- game.WorldRecord
}

// LoadWorld: replace the world state with a saved record
type LoadWorld struct {
	Record game.WorldRecord
}

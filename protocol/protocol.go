package protocol

import (
	"encoding/json"
)

const (
	MsgHello   = "hello"
	MsgInput   = "input"
	MsgSpawn   = "spawn"
	MsgWelcome = "welcome"
	MsgState   = "state"
)

const (
	SimTickHz     = 60
	ClientInputHz = 60
	BroadcastHz   = 20
)

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"` // raw payload bytes
}

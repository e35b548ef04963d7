package protocol

type Welcome struct {
	PlayerID string `json:"playerId"`
	TickHz   int    `json:"tickHz"`
}

type State struct {
	Tick    int              `json:"tick"`
	NPCs    []NPCSnapshot    `json:"npcs"`
	Objects []ObjectSnapshot `json:"objects"`
	Bullets []PointSnapshot  `json:"bullets,omitempty"`
}

// NPCSnapshot ships every skeleton particle so the client can draw the
// ragdoll without running physics.
type NPCSnapshot struct {
	Points   []PointSnapshot `json:"points"`
	HP       float64         `json:"hp"`
	Bleeding bool            `json:"bleeding,omitempty"`
	Dead     bool            `json:"dead,omitempty"`
}

type ObjectSnapshot struct {
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Size   float64 `json:"size"`
	Welded bool    `json:"welded,omitempty"` // part of a weld tree or joint group
}

type PointSnapshot struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

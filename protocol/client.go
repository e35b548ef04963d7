package protocol

// input structs coming in from the client.

type Hello struct {
	V    int    `json:"v"`              // version
	Name string `json:"name,omitempty"` // optional name
}

// Input is the client's held state, resent every input tick. The room
// detects its own edges; the client just reports what is pressed.
type Input struct {
	CursorX float64 `json:"cx"` // cursor in world units
	CursorY float64 `json:"cy"`
	Grab    bool    `json:"grab,omitempty"`  // drag the nearest body
	Weld    bool    `json:"weld,omitempty"`  // welding tool held down
	Fire    bool    `json:"fire,omitempty"`  // pistol trigger
	Chop    bool    `json:"chop,omitempty"`  // axe held down
	Mount   bool    `json:"mount,omitempty"` // mount/unmount edge
	Drive   float64 `json:"drive,omitempty"` // -1..1 vehicle input
}

// Spawn asks the room to create an object or an NPC at a position.
type Spawn struct {
	Kind string  `json:"kind"` // "npc" or an object kind
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size,omitempty"`
}

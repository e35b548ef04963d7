package room

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"playground/game"
	"playground/protocol"
)

// defaultFloorY places the baseplate of a fresh world.
const defaultFloorY = 600

// Room owns one world and all its physics state. A single goroutine
// (Run) touches the world; clients talk to it through the Inbox.
type Room struct {
	Inbox          chan any
	tickHz         int
	broadcastEvery int
	world          *game.World
	clients        map[string]Conn
	latestInputs   map[string]protocol.Input
	lastActor      string // the input applied to the shared tools
	prevInput      protocol.Input
	nextID         int
	quit           chan struct{}

	Code    string            // room code (e.g. "ABC123")
	OnEmpty func(code string) // called when last player leaves
}

func New() *Room {
	broadcastEvery := protocol.SimTickHz / protocol.BroadcastHz
	if broadcastEvery <= 0 {
		broadcastEvery = 1
	}
	return &Room{
		Inbox:          make(chan any, 256),
		tickHz:         protocol.SimTickHz,
		broadcastEvery: broadcastEvery,
		world:          newWorld(),
		clients:        make(map[string]Conn),
		latestInputs:   make(map[string]protocol.Input),
		nextID:         1,
		quit:           make(chan struct{}),
	}
}

func newWorld() *game.World {
	w := game.NewWorld(game.FloorAt(defaultFloorY))
	w.Tool = game.NewWeldingTool(mgl64.Vec2{})
	w.Pistol = game.NewPistol(mgl64.Vec2{})
	w.Axe = game.NewAxe(mgl64.Vec2{})
	return w
}

func (r *Room) Stop() {
	close(r.quit)
}

// NumPlayers returns the current number of connected clients.
func (r *Room) NumPlayers() int {
	return len(r.clients)
}

func (r *Room) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(r.tickHz))
	defer ticker.Stop()

	dt := 1.0 / float64(r.tickHz)
	for {
		select {
		case <-r.quit:
			return
		case cmd := <-r.Inbox:
			r.handleCommand(cmd)
		case <-ticker.C:
			r.tick(dt)
			if r.world.Tick%r.broadcastEvery == 0 {
				r.broadcastState()
			}
		}
	}
}

// tick applies the active player's held input and steps the world once.
func (r *Room) tick(dt float64) {
	in := r.latestInputs[r.lastActor]
	cursor := mgl64.Vec2{in.CursorX, in.CursorY}

	if in.Grab && !r.prevInput.Grab {
		r.world.PickUp(cursor)
	}
	if !in.Grab && r.prevInput.Grab {
		r.world.Drop()
	}
	if in.Mount && !r.prevInput.Mount {
		r.world.ToggleMount(cursor)
	}

	r.world.Tool.Held = in.Weld
	r.world.Axe.Held = in.Chop
	r.world.Pistol.Held = in.Fire
	if in.Fire {
		dir := cursor.Sub(r.world.Pistol.Pos)
		if dir.Len() == 0 {
			dir = mgl64.Vec2{1, 0}
		}
		r.world.Pistol.Fire(dir)
	}
	// zero input still drives the coast decay
	r.world.DriveRidden(in.Drive, dt)
	r.prevInput = in

	r.world.Step(dt, cursor)
}

func (r *Room) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		playerID := fmt.Sprintf("p%d", r.nextID)
		r.nextID++
		r.clients[playerID] = c.Conn
		r.latestInputs[playerID] = protocol.Input{}
		if r.lastActor == "" {
			r.lastActor = playerID
		}
		c.Reply <- JoinResult{PlayerID: playerID}
	case Input:
		if _, ok := r.clients[c.PlayerID]; !ok {
			return
		}
		r.latestInputs[c.PlayerID] = c.Input
		r.lastActor = c.PlayerID
	case Spawn:
		r.handleSpawn(c)
	case SaveWorld:
		c.Reply <- r.world.Snapshot()
	case LoadWorld:
		r.world = game.LoadWorld(c.Record)
		r.world.Tool = game.NewWeldingTool(mgl64.Vec2{})
		r.world.Pistol = game.NewPistol(mgl64.Vec2{})
		r.world.Axe = game.NewAxe(mgl64.Vec2{})
	case Leave:
		r.handleLeave(c.PlayerID)
	}
}

func (r *Room) handleSpawn(c Spawn) {
	if c.Kind == "npc" {
		r.world.AddNPC(game.NewNPC(c.X, c.Y))
		return
	}
	kind := game.ParseKind(c.Kind)
	r.world.AddObject(game.NewAttachable(kind, mgl64.Vec2{c.X, c.Y}, c.Size))
}

func (r *Room) handleLeave(playerID string) {
	c, ok := r.clients[playerID]
	delete(r.latestInputs, playerID)
	if r.lastActor == playerID {
		r.lastActor = ""
	}
	if ok {
		_ = c.Close()
		delete(r.clients, playerID)
	}
	if len(r.clients) == 0 && r.OnEmpty != nil && r.Code != "" {
		r.OnEmpty(r.Code)
	}
}

func (r *Room) removeClient(playerID string) {
	if c, ok := r.clients[playerID]; ok {
		_ = c.Close()
	}
	delete(r.clients, playerID)
	delete(r.latestInputs, playerID)
	if r.lastActor == playerID {
		r.lastActor = ""
	}
}

func (r *Room) broadcastState() {
	b, err := protocol.Encode(protocol.MsgState, r.buildSnapshot())
	if err != nil {
		return
	}

	var failed []string
	for id, c := range r.clients {
		if err := c.Send(b); err != nil {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		r.removeClient(id)
	}
}

func (r *Room) buildSnapshot() protocol.State {
	w := r.world
	snapshot := protocol.State{
		Tick:    w.Tick,
		NPCs:    make([]protocol.NPCSnapshot, 0, len(w.NPCs)),
		Objects: make([]protocol.ObjectSnapshot, 0, len(w.Objects)),
	}
	for _, n := range w.NPCs {
		ns := protocol.NPCSnapshot{
			Points:   make([]protocol.PointSnapshot, 0, len(n.Particles)),
			HP:       n.HP,
			Bleeding: n.BleedTime > 0,
			Dead:     n.Dead(),
		}
		for i := range n.Particles {
			p := n.Particles[i].Pos
			ns.Points = append(ns.Points, protocol.PointSnapshot{X: p.X(), Y: p.Y()})
		}
		snapshot.NPCs = append(snapshot.NPCs, ns)
	}
	for _, obj := range w.Objects {
		pos := obj.Body().Pos
		welded := false
		if wd, ok := obj.(game.Weldable); ok && game.WeldParent(wd) != nil {
			welded = true
		}
		if !welded && w.Tool != nil {
			if wd, ok := obj.(game.Weldee); ok {
				_, welded = w.Tool.GroupOf(wd)
			}
		}
		snapshot.Objects = append(snapshot.Objects, protocol.ObjectSnapshot{
			Kind:   string(game.KindOf(obj)),
			X:      pos.X(),
			Y:      pos.Y(),
			Size:   obj.Extent(),
			Welded: welded,
		})
	}
	if w.Pistol != nil {
		for _, b := range w.Pistol.Bullets {
			snapshot.Bullets = append(snapshot.Bullets, protocol.PointSnapshot{X: b.Pos.X(), Y: b.Pos.Y()})
		}
	}
	return snapshot
}

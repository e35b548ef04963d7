package room

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"playground/game"
	"playground/protocol"
)

type fakeConn struct {
	sendCh chan []byte
}

func (f *fakeConn) Send(b []byte) error {
	cp := make([]byte, len(b))
	copy(cp, b)
	f.sendCh <- cp
	return nil
}

func (f *fakeConn) Close() error {
	return nil
}

func join(t *testing.T, r *Room, fc *fakeConn) string {
	t.Helper()
	reply := make(chan JoinResult, 1)
	r.Inbox <- Join{Conn: fc, Name: "test", Reply: reply}
	res := <-reply
	if res.PlayerID == "" {
		t.Fatalf("expected player id, got empty")
	}
	return res.PlayerID
}

func nextState(t *testing.T, fc *fakeConn) protocol.State {
	t.Helper()
	timeout := time.After(1 * time.Second)
	for {
		select {
		case b := <-fc.sendCh:
			env, err := protocol.DecodeEnvelope(b)
			if err != nil || env.T != protocol.MsgState {
				continue
			}
			st, err := protocol.DecodePayload[protocol.State](env)
			if err != nil {
				t.Fatalf("decode state: %v", err)
			}
			return st
		case <-timeout:
			t.Fatalf("timed out waiting for state broadcast")
		}
	}
}

func TestRoomBroadcastsStateToJoinedClient(t *testing.T) {
	r := New()
	go r.Run()
	defer r.Stop()

	fc := &fakeConn{sendCh: make(chan []byte, 64)}
	join(t, r, fc)

	st := nextState(t, fc)
	if st.Tick <= 0 {
		t.Fatalf("broadcast tick = %d, want > 0", st.Tick)
	}
}

func TestSpawnAppearsInSnapshots(t *testing.T) {
	r := New()
	go r.Run()
	defer r.Stop()

	fc := &fakeConn{sendCh: make(chan []byte, 64)}
	join(t, r, fc)

	r.Inbox <- Spawn{Kind: "brick", X: 100, Y: 100}
	r.Inbox <- Spawn{Kind: "npc", X: 300, Y: 100}

	timeout := time.After(2 * time.Second)
	for {
		st := nextState(t, fc)
		if len(st.Objects) == 1 && len(st.NPCs) == 1 {
			if st.Objects[0].Kind != "brick" {
				t.Fatalf("object kind = %q, want brick", st.Objects[0].Kind)
			}
			if len(st.NPCs[0].Points) == 0 {
				t.Fatalf("npc snapshot has no points")
			}
			return
		}
		select {
		case <-timeout:
			t.Fatalf("spawned entities never appeared: objects=%d npcs=%d",
				len(st.Objects), len(st.NPCs))
		default:
		}
	}
}

func TestSpawnedBrickFallsBetweenSnapshots(t *testing.T) {
	r := New()
	go r.Run()
	defer r.Stop()

	fc := &fakeConn{sendCh: make(chan []byte, 256)}
	join(t, r, fc)
	r.Inbox <- Spawn{Kind: "brick", X: 100, Y: 0}

	var firstY float64
	seen := 0
	timeout := time.After(2 * time.Second)
	for seen < 2 {
		st := nextState(t, fc)
		if len(st.Objects) == 0 {
			continue
		}
		if seen == 0 {
			firstY = st.Objects[0].Y
		} else if st.Objects[0].Y <= firstY {
			t.Fatalf("brick did not fall: first=%f second=%f", firstY, st.Objects[0].Y)
		}
		seen++
		select {
		case <-timeout:
			t.Fatalf("timed out waiting for fall snapshots")
		default:
		}
	}
}

func TestRoomLeaveFiresOnEmpty(t *testing.T) {
	r := New()
	emptied := make(chan string, 1)
	r.Code = "TEST01"
	r.OnEmpty = func(code string) { emptied <- code }
	go r.Run()
	defer r.Stop()

	fc := &fakeConn{sendCh: make(chan []byte, 256)}
	id := join(t, r, fc)

	// drain broadcasts so the room never blocks on the fake conn
	go func() {
		for range fc.sendCh {
		}
	}()

	r.Inbox <- Leave{PlayerID: id}

	select {
	case code := <-emptied:
		if code != "TEST01" {
			t.Fatalf("OnEmpty code = %q, want TEST01", code)
		}
	case <-time.After(1 * time.Second):
		t.Fatalf("OnEmpty never fired after last leave")
	}
}

func TestThrottleReleaseCoastsToStop(t *testing.T) {
	r := New()
	dt := 1.0 / float64(protocol.SimTickHz)

	bike := game.NewBike(mgl64.Vec2{300, 500}, 0)
	rider := game.NewNPC(300, 400)
	r.world.AddObject(bike)
	r.world.AddNPC(rider)
	r.world.Step(dt, mgl64.Vec2{})
	bike.Mount(rider)

	r.lastActor = "p0"
	r.latestInputs["p0"] = protocol.Input{Drive: 1}
	for i := 0; i < 120; i++ {
		r.tick(dt)
	}
	if bike.DriveVel <= 0 {
		t.Fatalf("held throttle never accelerated: DriveVel=%f", bike.DriveVel)
	}

	r.latestInputs["p0"] = protocol.Input{}
	for i := 0; i < 120; i++ {
		r.tick(dt)
	}
	if bike.DriveVel != 0 {
		t.Fatalf("released throttle did not coast to stop: DriveVel=%f", bike.DriveVel)
	}
}

func TestSaveAndLoadWorldRoundTrip(t *testing.T) {
	r := New()
	go r.Run()
	defer r.Stop()

	r.Inbox <- Spawn{Kind: "car", X: 200, Y: 100}
	r.Inbox <- Spawn{Kind: "npc", X: 400, Y: 100}

	// wait for the spawn to flush through a tick
	deadline := time.Now().Add(1 * time.Second)
	for {
		reply := make(chan game.WorldRecord, 1)
		r.Inbox <- SaveWorld{Reply: reply}
		rec := <-reply
		if len(rec.Objects) == 1 && len(rec.NPCs) == 1 {
			if rec.Objects[0].Type != "car" {
				t.Fatalf("saved kind = %q, want car", rec.Objects[0].Type)
			}
			r.Inbox <- LoadWorld{Record: rec}
			reply2 := make(chan game.WorldRecord, 1)
			r.Inbox <- SaveWorld{Reply: reply2}
			rec2 := <-reply2
			if len(rec2.Objects) != 1 || len(rec2.NPCs) != 1 {
				t.Fatalf("reloaded world lost entities: objects=%d npcs=%d",
					len(rec2.Objects), len(rec2.NPCs))
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("spawns never flushed into the world")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

package network

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"playground/game"
	"playground/protocol"
	"playground/room"
	"playground/store"
)

const (
	readLimit     = 1 << 20 // 1MB
	readDeadline  = 60 * time.Second
	writeDeadline = 10 * time.Second
	pingEvery     = 25 * time.Second
	sendBuffer    = 64
)

var upgrader = websocket.Upgrader{
	// For dev, allow all origins. Lock this down in prod.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server exposes the room manager over websockets plus a small JSON API
// for rooms and saved worlds.
type Server struct {
	rooms  *room.Manager
	worlds *store.Store
}

func NewServer(rooms *room.Manager, worlds *store.Store) *Server {
	return &Server{rooms: rooms, worlds: worlds}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/rooms", s.handleRooms)
	mux.HandleFunc("/worlds", s.handleWorlds)
	mux.HandleFunc("/worlds/save", s.handleWorldSave)
	mux.HandleFunc("/worlds/load", s.handleWorldLoad)
	return mux
}

func (s *Server) ListenAndServe(addr string) error {
	log.Println("listening on", addr, "(ws endpoint: /ws)")
	return http.ListenAndServe(addr, s.Handler())
}

// wsClient adapts a websocket connection to room.Conn. Sends go through
// a buffered channel drained by the write pump; a full buffer counts as
// a dead client.
type wsClient struct {
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func (c *wsClient) Send(b []byte) error {
	select {
	case c.send <- b:
		return nil
	case <-c.done:
		return websocket.ErrCloseSent
	default:
		return websocket.ErrCloseSent
	}
}

func (c *wsClient) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return c.conn.Close()
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()
	for {
		select {
		case b := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				_ = c.Close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = c.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("room")
	if code == "" {
		http.Error(w, "missing room code", http.StatusBadRequest)
		return
	}
	rm := s.rooms.GetOrCreateRoom(code)
	if rm == nil {
		http.Error(w, "invalid room code", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	client := &wsClient{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
	go client.writePump()

	playerID, ok := s.join(rm, client)
	if !ok {
		_ = client.Close()
		return
	}
	s.readLoop(rm, client, playerID)
}

// join waits for the client's hello and registers it with the room.
func (s *Server) join(rm *room.Room, client *wsClient) (string, bool) {
	_, msg, err := client.conn.ReadMessage()
	if err != nil {
		return "", false
	}
	env, err := protocol.DecodeEnvelope(msg)
	if err != nil || env.T != protocol.MsgHello {
		log.Println("expected hello, got:", env.T)
		return "", false
	}
	hello, err := protocol.DecodePayload[protocol.Hello](env)
	if err != nil {
		return "", false
	}

	reply := make(chan room.JoinResult, 1)
	rm.Inbox <- room.Join{Conn: client, Name: hello.Name, Reply: reply}
	res := <-reply

	welcome, err := protocol.Encode(protocol.MsgWelcome, protocol.Welcome{
		PlayerID: res.PlayerID,
		TickHz:   protocol.SimTickHz,
	})
	if err != nil {
		return "", false
	}
	_ = client.Send(welcome)
	return res.PlayerID, true
}

func (s *Server) readLoop(rm *room.Room, client *wsClient, playerID string) {
	defer func() {
		rm.Inbox <- room.Leave{PlayerID: playerID}
	}()
	for {
		_, msg, err := client.conn.ReadMessage()
		if err != nil {
			return
		}
		env, err := protocol.DecodeEnvelope(msg)
		if err != nil {
			continue
		}
		switch env.T {
		case protocol.MsgInput:
			in, err := protocol.DecodePayload[protocol.Input](env)
			if err != nil {
				continue
			}
			rm.Inbox <- room.Input{PlayerID: playerID, Input: in}
		case protocol.MsgSpawn:
			sp, err := protocol.DecodePayload[protocol.Spawn](env)
			if err != nil {
				continue
			}
			rm.Inbox <- room.Spawn{Kind: sp.Kind, X: sp.X, Y: sp.Y, Size: sp.Size}
		}
	}
}

func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, s.rooms.ListRooms())
	case http.MethodPost:
		code := s.rooms.CreateRoom()
		writeJSON(w, map[string]string{"code": code})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleWorlds(w http.ResponseWriter, r *http.Request) {
	if s.worlds == nil {
		http.Error(w, "world store disabled", http.StatusNotFound)
		return
	}
	names, err := s.worlds.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, names)
}

func (s *Server) handleWorldSave(w http.ResponseWriter, r *http.Request) {
	rm, name, ok := s.worldArgs(w, r)
	if !ok {
		return
	}
	reply := make(chan game.WorldRecord, 1)
	rm.Inbox <- room.SaveWorld{Reply: reply}
	select {
	case rec := <-reply:
		if err := s.worlds.Save(name, rec); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case <-time.After(2 * time.Second):
		http.Error(w, "room did not respond", http.StatusGatewayTimeout)
	}
}

func (s *Server) handleWorldLoad(w http.ResponseWriter, r *http.Request) {
	rm, name, ok := s.worldArgs(w, r)
	if !ok {
		return
	}
	rec, err := s.worlds.Load(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	rm.Inbox <- room.LoadWorld{Record: rec}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) worldArgs(w http.ResponseWriter, r *http.Request) (*room.Room, string, bool) {
	if s.worlds == nil {
		http.Error(w, "world store disabled", http.StatusNotFound)
		return nil, "", false
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return nil, "", false
	}
	code := r.URL.Query().Get("room")
	name := r.URL.Query().Get("name")
	if code == "" || name == "" {
		http.Error(w, "missing room or name", http.StatusBadRequest)
		return nil, "", false
	}
	rm := s.rooms.GetOrCreateRoom(code)
	if rm == nil {
		http.Error(w, "invalid room code", http.StatusBadRequest)
		return nil, "", false
	}
	return rm, name, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

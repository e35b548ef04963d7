package main

import (
	"log"

	"playground/config"
	"playground/network"
	"playground/room"
	"playground/store"
)

func main() {
	config.Load()

	worlds, err := store.New(config.WorldsDir())
	if err != nil {
		log.Fatal("world store:", err)
	}

	manager := room.NewManager()
	srv := network.NewServer(manager, worlds)
	log.Fatal(srv.ListenAndServe(config.Addr()))
}

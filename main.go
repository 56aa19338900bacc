package main

import (
	"log"

	"buybuddysave/config"
	"buybuddysave/database"
	"buybuddysave/handlers"
	"buybuddysave/websocket"
)

func main() {
	config.Load()

	database.Init()
	database.DB.Seed()

	websocket.InitHub()

	r := handlers.NewRouter()

	log.Printf("Dev backend starting on %s", config.Cfg.ServerAddr)
	if err := r.Run(config.Cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

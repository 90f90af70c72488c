package main

import (
	"homerent_service/startup"
	"homerent_service/startup/config"
)

func main() {
	cfg := config.NewConfig()
	server := startup.NewServer(cfg)
	server.Start()
}

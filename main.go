package main

import (
	"log"
	"time"

	"blogapp/config"
	"blogapp/repository"
	"blogapp/router"
	"blogapp/services"
	"blogapp/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("failed to init database: %v", err)
	}

	rdb, err := config.InitRedis(cfg)
	if err != nil {
		log.Fatalf("failed to init redis: %v", err)
	}

	rabbitConn, rabbitCh, err := config.InitRabbit(cfg)
	if err != nil {
		log.Fatalf("failed to init rabbitmq: %v", err)
	}
	if rabbitConn != nil {
		defer rabbitConn.Close()
	}

	repo := repository.New(db)
	tokens := utils.NewTokenIssuer(cfg.Jwt.Secret, time.Duration(cfg.Jwt.ExpireHours)*time.Hour)
	events := services.NewEventPublisher(rabbitCh, cfg.RabbitMQ.Queue)

	r := router.Setup(repo, tokens, rdb, events)
	log.Printf("%s listening on %s", cfg.App.Name, cfg.App.Port)
	if err := r.Run(cfg.App.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

package main

import (
	"context"
	"log"

	"ai-voiceshop-be/internal/bootstrap"
	"ai-voiceshop-be/internal/config"
	"ai-voiceshop-be/internal/server"
	"ai-voiceshop-be/internal/tracer"
	"ai-voiceshop-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	// Embedding worker runs for the life of the process.
	if container.ConsumerService != nil {
		go func() {
			log.Println("Background: Starting Consumer Service...")
			if err := container.ConsumerService.Consume(context.Background()); err != nil {
				log.Printf("Background Consumer Error: %v", err)
			}
		}()
	}

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}

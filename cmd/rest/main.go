package main

import (
	"context"
	"log"

	"dailymoji-be/internal/bootstrap"
	"dailymoji-be/internal/config"
	"dailymoji-be/internal/model"
	"dailymoji-be/internal/server"
	"dailymoji-be/internal/tracer"
	"dailymoji-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (optional: empty DSN runs analysis-only)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		var err error
		gormDB, err = database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		if err := database.Migrate(gormDB, &model.Session{}, &model.ClusterScore{}); err != nil {
			log.Panicf("Unable to migrate schema: %v", err)
		}
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	if container.PersistService != nil {
		go func() {
			log.Println("Background: Starting Persist Consumer...")
			if err := container.PersistService.Consume(context.Background()); err != nil {
				log.Printf("Background Consumer Error: %v", err)
			}
		}()
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}

package main

import (
	"context"
	"log"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/taskflow-hq/taskflow-backend/config"
	"github.com/taskflow-hq/taskflow-backend/internal/bootstrap"
	"github.com/taskflow-hq/taskflow-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	var (
		st         store.Store
		authClient *fbauth.Client
	)
	switch cfg.Store.Backend {
	case "memory":
		log.Println("[warn] using the in-memory store backend; data is not persisted")
		st = store.NewMemory()
	default:
		fb, err := bootstrap.OpenFirebase(ctx, &cfg.Firebase)
		if err != nil {
			log.Fatalf("firebase: %v", err)
		}
		defer fb.Close()
		st = store.NewFirestore(fb.Firestore)
		authClient = fb.Auth
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "taskflow-backend",
		Version:        cfg.App.Version,
		Store:          st,
		AuthClient:     authClient,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	})

	log.Printf("[info] listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}

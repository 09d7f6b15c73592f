package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"ops-assistant/internal/di"
	"ops-assistant/internal/infrastructure/env"
)

func main() {
	envService := env.NewEnvService()

	container, err := di.NewContainer(context.Background(), di.ConfigFromEnv(envService))
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	defer container.Close()

	addr := envService.Get("SERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	taskTimeout := time.Duration(envService.GetInt("TASK_TIMEOUT_SECONDS", 300)) * time.Second

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(container.Pipeline, taskTimeout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	container.Logger.Info("Server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil {
		container.Logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gridverse.ai/internal/config"
	"gridverse.ai/internal/registry"
	"gridverse.ai/internal/transport/ws"
)

func main() {
	var (
		addr   = flag.String("addr", ":8080", "http listen address")
		envDir = flag.String("envs", "", "directory of env config YAMLs to register (optional)")
		schema = flag.String("schema", "./schemas/env.schema.json", "env config schema path")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	reg := registry.Default()
	if *envDir != "" {
		loader, err := config.NewLoader(*schema)
		if err != nil {
			logger.Fatalf("load schema: %v", err)
		}
		if err := loader.LoadDir(*envDir, reg); err != nil {
			logger.Fatalf("load env configs: %v", err)
		}
	}
	logger.Printf("serving %d environments", len(reg.Names()))

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", ws.NewServer(reg, logger).Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: *addr, Handler: mux}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-done
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	logger.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("serve: %v", err)
	}
}

// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

// The scheduling-api command runs the group availability scheduling
// service: it wires the use-case orchestrators to their NATS-backed
// infrastructure, serves the request/reply API, and exposes liveness
// and readiness probes.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/freetogether/scheduling-service/cmd/scheduling-api/service"
	logging "github.com/freetogether/scheduling-service/pkg/log"
)

func main() {
	var (
		httpPort    = flag.String("p", "8080", "probe listen port")
		gracePeriod = flag.Duration("grace-period", 25*time.Second, "shutdown grace period")
	)
	flag.Parse()

	logging.InitStructureLogConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	closeNATS := service.NATSClose(ctx)
	defer closeNATS()

	var wg sync.WaitGroup
	if err := handleSchedulingAPI(ctx, &wg); err != nil {
		log.Fatalf("failed to start scheduling API: %v", err)
	}

	reader := service.SchedulingReader(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := reader.IsReady(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "readiness check failed", "error", err)
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:              ":" + *httpPort,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "starting probe server", "addr", server.Addr)
		errChan <- server.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "probe server error", "error", err)
		}
	case sig := <-sigChan:
		slog.InfoContext(ctx, "shutting down", "signal", sig.String())
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), *gracePeriod)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "graceful shutdown failed", "error", err)
	}

	wg.Wait()
}

// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

// Package service wires the scheduling use cases to their infrastructure
// implementations based on environment configuration.
package service

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/freetogether/scheduling-service/internal/domain/port"
	"github.com/freetogether/scheduling-service/internal/infrastructure/directory"
	infrastructure "github.com/freetogether/scheduling-service/internal/infrastructure/mock"
	"github.com/freetogether/scheduling-service/internal/infrastructure/nats"
	internalService "github.com/freetogether/scheduling-service/internal/service"
)

var (
	natsClient       *nats.NATSClient
	natsEventRepo    port.EventReaderWriter
	natsResponseRepo port.ResponseReaderWriter
	natsDirectory    port.UserDirectory
	natsPublisher    port.MessagePublisher

	natsDoOnce sync.Once
)

func natsInit(ctx context.Context) {
	natsDoOnce.Do(func() {
		natsURL := os.Getenv("NATS_URL")
		if natsURL == "" {
			natsURL = "nats://localhost:4222"
		}

		natsTimeout := os.Getenv("NATS_TIMEOUT")
		if natsTimeout == "" {
			natsTimeout = "10s"
		}
		natsTimeoutDuration, err := time.ParseDuration(natsTimeout)
		if err != nil {
			log.Fatalf("invalid NATS timeout duration: %v", err)
		}

		natsMaxReconnect := os.Getenv("NATS_MAX_RECONNECT")
		if natsMaxReconnect == "" {
			natsMaxReconnect = "3"
		}
		natsMaxReconnectInt, err := strconv.Atoi(natsMaxReconnect)
		if err != nil {
			log.Fatalf("invalid NATS max reconnect value %s: %v", natsMaxReconnect, err)
		}

		natsReconnectWait := os.Getenv("NATS_RECONNECT_WAIT")
		if natsReconnectWait == "" {
			natsReconnectWait = "2s"
		}
		natsReconnectWaitDuration, err := time.ParseDuration(natsReconnectWait)
		if err != nil {
			log.Fatalf("invalid NATS reconnect wait duration %s : %v", natsReconnectWait, err)
		}

		config := nats.Config{
			URL:           natsURL,
			Timeout:       natsTimeoutDuration,
			MaxReconnect:  natsMaxReconnectInt,
			ReconnectWait: natsReconnectWaitDuration,
		}

		client, errNewClient := nats.NewClient(ctx, config)
		if errNewClient != nil {
			log.Fatalf("failed to create NATS client: %v", errNewClient)
		}
		natsClient = client
		natsEventRepo = nats.NewEventStorage(client)
		natsResponseRepo = nats.NewResponseStorage(client)
		natsDirectory = nats.NewUserDirectory(client)
		natsPublisher = nats.NewMessagePublisher(client)
	})
}

// EventRepository initializes the event repository implementation based on the repository source
func EventRepository(ctx context.Context) port.EventReaderWriter {
	if repositorySource() == "mock" {
		slog.InfoContext(ctx, "initializing mock event repository")
		return infrastructure.NewMockEventReaderWriter(infrastructure.NewMockRepository())
	}

	slog.InfoContext(ctx, "initializing NATS event repository")
	natsInit(ctx)
	return natsEventRepo
}

// ResponseRepository initializes the response repository implementation based on the repository source
func ResponseRepository(ctx context.Context) port.ResponseReaderWriter {
	if repositorySource() == "mock" {
		slog.InfoContext(ctx, "initializing mock response repository")
		return infrastructure.NewMockResponseReaderWriter(infrastructure.NewMockRepository())
	}

	slog.InfoContext(ctx, "initializing NATS response repository")
	natsInit(ctx)
	return natsResponseRepo
}

// MessagePublisher initializes the message publisher implementation based on the repository source
func MessagePublisher(ctx context.Context) port.MessagePublisher {
	if repositorySource() == "mock" {
		slog.InfoContext(ctx, "initializing mock message publisher")
		return infrastructure.NewMockMessagePublisher()
	}

	slog.InfoContext(ctx, "initializing NATS message publisher")
	natsInit(ctx)
	return natsPublisher
}

// UserDirectory initializes the user directory implementation based on USER_DIRECTORY_MODE
func UserDirectory(ctx context.Context) port.UserDirectory {
	mode := os.Getenv("USER_DIRECTORY_MODE")
	if mode == "" {
		mode = "nats"
	}

	switch mode {
	case "mock":
		slog.InfoContext(ctx, "initializing mock user directory")
		return infrastructure.NewMockUserDirectory(infrastructure.NewMockRepository())
	case "http":
		slog.InfoContext(ctx, "initializing HTTP user directory")
		client, err := directory.NewClient(directory.NewConfigFromEnv())
		if err != nil {
			log.Fatalf("failed to initialize HTTP user directory: %v", err)
		}
		return client
	case "nats":
		slog.InfoContext(ctx, "initializing NATS user directory")
		natsInit(ctx)
		return natsDirectory
	default:
		log.Fatalf("unsupported user directory implementation: %s", mode)
		return nil
	}
}

// AuthService initializes the authentication service implementation
func AuthService(ctx context.Context) port.Authenticator {
	authSource := os.Getenv("AUTH_SOURCE")
	if authSource == "" {
		authSource = "mock"
	}

	switch authSource {
	case "mock":
		slog.InfoContext(ctx, "initializing mock authentication service")
		return infrastructure.NewMockAuthService()
	default:
		log.Fatalf("unsupported authentication service implementation: %s", authSource)
		return nil
	}
}

// SchedulingReader builds the read-side orchestrator from the configured repositories
func SchedulingReader(ctx context.Context) internalService.SchedulingReader {
	return internalService.NewSchedulingReaderOrchestrator(
		internalService.WithEventReader(EventRepository(ctx)),
		internalService.WithResponseReader(ResponseRepository(ctx)),
	)
}

// SchedulingWriter builds the write-side orchestrator from the configured
// repositories and collaborators
func SchedulingWriter(ctx context.Context) internalService.SchedulingWriter {
	return internalService.NewSchedulingWriterOrchestrator(
		internalService.WithEventReaderWriter(EventRepository(ctx)),
		internalService.WithResponseReaderWriter(ResponseRepository(ctx)),
		internalService.WithUserDirectory(UserDirectory(ctx)),
		internalService.WithMessagePublisher(MessagePublisher(ctx)),
	)
}

// GetNATSClient returns the shared NATS client, initializing it if needed
func GetNATSClient(ctx context.Context) *nats.NATSClient {
	natsInit(ctx)
	return natsClient
}

// NATSClose returns a function that gracefully closes the NATS connection, if one was opened
func NATSClose(ctx context.Context) func() {
	return func() {
		if natsClient == nil {
			return
		}
		if err := natsClient.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close NATS connection", "error", err)
		}
	}
}

func repositorySource() string {
	source := os.Getenv("REPOSITORY_SOURCE")
	if source == "" {
		source = "nats"
	}
	return source
}

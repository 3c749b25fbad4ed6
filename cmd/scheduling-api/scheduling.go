// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/freetogether/scheduling-service/cmd/scheduling-api/service"
	internalService "github.com/freetogether/scheduling-service/internal/service"
	"github.com/freetogether/scheduling-service/pkg/constants"
	logging "github.com/freetogether/scheduling-service/pkg/log"
	"github.com/nats-io/nats.go"
)

// handleSchedulingAPI sets up and starts the NATS request/reply API
// subscriptions for every scheduling operation
func handleSchedulingAPI(ctx context.Context, wg *sync.WaitGroup) error {
	slog.InfoContext(ctx, "starting scheduling API subscriptions")

	reader := service.SchedulingReader(ctx)
	writer := service.SchedulingWriter(ctx)
	authService := service.AuthService(ctx)
	natsClient := service.GetNATSClient(ctx)

	handler := internalService.NewSchedulingMessageHandler(reader, writer, authService)

	subjects := []string{
		constants.EventGetSubject,
		constants.EventListSubject,
		constants.EventCreateSubject,
		constants.EventDeleteSubject,
		constants.EventInviteSubject,
		constants.EventScheduleSubject,
		constants.EventCloseSubject,
		constants.EventReopenSubject,
		constants.ResponseSubmitSubject,
		constants.ResponseListSubject,
		constants.HeatmapGetSubject,
	}

	for _, subject := range subjects {
		subject := subject
		_, subErr := natsClient.QueueSubscribe(
			subject,
			constants.SchedulingAPIQueue,
			func(msg *nats.Msg) {
				// Drop requests once shutdown has begun; the requester
				// will time out and retry against another instance.
				select {
				case <-ctx.Done():
					slog.InfoContext(ctx, "rejecting message - service shutting down",
						"subject", msg.Subject)
					return
				default:
				}

				// Fresh context with timeout for this message, not derived
				// from the shutdown context to avoid cancellation issues
				msgCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				msgCtx = logging.AppendCtx(msgCtx, slog.String("subject", msg.Subject))

				if handleErr := handler.HandleMessage(msgCtx, msg); handleErr != nil {
					slog.ErrorContext(msgCtx, "failed to process scheduling API message",
						"error", handleErr,
						"subject", msg.Subject)
				}
			},
		)
		if subErr != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", subject, subErr)
		}
		slog.InfoContext(ctx, "subscribed to scheduling API subject",
			"subject", subject,
			"queue", constants.SchedulingAPIQueue)
	}

	slog.InfoContext(ctx, "scheduling API started successfully")

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		slog.InfoContext(ctx, "shutting down scheduling API subscriptions")
		// NATS client cleanup handled by the main shutdown path
	}()

	return nil
}

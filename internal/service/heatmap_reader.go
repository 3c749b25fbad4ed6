// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/freetogether/scheduling-service/internal/domain/model"
)

// GetHeatmap aggregates an event's responses into the availability
// heatmap. The slot universe comes from the event's date range, or the
// weekly fallback grid when the event has none.
func (sr *schedulingReaderOrchestrator) GetHeatmap(ctx context.Context, actor model.Actor, eventUID string) (*model.Heatmap, error) {
	slog.DebugContext(ctx, "executing get heatmap use case",
		"event_uid", eventUID,
		"user_id", actor.UserID,
	)

	event, _, err := loadEventForViewer(ctx, sr.eventReader, actor, eventUID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check event access",
			"error", err,
			"event_uid", eventUID,
		)
		return nil, err
	}

	responses, err := sr.responseReader.ListResponses(ctx, eventUID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list responses for heatmap",
			"error", err,
			"event_uid", eventUID,
		)
		return nil, err
	}

	heatmap := model.BuildHeatmap(event.SlotUniverse(), responses)

	slog.DebugContext(ctx, "heatmap built successfully",
		"event_uid", eventUID,
		"days", len(heatmap.Grid),
		"respondents", len(heatmap.UserResponses),
		"max_yes_count", heatmap.MaxYesCount,
	)

	return heatmap, nil
}

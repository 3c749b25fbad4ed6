// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package port

import "context"

// MessagePublisher defines the interface for publishing event resource messages
// This interface is implemented by the NATS messaging infrastructure to support
// indexing and access control message publishing for downstream services
type MessagePublisher interface {
	// Indexer publishes indexer messages for search and discovery services
	// These messages are consumed by indexing services to maintain search indexes
	Indexer(ctx context.Context, subject string, message any) error

	// Access publishes access control messages for permission management
	// These messages are consumed by the permission sync service
	Access(ctx context.Context, subject string, message any) error
}

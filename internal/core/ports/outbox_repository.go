package ports

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/domain/model/kernel"
)

// OutboxStatus is the delivery state of a stored event.
type OutboxStatus string

const (
	OutboxPending    OutboxStatus = "PENDING"
	OutboxProcessing OutboxStatus = "PROCESSING"
	OutboxPublished  OutboxStatus = "PUBLISHED"
	OutboxFailed     OutboxStatus = "FAILED"
)

// OutboxMessage is a stored event awaiting dispatch. ID equals the event id.
type OutboxMessage struct {
	ID        kernel.UUID
	EventType string
	Payload   []byte
	Attempts  int
}

// OutboxRepository stores domain events in the same transaction as the state
// change that produced them and tracks their dispatch.
type OutboxRepository interface {
	// Add stores events as PENDING.
	Add(ctx context.Context, events ...event.Event) error

	// Claim moves one PENDING message to PROCESSING. It reports false when
	// another worker already claimed it.
	Claim(ctx context.Context, id kernel.UUID) (bool, error)

	// ClaimStale claims up to limit messages that are PENDING since before
	// pendingBefore or PROCESSING since before processingBefore.
	ClaimStale(ctx context.Context, pendingBefore, processingBefore time.Time, limit int) ([]OutboxMessage, error)

	MarkPublished(ctx context.Context, id kernel.UUID) error

	// MarkFailed records a failed attempt. The message returns to PENDING, or
	// becomes FAILED once attempts reach maxAttempts.
	MarkFailed(ctx context.Context, id kernel.UUID, cause error, maxAttempts int) error
}

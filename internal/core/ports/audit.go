package ports

import (
	"context"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
)

// AuditSink accepts audit entries for asynchronous recording. Enqueue never
// blocks the request path and never fails it.
type AuditSink interface {
	Enqueue(entry domain.AuditEntry)
}

// AuditRecorder persists audit entries and serves them back to the admin
// dashboard.
type AuditRecorder interface {
	Record(ctx context.Context, entry *domain.AuditEntry) error
	Recent(ctx context.Context, limit int) ([]*domain.AuditEntry, error)
}

// AuditRepository is the persistence port behind AuditRecorder.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	Recent(ctx context.Context, limit int) ([]*domain.AuditEntry, error)
}

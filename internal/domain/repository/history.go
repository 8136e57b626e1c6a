package repository

import (
	"context"

	"github.com/bnema/moto/internal/domain/entity"
)

// HistoryRepository defines operations for browsing history persistence.
type HistoryRepository interface {
	// Save creates or updates a history entry (upsert), bumping the visit
	// count of an existing url.
	Save(ctx context.Context, entry *entity.HistoryEntry) error

	// FindByURL retrieves a history entry by its URL. Returns nil, nil when absent.
	FindByURL(ctx context.Context, url string) (*entity.HistoryEntry, error)

	// GetRecent retrieves recent history entries with pagination.
	GetRecent(ctx context.Context, limit, offset int) ([]*entity.HistoryEntry, error)

	// Search matches query against url and title.
	Search(ctx context.Context, query string, limit int) ([]*entity.HistoryEntry, error)

	// Prune keeps the maxEntries most recent entries and deletes the rest.
	Prune(ctx context.Context, maxEntries int) error

	// DeleteAll removes all history entries.
	DeleteAll(ctx context.Context) error
}

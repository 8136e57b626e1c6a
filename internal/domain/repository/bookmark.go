package repository

import (
	"context"

	"github.com/bnema/moto/internal/domain/entity"
)

// BookmarkRepository defines operations for bookmark persistence.
type BookmarkRepository interface {
	// Save creates a bookmark, or updates the title when the url exists.
	Save(ctx context.Context, bookmark *entity.Bookmark) error

	// FindByURL retrieves a bookmark by its URL. Returns nil, nil when absent.
	FindByURL(ctx context.Context, url string) (*entity.Bookmark, error)

	// GetAll retrieves all bookmarks, newest first.
	GetAll(ctx context.Context) ([]*entity.Bookmark, error)

	// DeleteByURL removes the bookmark for url.
	DeleteByURL(ctx context.Context, url string) error
}

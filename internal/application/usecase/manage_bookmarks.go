// Package usecase contains application use cases that orchestrate domain logic.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/domain/repository"
	"github.com/bnema/moto/internal/logging"
)

// ErrEmptyURL is returned when a bookmark is requested for an empty url.
var ErrEmptyURL = errors.New("url is empty")

// ManageBookmarksUseCase handles bookmark operations.
type ManageBookmarksUseCase struct {
	bookmarkRepo repository.BookmarkRepository
}

// NewManageBookmarksUseCase creates a new bookmarks management use case.
func NewManageBookmarksUseCase(bookmarkRepo repository.BookmarkRepository) *ManageBookmarksUseCase {
	return &ManageBookmarksUseCase{bookmarkRepo: bookmarkRepo}
}

// Add bookmarks url. An existing bookmark is returned unchanged.
func (uc *ManageBookmarksUseCase) Add(ctx context.Context, url, title string) (*entity.Bookmark, error) {
	log := logging.FromContext(ctx)
	if url == "" {
		return nil, ErrEmptyURL
	}

	existing, err := uc.bookmarkRepo.FindByURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing bookmark: %w", err)
	}
	if existing != nil {
		log.Debug().Str("url", url).Msg("url already bookmarked")
		return existing, nil
	}

	bm := entity.NewBookmark(url, title)
	if err := uc.bookmarkRepo.Save(ctx, bm); err != nil {
		return nil, fmt.Errorf("failed to save bookmark: %w", err)
	}

	log.Info().Str("url", url).Int64("id", bm.ID).Msg("bookmark added")
	return bm, nil
}

// Remove deletes the bookmark for url.
func (uc *ManageBookmarksUseCase) Remove(ctx context.Context, url string) error {
	if err := uc.bookmarkRepo.DeleteByURL(ctx, url); err != nil {
		return fmt.Errorf("failed to remove bookmark: %w", err)
	}
	logging.FromContext(ctx).Info().Str("url", url).Msg("bookmark removed")
	return nil
}

// Toggle adds url when it is not bookmarked and removes it otherwise.
// It returns whether url is bookmarked afterwards.
func (uc *ManageBookmarksUseCase) Toggle(ctx context.Context, url, title string) (bool, error) {
	bookmarked, err := uc.IsBookmarked(ctx, url)
	if err != nil {
		return false, err
	}
	if bookmarked {
		return false, uc.Remove(ctx, url)
	}
	if _, err := uc.Add(ctx, url, title); err != nil {
		return false, err
	}
	return true, nil
}

// IsBookmarked reports whether url has a bookmark.
func (uc *ManageBookmarksUseCase) IsBookmarked(ctx context.Context, url string) (bool, error) {
	if url == "" {
		return false, nil
	}
	bm, err := uc.bookmarkRepo.FindByURL(ctx, url)
	if err != nil {
		return false, fmt.Errorf("failed to look up bookmark: %w", err)
	}
	return bm != nil, nil
}

// List returns every bookmark.
func (uc *ManageBookmarksUseCase) List(ctx context.Context) ([]*entity.Bookmark, error) {
	bookmarks, err := uc.bookmarkRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	return bookmarks, nil
}

// URLSet returns the bookmarked urls for quick membership checks.
func (uc *ManageBookmarksUseCase) URLSet(ctx context.Context) (map[string]struct{}, error) {
	bookmarks, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(bookmarks))
	for _, bm := range bookmarks {
		set[bm.URL] = struct{}{}
	}
	return set, nil
}

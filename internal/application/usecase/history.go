package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/domain/repository"
	"github.com/bnema/moto/internal/domain/url"
	"github.com/bnema/moto/internal/logging"
)

const defaultHistoryLimit = 20

// HistoryUseCase records visits and serves the history listing.
type HistoryUseCase struct {
	historyRepo repository.HistoryRepository
	maxEntries  int
}

// NewHistoryUseCase creates a history use case. maxEntries <= 0 disables pruning.
func NewHistoryUseCase(historyRepo repository.HistoryRepository, maxEntries int) *HistoryUseCase {
	return &HistoryUseCase{
		historyRepo: historyRepo,
		maxEntries:  maxEntries,
	}
}

// Record stores a committed navigation. Internal pages and empty urls are
// not recorded.
func (uc *HistoryUseCase) Record(ctx context.Context, rawURL, title string) error {
	if rawURL == "" || url.IsInternal(rawURL) || rawURL == "about:blank" {
		return nil
	}

	entry := &entity.HistoryEntry{
		URL:         rawURL,
		Title:       title,
		VisitCount:  1,
		LastVisited: time.Now(),
	}
	if err := uc.historyRepo.Save(ctx, entry); err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}

	if uc.maxEntries > 0 {
		if err := uc.historyRepo.Prune(ctx, uc.maxEntries); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("history prune failed")
		}
	}
	return nil
}

// UpdateTitle sets the title of an already recorded url.
func (uc *HistoryUseCase) UpdateTitle(ctx context.Context, rawURL, title string) error {
	entry, err := uc.historyRepo.FindByURL(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("failed to find history entry: %w", err)
	}
	if entry == nil || entry.Title == title {
		return nil
	}
	entry.Title = title
	// Save adds VisitCount to the stored count on conflict.
	entry.VisitCount = 0
	if err := uc.historyRepo.Save(ctx, entry); err != nil {
		return fmt.Errorf("failed to update history title: %w", err)
	}
	return nil
}

// Recent returns the latest visits.
func (uc *HistoryUseCase) Recent(ctx context.Context, limit, offset int) ([]*entity.HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	entries, err := uc.historyRepo.GetRecent(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent history: %w", err)
	}
	return entries, nil
}

// Search matches query against recorded urls and titles.
func (uc *HistoryUseCase) Search(ctx context.Context, query string, limit int) ([]*entity.HistoryEntry, error) {
	log := logging.FromContext(ctx)

	if query == "" {
		return []*entity.HistoryEntry{}, nil
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	entries, err := uc.historyRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search history: %w", err)
	}

	log.Debug().
		Str("query", query).
		Int("matches", len(entries)).
		Msg("history search completed")

	return entries, nil
}

// Clear removes all history.
func (uc *HistoryUseCase) Clear(ctx context.Context) error {
	if err := uc.historyRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

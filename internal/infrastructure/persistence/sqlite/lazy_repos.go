package sqlite

import (
	"context"
	"sync"

	"github.com/bnema/moto/internal/application/port"
	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/domain/repository"
)

// LazyHistoryRepository wraps a history repository with lazy database initialization.
type LazyHistoryRepository struct {
	provider port.DatabaseProvider
	repo     repository.HistoryRepository
	once     sync.Once
	initErr  error
}

// NewLazyHistoryRepository creates a lazy-loading history repository.
func NewLazyHistoryRepository(provider port.DatabaseProvider) repository.HistoryRepository {
	return &LazyHistoryRepository{provider: provider}
}

func (r *LazyHistoryRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewHistoryRepository(db)
	})
	return r.initErr
}

func (r *LazyHistoryRepository) Save(ctx context.Context, entry *entity.HistoryEntry) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Save(ctx, entry)
}

func (r *LazyHistoryRepository) FindByURL(ctx context.Context, url string) (*entity.HistoryEntry, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.FindByURL(ctx, url)
}

func (r *LazyHistoryRepository) GetRecent(ctx context.Context, limit, offset int) ([]*entity.HistoryEntry, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.GetRecent(ctx, limit, offset)
}

func (r *LazyHistoryRepository) Search(ctx context.Context, query string, limit int) ([]*entity.HistoryEntry, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.Search(ctx, query, limit)
}

func (r *LazyHistoryRepository) Prune(ctx context.Context, maxEntries int) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Prune(ctx, maxEntries)
}

func (r *LazyHistoryRepository) DeleteAll(ctx context.Context) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.DeleteAll(ctx)
}

// LazyBookmarkRepository wraps a bookmark repository with lazy database initialization.
type LazyBookmarkRepository struct {
	provider port.DatabaseProvider
	repo     repository.BookmarkRepository
	once     sync.Once
	initErr  error
}

// NewLazyBookmarkRepository creates a lazy-loading bookmark repository.
func NewLazyBookmarkRepository(provider port.DatabaseProvider) repository.BookmarkRepository {
	return &LazyBookmarkRepository{provider: provider}
}

func (r *LazyBookmarkRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewBookmarkRepository(db)
	})
	return r.initErr
}

func (r *LazyBookmarkRepository) Save(ctx context.Context, bookmark *entity.Bookmark) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Save(ctx, bookmark)
}

func (r *LazyBookmarkRepository) FindByURL(ctx context.Context, url string) (*entity.Bookmark, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.FindByURL(ctx, url)
}

func (r *LazyBookmarkRepository) GetAll(ctx context.Context) ([]*entity.Bookmark, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.GetAll(ctx)
}

func (r *LazyBookmarkRepository) DeleteByURL(ctx context.Context, url string) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.DeleteByURL(ctx, url)
}

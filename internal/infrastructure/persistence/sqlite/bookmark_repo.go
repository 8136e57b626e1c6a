package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/domain/repository"
	"github.com/bnema/moto/internal/logging"
)

const (
	upsertBookmark = `INSERT INTO bookmarks (url, title, created_at) VALUES (?, ?, ?)
ON CONFLICT(url) DO UPDATE SET title = excluded.title
RETURNING id, created_at`
	selectBookmarkByURL = `SELECT id, url, title, created_at FROM bookmarks WHERE url = ?`
	selectAllBookmarks  = `SELECT id, url, title, created_at FROM bookmarks ORDER BY created_at DESC, id DESC`
	deleteBookmark      = `DELETE FROM bookmarks WHERE url = ?`
)

type bookmarkRepo struct {
	db *sql.DB
}

// NewBookmarkRepository creates a new SQLite-backed bookmark repository.
func NewBookmarkRepository(db *sql.DB) repository.BookmarkRepository {
	return &bookmarkRepo{db: db}
}

func (r *bookmarkRepo) Save(ctx context.Context, bookmark *entity.Bookmark) error {
	logging.FromContext(ctx).Debug().Str("url", bookmark.URL).Msg("saving bookmark")

	createdAt := bookmark.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var id, created int64
	err := r.db.QueryRowContext(ctx, upsertBookmark, bookmark.URL, bookmark.Title, createdAt.UnixMilli()).
		Scan(&id, &created)
	if err != nil {
		return fmt.Errorf("failed to save bookmark: %w", err)
	}
	bookmark.ID = id
	bookmark.CreatedAt = time.UnixMilli(created)
	return nil
}

func (r *bookmarkRepo) FindByURL(ctx context.Context, url string) (*entity.Bookmark, error) {
	b, err := scanBookmark(r.db.QueryRowContext(ctx, selectBookmarkByURL, url))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookmarkRepo) GetAll(ctx context.Context) ([]*entity.Bookmark, error) {
	rows, err := r.db.QueryContext(ctx, selectAllBookmarks)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookmarks := make([]*entity.Bookmark, 0)
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

func (r *bookmarkRepo) DeleteByURL(ctx context.Context, url string) error {
	_, err := r.db.ExecContext(ctx, deleteBookmark, url)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBookmark(s scanner) (*entity.Bookmark, error) {
	var (
		b       entity.Bookmark
		created int64
	)
	if err := s.Scan(&b.ID, &b.URL, &b.Title, &created); err != nil {
		return nil, err
	}
	b.CreatedAt = time.UnixMilli(created)
	return &b, nil
}

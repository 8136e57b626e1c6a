package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/domain/repository"
	"github.com/bnema/moto/internal/logging"
)

const logURLMaxLen = 60

const (
	upsertHistory = `INSERT INTO history (url, title, visit_count, last_visited) VALUES (?, ?, ?, ?)
ON CONFLICT(url) DO UPDATE SET
    title = CASE WHEN excluded.title = '' THEN history.title ELSE excluded.title END,
    visit_count = history.visit_count + excluded.visit_count,
    last_visited = MAX(history.last_visited, excluded.last_visited)
RETURNING id, visit_count, last_visited`
	selectHistoryByURL = `SELECT id, url, title, visit_count, last_visited FROM history WHERE url = ?`
	selectRecentHistory = `SELECT id, url, title, visit_count, last_visited FROM history
ORDER BY last_visited DESC, id DESC LIMIT ? OFFSET ?`
	searchHistory = `SELECT id, url, title, visit_count, last_visited FROM history
WHERE url LIKE ? ESCAPE '\' OR title LIKE ? ESCAPE '\'
ORDER BY visit_count DESC, last_visited DESC LIMIT ?`
	pruneHistory = `DELETE FROM history WHERE id NOT IN (
    SELECT id FROM history ORDER BY last_visited DESC, id DESC LIMIT ?)`
	deleteAllHistory = `DELETE FROM history`
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type historyRepo struct {
	db *sql.DB
}

// NewHistoryRepository creates a new SQLite-backed history repository.
func NewHistoryRepository(db *sql.DB) repository.HistoryRepository {
	return &historyRepo{db: db}
}

func (r *historyRepo) Save(ctx context.Context, entry *entity.HistoryEntry) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("url", truncate(entry.URL, logURLMaxLen)).Msg("saving history entry")

	visited := entry.LastVisited
	if visited.IsZero() {
		visited = time.Now()
	}

	var last int64
	err := r.db.QueryRowContext(ctx, upsertHistory, entry.URL, entry.Title, entry.VisitCount, visited.UnixMilli()).
		Scan(&entry.ID, &entry.VisitCount, &last)
	if err != nil {
		return err
	}
	entry.LastVisited = time.UnixMilli(last)
	return nil
}

func (r *historyRepo) FindByURL(ctx context.Context, url string) (*entity.HistoryEntry, error) {
	e, err := scanHistory(r.db.QueryRowContext(ctx, selectHistoryByURL, url))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *historyRepo) GetRecent(ctx context.Context, limit, offset int) ([]*entity.HistoryEntry, error) {
	return r.query(ctx, selectRecentHistory, limit, offset)
}

func (r *historyRepo) Search(ctx context.Context, query string, limit int) ([]*entity.HistoryEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*entity.HistoryEntry{}, nil
	}
	pattern := "%" + likeEscaper.Replace(query) + "%"
	return r.query(ctx, searchHistory, pattern, pattern, limit)
}

func (r *historyRepo) Prune(ctx context.Context, maxEntries int) error {
	if maxEntries <= 0 {
		return nil
	}
	res, err := r.db.ExecContext(ctx, pruneHistory, maxEntries)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		logging.FromContext(ctx).Debug().Int64("deleted", n).Msg("pruned history")
	}
	return nil
}

func (r *historyRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, deleteAllHistory)
	return err
}

func (r *historyRepo) query(ctx context.Context, q string, args ...any) ([]*entity.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*entity.HistoryEntry, 0)
	for rows.Next() {
		e, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanHistory(s scanner) (*entity.HistoryEntry, error) {
	var (
		e    entity.HistoryEntry
		last int64
	)
	if err := s.Scan(&e.ID, &e.URL, &e.Title, &e.VisitCount, &last); err != nil {
		return nil, err
	}
	e.LastVisited = time.UnixMilli(last)
	return &e, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

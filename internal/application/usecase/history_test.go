package usecase_test

import (
	"errors"
	"testing"

	"github.com/bnema/moto/internal/application/usecase"
	"github.com/bnema/moto/internal/domain/entity"
	repomocks "github.com/bnema/moto/internal/domain/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHistoryUseCase_Record_SavesAndPrunes(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockHistoryRepository(t)

	repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(e *entity.HistoryEntry) bool {
		return e.URL == "https://go.dev/" && e.Title == "Go" && e.VisitCount == 1
	})).Return(nil)
	repo.EXPECT().Prune(mock.Anything, 100).Return(nil)

	uc := usecase.NewHistoryUseCase(repo, 100)
	require.NoError(t, uc.Record(ctx, "https://go.dev/", "Go"))
}

func TestHistoryUseCase_Record_SkipsInternalPages(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockHistoryRepository(t)
	uc := usecase.NewHistoryUseCase(repo, 100)

	require.NoError(t, uc.Record(ctx, "moto:newtab", ""))
	require.NoError(t, uc.Record(ctx, "", ""))
	require.NoError(t, uc.Record(ctx, "about:blank", ""))

	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestHistoryUseCase_Record_PruneFailureIsNotFatal(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockHistoryRepository(t)
	repo.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)
	repo.EXPECT().Prune(mock.Anything, 10).Return(errors.New("busy"))

	uc := usecase.NewHistoryUseCase(repo, 10)
	assert.NoError(t, uc.Record(ctx, "https://a.example/", ""))
}

func TestHistoryUseCase_UpdateTitle(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockHistoryRepository(t)
	repo.EXPECT().FindByURL(mock.Anything, "https://a.example/").
		Return(&entity.HistoryEntry{ID: 1, URL: "https://a.example/", VisitCount: 4}, nil)
	repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(e *entity.HistoryEntry) bool {
		return e.Title == "A" && e.VisitCount == 0
	})).Return(nil)

	uc := usecase.NewHistoryUseCase(repo, 0)
	require.NoError(t, uc.UpdateTitle(ctx, "https://a.example/", "A"))
}

func TestHistoryUseCase_Search(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockHistoryRepository(t)
	uc := usecase.NewHistoryUseCase(repo, 0)

	entries, err := uc.Search(ctx, "", 5)
	require.NoError(t, err)
	assert.Empty(t, entries)

	repo.EXPECT().Search(mock.Anything, "go", 20).
		Return([]*entity.HistoryEntry{{URL: "https://go.dev/"}}, nil)

	entries, err = uc.Search(ctx, "go", 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestHistoryUseCase_Recent_DefaultsLimit(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockHistoryRepository(t)
	repo.EXPECT().GetRecent(mock.Anything, 20, 0).Return(nil, nil)

	_, err := usecase.NewHistoryUseCase(repo, 0).Recent(ctx, 0, 0)
	require.NoError(t, err)
}

package tracker

import (
	"context"
	"testing"

	"github.com/ashureev/devtrack/internal/classify"
	"github.com/ashureev/devtrack/internal/domain"
	"github.com/stretchr/testify/require"
)

func newTestService(repo *memRepo) *Service {
	return NewService(repo, classify.New(classify.DefaultRules()))
}

func TestLogWebClassifiesAndStores(t *testing.T) {
	repo := &memRepo{}
	svc := newTestService(repo)

	category, err := svc.LogWeb(context.Background(), "https://github.com/user/repo", "repo", 120)
	require.NoError(t, err)
	require.Equal(t, domain.CategoryCoding, category)

	require.Len(t, repo.web, 1)
	stored := repo.web[0]
	require.Equal(t, "github.com", stored.Domain)
	require.Equal(t, domain.CategoryCoding, stored.Category)
	require.Equal(t, 120.0, stored.Duration)
}

func TestLogWebUnparseableURLKeepsInputAsDomain(t *testing.T) {
	repo := &memRepo{}
	svc := newTestService(repo)

	_, err := svc.LogWeb(context.Background(), "not a url", "", 10)
	require.NoError(t, err)
	require.Equal(t, "not a url", repo.web[0].Domain)
}

func TestLogAppWithoutOverrideClassifiesName(t *testing.T) {
	repo := &memRepo{}
	svc := newTestService(repo)

	// "chrome.exe" matches no keyword, so classification falls through.
	category, err := svc.LogApp(context.Background(), "chrome.exe", 5, "")
	require.NoError(t, err)
	require.Equal(t, domain.CategoryUncategorized, category)
}

func TestLogAppValidOverrideWins(t *testing.T) {
	repo := &memRepo{}
	svc := newTestService(repo)

	// "code.exe" would classify as coding; the override takes precedence.
	category, err := svc.LogApp(context.Background(), "code.exe", 5, "productivity")
	require.NoError(t, err)
	require.Equal(t, domain.CategoryProductivity, category)
	require.Equal(t, domain.CategoryProductivity, repo.apps[0].Category)
}

func TestLogAppUnknownOverrideIgnored(t *testing.T) {
	repo := &memRepo{}
	svc := newTestService(repo)

	category, err := svc.LogApp(context.Background(), "code.exe", 5, "gambling")
	require.NoError(t, err)
	require.Equal(t, domain.CategoryCoding, category)
}

func TestLogSurfacesStorageFailure(t *testing.T) {
	repo := &memRepo{failing: true}
	svc := newTestService(repo)

	_, err := svc.LogWeb(context.Background(), "https://github.com", "", 1)
	require.ErrorIs(t, err, errStoreDown)

	_, err = svc.LogApp(context.Background(), "chrome.exe", 5, "")
	require.ErrorIs(t, err, errStoreDown)
}

func TestHistoryNewestFirst(t *testing.T) {
	repo := &memRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.LogWeb(ctx, "https://a.example", "A", 1)
	require.NoError(t, err)
	_, err = svc.LogApp(ctx, "b.exe", 1, "")
	require.NoError(t, err)
	_, err = svc.LogWeb(ctx, "https://c.example", "C", 1)
	require.NoError(t, err)

	entries, err := svc.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "https://c.example", entries[0].Name)
	require.Equal(t, "b.exe", entries[1].Name)
}

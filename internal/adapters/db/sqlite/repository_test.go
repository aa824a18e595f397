package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/RomanRosson/Byteful/internal/apperr"
	"github.com/RomanRosson/Byteful/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "byteful_test.db")

	db, err := Open(dbPath)
	require.NoError(t, err, "open db")
	require.NoError(t, RunMigrations(ctx, db), "run migrations")

	return NewRepository(db)
}

func mustCreateItem(t *testing.T, repo *Repository, itemType, title, content string) domain.Item {
	t.Helper()
	item, err := repo.CreateItem(context.Background(), domain.Item{Type: itemType, Title: title, Content: content})
	require.NoError(t, err)
	return item
}

func TestItemCRUD(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created := mustCreateItem(t, repo, "link", "Go docs", "https://go.dev/doc")
	assert.NotZero(t, created.ID)

	got, err := repo.GetItemByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go docs", got.Title)
	assert.Equal(t, "https://go.dev/doc", got.Content)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))

	got.Title = "Go documentation"
	updated, err := repo.UpdateItem(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "Go documentation", updated.Title)

	require.NoError(t, repo.DeleteItem(ctx, created.ID))

	_, err = repo.GetItemByID(ctx, created.ID)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))

	err = repo.DeleteItem(ctx, created.ID)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestUpdateItemAdvancesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created := mustCreateItem(t, repo, "link", "Go docs", "https://go.dev/doc")

	created.Title = "Go documentation"
	first, err := repo.UpdateItem(ctx, created)
	require.NoError(t, err)

	// Back-to-back updates inside the same second must still advance.
	first.Title = "Go docs, annotated"
	second, err := repo.UpdateItem(ctx, first)
	require.NoError(t, err)

	assert.True(t, first.UpdatedAt.After(created.UpdatedAt))
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt),
		"first=%v second=%v", first.UpdatedAt, second.UpdatedAt)
}

func TestUpdateMissingItemReturnsNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.UpdateItem(context.Background(), domain.Item{ID: 999, Type: "link", Title: "x", Content: "y"})
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestListItemsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	first := mustCreateItem(t, repo, "link", "first", "a")
	second := mustCreateItem(t, repo, "command", "second", "b")
	third := mustCreateItem(t, repo, "link", "third", "c")

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)

	ids := []int64{items[0].ID, items[1].ID, items[2].ID}
	assert.Equal(t, []int64{third.ID, second.ID, first.ID}, ids)
}

func TestSearchItemsIsCaseInsensitiveSubstring(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	deploy := mustCreateItem(t, repo, "command", "Deploy Script", "kubectl apply -f .")
	mustCreateItem(t, repo, "link", "Weather", "https://example.com/weather")

	for _, q := range []string{"deploy", "DEPLOY", "Script"} {
		items, err := repo.SearchItems(ctx, q)
		require.NoError(t, err, "query %q", q)
		require.Len(t, items, 1, "query %q", q)
		assert.Equal(t, deploy.ID, items[0].ID)
	}

	items, err := repo.SearchItems(ctx, "kubectl")
	require.NoError(t, err)
	assert.Len(t, items, 1, "content column is searched")

	items, err = repo.SearchItems(ctx, "nothing-matches")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListItemsByTypeExactMatch(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	mustCreateItem(t, repo, "link", "a", "1")
	mustCreateItem(t, repo, "command", "b", "2")
	mustCreateItem(t, repo, "link", "c", "3")

	items, err := repo.ListItemsByType(ctx, "link")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = repo.ListItemsByType(ctx, "Link")
	require.NoError(t, err)
	assert.Empty(t, items, "type filter is exact, not folded")
}

func TestTypeRegistry(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created, err := repo.CreateType(ctx, "Link")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	byName, err := repo.GetTypeByNameFold(ctx, "lInK")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = repo.GetTypeByNameFold(ctx, "missing")
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))

	mustCreateItem(t, repo, "Link", "docs", "https://x")
	mustCreateItem(t, repo, "Link", "more docs", "https://y")

	withCounts, err := repo.ListTypesWithCounts(ctx)
	require.NoError(t, err)
	require.Len(t, withCounts, 1)
	assert.Equal(t, int64(2), withCounts[0].ItemCount)

	count, err := repo.CountItemsByType(ctx, "Link")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCreateTypeDuplicateNameConflict(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.CreateType(ctx, "Link")
	require.NoError(t, err)

	// The unique index catches duplicates that race past the service's
	// name lookup, in either case.
	_, err = repo.CreateType(ctx, "Link")
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))

	_, err = repo.CreateType(ctx, "link")
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
}

func TestListTypeNamesSortedAscending(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	for _, name := range []string{"site", "command", "link"} {
		_, err := repo.CreateType(ctx, name)
		require.NoError(t, err)
	}

	names, err := repo.ListTypeNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"command", "link", "site"}, names)
}

func TestRenameTypeCascadeMovesItems(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created, err := repo.CreateType(ctx, "Script")
	require.NoError(t, err)

	a := mustCreateItem(t, repo, "Script", "deploy", "run.sh")
	b := mustCreateItem(t, repo, "Script", "backup", "bk.sh")
	other := mustCreateItem(t, repo, "link", "docs", "https://x")

	renamed, err := repo.RenameTypeCascade(ctx, created.ID, "Script", "Tool")
	require.NoError(t, err)
	assert.Equal(t, "Tool", renamed.Name)
	assert.Equal(t, int64(2), renamed.ItemCount)

	moved, err := repo.ListItemsByType(ctx, "Tool")
	require.NoError(t, err)
	require.Len(t, moved, 2)
	assert.ElementsMatch(t, []int64{a.ID, b.ID}, []int64{moved[0].ID, moved[1].ID})

	old, err := repo.ListItemsByType(ctx, "Script")
	require.NoError(t, err)
	assert.Empty(t, old)

	untouched, err := repo.GetItemByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "link", untouched.Type)
}

func TestRenameMissingTypeReturnsNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.RenameTypeCascade(context.Background(), 42, "old", "new")
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestDeleteType(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created, err := repo.CreateType(ctx, "temp")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteType(ctx, created.ID))
	err = repo.DeleteType(ctx, created.ID)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestAdminTable(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	count, err := repo.CountAdmins(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = repo.CreateAdmin(ctx, domain.AdminCredential{Username: "admin", PIN: "1234"})
	require.NoError(t, err)

	admin, err := repo.GetAdminByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "1234", admin.PIN)

	_, err = repo.GetAdminByUsername(ctx, "nobody")
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

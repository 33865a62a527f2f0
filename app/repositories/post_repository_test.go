package repositories

import (
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/app/models"
)

func setupTestDB(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newPost(title string, category models.Category, status models.Status) *models.Post {
	post := &models.Post{
		Title:    title,
		Content:  "content for " + title,
		Category: category,
		Image:    "/uploads/1.png",
		UserID:   1,
		Status:   status,
	}
	post.BeforeCreate()
	return post
}

func TestPostCreateAssignsSequentialIDs(t *testing.T) {
	repo := NewBadgerPostRepository(setupTestDB(t))

	a := newPost("first", models.CategoryIT, models.StatusPending)
	b := newPost("second", models.CategoryIT, models.StatusPending)
	require.NoError(t, repo.Create(a))
	require.NoError(t, repo.Create(b))

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
}

func TestPostGetByID(t *testing.T) {
	repo := NewBadgerPostRepository(setupTestDB(t))
	post := newPost("hello", models.CategoryScientific, models.StatusPending)
	require.NoError(t, repo.Create(post))

	got, err := repo.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Title)
	assert.Equal(t, models.StatusPending, got.Status)

	_, err = repo.GetByID(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostListFiltersStatus(t *testing.T) {
	repo := NewBadgerPostRepository(setupTestDB(t))
	require.NoError(t, repo.Create(newPost("a", models.CategoryIT, models.StatusApproved)))
	require.NoError(t, repo.Create(newPost("b", models.CategoryIT, models.StatusPending)))
	require.NoError(t, repo.Create(newPost("c", models.CategoryIT, models.StatusRejected)))
	require.NoError(t, repo.Create(newPost("d", models.CategoryIT, models.StatusApproved)))

	approved := models.StatusApproved
	posts, err := repo.List(PostFilter{Status: &approved}, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.Equal(t, models.StatusApproved, p.Status)
	}

	count, err := repo.Count(PostFilter{Status: &approved})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestPostListFiltersCategory(t *testing.T) {
	repo := NewBadgerPostRepository(setupTestDB(t))
	require.NoError(t, repo.Create(newPost("a", models.CategoryIT, models.StatusApproved)))
	require.NoError(t, repo.Create(newPost("b", models.CategoryScientific, models.StatusApproved)))

	sci := models.CategoryScientific
	posts, err := repo.List(PostFilter{Category: &sci}, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "b", posts[0].Title)
}

func TestPostListPagination(t *testing.T) {
	repo := NewBadgerPostRepository(setupTestDB(t))
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, repo.Create(newPost(title, models.CategoryIT, models.StatusApproved)))
	}

	posts, err := repo.List(PostFilter{}, 2, 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "c", posts[0].Title)
	assert.Equal(t, "d", posts[1].Title)

	// Offset past the end is an empty page, not an error.
	posts, err = repo.List(PostFilter{}, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostListNewestFirst(t *testing.T) {
	repo := NewBadgerPostRepository(setupTestDB(t))

	old := newPost("old", models.CategoryIT, models.StatusPending)
	old.CreatedAt = time.Now().UTC().Add(-time.Hour)
	recent := newPost("recent", models.CategoryIT, models.StatusPending)
	require.NoError(t, repo.Create(old))
	require.NoError(t, repo.Create(recent))

	posts, err := repo.ListNewestFirst()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "recent", posts[0].Title)
	assert.Equal(t, "old", posts[1].Title)
}

func TestPostUpdate(t *testing.T) {
	repo := NewBadgerPostRepository(setupTestDB(t))
	post := newPost("before", models.CategoryIT, models.StatusPending)
	require.NoError(t, repo.Create(post))

	post.Status = models.StatusApproved
	require.NoError(t, repo.Update(post))

	got, err := repo.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)

	missing := newPost("ghost", models.CategoryIT, models.StatusPending)
	missing.ID = 999
	assert.ErrorIs(t, repo.Update(missing), ErrNotFound)
}

func TestPostDelete(t *testing.T) {
	repo := NewBadgerPostRepository(setupTestDB(t))
	post := newPost("doomed", models.CategoryIT, models.StatusPending)
	require.NoError(t, repo.Create(post))

	require.NoError(t, repo.Delete(post.ID))
	_, err := repo.GetByID(post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(post.ID), ErrNotFound)
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/app/errs"
)

func validDraft() PostDraft {
	return PostDraft{
		Title:    "Intro to Rust",
		Content:  "<p>Borrow checker basics</p>",
		Category: CategoryIT,
		Tags:     []string{"rust", "memory"},
		Image:    "/uploads/1700000000.png",
	}
}

func TestDraftValidateOK(t *testing.T) {
	d := validDraft()
	assert.NoError(t, d.Validate())
}

func TestDraftValidateMissingFields(t *testing.T) {
	d := PostDraft{Category: "Other"}
	err := d.Validate()
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindValidation))

	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	names := make([]string, 0, len(appErr.Fields))
	for _, f := range appErr.Fields {
		names = append(names, f.Field)
	}
	assert.Contains(t, names, "title")
	assert.Contains(t, names, "content")
	assert.Contains(t, names, "category")
	assert.Contains(t, names, "image")
}

func TestDraftValidateBadCategory(t *testing.T) {
	d := validDraft()
	d.Category = "Other"
	err := d.Validate()
	require.Error(t, err)

	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "category", appErr.Fields[0].Field)
}

func TestNewPostIsPending(t *testing.T) {
	d := validDraft()
	post := d.NewPost(7)

	assert.Equal(t, StatusPending, post.Status)
	assert.Equal(t, 7, post.UserID)
	assert.False(t, post.CreatedAt.IsZero())
	assert.NoError(t, post.Validate())
}

func TestBeforeCreateDefaultsTags(t *testing.T) {
	post := Post{
		Title:    "Untitled",
		Content:  "body",
		Category: CategoryScientific,
		Image:    "/uploads/x.jpg",
		UserID:   1,
	}
	post.BeforeCreate()
	assert.NotNil(t, post.Tags)
	assert.Empty(t, post.Tags)
	assert.Equal(t, StatusPending, post.Status)
}

func TestPatchApplyPartial(t *testing.T) {
	post := *validDraft().NewPost(3)
	post.Status = StatusApproved

	title := "Hack"
	patch := PostPatch{Title: &title}
	changed := patch.Apply(&post)

	assert.True(t, changed)
	assert.Equal(t, "Hack", post.Title)
	// Untouched fields and status survive a partial update.
	assert.Equal(t, "<p>Borrow checker basics</p>", post.Content)
	assert.Equal(t, StatusApproved, post.Status)
}

func TestPatchApplyEmpty(t *testing.T) {
	post := *validDraft().NewPost(3)
	before := post
	patch := PostPatch{}
	assert.False(t, patch.Apply(&post))
	assert.Equal(t, before, post)
}

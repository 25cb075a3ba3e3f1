package noteservice

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "github.com/ncruces/go-sqlite3/embed"
	sqlite "github.com/ncruces/go-sqlite3/gormlite"

	"github.com/calebns/notelet/lib/apperr"
	"github.com/calebns/notelet/types"
)

func testService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "notes.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&types.Note{}))

	return New(db)
}

func strPtr(s string) *string {
	return &s
}

func TestCreateThenGet(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "Trip Plan", "<p>Visit Paris</p>")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))
	assert.Nil(t, created.Summary)

	got, err := svc.Get(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Trip Plan", got.Title)
	assert.Equal(t, "<p>Visit Paris</p>", got.Body)
	assert.Nil(t, got.Summary)
	assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))
}

func TestCreateDefaultsToEmptyStrings(t *testing.T) {
	svc := testService(t)

	note, err := svc.Create(context.Background(), 1, "", "")
	require.NoError(t, err)
	assert.Empty(t, note.Title)
	assert.Empty(t, note.Body)
	assert.Equal(t, "Untitled", note.DisplayTitle())
}

func TestGetIsOwnerScoped(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, 1, "mine", "body")
	require.NoError(t, err)

	_, err = svc.Get(ctx, note.ID, 2)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// Same answer as a note that never existed.
	_, err = svc.Get(ctx, "no-such-id", 2)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListReturnsOnlyOwnNotes(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, "a", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, "b", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, "theirs", "")
	require.NoError(t, err)

	notes, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, notes, 2)

	empty, err := svc.List(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUpdateIsPartial(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, 1, "old title", "old body")
	require.NoError(t, err)
	_, err = svc.Update(ctx, note.ID, 1, Patch{Summary: strPtr("old summary")})
	require.NoError(t, err)

	before, err := svc.Get(ctx, note.ID, 1)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	updated, err := svc.Update(ctx, note.ID, 1, Patch{Title: strPtr("new title")})
	require.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "old body", updated.Body)
	require.NotNil(t, updated.Summary)
	assert.Equal(t, "old summary", *updated.Summary)
	assert.True(t, updated.UpdatedAt.After(before.UpdatedAt))
	assert.True(t, updated.CreatedAt.Equal(before.CreatedAt))
}

func TestUpdateWithEmptyPatchChangesNothing(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, 1, "title", "body")
	require.NoError(t, err)

	got, err := svc.Update(ctx, note.ID, 1, Patch{})
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.Equal(note.UpdatedAt))
}

func TestUpdateIsOwnerScoped(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, 1, "title", "body")
	require.NoError(t, err)

	_, err = svc.Update(ctx, note.ID, 2, Patch{Title: strPtr("stolen")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	got, err := svc.Get(ctx, note.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "title", got.Title)
}

func TestBodyEditKeepsStaleSummary(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, 1, "t", "original body")
	require.NoError(t, err)
	_, err = svc.Update(ctx, note.ID, 1, Patch{Summary: strPtr("summary of original")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, note.ID, 1, Patch{Body: strPtr("rewritten body")})
	require.NoError(t, err)
	require.NotNil(t, updated.Summary)
	assert.Equal(t, "summary of original", *updated.Summary)
}

func TestDeleteIsNotIdempotent(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, 1, "t", "b")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, note.ID, 1))

	_, err = svc.Get(ctx, note.ID, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	err = svc.Delete(ctx, note.ID, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteIsOwnerScoped(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, 1, "t", "b")
	require.NoError(t, err)

	err = svc.Delete(ctx, note.ID, 2)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Get(ctx, note.ID, 1)
	require.NoError(t, err)
}

package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

func TestNewDocumentStore(t *testing.T) {
	store := NewDocumentStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.documents)
}

func TestDocumentStore_SaveDocument_Success(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	received := time.Date(2017, time.March, 4, 0, 0, 0, 0, time.UTC)
	doc := &domain.Document{
		ID:         1,
		CaseID:     "case-1",
		Type:       "Form 9",
		ReceivedAt: received,
		Tags:       []string{"knee"},
		Categories: domain.CategorySet{Procedural: true},
	}

	err := store.SaveDocument(ctx, doc)
	require.NoError(t, err)

	saved, err := store.GetDocument(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "case-1", saved.CaseID)
	assert.Equal(t, "Form 9", saved.Type)
	assert.Equal(t, received, saved.ReceivedAt)
	assert.Equal(t, []string{"knee"}, saved.Tags)
	assert.True(t, saved.Categories.Procedural)
}

func TestDocumentStore_SaveDocument_KeepsReadFlag(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: 1, CaseID: "c", Type: "NOD"}))
	_, err := store.MarkRead(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: 1, CaseID: "c", Type: "Form 9"}))

	saved, err := store.GetDocument(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Form 9", saved.Type)
	assert.True(t, saved.OpenedByCurrentUser)
}

func TestDocumentStore_SaveDocument_DropsListComments(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: 1, ListComments: true}))

	saved, err := store.GetDocument(ctx, 1)
	require.NoError(t, err)
	assert.False(t, saved.ListComments)
}

func TestDocumentStore_GetDocument_NotFound(t *testing.T) {
	store := NewDocumentStore()

	doc, err := store.GetDocument(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, doc)
}

func TestDocumentStore_ListDocuments_FiltersByCaseID(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	for _, doc := range []domain.Document{
		{ID: 3, CaseID: "case-1"},
		{ID: 1, CaseID: "case-1"},
		{ID: 2, CaseID: "case-2"},
	} {
		require.NoError(t, store.SaveDocument(ctx, &doc))
	}

	docs, err := store.ListDocuments(ctx, "case-1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, int64(1), docs[0].ID)
	assert.Equal(t, int64(3), docs[1].ID)

	docs, err = store.ListDocuments(ctx, "case-missing")
	require.NoError(t, err)
	assert.Nil(t, docs)
}

func TestDocumentStore_MarkRead(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: 7, CaseID: "c"}))

	changed, err := store.MarkRead(ctx, 7)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = store.MarkRead(ctx, 7)
	require.NoError(t, err)
	assert.False(t, changed, "second mark is a no-op")

	_, err = store.MarkRead(ctx, 8)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_DataIsolation(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc := &domain.Document{ID: 1, Tags: []string{"knee"}}
	require.NoError(t, store.SaveDocument(ctx, doc))
	doc.Tags[0] = "changed"

	retrieved, err := store.GetDocument(ctx, 1)
	require.NoError(t, err)
	retrieved.Tags[0] = "modified"

	original, err := store.GetDocument(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"knee"}, original.Tags)
}

func TestDocumentStore_Concurrency_SaveAndGetDocuments(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	numGoroutines := 50

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int64) {
			defer wg.Done()
			_ = store.SaveDocument(ctx, &domain.Document{ID: id, CaseID: "case-1"})
		}(int64(i + 1))
	}
	wg.Wait()

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int64) {
			defer wg.Done()
			_, _ = store.GetDocument(ctx, id)
			_, _ = store.MarkRead(ctx, id)
		}(int64(i + 1))
	}
	wg.Wait()

	docs, err := store.ListDocuments(ctx, "case-1")
	require.NoError(t, err)
	assert.Len(t, docs, numGoroutines)
	assert.Equal(t, numGoroutines, domain.CountRead(docs))
}

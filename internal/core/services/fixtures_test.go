package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reader-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

// testStores bundles the in-memory stores of one test.
type testStores struct {
	cases       *memory.CaseStore
	docs        *memory.DocumentStore
	annotations *memory.AnnotationStore
	views       *memory.ViewStateStore
	config      *memory.ConfigStore
}

func newTestStores() *testStores {
	docs := memory.NewDocumentStore()
	return &testStores{
		cases:       memory.NewCaseStore(),
		docs:        docs,
		annotations: memory.NewAnnotationStore(docs),
		views:       memory.NewViewStateStore(),
		config:      memory.NewConfigStore(),
	}
}

func receivedOn(day int) time.Time {
	return time.Date(2017, time.May, day, 0, 0, 0, 0, time.UTC)
}

// seedCase stores case-1 with three documents and comments on document 2.
func seedCase(t *testing.T, s *testStores) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.cases.SaveCase(ctx, &domain.Case{ID: "case-1", VeteranName: "Joe Snuffy"}))
	for _, doc := range []domain.Document{
		{ID: 1, CaseID: "case-1", Type: "Form 9", ReceivedAt: receivedOn(3), Categories: domain.CategorySet{Procedural: true}},
		{ID: 2, CaseID: "case-1", Type: "NOD", ReceivedAt: receivedOn(1), Tags: []string{"knee"}},
		{ID: 3, CaseID: "case-1", Type: "Medical Record", ReceivedAt: receivedOn(2), Categories: domain.CategorySet{Medical: true}},
	} {
		require.NoError(t, s.docs.SaveDocument(ctx, &doc))
	}
	require.NoError(t, s.annotations.SaveAnnotation(ctx, &domain.Annotation{
		UUID: "a-1", DocumentID: 2, Page: 1, Comment: "Disagrees with rating",
	}))
}

package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

func TestViewStateStore_SaveAndGet(t *testing.T) {
	store := NewViewStateStore()
	ctx := context.Background()

	state := domain.ViewStateFrom("case-1", domain.Reduce(domain.NewListState(),
		domain.SetTagFilter{Tag: "knee", Selected: true}))
	state.ScrollTop = 4
	state.LastReadDocID = 9

	require.NoError(t, store.SaveViewState(ctx, &state))

	got, err := store.GetViewState(ctx, "case-1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.ScrollTop)
	assert.Equal(t, int64(9), got.LastReadDocID)
	assert.True(t, got.Criteria.IsSet(domain.FilterTag, "knee"))
}

func TestViewStateStore_GetViewState_NotFound(t *testing.T) {
	_, err := NewViewStateStore().GetViewState(context.Background(), "none")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestViewStateStore_DataIsolation(t *testing.T) {
	store := NewViewStateStore()
	ctx := context.Background()

	state := domain.ViewState{CaseID: "c", Criteria: domain.NewFilterCriteria()}
	require.NoError(t, store.SaveViewState(ctx, &state))
	state.Criteria.Tag["knee"] = true

	got, err := store.GetViewState(ctx, "c")
	require.NoError(t, err)
	got.Criteria.Category["medical"] = true

	again, err := store.GetViewState(ctx, "c")
	require.NoError(t, err)
	assert.False(t, again.Criteria.AnySet(domain.FilterTag))
	assert.False(t, again.Criteria.AnySet(domain.FilterCategory))
}

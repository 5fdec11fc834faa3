package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go-chatrelay-svc/internal/workspace"
	wsmocks "go-chatrelay-svc/internal/workspace/mocks"
)

func TestCachedWorkspaceSearch(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := wsmocks.NewMockClient(ctrl)
	cached := NewCachedWorkspace(inner, time.Minute)
	ctx := context.Background()

	hits := []workspace.SearchResult{{ID: "1", Title: "Doc"}}
	inner.EXPECT().Search(ctx, "q").Return(hits, nil).Times(1)

	for i := 0; i < 3; i++ {
		got, err := cached.Search(ctx, "q")
		require.NoError(t, err)
		assert.Equal(t, hits, got)
	}

	// A distinct query is its own cache entry.
	inner.EXPECT().Search(ctx, "other").Return(nil, nil).Times(1)
	_, err := cached.Search(ctx, "other")
	require.NoError(t, err)
}

func TestCachedWorkspaceListCollections(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := wsmocks.NewMockClient(ctrl)
	cached := NewCachedWorkspace(inner, time.Minute)
	ctx := context.Background()

	cols := []workspace.Collection{{ID: "db-1", Title: "Inbox"}}
	inner.EXPECT().ListCollections(ctx).Return(cols, nil).Times(1)

	for i := 0; i < 2; i++ {
		got, err := cached.ListCollections(ctx)
		require.NoError(t, err)
		assert.Equal(t, cols, got)
	}
}

// CreateEntry invalidates cached reads so fresh notes become visible.
func TestCachedWorkspaceCreateInvalidates(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := wsmocks.NewMockClient(ctrl)
	cached := NewCachedWorkspace(inner, time.Minute)
	ctx := context.Background()

	inner.EXPECT().Search(ctx, "q").Return(nil, nil).Times(2)
	inner.EXPECT().CreateEntry(ctx, "T", "body").Return(&workspace.Entry{ID: "1"}, nil)

	_, err := cached.Search(ctx, "q")
	require.NoError(t, err)

	_, err = cached.CreateEntry(ctx, "T", "body")
	require.NoError(t, err)

	_, err = cached.Search(ctx, "q")
	require.NoError(t, err)
}

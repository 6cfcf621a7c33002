package views

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quill-blog-engine/app/client/models"
)

type fakeLister struct {
	articles []models.Article
	calls    int
	err      error
}

func (f *fakeLister) FetchAll(_ context.Context) ([]models.Article, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	out := make([]models.Article, len(f.articles))
	copy(out, f.articles)

	return out, nil
}

type fakeEditor struct {
	viewing bool
}

func (f *fakeEditor) SetViewingEditor(viewing bool) {
	f.viewing = viewing
}

func at(day int) time.Time {
	return time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC)
}

func TestRouter_StartsOnEditor(t *testing.T) {
	r := NewRouter(zap.NewNop(), &fakeLister{}, &fakeEditor{})

	require.Equal(t, ViewEditor, r.Current())
}

func TestGoHome_SortsByRecencyDescending(t *testing.T) {
	lister := &fakeLister{articles: []models.Article{
		{ID: 1, Author: "alice", UpdatedAt: at(1)},
		{ID: 2, Author: "bob", UpdatedAt: at(3)},
		{ID: 3, Author: "alice", PublishDate: at(2)}, // 没有更新时间，按发布时间排
	}}
	r := NewRouter(zap.NewNop(), lister, &fakeEditor{})

	list, err := r.GoHome(context.Background())
	require.NoError(t, err)

	require.Equal(t, ViewHome, r.Current())
	require.Len(t, list, 3)
	require.Equal(t, uint(2), list[0].ID)
	require.Equal(t, uint(3), list[1].ID)
	require.Equal(t, uint(1), list[2].ID)
}

func TestGoStories_FiltersByAuthor(t *testing.T) {
	lister := &fakeLister{articles: []models.Article{
		{ID: 1, Author: "alice", UpdatedAt: at(1)},
		{ID: 2, Author: "bob", UpdatedAt: at(3)},
		{ID: 3, Author: "alice", UpdatedAt: at(2)},
	}}
	r := NewRouter(zap.NewNop(), lister, &fakeEditor{})

	list, err := r.GoStories(context.Background(), "alice")
	require.NoError(t, err)

	require.Equal(t, ViewStories, r.Current())
	require.Len(t, list, 2)
	require.Equal(t, uint(3), list[0].ID)
	require.Equal(t, uint(1), list[1].ID)
}

func TestListViews_AlwaysRefetch(t *testing.T) {
	lister := &fakeLister{}
	r := NewRouter(zap.NewNop(), lister, &fakeEditor{})

	_, _ = r.GoHome(context.Background())
	_, _ = r.GoStories(context.Background(), "alice")
	_, _ = r.GoHome(context.Background())

	// 每次进入列表视图都重新拉取
	require.Equal(t, 3, lister.calls)
}

func TestSwitch_NotifiesEditor(t *testing.T) {
	ed := &fakeEditor{}
	r := NewRouter(zap.NewNop(), &fakeLister{}, ed)

	r.GoEditor()
	require.True(t, ed.viewing)

	_, _ = r.GoHome(context.Background())
	require.False(t, ed.viewing)

	r.GoEditor()
	require.True(t, ed.viewing)
}

func TestGoHome_ErrorLeavesUsableState(t *testing.T) {
	lister := &fakeLister{err: errors.New("boom")}
	r := NewRouter(zap.NewNop(), lister, &fakeEditor{})

	list, err := r.GoHome(context.Background())

	require.Error(t, err)
	require.Empty(t, list)
	require.Equal(t, ViewHome, r.Current())
}

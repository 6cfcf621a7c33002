package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quill-blog-engine/app/client/models"
	"quill-blog-engine/delta"
)

type fakeBackend struct {
	articles []models.Article

	fetchAllCalls int
	saveCalls     int
	deleted       []uint

	fetchErr error
	saveFn   func(a *models.Article) (*models.Article, error)
}

func (f *fakeBackend) FetchAll(_ context.Context) ([]models.Article, error) {
	f.fetchAllCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}

	return f.articles, nil
}

func (f *fakeBackend) FetchByID(_ context.Context, id uint) (*models.Article, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}

	for i := range f.articles {
		if f.articles[i].ID == id {
			return &f.articles[i], nil
		}
	}

	return nil, nil
}

func (f *fakeBackend) Save(_ context.Context, a *models.Article) (*models.Article, error) {
	f.saveCalls++
	if f.saveFn != nil {
		return f.saveFn(a)
	}

	saved := *a
	if saved.ID == 0 {
		saved.ID = 42
	}
	saved.UpdatedAt = time.Now()

	return &saved, nil
}

func (f *fakeBackend) Delete(_ context.Context, id uint) error {
	f.deleted = append(f.deleted, id)

	return nil
}

type harness struct {
	backend  *fakeBackend
	widget   *MemoryWidget
	title    *MemorySurface
	subtitle *MemorySurface
	c        *Controller
}

func newHarness(articles ...models.Article) *harness {
	h := &harness{
		backend:  &fakeBackend{articles: articles},
		widget:   NewMemoryWidget(),
		title:    &MemorySurface{},
		subtitle: &MemorySurface{},
	}
	h.c = NewController(zap.NewNop(), h.backend, h.widget, h.title, h.subtitle)

	return h
}

func article(id uint, title, author string) models.Article {
	return models.Article{
		ID:        id,
		Title:     title,
		Author:    author,
		Content:   "<p>" + title + "</p>",
		Delta:     delta.FromText(title),
		UpdatedAt: time.Date(2025, 6, int(id), 0, 0, 0, 0, time.UTC),
	}
}

func TestController_StartsUnloaded(t *testing.T) {
	h := newHarness()

	require.Equal(t, StateUnloaded, h.c.State())
	require.False(t, h.widget.Enabled())
}

func TestLoad_AdoptsArticle(t *testing.T) {
	h := newHarness(article(3, "Hello", "alice"))

	require.NoError(t, h.c.Load(context.Background(), 3))

	require.Equal(t, StateReady, h.c.State())
	require.Equal(t, uint(3), h.c.CurrentID())
	require.Equal(t, "Hello", h.c.Title())
	require.Equal(t, "alice", h.c.Author())
	require.Equal(t, "Hello", h.title.Text())
	require.Equal(t, "Hello\n", h.widget.Contents().Text())
	require.True(t, h.widget.Enabled())
}

func TestLoad_EmptySubtitleGetsPlaceholder(t *testing.T) {
	h := newHarness(article(1, "Hello", "alice"))

	require.NoError(t, h.c.Load(context.Background(), 1))

	require.Equal(t, SubtitlePlaceholder, h.c.Subtitle())
	require.Equal(t, SubtitlePlaceholder, h.subtitle.Text())
}

func TestLoad_MissingArticleResets(t *testing.T) {
	h := newHarness(article(1, "Hello", "alice"))

	require.NoError(t, h.c.Load(context.Background(), 99))

	require.Equal(t, StateReady, h.c.State())
	require.Equal(t, uint(0), h.c.CurrentID())
	require.Empty(t, h.c.Title())
	require.Equal(t, SubtitlePlaceholder, h.c.Subtitle())
}

func TestLoad_FetchErrorResetsAndSurfaces(t *testing.T) {
	h := newHarness()
	h.backend.fetchErr = errors.New("boom")

	err := h.c.Load(context.Background(), 1)

	require.Error(t, err)
	require.Equal(t, StateReady, h.c.State())
	require.Equal(t, uint(0), h.c.CurrentID())
}

func TestLoad_EmptyDeltaSubstituted(t *testing.T) {
	a := article(1, "Hello", "alice")
	a.Delta = delta.Delta{}
	h := newHarness(a)

	require.NoError(t, h.c.Load(context.Background(), 1))

	require.True(t, h.c.Doc().IsBlank())
	require.Len(t, h.c.Doc().Ops, 1)
}

func TestLoadInitial_FirstArticleOnce(t *testing.T) {
	h := newHarness(article(1, "First", "alice"), article(2, "Second", "bob"))

	require.NoError(t, h.c.LoadInitial(context.Background()))
	require.Equal(t, uint(1), h.c.CurrentID())
	require.Equal(t, "First", h.c.Title())

	// 只执行一次
	require.NoError(t, h.c.LoadInitial(context.Background()))
	require.Equal(t, 1, h.backend.fetchAllCalls)
}

func TestLoadInitial_EmptyList(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.c.LoadInitial(context.Background()))

	require.Equal(t, StateReady, h.c.State())
	require.Equal(t, uint(0), h.c.CurrentID())
}

func TestNewArticle_RequiresLogin(t *testing.T) {
	h := newHarness()

	require.ErrorIs(t, h.c.NewArticle(), ErrNotLoggedIn)

	h.c.SetUser("alice")
	require.NoError(t, h.c.NewArticle())

	require.Equal(t, StateReady, h.c.State())
	require.Equal(t, uint(0), h.c.CurrentID())
	require.Equal(t, "alice", h.c.Author())
	require.Equal(t, 0, h.backend.fetchAllCalls)
}

func TestReconcile_SkipsFocusedSurface(t *testing.T) {
	h := newHarness(article(1, "Server Title", "alice"))

	h.title.SetFocused(true)
	h.title.Type("half-typed")

	require.NoError(t, h.c.Load(context.Background(), 1))

	// 有焦点的面不被覆盖，但状态本身已采纳服务端的值
	require.Equal(t, "half-typed", h.title.Text())
	require.Equal(t, "Server Title", h.c.Title())
	require.Equal(t, SubtitlePlaceholder, h.subtitle.Text())
}

func TestOnInput_ReadsSurfaceBack(t *testing.T) {
	h := newHarness()
	h.c.SetUser("alice")
	require.NoError(t, h.c.NewArticle())

	h.title.Type("My Title")
	h.c.OnTitleInput()
	h.subtitle.Type("My Subtitle")
	h.c.OnSubtitleInput()

	require.Equal(t, "My Title", h.c.Title())
	require.Equal(t, "My Subtitle", h.c.Subtitle())
}

func TestOnContentChange_ReadsWidget(t *testing.T) {
	h := newHarness()
	h.c.SetUser("alice")
	require.NoError(t, h.c.NewArticle())

	h.widget.SetContents(delta.FromText("Hi"))
	h.c.OnContentChange()

	require.Equal(t, "Hi\n", h.c.Doc().Text())
	require.Equal(t, "<p>Hi</p>", h.c.Content())
}

func TestCanSave_Matrix(t *testing.T) {
	h := newHarness()

	// 未登录
	require.False(t, h.c.CanSave())

	h.c.SetUser("alice")
	require.NoError(t, h.c.NewArticle())

	// 不在编辑器视图
	require.False(t, h.c.CanSave())

	h.c.SetViewingEditor(true)

	// 全空（副标题只是占位文本）不算有内容
	require.False(t, h.c.CanSave())

	h.title.Type("T")
	h.c.OnTitleInput()
	require.True(t, h.c.CanSave())

	h.title.Type("")
	h.c.OnTitleInput()
	h.subtitle.Type("real subtitle")
	h.c.OnSubtitleInput()
	require.True(t, h.c.CanSave())

	h.subtitle.Type(SubtitlePlaceholder)
	h.c.OnSubtitleInput()
	require.False(t, h.c.CanSave())

	h.widget.SetContents(delta.FromText("Hi"))
	h.c.OnContentChange()
	require.True(t, h.c.CanSave())
}

func TestCanSave_OnlyAuthorMayEditExisting(t *testing.T) {
	h := newHarness(article(1, "Hello", "bob"))
	h.c.SetUser("alice")
	h.c.SetViewingEditor(true)

	require.NoError(t, h.c.Load(context.Background(), 1))
	require.False(t, h.c.CanSave())

	h.c.SetUser("bob")
	require.True(t, h.c.CanSave())
}

func TestSave_LocalValidation(t *testing.T) {
	h := newHarness()
	h.c.SetUser("alice")
	require.NoError(t, h.c.NewArticle())

	// 标题为空：本地拒绝，不发请求
	require.ErrorIs(t, h.c.Save(context.Background()), ErrTitleEmpty)

	h.title.Type("T")
	h.c.OnTitleInput()

	// 正文为空（空文档只有一个换行）同样本地拒绝
	require.ErrorIs(t, h.c.Save(context.Background()), ErrContentEmpty)
	require.Equal(t, 0, h.backend.saveCalls)
}

func TestSave_AdoptsServerResponse(t *testing.T) {
	h := newHarness()
	h.c.SetUser("alice")
	require.NoError(t, h.c.NewArticle())

	h.title.Type("Hello")
	h.c.OnTitleInput()
	h.widget.SetContents(delta.FromText("Hi"))
	h.c.OnContentChange()

	require.NoError(t, h.c.Save(context.Background()))

	require.Equal(t, uint(42), h.c.CurrentID())
	require.Equal(t, "alice", h.c.Author())
	require.False(t, h.c.LastUpdated().IsZero())
}

func TestSave_ErrorSurfacesOnce(t *testing.T) {
	h := newHarness()
	h.c.SetUser("alice")
	require.NoError(t, h.c.NewArticle())

	h.title.Type("Hello")
	h.c.OnTitleInput()
	h.widget.SetContents(delta.FromText("Hi"))
	h.c.OnContentChange()

	h.backend.saveFn = func(_ *models.Article) (*models.Article, error) {
		return nil, errors.New("boom")
	}

	require.Error(t, h.c.Save(context.Background()))
	// 工作副本保持原样，界面仍然可用
	require.Equal(t, StateReady, h.c.State())
	require.Equal(t, "Hello", h.c.Title())
}

func TestDelete_ResetsToEmptyState(t *testing.T) {
	h := newHarness(article(1, "Hello", "alice"))
	h.c.SetUser("alice")
	require.NoError(t, h.c.Load(context.Background(), 1))

	require.NoError(t, h.c.Delete(context.Background()))

	require.Equal(t, []uint{1}, h.backend.deleted)
	require.Equal(t, uint(0), h.c.CurrentID())
	require.Empty(t, h.c.Title())
	require.Equal(t, SubtitlePlaceholder, h.c.Subtitle())
	require.Equal(t, StateReady, h.c.State())
}

func TestNavigation_Wraparound(t *testing.T) {
	h := newHarness(
		article(1, "One", "alice"),
		article(2, "Two", "alice"),
		article(3, "Three", "alice"),
	)

	require.NoError(t, h.c.Load(context.Background(), 2))

	require.NoError(t, h.c.Next(context.Background()))
	require.Equal(t, uint(3), h.c.CurrentID())

	// 尾部回绕到开头
	require.NoError(t, h.c.Next(context.Background()))
	require.Equal(t, uint(1), h.c.CurrentID())

	// 开头回绕到尾部
	require.NoError(t, h.c.Previous(context.Background()))
	require.Equal(t, uint(3), h.c.CurrentID())
}

func TestNavigation_CurrentNotInListResets(t *testing.T) {
	h := newHarness(article(1, "One", "alice"))
	h.c.SetUser("alice")
	require.NoError(t, h.c.NewArticle())

	h.title.Type("unsaved")
	h.c.OnTitleInput()

	require.NoError(t, h.c.Next(context.Background()))

	require.Equal(t, StateReady, h.c.State())
	require.Equal(t, uint(0), h.c.CurrentID())
	require.Empty(t, h.c.Title())
}

func TestNavigation_EmptyListResets(t *testing.T) {
	h := newHarness(article(5, "Only", "alice"))
	require.NoError(t, h.c.Load(context.Background(), 5))

	h.backend.articles = nil
	require.NoError(t, h.c.Next(context.Background()))

	require.Equal(t, uint(0), h.c.CurrentID())
	require.Equal(t, StateReady, h.c.State())
}

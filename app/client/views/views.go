package views

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"quill-blog-engine/app/client/models"
)

// View 三个互斥的页面
type View int

const (
	ViewEditor View = iota
	ViewStories
	ViewHome
)

func (v View) String() string {
	switch v {
	case ViewStories:
		return "stories"
	case ViewHome:
		return "home"
	default:
		return "editor"
	}
}

// Lister 列表视图的数据来源，gateway.Gateway 实现了它
type Lister interface {
	FetchAll(ctx context.Context) ([]models.Article, error)
}

// EditorSwitch 路由切换视图时通知编辑器当前是否可见
type EditorSwitch interface {
	SetViewingEditor(viewing bool)
}

// Router 页面路由。每次进入列表视图都重新拉取并重新排序，
// 从不复用上一次的列表。
type Router struct {
	l      *zap.Logger
	lister Lister
	editor EditorSwitch

	view View
	list []models.Article
}

func NewRouter(l *zap.Logger, lister Lister, editor EditorSwitch) *Router {
	return &Router{
		l:      l,
		lister: lister,
		editor: editor,
		view:   ViewEditor,
	}
}

func (r *Router) Current() View {
	return r.view
}

// List 最近一次列表视图拉取的结果
func (r *Router) List() []models.Article {
	return r.list
}

func (r *Router) switchTo(v View) {
	r.view = v
	r.editor.SetViewingEditor(v == ViewEditor)
}

// GoEditor 切到编辑器视图，不碰网络
func (r *Router) GoEditor() {
	r.switchTo(ViewEditor)
}

// GoHome 切到首页：全部文章，按最近更新倒序
func (r *Router) GoHome(ctx context.Context) ([]models.Article, error) {
	articles, err := r.lister.FetchAll(ctx)
	if err != nil {
		r.l.Error("failed to fetch articles", zap.Error(err))
		r.list = nil
		r.switchTo(ViewHome)

		return nil, err
	}

	sortByRecency(articles)
	r.list = articles
	r.switchTo(ViewHome)

	return articles, nil
}

// GoStories 切到我的文章：只留当前用户的，按最近更新倒序
func (r *Router) GoStories(ctx context.Context, username string) ([]models.Article, error) {
	articles, err := r.lister.FetchAll(ctx)
	if err != nil {
		r.l.Error("failed to fetch articles", zap.Error(err))
		r.list = nil
		r.switchTo(ViewStories)

		return nil, err
	}

	mine := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if a.Author == username {
			mine = append(mine, a)
		}
	}

	sortByRecency(mine)
	r.list = mine
	r.switchTo(ViewStories)

	return mine, nil
}

// sortByRecency 更新时间倒序，没有更新时间的按发布时间
func sortByRecency(articles []models.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].SortTime().After(articles[j].SortTime())
	})
}

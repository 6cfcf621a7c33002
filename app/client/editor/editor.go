package editor

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"quill-blog-engine/app/client/models"
	"quill-blog-engine/delta"
)

// SubtitlePlaceholder 副标题为空时展示的占位文本
const SubtitlePlaceholder = "Your subtitle here..."

// State 每次加载文章都会走一遍 未加载 → 加载中 → 就绪
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unloaded"
	}
}

var (
	ErrNotLoggedIn  = errors.New("please log in to publish or update a blog")
	ErrTitleEmpty   = errors.New("blog title cannot be empty")
	ErrContentEmpty = errors.New("blog content cannot be empty")
)

// Backend 控制器依赖的文章后端，gateway.Gateway 实现了它
type Backend interface {
	FetchAll(ctx context.Context) ([]models.Article, error)
	FetchByID(ctx context.Context, id uint) (*models.Article, error)
	Save(ctx context.Context, article *models.Article) (*models.Article, error)
	Delete(ctx context.Context, id uint) error
}

// Controller 维护当前打开文章的工作副本，并保持富文本控件的
// 缓冲区与之同步。工作副本只是暂存：文章存储才是唯一权威，
// 副本靠显式重载或保存往返的响应来校正。
type Controller struct {
	l       *zap.Logger
	backend Backend

	widget   Widget
	title    TextSurface
	subtitle TextSurface

	state State

	// 工作副本
	id           uint
	titleText    string
	subtitleText string
	content      string
	doc          delta.Delta
	author       string
	lastUpdated  time.Time

	username   string
	inEditor   bool
	didInitial bool
}

func NewController(l *zap.Logger, backend Backend, widget Widget, title, subtitle TextSurface) *Controller {
	c := &Controller{
		l:        l,
		backend:  backend,
		widget:   widget,
		title:    title,
		subtitle: subtitle,
		state:    StateUnloaded,
		doc:      delta.Empty(),
	}
	c.widget.Enable(false)

	return c
}

func (c *Controller) State() State           { return c.state }
func (c *Controller) CurrentID() uint        { return c.id }
func (c *Controller) Title() string          { return c.titleText }
func (c *Controller) Subtitle() string       { return c.subtitleText }
func (c *Controller) Content() string        { return c.content }
func (c *Controller) Doc() delta.Delta       { return c.doc }
func (c *Controller) Author() string         { return c.author }
func (c *Controller) LastUpdated() time.Time { return c.lastUpdated }

// SetUser 登录 / 登出时由外层调用，登出传空串
func (c *Controller) SetUser(username string) {
	c.username = username
}

// SetViewingEditor 视图切换时由路由调用，影响 CanSave
func (c *Controller) SetViewingEditor(viewing bool) {
	c.inEditor = viewing
}

// reset 回到空白未保存状态
func (c *Controller) reset() {
	c.id = 0
	c.titleText = ""
	c.subtitleText = SubtitlePlaceholder
	c.content = ""
	c.doc = delta.Empty()
	c.author = ""
	c.lastUpdated = time.Time{}
}

// adopt 把取回的文章装进工作副本
func (c *Controller) adopt(a *models.Article) {
	c.id = a.ID
	c.titleText = a.Title
	c.subtitleText = a.Subtitle
	if c.subtitleText == "" {
		c.subtitleText = SubtitlePlaceholder
	}
	c.content = a.Content
	c.doc = a.Delta
	if len(c.doc.Ops) == 0 {
		c.doc = delta.Empty()
	}
	c.author = a.Author
	c.lastUpdated = a.SortTime()
}

// reconcile 把工作副本写回各个外部表面。持有焦点的文本面不动，
// 免得覆盖用户正在输入的内容。
func (c *Controller) reconcile() {
	if !c.title.Focused() {
		c.title.SetText(c.titleText)
	}
	if !c.subtitle.Focused() {
		c.subtitle.SetText(c.subtitleText)
	}
	c.widget.SetContents(c.doc)
	c.widget.Enable(c.state == StateReady)
}

func (c *Controller) ready() {
	c.state = StateReady
	c.reconcile()
}

// Load 按 id 打开一篇文章。拿不到就退回空白未保存状态，加载永不失败致死
func (c *Controller) Load(ctx context.Context, id uint) error {
	c.state = StateLoading
	c.widget.Enable(false)

	a, err := c.backend.FetchByID(ctx, id)
	if err != nil {
		c.l.Error("failed to load article", zap.Uint("id", id), zap.Error(err))
		c.reset()
		c.ready()

		return err
	}

	if a == nil {
		c.reset()
	} else {
		c.adopt(a)
	}
	c.ready()

	return nil
}

// NewArticle 打开一篇空白新文章，无需等待网络
func (c *Controller) NewArticle() error {
	if c.username == "" {
		return ErrNotLoggedIn
	}

	c.state = StateLoading
	c.reset()
	c.author = c.username
	c.ready()

	return nil
}

// LoadInitial 启动时装入列表里的第一篇文章，列表为空则留在空白状态。
// 只会执行一次，之后调用是空操作。
func (c *Controller) LoadInitial(ctx context.Context) error {
	if c.didInitial {
		return nil
	}
	c.didInitial = true

	c.state = StateLoading
	c.widget.Enable(false)

	articles, err := c.backend.FetchAll(ctx)
	if err != nil {
		c.l.Error("failed to load initial article", zap.Error(err))
		c.reset()
		c.ready()

		return err
	}

	if len(articles) > 0 {
		c.adopt(&articles[0])
	} else {
		c.reset()
	}
	c.ready()

	return nil
}

// OnTitleInput 标题面上每次输入事件后调用，把面上文本读回状态
func (c *Controller) OnTitleInput() {
	c.titleText = c.title.Text()
}

// OnSubtitleInput 同 OnTitleInput
func (c *Controller) OnSubtitleInput() {
	c.subtitleText = c.subtitle.Text()
}

// OnContentChange 控件内容变化后调用，delta 是编辑的权威表示，
// HTML 只是派生的展示格式
func (c *Controller) OnContentChange() {
	c.doc = c.widget.Contents()
	c.content = c.widget.HTML()
}

// CanSave 是否向用户提供保存入口
func (c *Controller) CanSave() bool {
	if c.username == "" || !c.inEditor {
		return false
	}

	sub := strings.TrimSpace(c.subtitleText)
	hasContent := strings.TrimSpace(c.titleText) != "" ||
		(sub != "" && sub != SubtitlePlaceholder) ||
		strings.TrimSpace(c.content) != "" ||
		len(c.doc.Ops) > 1
	if !hasContent {
		return false
	}

	// 已有文章只有作者本人能改
	return c.id == 0 || c.author == c.username
}

// Save 发布或更新当前文章。标题或正文为空时本地拒绝，不发请求。
// 成功后采纳服务端返回的 id / 作者 / 时间戳为准。
func (c *Controller) Save(ctx context.Context) error {
	if c.username == "" {
		return ErrNotLoggedIn
	}

	if strings.TrimSpace(c.titleText) == "" {
		return ErrTitleEmpty
	}
	if strings.TrimSpace(c.content) == "" || c.doc.IsBlank() {
		return ErrContentEmpty
	}

	saved, err := c.backend.Save(ctx, &models.Article{
		ID:       c.id,
		Title:    c.titleText,
		Subtitle: c.subtitleText,
		Content:  c.content,
		Delta:    c.doc,
		Author:   c.username,
	})
	if err != nil {
		c.l.Error("failed to save article", zap.Uint("id", c.id), zap.Error(err))

		return err
	}

	c.id = saved.ID
	c.author = saved.Author
	c.lastUpdated = saved.SortTime()

	return nil
}

// Delete 删除当前打开的文章并回到空白未保存状态
func (c *Controller) Delete(ctx context.Context) error {
	if c.username == "" {
		return ErrNotLoggedIn
	}

	if c.id != 0 {
		if err := c.backend.Delete(ctx, c.id); err != nil {
			c.l.Error("failed to delete article", zap.Uint("id", c.id), zap.Error(err))

			return err
		}
	}

	c.reset()
	c.ready()

	return nil
}

// Next 打开列表里的下一篇，到尾部回绕到开头
func (c *Controller) Next(ctx context.Context) error {
	return c.navigate(ctx, 1)
}

// Previous 打开列表里的上一篇，到开头回绕到尾部
func (c *Controller) Previous(ctx context.Context) error {
	return c.navigate(ctx, -1)
}

func (c *Controller) navigate(ctx context.Context, step int) error {
	c.state = StateLoading
	c.widget.Enable(false)

	articles, err := c.backend.FetchAll(ctx)
	if err != nil {
		c.l.Error("failed to fetch article list", zap.Error(err))
		c.reset()
		c.ready()

		return err
	}

	idx := -1
	for i := range articles {
		if articles[i].ID == c.id {
			idx = i
			break
		}
	}

	// 列表空了或当前文章不在列表里，退回空白未保存状态
	if len(articles) == 0 || idx < 0 {
		c.reset()
		c.ready()

		return nil
	}

	n := len(articles)
	idx = (idx + step + n) % n
	c.adopt(&articles[idx])
	c.ready()

	return nil
}

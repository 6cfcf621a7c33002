package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"quill-blog-engine/app/server/constants"
	"quill-blog-engine/app/server/models"
)

const msgArticleNotFound = "Article not found."
const msgTitleContentEmpty = "Title and content cannot be empty."

func articleID(c echo.Context) (uint, error) {
	idUint64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}

	return uint(idUint64), nil
}

// articleMapFields 把请求体写入文章记录，作者为空时使用默认署名
func (a *App) articleMapFields(req *ArticleBody, article *models.Article) {
	article.Title = req.Title
	article.Subtitle = req.Subtitle
	article.HTMLContent = req.HTMLContent
	article.DeltaContent = req.DeltaContent.Store()

	if req.Author == "" {
		article.Author = constants.DefaultAuthor
	} else {
		article.Author = req.Author
	}
}

func (a *App) ArticleList(c echo.Context) error {
	rctx := c.Request().Context()

	// 发布时间倒序，任何访客都可以读
	var articles []models.Article
	if err := a.db.WithContext(rctx).Order("created_at DESC").Find(&articles).Error; err != nil {
		a.l.Error("failed to list articles", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	rows := []*ArticleRow{}
	for i := range articles {
		rows = append(rows, articleRow(&articles[i]))
	}

	return c.JSON(http.StatusOK, rows)
}

func (a *App) ArticleGet(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 查询缓存
	if row, ok := a.articleCacheGet(rctx, id); ok {
		return c.JSON(http.StatusOK, row)
	}

	// 查询数据库
	var article models.Article
	if err := a.db.WithContext(rctx).First(&article, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.erMsg(c, http.StatusNotFound, msgArticleNotFound)
		} else {
			a.l.Error("failed to get article", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	// 加入缓存，方便下一次查询
	row := articleRow(&article)
	a.articleCacheFill(rctx, row)

	return c.JSON(http.StatusOK, row)
}

func (a *App) ArticleCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req ArticleBody
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 标题和渲染内容都不能为空
	if req.Title == "" || req.HTMLContent == "" {
		return a.erMsg(c, http.StatusBadRequest, msgTitleContentEmpty)
	}

	var article models.Article
	a.articleMapFields(&req, &article)

	if err := a.db.WithContext(rctx).Create(&article).Error; err != nil {
		a.l.Error("failed to create article", zap.Any("article", article), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, articleRow(&article))
}

func (a *App) ArticleUpdate(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req ArticleBody
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if req.Title == "" || req.HTMLContent == "" {
		return a.erMsg(c, http.StatusBadRequest, msgTitleContentEmpty)
	}

	// 从数据库中获得指定的文章
	var article models.Article
	if err := a.db.WithContext(rctx).First(&article, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.erMsg(c, http.StatusNotFound, msgArticleNotFound)
		} else {
			a.l.Error("failed to get article", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	a.articleMapFields(&req, &article)

	// Save 写全部字段，清空副标题这类置零操作也要持久化
	if err := a.db.WithContext(rctx).Save(&article).Error; err != nil {
		a.l.Error("failed to update article", zap.Any("article", article), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 缓存失效
	a.articleCacheDrop(rctx, id)

	return c.JSON(http.StatusOK, articleRow(&article))
}

func (a *App) ArticleDelete(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	res := a.db.WithContext(rctx).Delete(&models.Article{}, id)
	if res.Error != nil {
		a.l.Error("failed to delete article", zap.Uint("id", id), zap.Error(res.Error))
		return a.er(c, http.StatusInternalServerError)
	}
	if res.RowsAffected == 0 {
		return a.erMsg(c, http.StatusNotFound, msgArticleNotFound)
	}

	// 缓存失效
	a.articleCacheDrop(rctx, id)

	return c.NoContent(http.StatusNoContent)
}

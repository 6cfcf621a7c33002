package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"quill-blog-engine/app/server/constants"
	"quill-blog-engine/app/server/jwt"
	"quill-blog-engine/app/server/models"
)

const msgCredentialsRequired = "Username and password are required."
const msgUsernameExists = "Username already exists."
const msgInvalidCredentials = "Invalid credentials."

func (a *App) AuthRegister(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req AuthBody
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if req.Username == "" || req.Password == "" {
		return a.erMsg(c, http.StatusBadRequest, msgCredentialsRequired)
	}

	// 用户名查重
	var existing models.User
	if err := a.db.WithContext(rctx).First(&existing, "username = ?", req.Username).Error; err == nil {
		return a.erMsg(c, http.StatusConflict, msgUsernameExists)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		a.l.Error("failed to check username", zap.String("username", req.Username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 处理密码， DefaultCost 即成本因子 10
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		a.l.Error("failed to hash password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 创建用户
	user := models.User{
		Username: req.Username,
		Password: string(passwordHash),
	}
	if err := a.db.WithContext(rctx).Create(&user).Error; err != nil {
		a.l.Error("failed to create user", zap.String("username", req.Username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 签出会话令牌
	token, err := a.signToken(&user)
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.l.Info("user registered", zap.String("username", user.Username))

	return c.JSON(http.StatusCreated, &AuthResponse{
		Message: "User registered successfully!",
		Token:   token,
		User:    AuthUser{ID: user.ID, Username: user.Username},
	})
}

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req AuthBody
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if req.Username == "" || req.Password == "" {
		return a.erMsg(c, http.StatusBadRequest, msgCredentialsRequired)
	}

	// 查找用户。用户不存在和密码错误对调用方必须不可区分
	var user models.User
	if err := a.db.WithContext(rctx).First(&user, "username = ?", req.Username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.erMsg(c, http.StatusUnauthorized, msgInvalidCredentials)
		} else {
			a.l.Error("failed to find user", zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	// 校验密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return a.erMsg(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	// 签出会话令牌
	token, err := a.signToken(&user)
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.l.Info("user logged in", zap.String("username", user.Username))

	return c.JSON(http.StatusOK, &AuthResponse{
		Message: "Logged in successfully!",
		Token:   token,
		User:    AuthUser{ID: user.ID, Username: user.Username},
	})
}

func (a *App) signToken(user *models.User) (string, error) {
	expires := time.Now().Add(constants.AuthTokenDuration)
	return a.jwt.SignToken(&jwt.User{
		ID:       user.ID,
		Username: user.Username,
		Expires:  expires.Unix(),
	})
}

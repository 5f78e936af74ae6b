package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mnemo-go/internal/app"
	"mnemo-go/internal/utils"
)

type AuthHandler struct {
	log  *zap.Logger
	ctrl *app.Controller
}

func NewAuthHandler(log *zap.Logger, ctrl *app.Controller) *AuthHandler {
	return &AuthHandler{log: log, ctrl: ctrl}
}

type credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates and binds the browser session to the account.
func (h *AuthHandler) Login(c *gin.Context) {
	var creds credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	if !h.ctrl.Login(creds.Username, creds.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Неверный логин или пароль"})
		return
	}

	state := h.ctrl.State()
	session := sessions.Default(c)
	session.Set(sessionUserKey, state.CurrentUser.ID)
	if err := session.Save(); err != nil {
		h.log.Error("Failed to save session cookie", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, state)
}

// Register creates a new learner account.
func (h *AuthHandler) Register(c *gin.Context) {
	var creds credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	if !utils.IsValidUsername(creds.Username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Логин: 3-32 символа, буквы, цифры, точки и дефисы"})
		return
	}
	if !utils.IsValidPassword(creds.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Пароль должен быть не короче 4 символов"})
		return
	}

	result := h.ctrl.Register(creds.Username, creds.Password)
	if !result.Success {
		c.JSON(http.StatusConflict, gin.H{"error": result.Message})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": result.Message})
}

// Logout clears both the controller session and the browser cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.ctrl.Logout()

	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		h.log.Error("Failed to clear session cookie", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}

	c.JSON(http.StatusOK, h.ctrl.State())
}

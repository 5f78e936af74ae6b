package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mnemo-go/internal/app"
)

type AccountHandler struct {
	log  *zap.Logger
	ctrl *app.Controller
}

func NewAccountHandler(log *zap.Logger, ctrl *app.Controller) *AccountHandler {
	return &AccountHandler{log: log, ctrl: ctrl}
}

// ChangePassword swaps the logged-in account's credential after verifying
// the current one.
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var body struct {
		OldPassword string `json:"oldPassword" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "oldPassword and newPassword are required"})
		return
	}

	if !h.ctrl.ChangePassword(body.OldPassword, body.NewPassword) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Неверный текущий пароль"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Пароль успешно изменен"})
}

// Profile returns the logged-in account with its achievements.
func (h *AccountHandler) Profile(c *gin.Context) {
	state := h.ctrl.State()
	if state.CurrentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Не авторизован"})
		return
	}
	c.JSON(http.StatusOK, state.CurrentUser)
}

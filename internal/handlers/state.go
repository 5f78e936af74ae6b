package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mnemo-go/internal/app"
	"mnemo-go/internal/models"
)

// Session key the current account id is stored under.
const sessionUserKey = "userID"

type StateHandler struct {
	log  *zap.Logger
	ctrl *app.Controller
}

func NewStateHandler(log *zap.Logger, ctrl *app.Controller) *StateHandler {
	return &StateHandler{log: log, ctrl: ctrl}
}

// Show returns the current state snapshot.
func (h *StateHandler) Show(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctrl.State())
}

// SetView switches the current view tag.
func (h *StateHandler) SetView(c *gin.Context) {
	var body struct {
		View string `json:"view" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "view is required"})
		return
	}
	h.ctrl.SetView(body.View)
	c.JSON(http.StatusOK, h.ctrl.State())
}

// Stream pushes state snapshots to the client over SSE for as long as it
// stays connected.
func (h *StateHandler) Stream(c *gin.Context) {
	updates := make(chan models.AppState, 8)
	sub := h.ctrl.Subscribe(func(state models.AppState) {
		select {
		case updates <- state:
		default:
			// Slow client; drop the snapshot, a newer one follows.
		}
	})
	defer h.ctrl.Unsubscribe(sub)

	// Prime the stream with the current state.
	updates <- h.ctrl.State()

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case state := <-updates:
			c.SSEvent("state", state)
			return true
		}
	})
}

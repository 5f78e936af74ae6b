package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mnemo-go/internal/app"
)

type TaskHandler struct {
	log  *zap.Logger
	ctrl *app.Controller
}

func NewTaskHandler(log *zap.Logger, ctrl *app.Controller) *TaskHandler {
	return &TaskHandler{log: log, ctrl: ctrl}
}

// List returns the full task collection.
func (h *TaskHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctrl.State().Tasks)
}

// Select marks a task as the current one and switches to the detail view.
func (h *TaskHandler) Select(c *gin.Context) {
	taskID := c.Param("id")
	for _, task := range h.ctrl.State().Tasks {
		if task.ID == taskID {
			h.ctrl.SelectTask(&task)
			c.JSON(http.StatusOK, h.ctrl.State())
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Задание не найдено"})
}

// Complete records a completion for the logged-in account.
func (h *TaskHandler) Complete(c *gin.Context) {
	h.ctrl.CompleteTask(c.Param("id"))
	c.JSON(http.StatusOK, h.ctrl.State())
}

// StartTest begins the timed recall phase.
func (h *TaskHandler) StartTest(c *gin.Context) {
	seconds, ok := h.ctrl.StartTest(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Задание не найдено"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"timeLimit": seconds})
}

// TestTimeLeft reports the running countdown.
func (h *TaskHandler) TestTimeLeft(c *gin.Context) {
	taskID, seconds, ok := h.ctrl.TestTimeLeft()
	if !ok || taskID != c.Param("id") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Тест не запущен"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"timeLeft": seconds})
}

// SubmitTest scores the learner's answers; a passing score completes the
// task and grants its achievement.
func (h *TaskHandler) SubmitTest(c *gin.Context) {
	var body struct {
		Answers map[string]string `json:"answers"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "answers must be an object of item id to answer"})
		return
	}

	result, ok := h.ctrl.SubmitTest(c.Param("id"), body.Answers)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "Тест не запущен"})
		return
	}
	c.JSON(http.StatusOK, result)
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go.uber.org/zap"

	"mnemo-go/internal/app"
	"mnemo-go/internal/models"
)

type AdminHandler struct {
	log  *zap.Logger
	ctrl *app.Controller
}

func NewAdminHandler(log *zap.Logger, ctrl *app.Controller) *AdminHandler {
	return &AdminHandler{log: log, ctrl: ctrl}
}

// AddTask creates a new exercise.
func (h *AdminHandler) AddTask(c *gin.Context) {
	var task models.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task payload"})
		return
	}
	if len(task.Content.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Задание должно содержать хотя бы один элемент"})
		return
	}
	repairItemIDs(&task)

	if !h.ctrl.AddTask(task) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Недостаточно прав"})
		return
	}
	c.JSON(http.StatusCreated, h.ctrl.State().Tasks)
}

// UpdateTask replaces a whole task record.
func (h *AdminHandler) UpdateTask(c *gin.Context) {
	var task models.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task payload"})
		return
	}
	repairItemIDs(&task)

	if !h.ctrl.UpdateTask(c.Param("id"), task) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Недостаточно прав или задание не найдено"})
		return
	}
	c.JSON(http.StatusOK, h.ctrl.State().Tasks)
}

// DeleteTask removes a task from the collection.
func (h *AdminHandler) DeleteTask(c *gin.Context) {
	if !h.ctrl.DeleteTask(c.Param("id")) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Недостаточно прав"})
		return
	}
	c.JSON(http.StatusOK, h.ctrl.State().Tasks)
}

// BlockUser toggles the blocked flag on one account.
func (h *AdminHandler) BlockUser(c *gin.Context) {
	if !h.ctrl.BlockUser(c.Param("id")) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Недостаточно прав или пользователь не найден"})
		return
	}
	c.JSON(http.StatusOK, h.ctrl.State().Users)
}

// Stats renders a completion-count bar chart for the admin view.
func (h *AdminHandler) Stats(c *gin.Context) {
	state := h.ctrl.State()

	counts := make(map[string]int)
	for _, user := range state.Users {
		for _, taskID := range user.CompletedTasks {
			counts[taskID]++
		}
	}

	titles := make([]string, 0, len(state.Tasks))
	values := make([]opts.BarData, 0, len(state.Tasks))
	for _, task := range state.Tasks {
		titles = append(titles, task.Title)
		values = append(values, opts.BarData{Value: counts[task.ID]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Статистика выполнения заданий",
			Subtitle: "Количество выполнений по каждому заданию",
		}),
	)
	bar.SetXAxis(titles).AddSeries("Выполнено", values)

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := bar.Render(c.Writer); err != nil {
		h.log.Error("Failed to render stats chart", zap.Error(err))
	}
}

// repairItemIDs assigns sequential ids to content items that are missing one,
// the way the admin form does on save.
func repairItemIDs(task *models.Task) {
	for i := range task.Content.Items {
		if task.Content.Items[i].ID == "" {
			task.Content.Items[i].ID = strconv.Itoa(i + 1)
		}
	}
}

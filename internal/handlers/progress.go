package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mnemo-go/internal/models"
	"mnemo-go/internal/store"
)

const progressKeyPrefix = "task-progress-"

// ProgressHandler saves and restores in-flight test state so a reload
// resumes where the learner left off. It talks to the blob store directly:
// saved progress is presentation state, not part of the account record.
type ProgressHandler struct {
	log   *zap.Logger
	store store.Store
}

func NewProgressHandler(log *zap.Logger, s store.Store) *ProgressHandler {
	return &ProgressHandler{log: log, store: s}
}

// Save persists the current answers, phase and remaining time for a task.
func (h *ProgressHandler) Save(c *gin.Context) {
	var progress models.TaskProgress
	if err := c.ShouldBindJSON(&progress); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid progress payload"})
		return
	}
	progress.SavedAt = time.Now()

	raw, err := json.Marshal(progress)
	if err != nil {
		h.log.Error("Failed to marshal task progress", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось сохранить прогресс"})
		return
	}
	if err := h.store.Set(progressKeyPrefix+c.Param("id"), string(raw)); err != nil {
		h.log.Error("Failed to persist task progress", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось сохранить прогресс"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Прогресс сохранен!"})
}

// Load returns the saved progress for a task, or 404 when there is none.
func (h *ProgressHandler) Load(c *gin.Context) {
	raw, ok, err := h.store.Get(progressKeyPrefix + c.Param("id"))
	if err != nil {
		h.log.Error("Failed to read task progress", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить прогресс"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Сохраненный прогресс не найден"})
		return
	}

	var progress models.TaskProgress
	if err := json.Unmarshal([]byte(raw), &progress); err != nil {
		h.log.Error("Corrupt task progress blob", zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "Сохраненный прогресс не найден"})
		return
	}
	c.JSON(http.StatusOK, progress)
}

// Clear drops the saved progress, typically after a submit or reset.
func (h *ProgressHandler) Clear(c *gin.Context) {
	if err := h.store.Delete(progressKeyPrefix + c.Param("id")); err != nil {
		h.log.Error("Failed to clear task progress", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить прогресс"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Прогресс сброшен"})
}

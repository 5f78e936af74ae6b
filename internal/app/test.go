package app

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"mnemo-go/internal/models"
)

// Score needed to have a task counted as completed, in percent.
const passThreshold = 70.0

// TestResult is the outcome of one recall test.
type TestResult struct {
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
	Score   float64 `json:"score"`
	Passed  bool    `json:"passed"`
}

// EvaluateRecall scores the learner's answers against the task items. An
// answer counts when it matches the item text (case-insensitive, trimmed) or
// contains the item's mnemonic association.
func EvaluateRecall(task *models.Task, answers map[string]string) TestResult {
	result := TestResult{Total: len(task.Content.Items)}
	for _, item := range task.Content.Items {
		answer := strings.ToLower(strings.TrimSpace(answers[item.ID]))
		if answer == "" {
			continue
		}
		target := strings.ToLower(strings.TrimSpace(item.Text))
		if answer == target {
			result.Correct++
			continue
		}
		if item.Association != "" && strings.Contains(answer, strings.ToLower(item.Association)) {
			result.Correct++
		}
	}
	if result.Total > 0 {
		result.Score = float64(result.Correct) / float64(result.Total) * 100
	}
	result.Passed = result.Score >= passThreshold
	return result
}

type testRun struct {
	taskID   string
	deadline time.Time
	timer    *time.Timer
}

// StartTest begins the timed recall phase for a task. The test gets half the
// task's study time limit. Returns the allotted seconds; false when nobody is
// logged in or the task is unknown. Starting a new test cancels the previous
// run.
func (c *Controller) StartTest(taskID string) (int, bool) {
	c.mu.Lock()
	if c.state.CurrentUser == nil {
		c.mu.Unlock()
		return 0, false
	}

	var task *models.Task
	for i := range c.state.Tasks {
		if c.state.Tasks[i].ID == taskID {
			task = &c.state.Tasks[i]
			break
		}
	}
	if task == nil {
		c.mu.Unlock()
		return 0, false
	}

	limit := task.Content.TimeLimit
	if limit <= 0 {
		limit = 300
	}
	seconds := limit / 2

	c.stopTestLocked()
	run := &testRun{taskID: taskID, deadline: time.Now().Add(time.Duration(seconds) * time.Second)}
	if !c.closed {
		run.timer = time.AfterFunc(time.Duration(seconds)*time.Second, func() {
			c.expireTest(taskID)
		})
	}
	c.activeTest = run
	c.mu.Unlock()

	c.broadcast()
	return seconds, true
}

// TestTimeLeft reports the remaining seconds of the active run, if any.
func (c *Controller) TestTimeLeft() (string, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.activeTest == nil {
		return "", 0, false
	}
	left := int(time.Until(c.activeTest.deadline).Seconds())
	if left < 0 {
		left = 0
	}
	return c.activeTest.taskID, left, true
}

// SubmitTest stops the countdown and scores the answers. A passing score
// records the completion (with its achievement); a failing one just reports
// the result. False when no run is active for taskID.
func (c *Controller) SubmitTest(taskID string, answers map[string]string) (TestResult, bool) {
	c.mu.Lock()
	if c.activeTest == nil || c.activeTest.taskID != taskID {
		c.mu.Unlock()
		return TestResult{}, false
	}
	c.stopTestLocked()

	var task *models.Task
	for i := range c.state.Tasks {
		if c.state.Tasks[i].ID == taskID {
			task = c.state.Tasks[i].Clone()
			break
		}
	}
	c.mu.Unlock()

	if task == nil {
		c.broadcast()
		return TestResult{}, false
	}

	result := EvaluateRecall(task, answers)
	if result.Passed {
		c.CompleteTask(taskID)
	} else {
		c.broadcast()
	}
	return result, true
}

// expireTest fires when the countdown hits zero: the run is auto-submitted
// with whatever was answered so far (nothing, from the controller's view),
// which never passes, and the learner is told time ran out.
func (c *Controller) expireTest(taskID string) {
	c.mu.Lock()
	if c.activeTest == nil || c.activeTest.taskID != taskID {
		c.mu.Unlock()
		return
	}
	c.activeTest = nil
	c.appendNotificationLocked(models.NotifyWarning, "Время вышло! Попробуйте еще раз")
	c.mu.Unlock()

	c.log.Debug("Timed test expired", zap.String("taskId", taskID))
	c.broadcast()
}

// stopTestLocked cancels the active countdown. Callers must hold mu.
func (c *Controller) stopTestLocked() {
	if c.activeTest != nil {
		if c.activeTest.timer != nil {
			c.activeTest.timer.Stop()
		}
		c.activeTest = nil
	}
}

package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mnemo-go/internal/models"
)

func recallTask() *models.Task {
	return &models.Task{
		ID: "1",
		Content: models.TaskContent{
			Type: models.ContentMemorization,
			Items: []models.TaskItem{
				{ID: "1", Text: "Хлеб", Association: "Буханка в форме матрешки"},
				{ID: "2", Text: "Молоко", Association: "Белая матрешка"},
				{ID: "3", Text: "Яблоки", Association: "Красная матрешка"},
				{ID: "4", Text: "Сыр", Association: "Желтая матрешка"},
			},
		},
	}
}

func TestEvaluateRecall_ExactMatchIgnoresCase(t *testing.T) {
	result := EvaluateRecall(recallTask(), map[string]string{
		"1": "  хлеб ",
		"2": "МОЛОКО",
		"3": "яблоки",
		"4": "сыр",
	})

	assert.Equal(t, 4, result.Correct)
	assert.Equal(t, 100.0, result.Score)
	assert.True(t, result.Passed)
}

func TestEvaluateRecall_AssociationCounts(t *testing.T) {
	result := EvaluateRecall(recallTask(), map[string]string{
		"1": "что-то про буханка в форме матрешки",
	})

	assert.Equal(t, 1, result.Correct)
}

func TestEvaluateRecall_BelowThresholdFails(t *testing.T) {
	result := EvaluateRecall(recallTask(), map[string]string{
		"1": "хлеб",
		"2": "кефир",
	})

	assert.Equal(t, 1, result.Correct)
	assert.Equal(t, 25.0, result.Score)
	assert.False(t, result.Passed)
}

func TestEvaluateRecall_EmptyAnswers(t *testing.T) {
	result := EvaluateRecall(recallTask(), nil)

	assert.Zero(t, result.Correct)
	assert.False(t, result.Passed)
}

func TestStartTest_RequiresLoginAndKnownTask(t *testing.T) {
	f := newFixture(t, time.Minute)

	_, ok := f.ctrl.StartTest("1")
	assert.False(t, ok, "not logged in")

	require.True(t, f.ctrl.Login("user", "user123"))
	_, ok = f.ctrl.StartTest("999")
	assert.False(t, ok, "unknown task")
}

func TestStartTest_AllotsHalfTheStudyTime(t *testing.T) {
	f := newFixture(t, time.Minute)
	require.True(t, f.ctrl.Login("user", "user123"))

	seconds, ok := f.ctrl.StartTest("1")
	require.True(t, ok)
	assert.Equal(t, 150, seconds) // task 1 studies for 300s

	taskID, left, running := f.ctrl.TestTimeLeft()
	assert.True(t, running)
	assert.Equal(t, "1", taskID)
	assert.LessOrEqual(t, left, 150)
}

func TestSubmitTest_PassingScoreCompletesTask(t *testing.T) {
	f := newFixture(t, time.Minute)
	require.True(t, f.ctrl.Login("user", "user123"))

	_, ok := f.ctrl.StartTest("1")
	require.True(t, ok)

	result, ok := f.ctrl.SubmitTest("1", map[string]string{
		"1": "Хлеб", "2": "Молоко", "3": "Яблоки", "4": "Сыр",
	})
	require.True(t, ok)
	assert.True(t, result.Passed)

	state := f.ctrl.State()
	assert.Contains(t, state.CurrentUser.CompletedTasks, "1")

	_, _, running := f.ctrl.TestTimeLeft()
	assert.False(t, running, "countdown stopped on submit")
}

func TestSubmitTest_FailingScoreDoesNotComplete(t *testing.T) {
	f := newFixture(t, time.Minute)
	require.True(t, f.ctrl.Login("user", "user123"))

	_, ok := f.ctrl.StartTest("1")
	require.True(t, ok)

	result, ok := f.ctrl.SubmitTest("1", map[string]string{"1": "Хлеб"})
	require.True(t, ok)
	assert.False(t, result.Passed)
	assert.Empty(t, f.ctrl.State().CurrentUser.CompletedTasks)
}

func TestSubmitTest_WithoutActiveRun(t *testing.T) {
	f := newFixture(t, time.Minute)
	require.True(t, f.ctrl.Login("user", "user123"))

	_, ok := f.ctrl.SubmitTest("1", nil)
	assert.False(t, ok)
}

func TestTestRun_ExpiresWithWarning(t *testing.T) {
	f := newFixture(t, time.Minute)
	require.True(t, f.ctrl.Login("admin", "admin123"))

	// A two-second study limit gives a one-second test window.
	require.True(t, f.ctrl.AddTask(models.Task{
		Title: "Быстрый тест",
		Content: models.TaskContent{
			Type:      models.ContentMemorization,
			Items:     []models.TaskItem{{ID: "1", Text: "Слон"}},
			TimeLimit: 2,
		},
	}))
	tasks := f.ctrl.State().Tasks
	quick := tasks[len(tasks)-1]

	seconds, ok := f.ctrl.StartTest(quick.ID)
	require.True(t, ok)
	require.Equal(t, 1, seconds)

	assert.Eventually(t, func() bool {
		for _, n := range f.ctrl.State().Notifications {
			if n.Type == models.NotifyWarning {
				return true
			}
		}
		return false
	}, 3*time.Second, 50*time.Millisecond)

	_, _, running := f.ctrl.TestTimeLeft()
	assert.False(t, running)

	// Expiry never completes the task.
	assert.Empty(t, f.ctrl.State().CurrentUser.CompletedTasks)
}

func TestLogout_CancelsActiveTest(t *testing.T) {
	f := newFixture(t, time.Minute)
	require.True(t, f.ctrl.Login("user", "user123"))

	_, ok := f.ctrl.StartTest("1")
	require.True(t, ok)

	f.ctrl.Logout()

	_, _, running := f.ctrl.TestTimeLeft()
	assert.False(t, running)
}

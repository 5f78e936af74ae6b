package models

import "time"

// Mnemonic methods a task can teach.
const (
	MethodMatryoshka = "matryoshka"
	MethodChain      = "chain"
	MethodCicero     = "cicero"
)

// Task difficulty tags.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Task content types.
const (
	ContentMemorization = "memorization"
	ContentAssociation  = "association"
	ContentSequence     = "sequence"
)

// Task is a single memory-training exercise. The JSON shape matches the
// persisted `tasks` blob.
type Task struct {
	ID          string      `json:"id" yaml:"id"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	Method      string      `json:"method" yaml:"method"`
	Difficulty  string      `json:"difficulty" yaml:"difficulty"`
	Content     TaskContent `json:"content" yaml:"content"`
	Achievement Achievement `json:"achievement" yaml:"achievement"`
	CreatedAt   time.Time   `json:"createdAt" yaml:"createdAt"`
}

// TaskContent holds the study material for a task. Items is never empty for
// a well-formed task; the admin form repairs item ids on save.
type TaskContent struct {
	Type         string     `json:"type" yaml:"type"`
	Items        []TaskItem `json:"items" yaml:"items"`
	Instructions string     `json:"instructions" yaml:"instructions"`
	// TimeLimit is in seconds; zero means untimed.
	TimeLimit int `json:"timeLimit,omitempty" yaml:"timeLimit,omitempty"`
}

// TaskItem is one fact to be recalled. Position is advisory ordering for
// sequence tasks and is not tied to array order.
type TaskItem struct {
	ID          string `json:"id" yaml:"id"`
	Text        string `json:"text" yaml:"text"`
	ImageURL    string `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	Association string `json:"association,omitempty" yaml:"association,omitempty"`
	Position    int    `json:"position,omitempty" yaml:"position,omitempty"`
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	cp := *t
	cp.Content.Items = append([]TaskItem(nil), t.Content.Items...)
	return &cp
}

// TaskProgress is the saved state of a test in flight, persisted under
// `task-progress-<taskId>` so a reload resumes where the learner left off.
type TaskProgress struct {
	Answers  map[string]string `json:"answers"`
	Phase    string            `json:"phase"`
	TimeLeft int               `json:"timeLeft"`
	SavedAt  time.Time         `json:"savedAt"`
}

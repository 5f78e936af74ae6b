package repository

import (
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"mnemo-go/internal/models"
	"mnemo-go/internal/store"
)

// Blob-store keys for the two persisted collections.
const (
	usersKey = "users"
	tasksKey = "tasks"
)

// Messages surfaced to the learner.
const (
	MsgDuplicateUsername = "Пользователь с таким логином уже существует"
	MsgRegisterSuccess   = "Регистрация успешна! Перенаправление на страницу входа..."
	MsgRegisterFailed    = "Не удалось создать аккаунт"
)

// RegisterResult reports the outcome of a registration attempt.
type RegisterResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Account *models.Account `json:"account,omitempty"`
}

// Repository owns the persisted account and task collections. The blob store
// is just its backing medium; every save replaces the whole collection.
//
// None of the methods return errors: failed lookups degrade to no-ops and
// storage problems are logged, matching the all-local, best-effort contract
// of the data layer.
type Repository struct {
	store        store.Store
	log          *zap.Logger
	seedAccounts []models.Account
	seedTasks    []models.Task
}

// New builds a Repository over the given store. The default seeds are built
// once up front (hashing the starter passwords is not free) and handed out
// whenever a collection is missing from the store.
func New(s store.Store, log *zap.Logger, seedTasks []models.Task) (*Repository, error) {
	seedAccounts, err := models.DefaultAccounts()
	if err != nil {
		return nil, err
	}
	if seedTasks == nil {
		seedTasks = models.DefaultTasks()
	}
	return &Repository{
		store:        s,
		log:          log,
		seedAccounts: seedAccounts,
		seedTasks:    seedTasks,
	}, nil
}

// Accounts returns the persisted accounts, or the default two-account set on
// any read-miss. Callers get their own copies.
func (r *Repository) Accounts() []models.Account {
	raw, ok, err := r.store.Get(usersKey)
	if err != nil {
		r.log.Error("Failed to read accounts from store", zap.Error(err))
		return cloneAccounts(r.seedAccounts)
	}
	if !ok {
		return cloneAccounts(r.seedAccounts)
	}

	var accounts []models.Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		r.log.Error("Corrupt accounts blob, falling back to defaults", zap.Error(err))
		return cloneAccounts(r.seedAccounts)
	}
	return accounts
}

// SaveAccounts serializes and persists the full account collection.
func (r *Repository) SaveAccounts(accounts []models.Account) {
	raw, err := json.Marshal(accounts)
	if err != nil {
		r.log.Error("Failed to marshal accounts", zap.Error(err))
		return
	}
	if err := r.store.Set(usersKey, string(raw)); err != nil {
		r.log.Error("Failed to persist accounts", zap.Error(err))
	}
}

// Tasks returns the persisted tasks, or the default three-task set on any
// read-miss.
func (r *Repository) Tasks() []models.Task {
	raw, ok, err := r.store.Get(tasksKey)
	if err != nil {
		r.log.Error("Failed to read tasks from store", zap.Error(err))
		return cloneTasks(r.seedTasks)
	}
	if !ok {
		return cloneTasks(r.seedTasks)
	}

	var tasks []models.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		r.log.Error("Corrupt tasks blob, falling back to defaults", zap.Error(err))
		return cloneTasks(r.seedTasks)
	}
	return tasks
}

// SaveTasks serializes and persists the full task collection.
func (r *Repository) SaveTasks(tasks []models.Task) {
	raw, err := json.Marshal(tasks)
	if err != nil {
		r.log.Error("Failed to marshal tasks", zap.Error(err))
		return
	}
	if err := r.store.Set(tasksKey, string(raw)); err != nil {
		r.log.Error("Failed to persist tasks", zap.Error(err))
	}
}

// Authenticate matches username (case-sensitive) and password among
// non-blocked accounts. On success it bumps LastLogin, persists, and returns
// the account. Unknown username, wrong password and a blocked account all
// produce the same nil result.
func (r *Repository) Authenticate(username, password string) *models.Account {
	accounts := r.Accounts()
	for i := range accounts {
		account := &accounts[i]
		if account.Username != username || account.IsBlocked {
			continue
		}
		if !account.CheckPassword(password) {
			continue
		}
		account.LastLogin = time.Now()
		r.SaveAccounts(accounts)
		return account.Clone()
	}
	return nil
}

// Register creates a new non-admin account. Usernames are unique under
// case-insensitive comparison.
func (r *Repository) Register(username, password string) RegisterResult {
	accounts := r.Accounts()
	for i := range accounts {
		if strings.EqualFold(accounts[i].Username, username) {
			return RegisterResult{Success: false, Message: MsgDuplicateUsername}
		}
	}

	now := time.Now()
	account := models.Account{
		ID:             generateID(),
		Username:       username,
		IsAdmin:        false,
		Achievements:   []models.Achievement{},
		CompletedTasks: []string{},
		CreatedAt:      now,
		LastLogin:      now,
	}
	if err := account.SetPassword(password); err != nil {
		r.log.Error("Failed to hash password", zap.Error(err))
		return RegisterResult{Success: false, Message: MsgRegisterFailed}
	}

	accounts = append(accounts, account)
	r.SaveAccounts(accounts)

	return RegisterResult{Success: true, Message: MsgRegisterSuccess, Account: account.Clone()}
}

// UpdateAccount replaces the stored record with the same id; unknown ids are
// a silent no-op.
func (r *Repository) UpdateAccount(updated *models.Account) {
	accounts := r.Accounts()
	for i := range accounts {
		if accounts[i].ID == updated.ID {
			accounts[i] = *updated.Clone()
			r.SaveAccounts(accounts)
			return
		}
	}
}

// CompleteTask records the first completion of taskID for accountID: the task
// id joins the completed list and the task's achievement template is copied
// onto the account stamped with the current time. Repeat completions and
// unknown ids are silent no-ops.
func (r *Repository) CompleteTask(accountID, taskID string) {
	accounts := r.Accounts()
	tasks := r.Tasks()

	var account *models.Account
	for i := range accounts {
		if accounts[i].ID == accountID {
			account = &accounts[i]
			break
		}
	}
	var task *models.Task
	for i := range tasks {
		if tasks[i].ID == taskID {
			task = &tasks[i]
			break
		}
	}

	if account == nil || task == nil || account.HasCompleted(taskID) {
		return
	}

	earned := task.Achievement
	now := time.Now()
	earned.EarnedAt = &now

	account.CompletedTasks = append(account.CompletedTasks, taskID)
	account.Achievements = append(account.Achievements, earned)
	r.SaveAccounts(accounts)
}

func cloneAccounts(accounts []models.Account) []models.Account {
	out := make([]models.Account, len(accounts))
	for i := range accounts {
		out[i] = *accounts[i].Clone()
	}
	return out
}

func cloneTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	for i := range tasks {
		out[i] = *tasks[i].Clone()
	}
	return out
}

package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// TaskSeed matches the YAML seed file layout.
type TaskSeed struct {
	Tasks []Task `yaml:"tasks"`
}

// LoadTaskSeed reads and parses a YAML task seed file.
func LoadTaskSeed(path string) (*TaskSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task seed file: %w", err)
	}

	var seed TaskSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task seed YAML: %w", err)
	}
	if len(seed.Tasks) == 0 {
		return nil, fmt.Errorf("task seed file %s contains no tasks", path)
	}

	return &seed, nil
}

// DefaultAccounts builds the two-account starter set: one administrator and
// one ordinary learner. Passwords are hashed here so the stored collection
// never carries plaintext.
func DefaultAccounts() ([]Account, error) {
	now := time.Now()
	accounts := []Account{
		{
			ID:             "1",
			Username:       "admin",
			IsAdmin:        true,
			Achievements:   []Achievement{},
			CompletedTasks: []string{},
			CreatedAt:      now,
			LastLogin:      now,
		},
		{
			ID:             "2",
			Username:       "user",
			IsAdmin:        false,
			Achievements:   []Achievement{},
			CompletedTasks: []string{},
			CreatedAt:      now,
			LastLogin:      now,
		},
	}
	for i, password := range []string{"admin123", "user123"} {
		if err := accounts[i].SetPassword(password); err != nil {
			return nil, err
		}
	}
	return accounts, nil
}

// DefaultTasks returns the built-in three-task starter set, one per mnemonic
// method. Used when no seed file is configured.
func DefaultTasks() []Task {
	now := time.Now()
	return []Task{
		{
			ID:          "1",
			Title:       "Запоминание списка покупок",
			Description: "Изучите метод матрешки для запоминания списка товаров",
			Method:      MethodMatryoshka,
			Difficulty:  DifficultyEasy,
			Content: TaskContent{
				Type: ContentMemorization,
				Items: []TaskItem{
					{ID: "1", Text: "Хлеб", Association: "Буханка в форме матрешки"},
					{ID: "2", Text: "Молоко", Association: "Белая матрешка"},
					{ID: "3", Text: "Яблоки", Association: "Красная матрешка"},
					{ID: "4", Text: "Сыр", Association: "Желтая матрешка"},
				},
				Instructions: "Представьте каждый товар как матрешку определенного цвета и размера",
				TimeLimit:    300,
			},
			Achievement: Achievement{
				ID:          "first_matryoshka",
				Title:       "Первая матрешка",
				Description: "Выполнили первое задание по методу матрешки",
				Icon:        "Trophy",
			},
			CreatedAt: now,
		},
		{
			ID:          "2",
			Title:       "Цепочка исторических событий",
			Description: "Используйте метод цепочки для запоминания дат",
			Method:      MethodChain,
			Difficulty:  DifficultyMedium,
			Content: TaskContent{
				Type: ContentSequence,
				Items: []TaskItem{
					{ID: "1", Text: "1147 - Основание Москвы", Position: 1},
					{ID: "2", Text: "1380 - Куликовская битва", Position: 2},
					{ID: "3", Text: "1612 - Освобождение Москвы", Position: 3},
					{ID: "4", Text: "1812 - Отечественная война", Position: 4},
				},
				Instructions: "Создайте логическую цепочку связей между историческими событиями",
				TimeLimit:    600,
			},
			Achievement: Achievement{
				ID:          "history_chain",
				Title:       "Цепь истории",
				Description: "Освоили метод цепочки на исторических событиях",
				Icon:        "Link",
			},
			CreatedAt: now,
		},
		{
			ID:          "3",
			Title:       "Дворец памяти - Кабинет",
			Description: "Создайте дворец памяти по методу Цицерона",
			Method:      MethodCicero,
			Difficulty:  DifficultyHard,
			Content: TaskContent{
				Type: ContentAssociation,
				Items: []TaskItem{
					{ID: "1", Text: "Стол - Договор", Association: "На столе лежит важный документ"},
					{ID: "2", Text: "Книжная полка - Знания", Association: "Полка хранит мудрость веков"},
					{ID: "3", Text: "Окно - Возможности", Association: "Окно открывает новые горизонты"},
					{ID: "4", Text: "Дверь - Выбор", Association: "Дверь ведет к новым решениям"},
				},
				Instructions: "Мысленно пройдите по кабинету и разместите информацию в знакомых местах",
				TimeLimit:    900,
			},
			Achievement: Achievement{
				ID:          "memory_palace",
				Title:       "Архитектор памяти",
				Description: "Построили первый дворец памяти",
				Icon:        "Castle",
			},
			CreatedAt: now,
		},
	}
}

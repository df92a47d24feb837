package model

import "time"

// QuizQuestion 单道○×判断题，教材生成时一次性产出，之后不可变
// swagger:model QuizQuestion
type QuizQuestion struct {
	ID            string `json:"id"`
	QuestionText  string `json:"questionText"`
	CorrectAnswer bool   `json:"correctAnswer"` // true: ○, false: ×
	Explanation   string `json:"explanation,omitempty"`
	Order         int    `json:"order"` // 题号 1-10
}

// LearningMaterial 学习教材（摘要 + 判断题），插入存储后不再修改
// swagger:model LearningMaterial
type LearningMaterial struct {
	ID           string         `json:"id"`
	WikipediaURL string         `json:"wikipediaUrl"`
	ArticleTitle string         `json:"articleTitle"`
	ArticleText  string         `json:"articleText"`
	Summary      string         `json:"summary"`
	Questions    []QuizQuestion `json:"questions"`
	CreatedAt    time.Time      `json:"createdAt"`
}

package model

import "time"

// SessionStatus 学习会话状态
type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

// Answer 单次回答记录，追加进会话历史后不可变
// swagger:model Answer
type Answer struct {
	AnswerID   string    `json:"answerId"`
	QuestionID string    `json:"questionId"`
	UserChoice bool      `json:"userChoice"`
	IsCorrect  bool      `json:"isCorrect"`
	AnsweredAt time.Time `json:"answeredAt"`
}

// LearningSession 一次答题会话
// Questions 是创建时从教材拷贝的快照，之后与教材无关联
// swagger:model LearningSession
type LearningSession struct {
	SessionID             string         `json:"sessionId"`
	Questions             []QuizQuestion `json:"questions"`
	CurrentQuestionNumber int            `json:"currentQuestionNumber"` // 从 1 开始
	AnswerHistory         []Answer       `json:"answerHistory"`
	CorrectCount          int            `json:"correctCount"`
	Status                SessionStatus  `json:"status"`
	StartedAt             time.Time      `json:"startedAt"`
	CompletedAt           *time.Time     `json:"completedAt"`
}

// SessionResult 会话结果统计，由回答历史派生
// swagger:model SessionResult
type SessionResult struct {
	CorrectCount   int      `json:"correctCount"`
	IncorrectCount int      `json:"incorrectCount"`
	CorrectRate    int      `json:"correctRate"` // 0-100，四舍五入
	AnswerHistory  []Answer `json:"answerHistory"`
}

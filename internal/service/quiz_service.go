package service

import (
	"time"

	"wikiquiz_backend/internal/model"
	"wikiquiz_backend/internal/repository"
	"wikiquiz_backend/internal/util"

	"github.com/google/uuid"
)

// QuizService 答题会话编排: 建会话, 判卷, 汇总结果
type QuizService struct {
	store *repository.SessionStore
}

func NewQuizService(store *repository.SessionStore) *QuizService {
	return &QuizService{store: store}
}

// AnswerFeedback 单次回答的即时反馈
type AnswerFeedback struct {
	Answer          model.Answer `json:"answer"`
	CorrectAnswer   bool         `json:"correctAnswer"`
	Explanation     string       `json:"explanation,omitempty"`
	HasNextQuestion bool         `json:"hasNextQuestion"`
}

// ResultSummary 会话结果概要
type ResultSummary struct {
	CorrectCount int `json:"correctCount"`
	TotalCount   int `json:"totalCount"`
	CorrectRate  int `json:"correctRate"`
}

func (s *QuizService) CreateSession(materialID string) (*model.LearningSession, error) {
	return s.store.CreateSession(materialID)
}

// SubmitAnswer 判定回答并写入会话历史
// 正误判定是两值选择的严格相等, 没有部分得分和跳题
func (s *QuizService) SubmitAnswer(sessionID, questionID string, userChoice bool) (*AnswerFeedback, error) {
	session, ok := s.store.GetSession(sessionID)
	if !ok {
		return nil, util.ErrSessionNotFound
	}

	var question *model.QuizQuestion
	for i := range session.Questions {
		if session.Questions[i].ID == questionID {
			question = &session.Questions[i]
			break
		}
	}
	if question == nil {
		return nil, util.ErrQuestionNotFound
	}

	answer := model.Answer{
		AnswerID:   uuid.New().String(),
		QuestionID: questionID,
		UserChoice: userChoice,
		IsCorrect:  question.CorrectAnswer == userChoice,
		AnsweredAt: time.Now(),
	}

	if _, err := s.store.SubmitAnswer(sessionID, answer); err != nil {
		return nil, err
	}

	hasNext := false
	for _, q := range session.Questions {
		if q.Order == question.Order+1 {
			hasNext = true
			break
		}
	}

	return &AnswerFeedback{
		Answer:          answer,
		CorrectAnswer:   question.CorrectAnswer,
		Explanation:     question.Explanation,
		HasNextQuestion: hasNext,
	}, nil
}

func (s *QuizService) GetResult(sessionID string) (*ResultSummary, error) {
	session, ok := s.store.GetSession(sessionID)
	if !ok {
		return nil, util.ErrSessionNotFound
	}

	result, err := s.store.CalculateResult(sessionID)
	if err != nil {
		return nil, err
	}

	return &ResultSummary{
		CorrectCount: result.CorrectCount,
		TotalCount:   len(session.Questions),
		CorrectRate:  result.CorrectRate,
	}, nil
}

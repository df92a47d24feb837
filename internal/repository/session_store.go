package repository

import (
	"math"
	"sync"
	"time"

	"wikiquiz_backend/internal/model"
	"wikiquiz_backend/internal/util"

	"github.com/google/uuid"
)

// SessionStore 进程内教材/会话存储
// 部署生命周期很短, 不做过期淘汰和删除; 多实例间不共享
// 读写路径都可能并发进入, 统一用一把读写锁保护两张表
type SessionStore struct {
	mu        sync.RWMutex
	materials map[string]*model.LearningMaterial
	sessions  map[string]*model.LearningSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		materials: make(map[string]*model.LearningMaterial),
		sessions:  make(map[string]*model.LearningSession),
	}
}

// SaveMaterial 按 ID 无条件写入(覆盖)
func (s *SessionStore) SaveMaterial(m *model.LearningMaterial) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.materials[m.ID] = m
}

func (s *SessionStore) GetMaterial(materialID string) (*model.LearningMaterial, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.materials[materialID]
	return m, ok
}

// CreateSession 从教材创建新会话, 题目做值拷贝快照
func (s *SessionStore) CreateSession(materialID string) (*model.LearningSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	material, ok := s.materials[materialID]
	if !ok {
		return nil, util.ErrMaterialNotFound
	}

	questions := make([]model.QuizQuestion, len(material.Questions))
	copy(questions, material.Questions)

	session := &model.LearningSession{
		SessionID:             uuid.New().String(),
		Questions:             questions,
		CurrentQuestionNumber: 1,
		AnswerHistory:         []model.Answer{},
		CorrectCount:          0,
		Status:                model.SessionInProgress,
		StartedAt:             time.Now(),
		CompletedAt:           nil,
	}

	s.sessions[session.SessionID] = session
	return session, nil
}

func (s *SessionStore) GetSession(sessionID string) (*model.LearningSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	return sess, ok
}

// SubmitAnswer 记录一次回答
// 同一题的重复提交是幂等空操作: 原样返回会话, 不追加历史也不改计数
func (s *SessionStore) SubmitAnswer(sessionID string, answer model.Answer) (*model.LearningSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, util.ErrSessionNotFound
	}

	for _, a := range session.AnswerHistory {
		if a.QuestionID == answer.QuestionID {
			return session, nil
		}
	}

	session.AnswerHistory = append(session.AnswerHistory, answer)

	if answer.IsCorrect {
		session.CorrectCount++
	}

	// 答满全部题目即完成, 否则推进到下一题
	if len(session.AnswerHistory) >= len(session.Questions) {
		session.Status = model.SessionCompleted
		now := time.Now()
		session.CompletedAt = &now
	} else {
		session.CurrentQuestionNumber++
	}

	return session, nil
}

// CalculateResult 从回答历史派生结果统计, 不修改会话
func (s *SessionStore) CalculateResult(sessionID string) (*model.SessionResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, util.ErrSessionNotFound
	}

	answered := len(session.AnswerHistory)
	correctCount := session.CorrectCount
	incorrectCount := answered - correctCount

	correctRate := 0
	if answered > 0 {
		correctRate = int(math.Round(float64(correctCount) / float64(answered) * 100))
	}

	history := make([]model.Answer, answered)
	copy(history, session.AnswerHistory)

	return &model.SessionResult{
		CorrectCount:   correctCount,
		IncorrectCount: incorrectCount,
		CorrectRate:    correctRate,
		AnswerHistory:  history,
	}, nil
}

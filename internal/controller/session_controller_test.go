package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"wikiquiz_backend/internal/model"
	"wikiquiz_backend/internal/repository"
	"wikiquiz_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code      int             `json:"code"`
	ErrorCode string          `json:"errorCode"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

func newSessionTestRouter(store *repository.SessionStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	c := NewSessionController(service.NewQuizService(store))

	router := gin.New()
	router.POST("/api/sessions", c.CreateSession)
	router.POST("/api/sessions/:id/answers", c.SubmitAnswer)
	router.GET("/api/sessions/:id/result", c.GetResult)
	return router
}

func seedMaterial(store *repository.SessionStore) {
	store.SaveMaterial(&model.LearningMaterial{
		ID: "material-1",
		Questions: []model.QuizQuestion{
			{ID: "q1", QuestionText: "Q1", CorrectAnswer: true, Explanation: "exp1", Order: 1},
			{ID: "q2", QuestionText: "Q2", CorrectAnswer: false, Explanation: "exp2", Order: 2},
		},
	})
}

func doJSON(router *gin.Engine, method, path string, body string) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Buffer
	if body == "" {
		reader = bytes.NewBuffer(nil)
	} else {
		reader = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestCreateSessionEndpoint(t *testing.T) {
	store := repository.NewSessionStore()
	seedMaterial(store)
	router := newSessionTestRouter(store)

	w, env := doJSON(router, http.MethodPost, "/api/sessions", `{"materialId":"material-1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var data struct {
		SessionID string               `json:"sessionId"`
		Questions []model.QuizQuestion `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.SessionID)
	assert.Len(t, data.Questions, 2)
}

func TestCreateSessionEndpointMaterialNotFound(t *testing.T) {
	store := repository.NewSessionStore()
	router := newSessionTestRouter(store)

	w, env := doJSON(router, http.MethodPost, "/api/sessions", `{"materialId":"nonexistent"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "MATERIAL_NOT_FOUND", env.ErrorCode)
}

func TestCreateSessionEndpointMissingBody(t *testing.T) {
	store := repository.NewSessionStore()
	router := newSessionTestRouter(store)

	w, env := doJSON(router, http.MethodPost, "/api/sessions", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", env.ErrorCode)
}

// 端到端答题流程: 两题一对一错, 最终正确率50
func TestQuizEndToEnd(t *testing.T) {
	store := repository.NewSessionStore()
	seedMaterial(store)
	router := newSessionTestRouter(store)

	_, env := doJSON(router, http.MethodPost, "/api/sessions", `{"materialId":"material-1"}`)
	var created struct {
		SessionID string `json:"sessionId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	// 第一题答对
	w, env := doJSON(router, http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/answers", created.SessionID),
		`{"questionId":"q1","userAnswer":true}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var feedback service.AnswerFeedback
	require.NoError(t, json.Unmarshal(env.Data, &feedback))
	assert.True(t, feedback.Answer.IsCorrect)
	assert.True(t, feedback.CorrectAnswer)
	assert.Equal(t, "exp1", feedback.Explanation)
	assert.True(t, feedback.HasNextQuestion)

	session, ok := store.GetSession(created.SessionID)
	require.True(t, ok)
	assert.Equal(t, 1, session.CorrectCount)
	assert.Equal(t, 2, session.CurrentQuestionNumber)
	assert.Equal(t, model.SessionInProgress, session.Status)

	// 第二题答错, 会话完成
	w, env = doJSON(router, http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/answers", created.SessionID),
		`{"questionId":"q2","userAnswer":true}`)
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, json.Unmarshal(env.Data, &feedback))
	assert.False(t, feedback.Answer.IsCorrect)
	assert.False(t, feedback.HasNextQuestion)

	assert.Equal(t, model.SessionCompleted, session.Status)
	assert.Equal(t, 1, session.CorrectCount)

	// 结果统计
	w, env = doJSON(router, http.MethodGet,
		fmt.Sprintf("/api/sessions/%s/result", created.SessionID), "")
	require.Equal(t, http.StatusOK, w.Code)

	var result service.ResultSummary
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 2, result.TotalCount)
	assert.Equal(t, 50, result.CorrectRate)
}

func TestSubmitAnswerEndpointSessionNotFound(t *testing.T) {
	store := repository.NewSessionStore()
	router := newSessionTestRouter(store)

	w, env := doJSON(router, http.MethodPost, "/api/sessions/nonexistent/answers",
		`{"questionId":"q1","userAnswer":true}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "SESSION_NOT_FOUND", env.ErrorCode)
}

func TestSubmitAnswerEndpointQuestionNotFound(t *testing.T) {
	store := repository.NewSessionStore()
	seedMaterial(store)
	router := newSessionTestRouter(store)

	_, env := doJSON(router, http.MethodPost, "/api/sessions", `{"materialId":"material-1"}`)
	var created struct {
		SessionID string `json:"sessionId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	w, env := doJSON(router, http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/answers", created.SessionID),
		`{"questionId":"no-such","userAnswer":false}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "QUESTION_NOT_FOUND", env.ErrorCode)
}

func TestSubmitAnswerEndpointFalseIsValidAnswer(t *testing.T) {
	store := repository.NewSessionStore()
	seedMaterial(store)
	router := newSessionTestRouter(store)

	_, env := doJSON(router, http.MethodPost, "/api/sessions", `{"materialId":"material-1"}`)
	var created struct {
		SessionID string `json:"sessionId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	// userAnswer=false 不能被required校验误判为缺省
	w, env := doJSON(router, http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/answers", created.SessionID),
		`{"questionId":"q2","userAnswer":false}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var feedback service.AnswerFeedback
	require.NoError(t, json.Unmarshal(env.Data, &feedback))
	assert.True(t, feedback.Answer.IsCorrect)
}

func TestGetResultEndpointSessionNotFound(t *testing.T) {
	store := repository.NewSessionStore()
	router := newSessionTestRouter(store)

	w, env := doJSON(router, http.MethodGet, "/api/sessions/nonexistent/result", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "SESSION_NOT_FOUND", env.ErrorCode)
}

package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"wikiquiz_backend/internal/model"
	"wikiquiz_backend/internal/repository"
	"wikiquiz_backend/internal/service"
	"wikiquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubArticleSource struct {
	article *service.Article
	err     error
}

func (s *stubArticleSource) FetchArticle(ctx context.Context, title, lang string) (*service.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.article, nil
}

type stubGenerator struct {
	summary   string
	questions []model.QuizQuestion
	err       error
}

func (s *stubGenerator) GenerateSummary(ctx context.Context, articleText string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.summary, nil
}

func (s *stubGenerator) GenerateQuestions(ctx context.Context, articleText string) ([]model.QuizQuestion, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.questions, nil
}

func newMaterialTestRouter(articles service.ArticleSource, generator service.ContentGenerator) (*gin.Engine, *repository.SessionStore) {
	gin.SetMode(gin.TestMode)

	store := repository.NewSessionStore()
	c := NewMaterialController(service.NewMaterialService(articles, generator, store))

	router := gin.New()
	router.POST("/api/materials", c.CreateMaterial)
	return router, store
}

func TestCreateMaterialEndpoint(t *testing.T) {
	articles := &stubArticleSource{article: &service.Article{Title: "日本", Text: "正文"}}
	generator := &stubGenerator{
		summary: "摘要",
		questions: []model.QuizQuestion{
			{ID: "q1", QuestionText: "Q1", CorrectAnswer: true, Explanation: "exp", Order: 1},
		},
	}
	router, store := newMaterialTestRouter(articles, generator)

	w, env := doJSON(router, http.MethodPost, "/api/materials",
		`{"wikipediaUrl":"https://ja.wikipedia.org/wiki/%E6%97%A5%E6%9C%AC"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var material model.LearningMaterial
	require.NoError(t, json.Unmarshal(env.Data, &material))
	assert.Equal(t, "日本", material.ArticleTitle)
	assert.Equal(t, "摘要", material.Summary)
	assert.Len(t, material.Questions, 1)

	_, ok := store.GetMaterial(material.ID)
	assert.True(t, ok)
}

func TestCreateMaterialEndpointInvalidURL(t *testing.T) {
	router, _ := newMaterialTestRouter(&stubArticleSource{}, &stubGenerator{})

	w, env := doJSON(router, http.MethodPost, "/api/materials",
		`{"wikipediaUrl":"https://fr.wikipedia.org/wiki/Paris"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", env.ErrorCode)
}

func TestCreateMaterialEndpointMissingURL(t *testing.T) {
	router, _ := newMaterialTestRouter(&stubArticleSource{}, &stubGenerator{})

	w, env := doJSON(router, http.MethodPost, "/api/materials", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", env.ErrorCode)
}

func TestCreateMaterialEndpointArticleNotFound(t *testing.T) {
	articles := &stubArticleSource{err: util.ErrArticleNotFound}
	router, _ := newMaterialTestRouter(articles, &stubGenerator{})

	w, env := doJSON(router, http.MethodPost, "/api/materials",
		`{"wikipediaUrl":"https://ja.wikipedia.org/wiki/NoSuchPage"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ARTICLE_NOT_FOUND", env.ErrorCode)
}

func TestCreateMaterialEndpointGenerationFailed(t *testing.T) {
	articles := &stubArticleSource{article: &service.Article{Title: "Test", Text: "正文"}}
	generator := &stubGenerator{err: errors.New("上游超时")}
	router, _ := newMaterialTestRouter(articles, generator)

	w, env := doJSON(router, http.MethodPost, "/api/materials",
		`{"wikipediaUrl":"https://ja.wikipedia.org/wiki/Test"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "GENERATION_ERROR", env.ErrorCode)
}

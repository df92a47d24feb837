package service

import (
	"context"
	"fmt"
	"time"

	"wikiquiz_backend/internal/model"
	"wikiquiz_backend/internal/repository"
	"wikiquiz_backend/internal/util"
	"wikiquiz_backend/pkg/logger"
	"wikiquiz_backend/pkg/monitoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ArticleSource 文章来源能力(维基百科)
type ArticleSource interface {
	FetchArticle(ctx context.Context, title, lang string) (*Article, error)
}

// ContentGenerator 摘要与出题能力(大模型)
type ContentGenerator interface {
	GenerateSummary(ctx context.Context, articleText string) (string, error)
	GenerateQuestions(ctx context.Context, articleText string) ([]model.QuizQuestion, error)
}

// MaterialService 教材生成编排: 校验URL -> 取文章 -> 并发生成摘要和题目 -> 入库
type MaterialService struct {
	articles  ArticleSource
	generator ContentGenerator
	store     *repository.SessionStore
}

func NewMaterialService(articles ArticleSource, generator ContentGenerator, store *repository.SessionStore) *MaterialService {
	return &MaterialService{
		articles:  articles,
		generator: generator,
		store:     store,
	}
}

type summaryResult struct {
	summary string
	err     error
}

type questionsResult struct {
	questions []model.QuizQuestion
	err       error
}

// BuildMaterial 从URL构建一份完整教材
// 任一步失败则整体失败且不产生任何写入; 成功时恰好写入一条教材
func (s *MaterialService) BuildMaterial(ctx context.Context, rawURL string) (*model.LearningMaterial, error) {
	start := time.Now()
	material, err := s.buildMaterial(ctx, rawURL)

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	monitoring.MaterialBuildDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	return material, err
}

func (s *MaterialService) buildMaterial(ctx context.Context, rawURL string) (*model.LearningMaterial, error) {
	ref, err := ValidateWikipediaURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidURL, err)
	}

	article, err := s.articles.FetchArticle(ctx, ref.Title, ref.Lang)
	if err != nil {
		return nil, err
	}

	// 摘要和出题互不依赖, 并发执行; 两边都结算后才继续
	sumCh := make(chan summaryResult, 1)
	qCh := make(chan questionsResult, 1)

	go func() {
		summary, err := s.generator.GenerateSummary(ctx, article.Text)
		sumCh <- summaryResult{summary: summary, err: err}
	}()
	go func() {
		questions, err := s.generator.GenerateQuestions(ctx, article.Text)
		qCh <- questionsResult{questions: questions, err: err}
	}()

	sum := <-sumCh
	qs := <-qCh

	// 两边都失败时固定上报摘要侧错误, 保证结果可复现
	if sum.err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrGenerationFailed, sum.err)
	}
	if qs.err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrGenerationFailed, qs.err)
	}

	material := &model.LearningMaterial{
		ID:           uuid.New().String(),
		WikipediaURL: rawURL,
		ArticleTitle: article.Title,
		ArticleText:  article.Text,
		Summary:      sum.summary,
		Questions:    qs.questions,
		CreatedAt:    time.Now(),
	}

	s.store.SaveMaterial(material)

	logger.Log.Info("material built",
		zap.String("materialId", material.ID),
		zap.String("articleTitle", material.ArticleTitle),
		zap.Int("questionCount", len(material.Questions)))

	return material, nil
}

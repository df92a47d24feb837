package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"wikiquiz_backend/internal/config"
	"wikiquiz_backend/internal/model"
	"wikiquiz_backend/internal/util"
	"wikiquiz_backend/pkg/logger"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// 每份教材的判断题上限, 上游多给的部分直接截断
const maxQuestions = 10

// AIService 封装对 OpenAI 兼容接口的摘要生成和出题调用
type AIService struct {
	client *openai.Client
	cfg    config.AIConfig
}

func NewAIService(cfg config.AIConfig) *AIService {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.RequestTimeout}

	return &AIService{
		client: openai.NewClientWithConfig(clientCfg),
		cfg:    cfg,
	}
}

// GenerateSummary 生成文章摘要
// 空文章直接拒绝, 不发起上游调用
func (s *AIService) GenerateSummary(ctx context.Context, articleText string) (string, error) {
	if articleText == "" {
		return "", util.ErrEmptyArticle
	}

	prompt := fmt.Sprintf(`请仔细分析以下维基百科文章并进行总结。

要求:
1. 第一句话说明这篇文章讲的是什么。
2. 空一行后, 挑选3到5个读者最感兴趣的要点, 用条目列出。
3. 每个条目必须是一句完整的话, 不要拆成多句。
4. 不要使用任何Markdown加粗等装饰符号。
5. 全文控制在350字以内。

文章正文:
%s`, articleText)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.SummaryModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		logger.Log.Error("summary generation failed", zap.Error(err))
		return "", fmt.Errorf("摘要生成失败: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("摘要生成失败: AI未返回内容")
	}

	return resp.Choices[0].Message.Content, nil
}

// aiQuizQuestion 上游返回的单题结构
type aiQuizQuestion struct {
	Text          string `json:"text"`
	CorrectAnswer bool   `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
}

// GenerateQuestions 依据文章生成○×判断题, 最多保留前10题并按位置编号
func (s *AIService) GenerateQuestions(ctx context.Context, articleText string) ([]model.QuizQuestion, error) {
	if articleText == "" {
		return nil, util.ErrEmptyArticle
	}

	prompt := fmt.Sprintf(`请根据以下维基百科文章生成10道○×判断题, 以JSON格式返回。
必须严格遵守下面的JSON格式, 返回一个数组。

格式:
[
  {
    "text": "题目内容",
    "correctAnswer": true,
    "explanation": "解析(可选)"
  }
]

文章正文:
%s`, articleText)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.QuestionModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		logger.Log.Error("question generation failed", zap.Error(err))
		return nil, fmt.Errorf("题目生成失败: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, errors.New("题目生成失败: AI未返回内容")
	}

	parsed, err := parseQuestionPayload([]byte(resp.Choices[0].Message.Content))
	if err != nil {
		logger.Log.Error("question payload unparsable",
			zap.String("content", resp.Choices[0].Message.Content), zap.Error(err))
		return nil, fmt.Errorf("题目解析失败: %w", err)
	}

	if len(parsed) == 0 {
		return nil, errors.New("题目生成失败: 结果为空")
	}

	if len(parsed) > maxQuestions {
		parsed = parsed[:maxQuestions]
	}

	questions := make([]model.QuizQuestion, len(parsed))
	for i, q := range parsed {
		questions[i] = model.QuizQuestion{
			ID:            uuid.New().String(),
			QuestionText:  q.Text,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Order:         i + 1,
		}
	}

	return questions, nil
}

// parseQuestionPayload 解析上游返回的JSON
// json_object 模式下根节点通常是对象, 题目数组可能被包在任意键里,
// 按固定顺序尝试三种形态: 根数组 -> questions 键 -> 按键名排序后的第一个数组值
func parseQuestionPayload(content []byte) ([]aiQuizQuestion, error) {
	var direct []aiQuizQuestion
	if err := json.Unmarshal(content, &direct); err == nil {
		return direct, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(content, &wrapper); err != nil {
		return nil, fmt.Errorf("invalid JSON structure: %w", err)
	}

	if raw, ok := wrapper["questions"]; ok {
		var qs []aiQuizQuestion
		if err := json.Unmarshal(raw, &qs); err == nil {
			return qs, nil
		}
	}

	// 键名排序保证fallback分支结果确定
	keys := make([]string, 0, len(wrapper))
	for k := range wrapper {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		var qs []aiQuizQuestion
		if err := json.Unmarshal(wrapper[k], &qs); err == nil {
			return qs, nil
		}
	}

	return nil, errors.New("no question array found in response")
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"wikiquiz_backend/internal/config"
	"wikiquiz_backend/internal/util"
	"wikiquiz_backend/pkg/logger"

	"go.uber.org/zap"
)

// ArticleRef 校验通过的维基百科文章定位信息
type ArticleRef struct {
	Lang  string `json:"lang"` // "ja" 或 "en"
	Title string `json:"title"`
}

// Article 从维基百科取回的文章
type Article struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

var wikiHostRegex = regexp.MustCompile(`^(ja|en)\.wikipedia\.org$`)

// ValidateWikipediaURL 校验文章URL并提取语言与标题
// 纯函数, 无副作用; 任何解析异常都归并为"URL格式无效"
func ValidateWikipediaURL(rawURL string) (*ArticleRef, error) {
	if rawURL == "" {
		return nil, errors.New("请输入URL")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.New("URL格式无效")
	}

	if u.Scheme != "https" {
		return nil, errors.New("请输入HTTPS协议的URL")
	}

	match := wikiHostRegex.FindStringSubmatch(u.Hostname())
	if match == nil {
		return nil, errors.New("仅支持日文或英文维基百科的URL")
	}
	lang := match[1]

	// u.Path 已经过百分号解码; 标题本身可以包含斜杠(子页面)
	if !strings.HasPrefix(u.Path, "/wiki/") {
		return nil, errors.New("请输入维基百科文章页面的URL")
	}

	title := strings.TrimPrefix(u.Path, "/wiki/")
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("文章标题无效")
	}

	return &ArticleRef{Lang: lang, Title: title}, nil
}

// WikipediaService 调用 MediaWiki API 取回文章纯文本
type WikipediaService struct {
	client *http.Client

	// endpointFormat 以 %s 占位语言码, 测试时替换为本地假服务
	endpointFormat string
}

func NewWikipediaService(cfg config.WikipediaConfig) *WikipediaService {
	return &WikipediaService{
		client:         &http.Client{Timeout: cfg.RequestTimeout},
		endpointFormat: "https://%s.wikipedia.org/w/api.php",
	}
}

type wikiPage struct {
	PageID  int    `json:"pageid"`
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

type wikiQueryResponse struct {
	Query struct {
		Pages map[string]wikiPage `json:"pages"`
	} `json:"query"`
}

// FetchArticle 按 (标题, 语言) 取回文章
// 文章不存在返回 util.ErrArticleNotFound, 传输层失败返回普通错误
func (s *WikipediaService) FetchArticle(ctx context.Context, title, lang string) (*Article, error) {
	endpoint := fmt.Sprintf(s.endpointFormat, lang)

	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("prop", "extracts")
	params.Set("explaintext", "true")
	params.Set("titles", title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Log.Error("Wikipedia API request failed", zap.String("title", title), zap.Error(err))
		return nil, fmt.Errorf("wikipedia api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("wikipedia api returned status %d: %s", resp.StatusCode, string(body))
	}

	var result wikiQueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("wikipedia api response invalid: %w", err)
	}

	if len(result.Query.Pages) == 0 {
		return nil, errors.New("wikipedia api response invalid: no pages")
	}

	// 单标题查询只会有一个 page 条目; key 为 "-1" 表示文章不存在
	for key, page := range result.Query.Pages {
		if key == "-1" || page.PageID == 0 {
			return nil, util.ErrArticleNotFound
		}
		return &Article{Title: page.Title, Text: page.Extract}, nil
	}

	return nil, util.ErrArticleNotFound
}

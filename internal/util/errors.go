package util

import "errors"

var (
	ErrMaterialNotFound = errors.New("material not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrArticleNotFound  = errors.New("article not found")
	ErrInvalidURL       = errors.New("invalid wikipedia url")
	ErrGenerationFailed = errors.New("content generation failed")
	ErrEmptyArticle     = errors.New("article text is empty")
	ErrInvalidPassword  = errors.New("invalid password")
)

// 对外错误码，随错误响应一并返回，供前端按码分支处理
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeMaterialNotFound = "MATERIAL_NOT_FOUND"
	CodeSessionNotFound  = "SESSION_NOT_FOUND"
	CodeQuestionNotFound = "QUESTION_NOT_FOUND"
	CodeArticleNotFound  = "ARTICLE_NOT_FOUND"
	CodeGenerationError  = "GENERATION_ERROR"
	CodeInternalError    = "INTERNAL_ERROR"
)

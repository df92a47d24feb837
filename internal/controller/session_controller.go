package controller

import (
	"errors"
	"net/http"

	"wikiquiz_backend/internal/service"
	"wikiquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	quizService *service.QuizService
}

func NewSessionController(quizService *service.QuizService) *SessionController {
	return &SessionController{quizService: quizService}
}

type CreateSessionRequest struct {
	MaterialID string `json:"materialId" binding:"required"`
}

type SubmitAnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	// 指针以区分 false 和缺省
	UserAnswer *bool `json:"userAnswer" binding:"required"`
}

// CreateSession 基于教材创建答题会话
// @Summary 创建答题会话
// @Tags 会话
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest true "教材ID"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/sessions [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	var req CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.quizService.CreateSession(req.MaterialID)
	if err != nil {
		if errors.Is(err, util.ErrMaterialNotFound) {
			util.Fail(ctx, http.StatusNotFound, util.CodeMaterialNotFound, "教材不存在")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"sessionId": session.SessionID,
		"questions": session.Questions,
	})
}

// SubmitAnswer 提交一道题的回答
// @Summary 提交回答
// @Description 判定正误并记录; 同一题的重复提交会被静默忽略
// @Tags 会话
// @Accept json
// @Produce json
// @Param id path string true "会话ID"
// @Param request body SubmitAnswerRequest true "题目ID与回答"
// @Success 201 {object} util.Response{data=service.AnswerFeedback}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/sessions/{id}/answers [post]
func (c *SessionController) SubmitAnswer(ctx *gin.Context) {
	sessionID := ctx.Param("id")

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	feedback, err := c.quizService.SubmitAnswer(sessionID, req.QuestionID, *req.UserAnswer)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.Fail(ctx, http.StatusNotFound, util.CodeSessionNotFound, "会话不存在")
		case errors.Is(err, util.ErrQuestionNotFound):
			util.Fail(ctx, http.StatusNotFound, util.CodeQuestionNotFound, "题目不存在")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, feedback)
}

// GetResult 获取会话结果统计
// @Summary 获取答题结果
// @Tags 会话
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response{data=service.ResultSummary}
// @Failure 404 {object} util.Response
// @Router /api/sessions/{id}/result [get]
func (c *SessionController) GetResult(ctx *gin.Context) {
	sessionID := ctx.Param("id")

	result, err := c.quizService.GetResult(sessionID)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.Fail(ctx, http.StatusNotFound, util.CodeSessionNotFound, "会话不存在")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

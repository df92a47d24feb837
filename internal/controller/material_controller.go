package controller

import (
	"errors"
	"net/http"

	"wikiquiz_backend/internal/service"
	"wikiquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MaterialController struct {
	materialService *service.MaterialService
}

func NewMaterialController(materialService *service.MaterialService) *MaterialController {
	return &MaterialController{materialService: materialService}
}

type CreateMaterialRequest struct {
	WikipediaURL string `json:"wikipediaUrl" binding:"required"`
}

// CreateMaterial 从维基百科URL生成学习教材
// @Summary 生成学习教材
// @Description 校验URL, 抓取文章, 并发生成摘要和10道判断题
// @Tags 教材
// @Accept json
// @Produce json
// @Param request body CreateMaterialRequest true "维基百科文章URL"
// @Success 201 {object} util.Response{data=model.LearningMaterial}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /api/materials [post]
func (c *MaterialController) CreateMaterial(ctx *gin.Context) {
	var req CreateMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	material, err := c.materialService.BuildMaterial(ctx.Request.Context(), req.WikipediaURL)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidURL):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrArticleNotFound):
			util.Fail(ctx, http.StatusNotFound, util.CodeArticleNotFound, "未找到对应的维基百科文章")
		case errors.Is(err, util.ErrGenerationFailed):
			util.Fail(ctx, http.StatusInternalServerError, util.CodeGenerationError, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, material)
}

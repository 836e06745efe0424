package controller

import (
	"e_learn_backend/internal/service"
	"e_learn_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type VocabularyController struct {
	VocabularyService *service.VocabularyService
}

func NewVocabularyController(vocabularyService *service.VocabularyService) *VocabularyController {
	return &VocabularyController{VocabularyService: vocabularyService}
}

// SubmitVocabulary godoc
// @Summary 提交生词本
// @Description 平行数组提交：words 与 translations 等长必填，definitions 可缺省
// @Tags 生词
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "内容ID"
// @Param   body body service.VocabularySubmission true "生词"
// @Success 201 {object} util.Response{data=[]model.VocabularyEntry}
// @Failure 400 {object} util.Response "数组为空或长度不一致"
// @Router /api/contents/{id}/vocabulary [post]
func (c *VocabularyController) SubmitVocabulary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	contentID, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid content id")
		return
	}

	var sub service.VocabularySubmission
	if err := ctx.ShouldBindJSON(&sub); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entries, err := c.VocabularyService.BuildSubmission(claims.UserID, contentID, sub)
	if err != nil {
		switch {
		case util.IsValidationError(err):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, entries)
}

// ListVocabulary godoc
// @Summary 某内容下用户已收集的生词
// @Tags 生词
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "内容ID"
// @Success 200 {object} util.Response{data=[]model.VocabularyEntry}
// @Router /api/contents/{id}/vocabulary [get]
func (c *VocabularyController) ListVocabulary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	contentID, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid content id")
		return
	}

	entries, err := c.VocabularyService.ListEntries(claims.UserID, contentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

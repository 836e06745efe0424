package controller

import (
	"e_learn_backend/internal/model"
	"e_learn_backend/internal/service"
	"e_learn_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// ListContents godoc
// @Summary 按等级与类型列出内容
// @Description 用户有阻塞中的内容时返回409，携带该内容的ID和标题供前端跳转
// @Tags 内容
// @Produce  json
// @Security ApiKeyAuth
// @Param   level query string true "内容等级"
// @Param   type query string true "story | grammar"
// @Success 200 {object} util.Response{data=[]model.Content}
// @Failure 400 {object} util.Response "等级不合法"
// @Failure 409 {object} util.Response "存在未完成的内容"
// @Router /api/contents [get]
func (c *ContentController) ListContents(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	level := model.Level(ctx.Query("level"))
	contentType := model.ContentType(ctx.Query("type"))

	contents, err := c.ContentService.ListAvailableContent(ctx.Request.Context(), claims.UserID, level, contentType)
	if err != nil {
		if blocked, ok := util.AsContentInProgress(err); ok {
			util.ContentInProgress(ctx, blocked)
		} else if errors.Is(err, util.ErrInvalidArgument) {
			util.BadRequest(ctx, "invalid level")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, contents)
}

// ResolveInProgress godoc
// @Summary 取回阻塞中的内容
// @Description 前端收到409后据此拿到继续学习的跳转数据
// @Tags 内容
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "内容ID"
// @Success 200 {object} util.Response{data=service.InProgressRedirect}
// @Failure 404 {object} util.Response
// @Router /api/contents/{id}/resume [get]
func (c *ContentController) ResolveInProgress(ctx *gin.Context) {
	contentID, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid content id")
		return
	}

	title := ctx.Query("title")
	redirect, err := c.ContentService.ResolveInProgressRedirect(&util.ContentInProgressError{
		ContentID:    contentID,
		ContentTitle: title,
	})
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, redirect)
}

// StartContent godoc
// @Summary 开始学习一条内容
// @Tags 内容
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "内容ID"
// @Success 201 {object} util.Response{data=model.UserContent}
// @Failure 404 {object} util.Response "内容不存在"
// @Failure 409 {object} util.Response "存在未完成的内容"
// @Router /api/contents/{id}/start [post]
func (c *ContentController) StartContent(ctx *gin.Context) {
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

	record, err := c.ContentService.StartContent(ctx.Request.Context(), claims.UserID, contentID)
	if err != nil {
		if blocked, ok := util.AsContentInProgress(err); ok {
			util.ContentInProgress(ctx, blocked)
		} else if errors.Is(err, util.ErrNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, record)
}

// FinishReading godoc
// @Summary 阅读完成，进入测验
// @Tags 内容
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "内容ID"
// @Success 200 {object} util.Response{data=model.UserContent}
// @Failure 409 {object} util.Response "进度状态不允许该迁移"
// @Router /api/contents/{id}/finish-reading [post]
func (c *ContentController) FinishReading(ctx *gin.Context) {
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

	record, err := c.ContentService.FinishReading(claims.UserID, contentID)
	if err != nil {
		c.renderProgressError(ctx, err)
		return
	}
	util.Success(ctx, record)
}

// GetTest godoc
// @Summary 获取内容测验题目
// @Tags 内容
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "内容ID"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Failure 409 {object} util.Response "尚未进入测验阶段"
// @Router /api/contents/{id}/test [get]
func (c *ContentController) GetTest(ctx *gin.Context) {
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

	questions, err := c.ContentService.GetTest(claims.UserID, contentID)
	if err != nil {
		c.renderProgressError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

type SubmitTestRequest struct {
	// 题目ID -> 选项ID
	Answers map[uint]uint `json:"answers" binding:"required"`
}

// SubmitTest godoc
// @Summary 提交测验答案
// @Description 判分、落定进度为已完成并释放阻塞
// @Tags 内容
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "内容ID"
// @Param   body body SubmitTestRequest true "答案"
// @Success 200 {object} util.Response{data=service.TestResult}
// @Router /api/contents/{id}/test [post]
func (c *ContentController) SubmitTest(ctx *gin.Context) {
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

	var req SubmitTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ContentService.SubmitTest(claims.UserID, contentID, req.Answers)
	if err != nil {
		c.renderProgressError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

type ContentCreateRequest struct {
	Title       string            `json:"title" binding:"required,max=255"`
	Body        string            `json:"body" binding:"required"`
	Level       model.Level       `json:"level" binding:"required"`
	ContentType model.ContentType `json:"contentType" binding:"required"`
}

// CreateContent godoc
// @Summary 新增内容（管理端）
// @Tags 内容管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ContentCreateRequest true "内容"
// @Success 201 {object} util.Response{data=model.Content}
// @Failure 403 {object} util.Response
// @Router /api/admin/contents [post]
func (c *ContentController) CreateContent(ctx *gin.Context) {
	var req ContentCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	content := &model.Content{
		Title:       req.Title,
		Body:        req.Body,
		Level:       req.Level,
		ContentType: req.ContentType,
	}
	if err := c.ContentService.CreateContent(ctx.Request.Context(), content); err != nil {
		if errors.Is(err, util.ErrInvalidArgument) {
			util.BadRequest(ctx, "invalid level")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, content)
}

// DeleteContent godoc
// @Summary 删除内容（管理端，软删除）
// @Tags 内容管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "内容ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/contents/{id} [delete]
func (c *ContentController) DeleteContent(ctx *gin.Context) {
	contentID, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid content id")
		return
	}

	if err := c.ContentService.DeleteContent(ctx.Request.Context(), contentID); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

func (c *ContentController) renderProgressError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrProgressTransition):
		util.Conflict(ctx, "progress state does not allow this operation")
	default:
		util.LogInternalError(ctx, err)
	}
}

func parseUintParam(ctx *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

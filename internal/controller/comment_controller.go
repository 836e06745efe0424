package controller

import (
	"e_learn_backend/internal/service"
	"e_learn_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	CommentService *service.CommentService
}

func NewCommentController(commentService *service.CommentService) *CommentController {
	return &CommentController{CommentService: commentService}
}

// ListComments godoc
// @Summary 内容下的评论列表
// @Tags 评论
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "内容ID"
// @Success 200 {object} util.Response{data=[]model.Comment}
// @Router /api/contents/{id}/comments [get]
func (c *CommentController) ListComments(ctx *gin.Context) {
	contentID, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid content id")
		return
	}

	comments, err := c.CommentService.ListComments(contentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, comments)
}

// AddComment godoc
// @Summary 发表评论
// @Description parentId 非空时作为回复挂在父评论下
// @Tags 评论
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "内容ID"
// @Param   body body service.CommentCreateRequest true "评论"
// @Success 201 {object} util.Response{data=model.Comment}
// @Failure 400 {object} util.Response "评论内容为空或父评论不属于该内容"
// @Router /api/contents/{id}/comments [post]
func (c *CommentController) AddComment(ctx *gin.Context) {
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

	var req service.CommentCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.CommentService.AddComment(claims.UserID, contentID, req)
	if err != nil {
		switch {
		case util.IsValidationError(err):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrInvalidArgument):
			util.BadRequest(ctx, "parent comment belongs to another content")
		case errors.Is(err, util.ErrNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, comment)
}

type CommentEditRequest struct {
	Body string `json:"body" binding:"required,max=1000"`
}

// EditComment godoc
// @Summary 编辑评论
// @Description 仅作者本人或管理员
// @Tags 评论
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   commentId path string true "评论ID"
// @Param   body body CommentEditRequest true "新内容"
// @Success 200 {object} util.Response{data=model.Comment}
// @Failure 403 {object} util.Response
// @Router /api/comments/{commentId} [put]
func (c *CommentController) EditComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CommentEditRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.CommentService.EditComment(claims.UserID, claims.Role, ctx.Param("commentId"), req.Body)
	if err != nil {
		c.renderCommentError(ctx, err)
		return
	}
	util.Success(ctx, comment)
}

// DeleteComment godoc
// @Summary 删除评论
// @Description 仅作者本人或管理员，软删除
// @Tags 评论
// @Produce  json
// @Security ApiKeyAuth
// @Param   commentId path string true "评论ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/comments/{commentId} [delete]
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CommentService.DeleteComment(claims.UserID, claims.Role, ctx.Param("commentId")); err != nil {
		c.renderCommentError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *CommentController) renderCommentError(ctx *gin.Context, err error) {
	switch {
	case util.IsValidationError(err):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

package service

import (
	"e_learn_backend/internal/model"
	"e_learn_backend/internal/repository"
	"e_learn_backend/internal/util"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type CommentService struct {
	CommentRepo *repository.CommentRepository
	ContentRepo *repository.ContentRepository
}

func NewCommentService(commentRepo *repository.CommentRepository, contentRepo *repository.ContentRepository) *CommentService {
	return &CommentService{
		CommentRepo: commentRepo,
		ContentRepo: contentRepo,
	}
}

type CommentCreateRequest struct {
	Body     string  `json:"body" binding:"required,max=1000"`
	ParentID *string `json:"parentId"`
}

// AddComment 在内容下新增评论；ParentID 非空时挂为子评论（弱引用，不校验父子层级深度）
func (s *CommentService) AddComment(userID, contentID uint, req CommentCreateRequest) (*model.Comment, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, util.NewValidationError("body", "must not be empty")
	}

	if _, err := s.ContentRepo.FindByID(contentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.CommentRepo.FindByID(*req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrNotFound
			}
			return nil, err
		}
		if parent.ContentID != contentID {
			return nil, util.ErrInvalidArgument
		}
	}

	comment := &model.Comment{
		ContentID: contentID,
		AuthorID:  userID,
		ParentID:  req.ParentID,
		Body:      body,
	}
	if err := s.CommentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// EditComment 仅作者本人或管理员可编辑
func (s *CommentService) EditComment(userID uint, role model.UserRole, commentID, body string) (*model.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, util.NewValidationError("body", "must not be empty")
	}

	comment, err := s.CommentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	if comment.AuthorID != userID && role != model.RoleAdmin {
		return nil, util.ErrPermissionDenied
	}

	comment.Body = body
	if err := s.CommentRepo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment 软删除自身，子评论不受影响
func (s *CommentService) DeleteComment(userID uint, role model.UserRole, commentID string) error {
	comment, err := s.CommentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotFound
		}
		return err
	}
	if comment.AuthorID != userID && role != model.RoleAdmin {
		return util.ErrPermissionDenied
	}
	return s.CommentRepo.SoftDelete(commentID)
}

// ListComments 返回内容下未删除的评论，没有评论时返回空切片而非 nil
func (s *CommentService) ListComments(contentID uint) ([]model.Comment, error) {
	comments, err := s.CommentRepo.FindByContent(contentID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	return comments, nil
}

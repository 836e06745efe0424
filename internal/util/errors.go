package util

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrDuplicateUser      = errors.New("用户名或邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserBlocked        = errors.New("account is blocked")
	ErrUserNotActivated   = errors.New("account is not activated")
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrTokenExpired       = errors.New("activation token expired")
	ErrTokenUsed          = errors.New("activation token already used")
	ErrProgressTransition = errors.New("progress cannot move backwards")
)

// ContentInProgressError 用户已有进行中的内容，阻止开始新内容。
// 标题和ID以结构化字段暴露，供上层直接取用渲染跳转，不做消息字符串拼接。
type ContentInProgressError struct {
	ContentID    uint
	ContentTitle string
}

func (e *ContentInProgressError) Error() string {
	return fmt.Sprintf("content %q (id=%d) is still in progress", e.ContentTitle, e.ContentID)
}

// AsContentInProgress 从错误链中取出 ContentInProgressError
func AsContentInProgress(err error) (*ContentInProgressError, bool) {
	var cipErr *ContentInProgressError
	if errors.As(err, &cipErr) {
		return cipErr, true
	}
	return nil, false
}

// ValidationError 提交字段校验失败
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

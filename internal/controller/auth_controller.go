package controller

import (
	"e_learn_backend/internal/service"
	"e_learn_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	UserService *service.UserService
}

func NewAuthController(authService *service.AuthService, userService *service.UserService) *AuthController {
	return &AuthController{
		AuthService: authService,
		UserService: userService,
	}
}

// RegisterRequest 注册请求
// swagger:model RegisterRequest
type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=64"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

// Register godoc
// @Summary 注册新用户
// @Description 本地注册，注册后发送激活邮件
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "用户注册信息"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "用户名或邮箱已被注册"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Register(&service.Registration{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, util.ErrDuplicateUser) {
			util.Conflict(ctx, "用户名或邮箱已被注册")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": user.ID, "username": user.Username})
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary 用户登录
// @Description 本地账号登录，OAuth账户无本地口令不可使用
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录信息"
// @Success 200 {object} util.Response{data=object} "登录成功"
// @Failure 401 {object} util.Response "凭据无效"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUserBlocked):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrUserNotActivated):
			util.Error(ctx, 403, "账户尚未激活，请查收激活邮件")
		case errors.Is(err, util.ErrInvalidCredentials):
			util.Error(ctx, 401, "invalid credentials")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"token": token, "user": user})
}

// Activate godoc
// @Summary 激活账户
// @Description 消费注册邮件中的一次性激活令牌
// @Tags 认证
// @Produce  json
// @Param   token query string true "激活令牌"
// @Success 200 {object} util.Response{data=object} "激活成功"
// @Failure 400 {object} util.Response "令牌已使用或已过期"
// @Failure 404 {object} util.Response "令牌不存在"
// @Router /api/auth/activate [get]
func (c *AuthController) Activate(ctx *gin.Context) {
	tokenValue := ctx.Query("token")
	if tokenValue == "" {
		util.BadRequest(ctx, "token is required")
		return
	}

	user, err := c.AuthService.Activate(tokenValue)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrTokenExpired):
			util.BadRequest(ctx, "激活令牌已过期")
		case errors.Is(err, util.ErrTokenUsed):
			util.BadRequest(ctx, "激活令牌已被使用")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"username": user.Username, "status": user.Status})
}

// GetProfile godoc
// @Summary 当前用户信息
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}

package controller

import (
	"e_learn_backend/internal/config"
	"e_learn_backend/internal/service"
	"e_learn_backend/internal/util"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

type OAuthController struct {
	OAuthService *service.OAuthService
	Cfg          *config.Config
}

func NewOAuthController(oauthService *service.OAuthService, cfg *config.Config) *OAuthController {
	return &OAuthController{
		OAuthService: oauthService,
		Cfg:          cfg,
	}
}

// ResolveFederated godoc
// @Summary 联邦身份落地
// @Description 接收已完成令牌交换的提供方 userinfo payload，创建或更新本地账户
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   provider path string true "google | facebook | linkedin"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "payload不合法"
// @Router /api/oauth/{provider}/resolve [post]
func (c *OAuthController) ResolveFederated(ctx *gin.Context) {
	provider := service.OAuthProvider(ctx.Param("provider"))
	switch provider {
	case service.ProviderGoogle, service.ProviderFacebook, service.ProviderLinkedIn:
	default:
		util.BadRequest(ctx, "unsupported provider")
		return
	}

	payload, err := io.ReadAll(ctx.Request.Body)
	if err != nil || len(payload) == 0 {
		util.BadRequest(ctx, "empty payload")
		return
	}

	user, err := c.OAuthService.ResolveFederatedUser(ctx.Request.Context(), provider, payload)
	if err != nil {
		if errors.Is(err, util.ErrInvalidArgument) {
			util.BadRequest(ctx, "payload missing subject")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	token, err := util.GenerateJWT(user, c.Cfg.JWT.Secret, c.Cfg.JWT.ExpireTime)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"token": token, "user": user})
}

package auth

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/2706msjk-ui/gilmo/config"
	"github.com/2706msjk-ui/gilmo/pkg/response"
	"github.com/2706msjk-ui/gilmo/pkg/utils"
)

// LoginRequest is the body for POST /admin/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Handler handles the admin login endpoint. The admin credential is a single
// deployment-time secret (ADMIN_USERNAME / ADMIN_PASSWORD_HASH); there is no
// user table.
type Handler struct {
	cfg    config.AdminConfig
	jwt    *JWTService
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(cfg config.AdminConfig, jwt *JWTService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{cfg: cfg, jwt: jwt, logger: logger}
}

// Login handles POST /admin/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if h.cfg.PasswordHash == "" {
		response.Unauthorized(c, "admin login disabled")
		return
	}
	if req.Username != h.cfg.Username || !utils.CheckPassword(req.Password, h.cfg.PasswordHash) {
		response.Unauthorized(c, "invalid credentials")
		return
	}

	token, err := h.jwt.Generate(req.Username)
	if err != nil {
		h.logger.Error("generate token failed", zap.Error(err))
		response.Internal(c, "failed to generate token")
		return
	}
	response.OK(c, gin.H{"token": token})
}

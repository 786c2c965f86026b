package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/blog-backend/internal/domain"
	"github.com/yungbote/blog-backend/internal/http/response"
	"github.com/yungbote/blog-backend/internal/platform/ctxutil"
	"github.com/yungbote/blog-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type authResponse struct {
	User *types.User `json:"user"`
	*services.TokenPair
}

// POST /api/auth/register
func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := bindJSON(c, "Auth.Register", &req); err != nil {
		response.RespondErr(c, err)
		return
	}
	user, tokens, err := ah.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, authResponse{User: user, TokenPair: tokens})
}

// POST /api/auth/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := bindJSON(c, "Auth.Login", &req); err != nil {
		response.RespondErr(c, err)
		return
	}
	user, tokens, err := ah.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, authResponse{User: user, TokenPair: tokens})
}

// POST /api/auth/refresh
func (ah *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := bindJSON(c, "Auth.Refresh", &req); err != nil {
		response.RespondErr(c, err)
		return
	}
	tokens, err := ah.authService.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, tokens)
}

// POST /api/auth/logout
func (ah *AuthHandler) Logout(c *gin.Context) {
	if err := ah.authService.Logout(c.Request.Context(), ctxutil.Caller(c.Request.Context())); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, response.Detail{Detail: "logged out"})
}

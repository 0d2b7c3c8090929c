package auth

import (
	"net/http"

	"whiskerwatch/internal/middleware"
	"whiskerwatch/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/validate", h.Validate)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/me", h.Me)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Refresh(c *gin.Context) {
	token, ok := tokenFrom(c)
	if !ok {
		return
	}

	resp, err := h.service.Refresh(c.Request.Context(), token)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Validate(c *gin.Context) {
	token, ok := tokenFrom(c)
	if !ok {
		return
	}

	resp, err := h.service.Validate(c.Request.Context(), token)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Me(c *gin.Context) {
	session := middleware.SessionFrom(c)
	if session == nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	me, err := h.service.Me(c.Request.Context(), session.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, me)
}

// tokenFrom reads the token from the Authorization header or, failing that,
// from a JSON body {"token": "..."}.
func tokenFrom(c *gin.Context) (string, bool) {
	if token, ok := middleware.BearerToken(c); ok {
		return token, true
	}

	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Token is required")
		return "", false
	}
	return req.Token, true
}

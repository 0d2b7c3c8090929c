package user

import (
	"net/http"

	"whiskerwatch/internal/middleware"
	"whiskerwatch/internal/pkg/params"
	"whiskerwatch/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts registration on public (which should carry
// OptionalJWTAuth so admins can create admins) and everything else on
// protected.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/users", h.CreateUser)

	users := protected.Group("/users")
	{
		users.GET("", h.GetUsers)
		users.GET("/active", h.GetActiveUsers)
		users.GET("/email/:email", h.GetUserByEmail)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", middleware.SelfOrAdmin("id"), h.UpdateUser)
		users.DELETE("/:id", middleware.SelfOrAdmin("id"), h.DeleteUser)
	}
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	u, err := h.service.CreateUser(c.Request.Context(), middleware.SessionFrom(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, ToResponse(u))
}

func (h *Handler) GetUsers(c *gin.Context) {
	active, err := params.QueryBool(c, "isActive")
	if err != nil {
		response.FromError(c, err)
		return
	}

	users, err := h.service.GetUsers(c.Request.Context(), Filter{
		Email:        c.Query("email"),
		CustomerType: c.Query("customerType"),
		IsActive:     active,
		Role:         c.Query("role"),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponses(users))
}

func (h *Handler) GetActiveUsers(c *gin.Context) {
	users, err := h.service.GetActiveUsers(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponses(users))
}

func (h *Handler) GetUserByEmail(c *gin.Context) {
	u, err := h.service.GetUserByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponse(u))
}

func (h *Handler) GetUser(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponse(u))
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	u, err := h.service.UpdateUser(c.Request.Context(), middleware.SessionFrom(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponse(u))
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	res, err := h.service.DeleteUser(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"deleted":         true,
		"userId":          id,
		"deletedBookings": res.Bookings,
		"deletedPets":     res.Pets,
	})
}

package admin

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

// RegisterRoutes expects admin to already carry JWTAuth and AdminOnly.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	// statistics
	admin.GET("/stats/overview", h.GetOverview)
	admin.GET("/stats/users", h.GetUserStats)
	admin.GET("/stats/pets", h.GetPetStats)
	admin.GET("/stats/bookings", h.GetBookingStats)

	// users moderation
	admin.PATCH("/users/:id/deactivate", h.DeactivateUser)
	admin.PATCH("/users/:id/activate", h.ActivateUser)
}

func (h *Handler) GetOverview(c *gin.Context) {
	stats, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) GetUserStats(c *gin.Context) {
	stats, err := h.service.UserStats(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) GetPetStats(c *gin.Context) {
	stats, err := h.service.PetStats(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) GetBookingStats(c *gin.Context) {
	stats, err := h.service.BookingStats(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) DeactivateUser(c *gin.Context) {
	h.setActive(c, false)
}

func (h *Handler) ActivateUser(c *gin.Context) {
	h.setActive(c, true)
}

func (h *Handler) setActive(c *gin.Context, active bool) {
	userID, err := params.ID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	var adminID int64
	if s := middleware.SessionFrom(c); s != nil {
		adminID = s.UserID
	}

	if active {
		err = h.service.ActivateUser(c.Request.Context(), adminID, userID)
	} else {
		if userID == adminID {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "You cannot deactivate your own account")
			return
		}
		err = h.service.DeactivateUser(c.Request.Context(), adminID, userID)
	}
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"userId": userID, "isActive": active})
}

package reference

import (
	"context"
	"net/http"

	"whiskerwatch/internal/domain"
	"whiskerwatch/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Repository lists the static lookup tables.
type Repository interface {
	Roles(ctx context.Context) ([]domain.Role, error)
	CustomerTypes(ctx context.Context) ([]domain.CustomerType, error)
	PetTypes(ctx context.Context) ([]domain.PetType, error)
	BookingStatuses(ctx context.Context) ([]domain.BookingStatus, error)
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/pet-types", list(h.repo.PetTypes))
	rg.GET("/roles", list(h.repo.Roles))
	rg.GET("/customer-types", list(h.repo.CustomerTypes))
	rg.GET("/booking-statuses", list(h.repo.BookingStatuses))
}

func list[T any](fetch func(context.Context) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := fetch(c.Request.Context())
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusOK, items)
	}
}

package pet

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	pets := rg.Group("/pets")
	{
		pets.GET("", h.GetPets)
		pets.GET("/active", h.GetActivePets)
		pets.GET("/owner/:ownerId", h.GetByOwner)
		pets.GET("/:id", h.GetPet)
		pets.POST("", h.CreatePet)
		pets.PUT("/:id", h.requireOwnerOrAdmin, h.UpdatePet)
		pets.DELETE("/:id", h.requireOwnerOrAdmin, h.DeletePet)
	}
}

func (h *Handler) requireOwnerOrAdmin(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.FromError(c, err)
		c.Abort()
		return
	}
	if err := h.service.CanModify(c.Request.Context(), middleware.SessionFrom(c), id); err != nil {
		response.FromError(c, err)
		c.Abort()
		return
	}
	c.Next()
}

func (h *Handler) GetPets(c *gin.Context) {
	ownerID, err := params.QueryInt64(c, "ownerId")
	if err != nil {
		response.FromError(c, err)
		return
	}
	active, err := params.QueryBool(c, "isActive")
	if err != nil {
		response.FromError(c, err)
		return
	}

	list, err := h.service.GetPets(c.Request.Context(), Filter{
		OwnerID:  ownerID,
		PetType:  c.Query("petType"),
		IsActive: active,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponses(list))
}

func (h *Handler) GetByOwner(c *gin.Context) {
	ownerID, err := params.ID(c, "ownerId")
	if err != nil {
		response.FromError(c, err)
		return
	}

	list, err := h.service.GetPetsByOwner(c.Request.Context(), ownerID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponses(list))
}

func (h *Handler) GetActivePets(c *gin.Context) {
	list, err := h.service.GetActivePets(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponses(list))
}

func (h *Handler) GetPet(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	v, err := h.service.GetPet(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponse(*v))
}

func (h *Handler) CreatePet(c *gin.Context) {
	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	v, err := h.service.CreatePet(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, ToResponse(*v))
}

func (h *Handler) UpdatePet(c *gin.Context) {
	id, _ := params.ID(c, "id")

	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	v, err := h.service.UpdatePet(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponse(*v))
}

func (h *Handler) DeletePet(c *gin.Context) {
	id, _ := params.ID(c, "id")

	res, err := h.service.DeletePet(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"deleted":         true,
		"petId":           id,
		"deletedBookings": res.Bookings,
	})
}

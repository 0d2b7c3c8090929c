package booking

import (
	"context"
	"net/http"

	"whiskerwatch/internal/domain"
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
	bookings := rg.Group("/bookings")
	{
		bookings.GET("", h.GetBookings)
		bookings.GET("/upcoming", h.GetUpcoming)
		bookings.GET("/date-range", h.GetByDateRange)
		bookings.GET("/availability/:sitterId", h.CheckAvailability)
		bookings.GET("/owner/:ownerId", h.GetByOwner)
		bookings.GET("/sitter/:sitterId", h.GetBySitter)
		bookings.GET("/pet/:petId", h.GetByPet)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("", h.CreateBooking)
		bookings.PUT("/:id", h.UpdateBooking)
		bookings.PATCH("/:id/status", h.UpdateStatus)
		bookings.DELETE("/:id", h.DeleteBooking)
	}
}

func (h *Handler) GetBookings(c *gin.Context) {
	var f Filter
	var err error

	if f.OwnerID, err = params.QueryInt64(c, "ownerId"); err != nil {
		response.FromError(c, err)
		return
	}
	if f.SitterID, err = params.QueryInt64(c, "sitterId"); err != nil {
		response.FromError(c, err)
		return
	}
	if f.PetID, err = params.QueryInt64(c, "petId"); err != nil {
		response.FromError(c, err)
		return
	}
	f.Status = c.Query("status")
	f.BookingDate = c.Query("bookingDate")

	list, err := h.service.GetBookings(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponses(list))
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponse(b))
}

func (h *Handler) GetByOwner(c *gin.Context) {
	h.listBy(c, "ownerId", h.service.GetBookingsByOwner)
}

func (h *Handler) GetBySitter(c *gin.Context) {
	h.listBy(c, "sitterId", h.service.GetBookingsBySitter)
}

func (h *Handler) GetByPet(c *gin.Context) {
	h.listBy(c, "petId", h.service.GetBookingsByPet)
}

func (h *Handler) listBy(c *gin.Context, param string, fetch func(ctx context.Context, id int64) ([]domain.Booking, error)) {
	id, err := params.ID(c, param)
	if err != nil {
		response.FromError(c, err)
		return
	}

	list, err := fetch(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponses(list))
}

func (h *Handler) GetUpcoming(c *gin.Context) {
	userID, err := params.QueryInt64(c, "userId")
	if err != nil {
		response.FromError(c, err)
		return
	}
	if userID == nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "userId is required")
		return
	}

	list, err := h.service.GetUpcoming(c.Request.Context(), *userID, c.Query("userType"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponses(list))
}

func (h *Handler) GetByDateRange(c *gin.Context) {
	list, err := h.service.GetBookingsByDateRange(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponses(list))
}

// CheckAvailability answers with data true when the sitter is free for the
// whole requested range.
func (h *Handler) CheckAvailability(c *gin.Context) {
	sitterID, err := params.ID(c, "sitterId")
	if err != nil {
		response.FromError(c, err)
		return
	}

	date, err := domain.ParseDate(c.Query("date"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	slot, err := domain.NewTimeRange(c.Query("startTime"), c.Query("endTime"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	ok, err := h.service.IsTimeSlotAvailable(c.Request.Context(), sitterID, date, slot)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ok)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, ToResponse(b))
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	b, err := h.service.UpdateBooking(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponse(b))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	statusID, err := params.QueryInt64(c, "statusId")
	if err != nil {
		response.FromError(c, err)
		return
	}
	if statusID == nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "statusId is required")
		return
	}

	b, err := h.service.UpdateBookingStatus(c.Request.Context(), id, *statusID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponse(b))
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true, "bookingId": id})
}

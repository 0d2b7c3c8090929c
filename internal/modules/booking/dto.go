package booking

import (
	"time"

	"whiskerwatch/internal/domain"
)

// BookingRequest is the body of create and update calls. Dates use
// 2006-01-02 and times 15:04.
type BookingRequest struct {
	BookingDate     string   `json:"bookingDate" binding:"required"`
	StartTime       string   `json:"startTime" binding:"required"`
	EndTime         string   `json:"endTime" binding:"required"`
	StatusID        *int64   `json:"statusId"`
	TotalCost       *float64 `json:"totalCost" binding:"omitempty,gte=0"`
	SpecialRequests string   `json:"specialRequests" binding:"max=2000"`
	PetID           int64    `json:"petId" binding:"required"`
	OwnerID         int64    `json:"ownerId" binding:"required"`
	SitterID        *int64   `json:"sitterId"`
}

// Filter selects bookings by the first populated field, in declaration order.
type Filter struct {
	OwnerID     *int64
	SitterID    *int64
	PetID       *int64
	Status      string
	BookingDate string
}

type BookingResponse struct {
	BookingID       int64     `json:"bookingId"`
	BookingDate     string    `json:"bookingDate"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	StatusName      string    `json:"statusName"`
	TotalCost       *float64  `json:"totalCost,omitempty"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	PetID           int64     `json:"petId"`
	PetName         string    `json:"petName,omitempty"`
	PetTypeName     string    `json:"petTypeName,omitempty"`
	OwnerID         int64     `json:"ownerId"`
	OwnerName       string    `json:"ownerName,omitempty"`
	OwnerEmail      string    `json:"ownerEmail,omitempty"`
	SitterID        *int64    `json:"sitterId,omitempty"`
	SitterName      string    `json:"sitterName,omitempty"`
	SitterEmail     string    `json:"sitterEmail,omitempty"`
}

func ToResponse(b *domain.Booking) BookingResponse {
	out := BookingResponse{
		BookingID:       b.ID,
		BookingDate:     domain.FormatDate(b.BookingDate),
		StartTime:       domain.FormatClock(b.StartTime),
		EndTime:         domain.FormatClock(b.EndTime),
		StatusName:      b.StatusName(),
		TotalCost:       b.TotalCost,
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		PetID:           b.PetID,
		OwnerID:         b.OwnerID,
		SitterID:        b.SitterID,
	}
	if b.Pet != nil {
		out.PetName = b.Pet.Name
		out.PetTypeName = b.Pet.TypeName()
	}
	if b.Owner != nil {
		out.OwnerName = b.Owner.FullName()
		out.OwnerEmail = b.Owner.Email
	}
	if b.Sitter != nil {
		out.SitterName = b.Sitter.FullName()
		out.SitterEmail = b.Sitter.Email
	}
	return out
}

func ToResponses(list []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(list))
	for i := range list {
		out = append(out, ToResponse(&list[i]))
	}
	return out
}

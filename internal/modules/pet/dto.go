package pet

import (
	"time"

	"whiskerwatch/internal/domain"
)

type PetRequest struct {
	Name                string   `json:"name" binding:"required,max=100"`
	Age                 *int     `json:"age" binding:"omitempty,gte=0,lte=100"`
	Breed               string   `json:"breed" binding:"max=100"`
	Weight              *float64 `json:"weight" binding:"omitempty,gt=0,lt=1000"`
	SpecialInstructions string   `json:"specialInstructions"`
	IsActive            *bool    `json:"isActive"`
	OwnerID             int64    `json:"ownerId" binding:"required"`
	TypeID              int64    `json:"typeId" binding:"required"`
}

// Filter selects pets by the first populated field, in declaration order.
type Filter struct {
	OwnerID  *int64
	PetType  string
	IsActive *bool
}

type PetResponse struct {
	PetID               int64     `json:"petId"`
	Name                string    `json:"name"`
	Age                 *int      `json:"age,omitempty"`
	Breed               string    `json:"breed,omitempty"`
	Weight              *float64  `json:"weight,omitempty"`
	SpecialInstructions string    `json:"specialInstructions,omitempty"`
	IsActive            bool      `json:"isActive"`
	OwnerID             int64     `json:"ownerId"`
	OwnerName           string    `json:"ownerName,omitempty"`
	TypeID              int64     `json:"typeId"`
	TypeName            string    `json:"typeName,omitempty"`
	BookingsCount       int64     `json:"bookingsCount"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// PetView is a pet plus the number of bookings that reference it.
type PetView struct {
	*domain.Pet
	BookingsCount int64
}

func ToResponse(v PetView) PetResponse {
	resp := PetResponse{
		PetID:               v.ID,
		Name:                v.Name,
		Age:                 v.Age,
		Breed:               v.Breed,
		Weight:              v.Weight,
		SpecialInstructions: v.SpecialInstructions,
		IsActive:            v.IsActive,
		OwnerID:             v.OwnerID,
		TypeID:              v.TypeID,
		TypeName:            v.TypeName(),
		BookingsCount:       v.BookingsCount,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
	}
	if v.Owner != nil {
		resp.OwnerName = v.Owner.FullName()
	}
	return resp
}

func ToResponses(views []PetView) []PetResponse {
	out := make([]PetResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ToResponse(v))
	}
	return out
}

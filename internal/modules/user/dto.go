package user

import (
	"time"

	"whiskerwatch/internal/domain"
)

type CreateUserRequest struct {
	Username       string `json:"username" binding:"required,min=3,max=50"`
	Email          string `json:"email" binding:"required,email,max=100"`
	Password       string `json:"password" binding:"required,min=6,max=72"`
	RoleID         *int64 `json:"roleId"`
	CustomerTypeID *int64 `json:"customerTypeId"`
	FirstName      string `json:"firstName" binding:"required,max=255"`
	LastName       string `json:"lastName" binding:"required,max=255"`
	PhoneNumber    string `json:"phoneNumber" binding:"required,max=20"`
	Address        string `json:"address" binding:"required"`
}

// UpdateUserRequest replaces the profile. A blank password keeps the current
// one; a nil roleId keeps the current role; a nil isActive keeps the flag.
type UpdateUserRequest struct {
	Username       string `json:"username" binding:"required,min=3,max=50"`
	Email          string `json:"email" binding:"required,email,max=100"`
	Password       string `json:"password" binding:"omitempty,min=6,max=72"`
	RoleID         *int64 `json:"roleId"`
	CustomerTypeID *int64 `json:"customerTypeId"`
	FirstName      string `json:"firstName" binding:"required,max=255"`
	LastName       string `json:"lastName" binding:"required,max=255"`
	PhoneNumber    string `json:"phoneNumber" binding:"required,max=20"`
	Address        string `json:"address" binding:"required"`
	IsActive       *bool  `json:"isActive"`
}

// Filter selects users by the first populated field, in declaration order.
type Filter struct {
	Email        string
	CustomerType string
	IsActive     *bool
	Role         string
}

type UserResponse struct {
	UserID              int64     `json:"userId"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	RoleName            string    `json:"roleName"`
	CustomerTypeName    string    `json:"customerTypeName,omitempty"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	PhoneNumber         string    `json:"phoneNumber"`
	Address             string    `json:"address,omitempty"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
	OwnedPetsCount      int64     `json:"ownedPetsCount"`
	OwnerBookingsCount  int64     `json:"ownerBookingsCount"`
	SitterBookingsCount int64     `json:"sitterBookingsCount"`
}

func ToResponse(u *domain.User) UserResponse {
	out := UserResponse{
		UserID:           u.ID,
		Username:         u.Username,
		Email:            u.Email,
		RoleName:         u.RoleName(),
		CustomerTypeName: u.CustomerTypeName(),
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		PhoneNumber:      u.PhoneNumber,
		Address:          u.Address,
		IsActive:         u.IsActive,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
	if u.Activity != nil {
		out.OwnedPetsCount = u.Activity.OwnedPets
		out.OwnerBookingsCount = u.Activity.OwnerBookings
		out.SitterBookingsCount = u.Activity.SitterBookings
	}
	return out
}

func ToResponses(list []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for i := range list {
		out = append(out, ToResponse(&list[i]))
	}
	return out
}

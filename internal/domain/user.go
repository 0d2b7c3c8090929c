package domain

import "time"

type User struct {
	ID             int64         `json:"id" gorm:"primaryKey"`
	Username       string        `json:"username" gorm:"column:username;size:50;uniqueIndex;not null"`
	Email          string        `json:"email" gorm:"column:email;size:100;uniqueIndex;not null"`
	PasswordHash   string        `json:"-" gorm:"column:password_hash;size:255;not null"`
	RoleID         int64         `json:"roleId" gorm:"column:role_id;not null;index"`
	Role           *Role         `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	CustomerTypeID *int64        `json:"customerTypeId,omitempty" gorm:"column:customer_type_id;index"`
	CustomerType   *CustomerType `json:"customerType,omitempty" gorm:"foreignKey:CustomerTypeID"`
	FirstName      string        `json:"firstName" gorm:"column:first_name;size:255;not null"`
	LastName       string        `json:"lastName" gorm:"column:last_name;size:255;not null"`
	PhoneNumber    string        `json:"phoneNumber" gorm:"column:phone_number;size:20;uniqueIndex;not null"`
	Address        string        `json:"address" gorm:"column:address;type:text;not null"`
	IsActive       bool          `json:"isActive" gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`

	// Filled by read paths that shape a user response; never persisted.
	Activity *UserActivity `json:"-" gorm:"-"`
}

func (User) TableName() string { return "users" }

// RoleName returns the loaded role name or "" when the association is not loaded.
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.RoleName
}

func (u *User) CustomerTypeName() string {
	if u.CustomerType == nil {
		return ""
	}
	return u.CustomerType.TypeName
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserActivity counts the rows that reference a user.
type UserActivity struct {
	OwnedPets      int64 `json:"ownedPetsCount"`
	OwnerBookings  int64 `json:"ownerBookingsCount"`
	SitterBookings int64 `json:"sitterBookingsCount"`
}

// Session is the authenticated principal attached to a request. Role and
// customer type are plain names resolved by a join at login time.
type Session struct {
	UserID       int64  `json:"userId"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	CustomerType string `json:"customerType,omitempty"`
	IsActive     bool   `json:"-"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

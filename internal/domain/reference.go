package domain

// Role names.
const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

// Customer type names.
const (
	CustomerOwner  = "OWNER"
	CustomerSitter = "SITTER"
	CustomerBoth   = "BOTH"
)

// Booking status names.
const (
	StatusPending    = "PENDING"
	StatusConfirmed  = "CONFIRMED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
	StatusRejected   = "REJECTED"
)

var (
	DefaultRoles           = []string{RoleCustomer, RoleAdmin}
	DefaultCustomerTypes   = []string{CustomerOwner, CustomerSitter, CustomerBoth}
	DefaultPetTypes        = []string{"DOG", "CAT", "BIRD", "RABBIT", "FISH", "REPTILE", "OTHER"}
	DefaultBookingStatuses = []string{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusRejected}
)

type Role struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	RoleName string `json:"roleName" gorm:"column:role_name;size:50;uniqueIndex;not null"`
}

func (Role) TableName() string { return "roles" }

type CustomerType struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	TypeName string `json:"typeName" gorm:"column:type_name;size:50;uniqueIndex;not null"`
}

func (CustomerType) TableName() string { return "customer_types" }

type PetType struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	TypeName string `json:"typeName" gorm:"column:type_name;size:50;uniqueIndex;not null"`
}

func (PetType) TableName() string { return "pet_types" }

type BookingStatus struct {
	ID         int64  `json:"id" gorm:"primaryKey"`
	StatusName string `json:"statusName" gorm:"column:status_name;size:50;uniqueIndex;not null"`
}

func (BookingStatus) TableName() string { return "booking_statuses" }

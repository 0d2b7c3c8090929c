package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Booking struct {
	ID              int64          `json:"id" gorm:"primaryKey"`
	BookingDate     datatypes.Date `json:"bookingDate" gorm:"column:booking_date;not null;index:idx_bookings_sitter_date,priority:2"`
	StartTime       datatypes.Time `json:"startTime" gorm:"column:start_time;not null"`
	EndTime         datatypes.Time `json:"endTime" gorm:"column:end_time;not null"`
	StatusID        int64          `json:"statusId" gorm:"column:status_id;not null;index"`
	Status          *BookingStatus `json:"status,omitempty" gorm:"foreignKey:StatusID"`
	TotalCost       *float64       `json:"totalCost,omitempty" gorm:"column:total_cost;type:decimal(10,2)"`
	SpecialRequests string         `json:"specialRequests,omitempty" gorm:"column:special_requests;type:text"`
	PetID           int64          `json:"petId" gorm:"column:pet_id;not null;index"`
	Pet             *Pet           `json:"pet,omitempty" gorm:"foreignKey:PetID;constraint:OnDelete:RESTRICT"`
	OwnerID         int64          `json:"ownerId" gorm:"column:owner_id;not null;index"`
	Owner           *User          `json:"owner,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT"`
	SitterID        *int64         `json:"sitterId,omitempty" gorm:"column:sitter_id;index:idx_bookings_sitter_date,priority:1"`
	Sitter          *User          `json:"sitter,omitempty" gorm:"foreignKey:SitterID;constraint:OnDelete:RESTRICT"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func (Booking) TableName() string { return "bookings" }

func (b *Booking) Slot() TimeRange {
	return TimeRange{Start: b.StartTime, End: b.EndTime}
}

func (b *Booking) StatusName() string {
	if b.Status == nil {
		return ""
	}
	return b.Status.StatusName
}

// Participants returns the ids of the users a booking concerns: the owner and,
// when assigned, the sitter.
func (b *Booking) Participants() []int64 {
	ids := []int64{b.OwnerID}
	if b.SitterID != nil && *b.SitterID != b.OwnerID {
		ids = append(ids, *b.SitterID)
	}
	return ids
}

// ClearRelations drops loaded associations so a save writes only the foreign keys.
func (b *Booking) ClearRelations() {
	b.Status = nil
	b.Pet = nil
	b.Owner = nil
	b.Sitter = nil
}

// Booking event types published after successful writes.
const (
	EventBookingCreated       = "booking_created"
	EventBookingUpdated       = "booking_updated"
	EventBookingStatusChanged = "booking_status_changed"
	EventBookingDeleted       = "booking_deleted"
)

type BookingEvent struct {
	Type        string    `json:"type"`
	BookingID   int64     `json:"bookingId"`
	PetID       int64     `json:"petId"`
	OwnerID     int64     `json:"ownerId"`
	SitterID    *int64    `json:"sitterId,omitempty"`
	BookingDate string    `json:"bookingDate"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Status      string    `json:"status,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

func NewBookingEvent(eventType string, b *Booking) BookingEvent {
	return BookingEvent{
		Type:        eventType,
		BookingID:   b.ID,
		PetID:       b.PetID,
		OwnerID:     b.OwnerID,
		SitterID:    b.SitterID,
		BookingDate: FormatDate(b.BookingDate),
		StartTime:   FormatClock(b.StartTime),
		EndTime:     FormatClock(b.EndTime),
		Status:      b.StatusName(),
		OccurredAt:  time.Now().UTC(),
	}
}

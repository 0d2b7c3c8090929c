package domain

import "time"

type Pet struct {
	ID                  int64     `json:"id" gorm:"primaryKey"`
	Name                string    `json:"name" gorm:"column:name;size:100;not null"`
	Age                 *int      `json:"age,omitempty" gorm:"column:age"`
	Breed               string    `json:"breed,omitempty" gorm:"column:breed;size:100"`
	Weight              *float64  `json:"weight,omitempty" gorm:"column:weight;type:decimal(5,2)"`
	SpecialInstructions string    `json:"specialInstructions,omitempty" gorm:"column:special_instructions;type:text"`
	IsActive            bool      `json:"isActive" gorm:"column:is_active;not null;default:true"`
	OwnerID             int64     `json:"ownerId" gorm:"column:owner_id;not null;index"`
	Owner               *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT"`
	TypeID              int64     `json:"typeId" gorm:"column:type_id;not null;index"`
	Type                *PetType  `json:"type,omitempty" gorm:"foreignKey:TypeID"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func (Pet) TableName() string { return "pets" }

func (p *Pet) TypeName() string {
	if p.Type == nil {
		return ""
	}
	return p.Type.TypeName
}

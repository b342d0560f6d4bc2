package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// BreakTime is a recurring daily pause, both ends as HH:mm.
type BreakTime struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Barber struct {
	ID        string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string  `gorm:"size:100;not null" json:"name"`
	AvatarURL *string `gorm:"size:512" json:"avatar_url"`

	WorkStartTime string        `gorm:"size:8;not null" json:"work_start_time"`
	WorkEndTime   string        `gorm:"size:8;not null" json:"work_end_time"`
	WorkDays      pq.Int64Array `gorm:"type:integer[]" json:"work_days"`
	SlotDuration  int           `gorm:"default:45" json:"slot_duration"`
	Breaks        []BreakTime   `gorm:"type:jsonb;serializer:json" json:"breaks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Barber) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

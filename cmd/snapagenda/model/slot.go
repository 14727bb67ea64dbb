package model

import "time"

// Slot is one named blob in the durable store. The whole serialized event
// collection lives in a single row and is rewritten on every mutation.
type Slot struct {
	Name       string    `gorm:"column:name;primaryKey" json:"name"`
	Payload    string    `gorm:"column:payload" json:"payload"`
	UpdateDate time.Time `gorm:"column:update_date" json:"update_date"`
}

func (m *Slot) TableName() string {
	return "slots"
}

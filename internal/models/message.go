package models

import "time"

// Message stores every ingested chat text with its content hash. The unique
// index on the hash is what powers duplicate detection at intake.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SHA256    string    `gorm:"size:64;uniqueIndex;not null" json:"sha256"`
	Raw       string    `gorm:"type:text;not null" json:"raw"`
	CreatedAt time.Time `json:"created_at"`
}

func (Message) TableName() string { return "messages" }

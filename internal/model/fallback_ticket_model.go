package model

import (
	"time"

	"github.com/google/uuid"
)

type FallbackTicket struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId  string    `gorm:"type:varchar(64);index"`
	SessionId       string    `gorm:"type:varchar(128);not null;index"`
	UserQuery       string    `gorm:"type:text;not null"`
	AiResponse      string    `gorm:"type:text"`
	ConfidenceScore float64   `gorm:"not null;default:0"`
	Reason          string    `gorm:"type:varchar(255);not null"`
	Priority        string    `gorm:"type:varchar(20);not null;default:'medium'"`
	Status          string    `gorm:"type:varchar(20);not null;default:'open';index"`
	SlaDeadline     time.Time `gorm:"not null;index"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (FallbackTicket) TableName() string {
	return "fallback_tickets"
}

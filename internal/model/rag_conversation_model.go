package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RagConversation struct {
	Id                 uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId          string                      `gorm:"type:varchar(128);not null;index"`
	UserId             string                      `gorm:"type:varchar(64);index"`
	UserRole           string                      `gorm:"type:varchar(50);not null"`
	CompanyId          string                      `gorm:"type:varchar(64);index"`
	MessageIndex       int                         `gorm:"not null"`
	Role               string                      `gorm:"type:varchar(20);not null"`
	Content            string                      `gorm:"type:text;not null"`
	RetrievedSourceIds datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	RetrievalScore     float64                     `gorm:"not null;default:0"`
	ConfidenceLevel    string                      `gorm:"type:varchar(10);not null"`
	RequiresHuman      bool                        `gorm:"not null;default:false"`
	CreatedAt          time.Time                   `gorm:"autoCreateTime;index"`
}

func (RagConversation) TableName() string {
	return "rag_conversations"
}

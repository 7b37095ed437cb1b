package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLog struct {
	Id                   uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId       string                      `gorm:"type:varchar(64);index"`
	UserId               string                      `gorm:"type:varchar(64);index"`
	ActionType           string                      `gorm:"type:varchar(50);not null;index"`
	ActionDescription    string                      `gorm:"type:text"`
	DataAccessed         datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	PermissionsChecked   datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	PermissionGranted    bool                        `gorm:"not null"`
	SensitiveDataExposed bool                        `gorm:"not null;default:false;index"`
	CreatedAt            time.Time                   `gorm:"default:now();not null;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

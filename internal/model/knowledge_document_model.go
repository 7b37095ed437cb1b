package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type KnowledgeDocument struct {
	Id            uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title         string                      `gorm:"type:varchar(255);not null"`
	SourceType    string                      `gorm:"type:varchar(30);not null;index"`
	Sensitivity   string                      `gorm:"type:varchar(30);not null;default:'internal';index"`
	Category      string                      `gorm:"type:varchar(100);index"`
	Content       string                      `gorm:"type:text;not null"`
	Version       string                      `gorm:"type:varchar(30);not null;default:'1.0'"`
	IsActive      bool                        `gorm:"not null;default:true;index"`
	RequiredRoles datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CompanyId     string                      `gorm:"type:varchar(64);index"`
	CreatedAt     time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt     time.Time                   `gorm:"autoUpdateTime"`
}

func (KnowledgeDocument) TableName() string {
	return "knowledge_documents"
}

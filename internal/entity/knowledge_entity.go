package entity

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeDocument struct {
	Id            uuid.UUID
	Title         string
	SourceType    string
	Sensitivity   string
	Category      string
	Content       string
	Version       string
	IsActive      bool
	RequiredRoles []string
	CompanyId     string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

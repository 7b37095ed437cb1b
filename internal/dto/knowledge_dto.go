package dto

import "github.com/google/uuid"

type IngestDocumentRequest struct {
	Title         string   `json:"title" validate:"required,max=255"`
	SourceType    string   `json:"source_type" validate:"required,oneof=public internal confidential restricted"`
	Sensitivity   string   `json:"sensitivity" validate:"omitempty,oneof=public internal confidential restricted"`
	Category      string   `json:"category" validate:"omitempty,max=100"`
	Content       string   `json:"content" validate:"required"`
	Version       string   `json:"version" validate:"omitempty,max=30"`
	RequiredRoles []string `json:"required_roles"`
	CompanyId     string   `json:"company_id"`
}

type IngestDocumentResponse struct {
	Id      uuid.UUID `json:"id"`
	Version string    `json:"version"`
}

type DeactivateDocumentResponse struct {
	Id       uuid.UUID `json:"id"`
	IsActive bool      `json:"is_active"`
}

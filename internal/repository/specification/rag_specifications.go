package specification

import (
	"time"

	"knowledge-assistant-be/internal/constant"

	"gorm.io/gorm"
)

type BySessionID struct {
	SessionID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// SLABreachedAt keeps pending tickets whose deadline has passed at the given instant
type SLABreachedAt struct {
	At time.Time
}

func (s SLABreachedAt) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sla_deadline < ? AND status IN ?", s.At, PendingTicketStatuses)
}

// PendingTicketStatuses are the statuses still waiting on a human
var PendingTicketStatuses = []string{constant.TicketStatusOpen, constant.TicketStatusInProgress}

type SensitiveOnly struct{}

func (s SensitiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sensitive_data_exposed = ?", true)
}

type ByUserID struct {
	UserID string
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

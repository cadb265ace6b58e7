package models

import "time"

type AuditAction string

const (
	AuditActionCreate     AuditAction = "create"
	AuditActionUpdate     AuditAction = "update"
	AuditActionDelete     AuditAction = "delete"
	AuditActionBulkUpdate AuditAction = "bulk_update"
	AuditActionBulkDelete AuditAction = "bulk_delete"
	AuditActionToggle     AuditAction = "toggle"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	UserID   uint   `json:"userId"`
	Username string `gorm:"size:100" json:"username"`

	// "category", "menu_item", "special_offer"
	EntityType string `gorm:"size:50;index" json:"entityType"`
	// zero for bulk operations, the ids are in AfterData
	EntityID uint `gorm:"index" json:"entityId"`

	Action      AuditAction `gorm:"size:20" json:"action"`
	Description string      `gorm:"size:255" json:"description"`

	BeforeData string `gorm:"type:text" json:"before"`
	AfterData  string `gorm:"type:text" json:"after"`
}

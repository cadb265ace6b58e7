package audit

import (
	"encoding/json"
	"fmt"
	"log"

	"cordonbleu-backend/internal/database"
	"cordonbleu-backend/internal/models"
)

type LogOptions struct {
	UserID      uint
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	// username is denormalized so the trail survives user deletion
	var username string
	if opts.UserID != 0 {
		var user models.User
		if err := database.DB.Select("username").First(&user, opts.UserID).Error; err == nil {
			username = user.Username
		}
	}

	entry := models.AuditLog{
		UserID:      opts.UserID,
		Username:    username,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("audit log could not be saved: %w", err)
	}
	return nil
}

// Record writes the entry and only logs a failure. A missing audit row never
// fails the mutation it describes.
func Record(opts LogOptions) {
	if err := WriteLog(opts); err != nil {
		log.Printf("audit: %s %s #%d: %v", opts.Action, opts.EntityType, opts.EntityID, err)
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UploadedFile records a document stored in object storage for a conversation.
// Key is the object-store path; the bytes themselves live in MinIO.
type UploadedFile struct {
	ID             string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	ConversationID string    `json:"conversation_id" gorm:"type:varchar(32);index;not null"`
	UserID         string    `json:"user_id" gorm:"type:varchar(64);index"`
	Name           string    `json:"name" gorm:"type:varchar(255);not null"`
	Key            string    `json:"key" gorm:"type:varchar(512);not null"`
	Size           int64     `json:"size"`
	ContentType    string    `json:"content_type" gorm:"type:varchar(128)"`
	CreatedAt      time.Time `json:"created_at"`
}

func (f *UploadedFile) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

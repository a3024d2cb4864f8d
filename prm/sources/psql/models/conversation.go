package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation ids are uuid hex without dashes (32 chars), the same shape the
// SPA stores in its session.
type Conversation struct {
	ID        string    `json:"id" gorm:"type:varchar(32);primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:varchar(64);index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

func ValidRole(role string) bool {
	return role == RoleSystem || role == RoleUser || role == RoleAssistant
}

type Message struct {
	ID             uuid.UUID `json:"id" gorm:"type:varchar(36);primaryKey"`
	ConversationID string    `json:"conversation_id" gorm:"type:varchar(32);index;not null"`
	Role           string    `json:"role" gorm:"type:varchar(50);not null"`
	Content        string    `json:"content" gorm:"type:text;not null"`
	Ts             time.Time `json:"ts" gorm:"not null"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Ts.IsZero() {
		m.Ts = time.Now().UTC()
	}
	return nil
}

// NewConversationID returns a fresh uuid in hex form, no dashes.
func NewConversationID() string {
	u := uuid.New()
	return hexNoDashes(u)
}

func hexNoDashes(u uuid.UUID) string {
	s := u.String()
	out := make([]byte, 0, 32)
	for i := 0; i < len(s); i++ {
		if s[i] != '-' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

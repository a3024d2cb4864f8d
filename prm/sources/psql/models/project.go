package models

import "time"

type Project struct {
	ProjectID      string     `json:"project_id" gorm:"type:varchar(64);primaryKey"`
	Name           string     `json:"name" gorm:"type:varchar(255);not null"`
	Summary        *string    `json:"summary,omitempty" gorm:"type:text"`
	RequiredSkills []string   `json:"required_skills" gorm:"serializer:json;type:text"`
	StaffingMix    *string    `json:"staffing_mix,omitempty" gorm:"type:varchar(255)"`
	StartDate      *time.Time `json:"start_date,omitempty" gorm:"type:date"`
	EndDate        *time.Time `json:"end_date,omitempty" gorm:"type:date"`
	Milestones     *string    `json:"milestones,omitempty" gorm:"type:text"`
	RequiredRoles  *string    `json:"required_roles,omitempty" gorm:"type:varchar(255)"`
	Priority       *Priority  `json:"priority,omitempty" gorm:"type:varchar(16)"`
	BudgetINR      *int       `json:"budget_inr,omitempty"`
	Compliance     *string    `json:"compliance,omitempty" gorm:"type:varchar(255)"`
	ConversationID string     `json:"conversation_id" gorm:"type:varchar(32);index"`
	UserID         string     `json:"user_id" gorm:"type:varchar(64);index"`
}

package models

import "time"

type Resource struct {
	ResourceID         string          `json:"resource_id" gorm:"type:varchar(64);primaryKey"`
	Name               string          `json:"name" gorm:"type:varchar(255);not null"`
	Role               string          `json:"role" gorm:"type:varchar(255);not null"`
	Skills             []string        `json:"skills" gorm:"serializer:json;type:text"`
	ProficiencyLevel   *Proficiency    `json:"proficiency_level,omitempty" gorm:"type:varchar(32)"`
	CapacityHrsPerWeek *int            `json:"capacity_hrs_per_week,omitempty"`
	CurrentCommitments *string         `json:"current_commitments,omitempty" gorm:"type:text"`
	AvailabilityDate   *time.Time      `json:"availability_date,omitempty" gorm:"type:date"`
	LocationTimezone   *string         `json:"location_timezone,omitempty" gorm:"type:varchar(128)"`
	EmploymentType     *EmploymentType `json:"employment_type,omitempty" gorm:"type:varchar(32)"`
	CostPerHourINR     *float64        `json:"cost_per_hour_inr,omitempty" gorm:"type:numeric(12,2)"`
	ConversationID     string          `json:"conversation_id" gorm:"type:varchar(32);index"`
	UserID             string          `json:"user_id" gorm:"type:varchar(64);index"`
}

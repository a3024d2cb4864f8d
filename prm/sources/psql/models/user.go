package models

type User struct {
	ID       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"type:varchar(255);uniqueIndex;not null"`
	Email    string `json:"email" gorm:"type:varchar(255);not null"`
}

package model

import (
	"time"
)

// Exercice is an entry of the exercise catalogue.
type Exercice struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(50);not null"`
	Description string    `json:"description" gorm:"type:varchar(255)"`
	Difficulty  string    `json:"difficulty" gorm:"type:varchar(50)"`
	VideoLink   string    `json:"video_link" gorm:"type:varchar(255)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

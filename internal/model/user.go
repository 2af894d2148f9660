package model

import (
	"time"
)

// Roles used by the frontend. The column stays free text.
const (
	RolePatient      = "patient"
	RolePractitioner = "practitioner"
)

// User represents a patient or a practitioner (kine) stored in the database
type User struct {
	ID                uint             `json:"id" gorm:"primaryKey"`
	LastName          string           `json:"last_name" gorm:"type:varchar(50)"`
	FirstName         string           `json:"first_name" gorm:"type:varchar(50)"`
	Email             string           `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password          string           `json:"-" gorm:"type:varchar(100);not null"`
	Role              string           `json:"role" gorm:"type:varchar(50)"`
	HealthConditionID *uint            `json:"health_condition_id,omitempty" gorm:"index"`
	HealthCondition   *HealthCondition `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	KineID            *uint            `json:"id_kine,omitempty" gorm:"column:id_kine;index"`
	Kine              *User            `json:"-" gorm:"foreignKey:KineID;constraint:OnDelete:SET NULL;"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

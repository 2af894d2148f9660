package model

import (
	"time"
)

// Defaults applied to new assignments when the prescription leaves them out.
const (
	DefaultSeries      = 1
	DefaultRepetitions = 10
)

// UserExercice is one exercise assigned to one user on one calendar day.
// Nothing prevents the same (user, exercice, date) from being assigned twice.
type UserExercice struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;index:idx_user_exercices_user_date,priority:1"`
	User        *User     `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ExerciceID  uint      `json:"exercice_id" gorm:"not null;index"`
	Exercice    *Exercice `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Date        Date      `json:"date" gorm:"not null;index:idx_user_exercices_user_date,priority:2"`
	Optional    bool      `json:"optional" gorm:"not null;default:false"`
	Checked     bool      `json:"checked" gorm:"not null;default:false"`
	Series      int       `json:"series" gorm:"not null;default:1"`
	Repetitions int       `json:"repetitions" gorm:"not null;default:10"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AssignmentView is an assignment joined with its catalogue exercise.
type AssignmentView struct {
	AssignmentID uint   `json:"assignment_id"`
	ExerciceID   uint   `json:"exercice_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Date         Date   `json:"date"`
	Checked      bool   `json:"checked"`
	Series       int    `json:"series"`
	Repetitions  int    `json:"repetitions"`
	Optional     bool   `json:"optional"`
	VideoLink    string `json:"video_link"`
}

// NewAssignmentView builds the denormalized view of an assignment.
func NewAssignmentView(a UserExercice, e Exercice) AssignmentView {
	return AssignmentView{
		AssignmentID: a.ID,
		ExerciceID:   e.ID,
		Name:         e.Name,
		Description:  e.Description,
		Date:         a.Date,
		Checked:      a.Checked,
		Series:       a.Series,
		Repetitions:  a.Repetitions,
		Optional:     a.Optional,
		VideoLink:    e.VideoLink,
	}
}

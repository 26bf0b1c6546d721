package models

import (
	"time"
)

// Project groups the tasks of one board
type Project struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Description string    `json:"description" gorm:"size:500;not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Project Model
func (Project) TableName() string {
	return "projects"
}

// Field limits shared by the HTTP contract and the service validation.
const (
	ProjectNameMax        = 100
	ProjectDescriptionMax = 500
	TaskTitleMax          = 200
	TaskDescriptionMax    = 1000
)

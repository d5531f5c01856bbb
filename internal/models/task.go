package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TaskStatusToDo       = "To-Do"
	TaskStatusInProgress = "In Progress"
	TaskStatusDone       = "Done"
)

// TaskStatuses lists the board columns in display order.
var TaskStatuses = []string{TaskStatusToDo, TaskStatusInProgress, TaskStatusDone}

func ValidTaskStatus(status string) bool {
	for _, s := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Task struct {
	gorm.Model

	ProjectID   uint   `gorm:"not null;index"`
	CreatedByID uint   `gorm:"not null"`
	Title       string `gorm:"not null"`
	Description string
	Status      string `gorm:"not null;default:'To-Do'"`
	DueDate     *time.Time

	// Relationships
	Project   Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	CreatedBy User    `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

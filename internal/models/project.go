package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	gorm.Model

	Title       string `gorm:"not null"`
	Description string
	Status      string `gorm:"not null;default:'Not Started'"`
	Priority    string `gorm:"not null;default:'Medium'"`
	StartDate   *time.Time
	DueDate     *time.Time
	OwnerID     uint `gorm:"not null;index"`

	// Relationships
	Owner User   `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tasks []Task `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

package models

import "gorm.io/gorm"

type Notification struct {
	gorm.Model

	UserID uint   `gorm:"not null;index"`
	Text   string `gorm:"not null"`
	Link   string
	Read   bool `gorm:"not null;default:false"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

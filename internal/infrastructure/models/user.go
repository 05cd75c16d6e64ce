package models

import (
	"time"
)

type User struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name      string    `gorm:"type:varchar(255);not null"`
	IsAdmin   bool      `gorm:"not null;default:false"`
	CreatedOn time.Time `gorm:"not null"`
}

type Login struct {
	LoginID   uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uint      `gorm:"uniqueIndex;not null"`
	Password  string    `gorm:"type:varchar(255);not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedOn time.Time `gorm:"not null"`
	CreatedBy *uint
	UpdatedOn time.Time `gorm:"not null"`
	UpdatedBy *uint
}

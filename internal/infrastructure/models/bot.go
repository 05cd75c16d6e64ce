package models

import (
	"time"
)

// UserBot stores the encrypted bot id plus a deterministic keyed
// fingerprint of the plaintext. GCM ciphertexts differ per call, so the
// one-bot-one-assignment constraint lives on the fingerprint column.
type UserBot struct {
	AssignID          uint   `gorm:"primaryKey;autoIncrement"`
	UserID            uint   `gorm:"index;not null"`
	BotID             string `gorm:"column:bot_id;type:text;not null"`
	BotFingerprint    string `gorm:"type:varchar(64);uniqueIndex;not null"`
	AllowAdminControl bool   `gorm:"not null;default:false"`
	Validity          *time.Time
	IsActive          bool      `gorm:"not null;default:true"`
	CreatedOn         time.Time `gorm:"not null"`
	CreatedBy         *uint
	UpdatedOn         time.Time `gorm:"not null"`
	UpdatedBy         *uint
}

type BotBehaviour struct {
	BotBehavID              uint      `gorm:"primaryKey;autoIncrement"`
	AssignID                uint      `gorm:"uniqueIndex;not null"`
	BotState                bool      `gorm:"not null;default:false"`
	HardStopAllTrades       bool      `gorm:"not null;default:false"`
	ListenToCommonCommander bool      `gorm:"not null;default:false"`
	NewsBasedStartStop      bool      `gorm:"not null;default:false"`
	RefreshDataFromBot      bool      `gorm:"not null;default:false"`
	IsActive                bool      `gorm:"not null;default:true"`
	CreatedOn               time.Time `gorm:"not null"`
	CreatedBy               *uint
	UpdatedOn               time.Time `gorm:"not null"`
	UpdatedBy               *uint
}

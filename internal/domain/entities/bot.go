package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// BotAssignment binds one bot identifier to one owning user. The bot id
// is encrypted at rest; BotID carries the decrypted plaintext (or a
// decryption sentinel) and is populated by the service layer only.
type BotAssignment struct {
	AssignID          uint      `json:"assign_id"`
	UserID            uint      `json:"user_id"`
	BotIDCipher       string    `json:"-"`
	BotFingerprint    string    `json:"-"`
	BotID             string    `json:"bot_id"`
	AllowAdminControl bool      `json:"allow_admin_control"`
	Validity          null.Time `json:"validity"`
	IsActive          bool      `json:"is_active"`
	CreatedOn         time.Time `json:"created_on"`
	CreatedBy         null.Uint `json:"-"`
	UpdatedOn         time.Time `json:"updated_on"`
	UpdatedBy         null.Uint `json:"-"`
}

// BotBehaviour holds the boolean operational flags governing a bot's
// runtime state. The row is materialized lazily on first need.
type BotBehaviour struct {
	BotBehavID              uint      `json:"bot_behav_id"`
	AssignID                uint      `json:"assign_id"`
	BotState                bool      `json:"bot_state"`
	HardStopAllTrades       bool      `json:"hard_stop_all_trades"`
	ListenToCommonCommander bool      `json:"listen_to_common_commander"`
	NewsBasedStartStop      bool      `json:"news_based_start_stop"`
	RefreshDataFromBot      bool      `json:"refresh_data_from_bot"`
	IsActive                bool      `json:"is_active"`
	CreatedOn               time.Time `json:"created_on"`
	CreatedBy               null.Uint `json:"-"`
	UpdatedOn               time.Time `json:"updated_on"`
	UpdatedBy               null.Uint `json:"-"`
}

// BotDetail is the full view of an assignment returned by the detail
// endpoint. CanAdminControl is advisory for the presentation layer; the
// control endpoint re-derives authorization independently.
type BotDetail struct {
	BotAssignment
	CanAdminControl bool          `json:"can_admin_control"`
	Behaviour       *BotBehaviour `json:"behaviour"`
}

// AssignBotInput represents input for assigning a bot to a user
type AssignBotInput struct {
	UserID uint   `json:"user_id" binding:"required"`
	BotID  string `json:"bot_id" binding:"required"`
}

// ControlBotInput represents a control action on an assignment. Value is
// a boolean for flag actions and an ISO-8601 string (or empty) for the
// validity action.
type ControlBotInput struct {
	Action string      `json:"action" binding:"required"`
	Value  interface{} `json:"value"`
}

// ControlResult is returned after a behaviour-flag mutation. BotID holds
// the decrypted plaintext identifier for the outbound bot call.
type ControlResult struct {
	BotID     string        `json:"bot_id"`
	Action    string        `json:"action"`
	Value     bool          `json:"value"`
	Behaviour *BotBehaviour `json:"behaviour"`
}

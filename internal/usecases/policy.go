package usecases

import (
	"strings"

	"bot-commander.backend/internal/domain/entities"
)

// ControlAction identifies one mutation on a bot assignment
type ControlAction string

const (
	ActionValidity                ControlAction = "validity"
	ActionAllowAdminControl       ControlAction = "allow_admin_control"
	ActionBotState                ControlAction = "bot_state"
	ActionHardStopAllTrades       ControlAction = "hard_stop_all_trades"
	ActionListenToCommonCommander ControlAction = "listen_to_common_commander"
	ActionNewsBasedStartStop      ControlAction = "news_based_start_stop"
	ActionRefreshDataFromBot      ControlAction = "refresh_data_from_bot"
)

var behaviourActions = []ControlAction{
	ActionBotState,
	ActionHardStopAllTrades,
	ActionListenToCommonCommander,
	ActionNewsBasedStartStop,
	ActionRefreshDataFromBot,
}

// ParseAction resolves an action name from a request body
func ParseAction(name string) (ControlAction, bool) {
	switch a := ControlAction(name); a {
	case ActionValidity, ActionAllowAdminControl:
		return a, true
	default:
		for _, b := range behaviourActions {
			if a == b {
				return a, true
			}
		}
		return "", false
	}
}

// IsBehaviourFlag reports whether the action toggles one of the five
// behaviour flags (as opposed to validity or the admin-control grant).
func IsBehaviourFlag(action ControlAction) bool {
	for _, b := range behaviourActions {
		if action == b {
			return true
		}
	}
	return false
}

// ValidActionNames lists every accepted action, for error messages
func ValidActionNames() string {
	names := []string{string(ActionValidity), string(ActionAllowAdminControl)}
	for _, b := range behaviourActions {
		names = append(names, string(b))
	}
	return strings.Join(names, ", ")
}

// Decision is the outcome of a policy check
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// CanViewBot decides whether the actor may read an assignment's details.
// The owner always may; an admin may view any bot regardless of the
// admin-control grant; everyone else is denied.
func CanViewBot(actor *entities.User, bot *entities.BotAssignment) Decision {
	if actor.UserID == bot.UserID {
		return allow()
	}
	if actor.IsAdmin {
		return allow()
	}
	return deny("access denied")
}

// CanControlBot decides whether the actor may apply the given control
// action to an assignment. This is the single owner-vs-admin-vs-grant
// matrix; the control endpoint derives authorization exclusively from
// it and never from client-supplied flags.
func CanControlBot(actor *entities.User, bot *entities.BotAssignment, action ControlAction) Decision {
	switch {
	case action == ActionValidity:
		// Admin-only, regardless of ownership or the owner's grant.
		if !actor.IsAdmin {
			return deny("only an admin can update validity")
		}
		return allow()

	case action == ActionAllowAdminControl:
		// Owner-only, admin status does not matter.
		if actor.UserID != bot.UserID {
			return deny("only the bot owner can change the admin control permission")
		}
		return allow()

	case IsBehaviourFlag(action):
		if actor.UserID == bot.UserID {
			return allow()
		}
		if actor.IsAdmin && bot.AllowAdminControl {
			return allow()
		}
		return deny("access denied")

	default:
		return deny("unknown action")
	}
}

// CanAdminControl derives the advisory flag returned by the detail
// endpoint: whether the viewer could flip behaviour flags right now.
func CanAdminControl(actor *entities.User, bot *entities.BotAssignment) bool {
	if actor.UserID == bot.UserID {
		return true
	}
	return actor.IsAdmin && bot.AllowAdminControl
}

package domain

import "time"

// User represents per-chat registration and notification preferences.
type User struct {
	ChatID       int64
	Name         string    // first name taken from the first inbound message
	AlertHour    *int      // 0..23, nil until the user picks one
	AlertEnabled bool      //
	CreatedAt    time.Time // UTC
}

// State is the registration state, computed once per inbound message and
// then matched exhaustively.
type State int

const (
	// StateUnknown means no stored record exists for the chat yet.
	StateUnknown State = iota
	// StateAwaitingHour means a record exists but no hour was chosen.
	StateAwaitingHour
	// StateConfigured means both hour and enabled flag are set.
	StateConfigured
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateAwaitingHour:
		return "awaiting-hour"
	case StateConfigured:
		return "configured"
	default:
		return "invalid"
	}
}

// StateOf derives the registration state from a (possibly absent) record.
func StateOf(u *User) State {
	switch {
	case u == nil:
		return StateUnknown
	case u.AlertHour == nil:
		return StateAwaitingHour
	default:
		return StateConfigured
	}
}

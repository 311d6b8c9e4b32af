package domain

import (
	"fmt"
	"time"
)

// Decision is the outcome of one registration step: an optional record
// write, the reply to send, and whether later handler stages may run.
type Decision struct {
	Write        *User  // upsert this record before replying, nil for no write
	Reply        string //
	ShowKeyboard bool   // attach the hour-picker keyboard to the reply
	Continue     bool   // allow a subsequent handler stage to run
}

// Decide runs one step of the registration state machine. It never touches
// storage itself; the caller persists Write (if any) and only sends Reply
// once the write succeeded.
func Decide(state State, u *User, chatID int64, senderName, text string, now time.Time) Decision {
	// The record is authoritative. A caller-supplied state that the record
	// cannot back (say, Configured with no stored hour) is recomputed here
	// rather than trusted.
	if derived := StateOf(u); derived != state {
		state = derived
	}

	switch state {
	case StateUnknown:
		return Decision{
			Write:        &User{ChatID: chatID, Name: senderName, CreatedAt: now.UTC()},
			Reply:        fmt.Sprintf("Nice to meet you %s, when do you want to be notified?", senderName),
			ShowKeyboard: true,
		}

	case StateAwaitingHour:
		hour, err := ParseHour(text)
		if err != nil {
			// Re-prompt instead of storing garbage.
			return Decision{
				Reply:        "Please pick an hour between 0 and 23.",
				ShowKeyboard: true,
			}
		}
		next := *u
		next.AlertHour = &hour
		next.AlertEnabled = true
		return Decision{
			Write: &next,
			Reply: fmt.Sprintf("Perfect! You'll be notified at %d", hour),
		}

	default: // StateConfigured
		return Decision{
			Reply:    fmt.Sprintf("Hi %s, you'll be notified at %d!", u.Name, *u.AlertHour),
			Continue: true,
		}
	}
}

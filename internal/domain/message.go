package domain

import (
	"fmt"
	"strings"
)

const reminderLine = "Remember to take the pill!"

// ComposeReminder builds the daily message lines in fixed order:
// greeting, reminder, quote.
func ComposeReminder(name, quoteText string) []string {
	return []string{
		fmt.Sprintf("Hi %s!", name),
		reminderLine,
		quoteText,
	}
}

// RenderMessage joins composed lines into the single text block the
// transport expects.
func RenderMessage(lines []string) string {
	return strings.Join(lines, "\n")
}

package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const hourButtonsPerRow = 4

// hourRows lays out the 24 hour choices, wrapped four per row.
func hourRows() [][]string {
	var rows [][]string
	for h := 0; h < 24; h += hourButtonsPerRow {
		row := make([]string, 0, hourButtonsPerRow)
		for i := h; i < h+hourButtonsPerRow && i < 24; i++ {
			row = append(row, strconv.Itoa(i))
		}
		rows = append(rows, row)
	}
	return rows
}

// hourKeyboard builds the reply keyboard offering hours 0..23.
func hourKeyboard() tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for _, labels := range hourRows() {
		row := make([]tgbotapi.KeyboardButton, 0, len(labels))
		for _, l := range labels {
			row = append(row, tgbotapi.NewKeyboardButton(l))
		}
		rows = append(rows, row)
	}
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.OneTimeKeyboard = true
	return kb
}

package interfaces

import (
	"context"

	"fx-analysis-bot/internal/types"
)

// Messenger is the outbound half of the chat transport: send text, send
// a menu of labeled choices, edit a previously sent message, and
// acknowledge a button press.
type Messenger interface {
	// SendMessage sends plain text and returns the message ID for later edits.
	SendMessage(ctx context.Context, chatID int64, text string) (int, error)

	// SendMenu sends text with an inline keyboard, one row per button.
	SendMenu(ctx context.Context, chatID int64, text string, buttons []types.Button) (int, error)

	// EditMessageText replaces the text of a previously sent message.
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error

	// AnswerCallbackQuery acknowledges a button press so the client stops
	// showing a progress indicator.
	AnswerCallbackQuery(ctx context.Context, callbackID string) error
}

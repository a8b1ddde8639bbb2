// Package dialog owns the command -> menu -> callback -> result
// lifecycle. Each update is an independent state machine instance; the
// only state that survives between menu render and selection is the
// token carried by the transport, so concurrent requests cannot
// interfere with one another.
package dialog

import (
	"context"
	"strings"

	"fx-analysis-bot/internal/interfaces"
	"fx-analysis-bot/internal/logger"
	"fx-analysis-bot/internal/telegram"
	"fx-analysis-bot/internal/timeframe"
	"fx-analysis-bot/internal/trace"
	"fx-analysis-bot/internal/types"
)

// state tracks where one request is in its lifecycle.
type state int

const (
	stateIdle state = iota
	stateAwaitingSelection
	stateResolving
	stateDone
)

const (
	startCommand   = "/start"
	analyzeCommand = "/analyze"
)

// Bot routes transport updates through the interaction state machine.
// It holds only read-only dependencies and is safe for concurrent use.
type Bot struct {
	msgr     interfaces.Messenger
	analyzer interfaces.Analyzer
}

func New(msgr interfaces.Messenger, analyzer interfaces.Analyzer) *Bot {
	return &Bot{msgr: msgr, analyzer: analyzer}
}

// HandleUpdate dispatches one incoming update. It is the entry point
// the transport's poller calls, one goroutine per update.
func (b *Bot) HandleUpdate(ctx context.Context, update telegram.Update) {
	ctx, span := trace.StartSpan(ctx, "dialog.HandleUpdate")
	defer span.End()

	switch {
	case update.Message != nil:
		b.handleCommand(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleSelection(ctx, update.CallbackQuery)
	}
}

// handleCommand covers the Idle state: a well-formed analysis command
// moves the request to AwaitingSelection by rendering the menu; anything
// else stays in Idle with a corrective message.
func (b *Bot) handleCommand(ctx context.Context, msg *telegram.Message) {
	chatID := msg.Chat.ID
	fields := strings.Fields(msg.Text)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case startCommand:
		b.reply(ctx, chatID, greetingText)
		return
	case analyzeCommand:
	default:
		if strings.HasPrefix(fields[0], "/") {
			b.reply(ctx, chatID, unknownText)
		}
		return
	}

	// Exactly one argument: the symbol. Wrong arity is a validation
	// error, not a crash, and renders no menu.
	args := fields[1:]
	if len(args) != 1 {
		logger.Debug(ctx, "Rejected analyze command", "args", len(args))
		b.reply(ctx, chatID, usageText)
		return
	}

	symbol := strings.ToUpper(args[0])
	if !validSymbol(symbol) {
		logger.Debug(ctx, "Rejected analyze symbol", "symbol", symbol)
		b.reply(ctx, chatID, usageText)
		return
	}

	buttons := make([]types.Button, 0, len(timeframe.Entries()))
	for _, e := range timeframe.Entries() {
		buttons = append(buttons, types.Button{
			Label: e.Label,
			Data:  EncodeToken(symbol, e.Code),
		})
	}

	if _, err := b.msgr.SendMenu(ctx, chatID, menuText, buttons); err != nil {
		logger.ErrorWithErr(ctx, "Failed to send timeframe menu", err, "chat_id", chatID, "symbol", symbol)
		return
	}
	st := stateAwaitingSelection
	logger.Info(ctx, "Timeframe menu sent", "chat_id", chatID, "symbol", symbol, "state", int(st))
}

// handleSelection covers AwaitingSelection -> Resolving -> Done: decode
// the token, edit in the working placeholder, run the analysis, and edit
// in the final text exactly once.
func (b *Bot) handleSelection(ctx context.Context, cb *telegram.CallbackQuery) {
	if err := b.msgr.AnswerCallbackQuery(ctx, cb.ID); err != nil {
		logger.Warn(ctx, "Failed to answer callback query", "error", err)
	}
	if cb.Message == nil {
		logger.Error(ctx, "Callback query without message", "callback_id", cb.ID)
		return
	}
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	symbol, code, err := DecodeToken(cb.Data)
	if err != nil {
		// Tokens are generated by this bot, so this path means the
		// transport corrupted the data. Log it, tell the user nothing
		// specific.
		logger.ErrorWithErr(ctx, "Selection token decode failed", err, "chat_id", chatID)
		return
	}

	label, known := timeframe.LabelFor(code)
	if !known {
		label = code
	}

	st := stateResolving
	logger.Info(ctx, "Resolving analysis request",
		"chat_id", chatID, "symbol", symbol, "timeframe", code, "state", int(st))

	// Immediate feedback: generation can take seconds.
	if err := b.msgr.EditMessageText(ctx, chatID, messageID, workingText(symbol, label)); err != nil {
		logger.Warn(ctx, "Failed to edit in working placeholder", "error", err, "chat_id", chatID)
	}

	text, generated := b.analyzer.Analyze(ctx, symbol, label, code)
	final := text
	if generated {
		final = resultText(symbol, label, text)
	}

	if err := b.msgr.EditMessageText(ctx, chatID, messageID, final); err != nil {
		logger.ErrorWithErr(ctx, "Failed to edit in final result", err, "chat_id", chatID)
		return
	}

	st = stateDone
	logger.Info(ctx, "Analysis request completed",
		"chat_id", chatID, "symbol", symbol, "timeframe", code, "generated", generated, "state", int(st))
}

// validSymbol reports whether s is a well-formed pair symbol: non-empty,
// uppercase letters and digits only. This upholds the token codec's
// guarantee that the separator never occurs inside a symbol.
func validSymbol(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if _, err := b.msgr.SendMessage(ctx, chatID, text); err != nil {
		logger.ErrorWithErr(ctx, "Failed to send reply", err, "chat_id", chatID)
	}
}

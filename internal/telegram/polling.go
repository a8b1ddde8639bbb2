package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"fx-analysis-bot/internal/logger"
)

// Update is one incoming event from long polling: either a message or a
// button press, never both.
type Update struct {
	UpdateID      int            `json:"update_id"`
	Message       *Message       `json:"message"`
	CallbackQuery *CallbackQuery `json:"callback_query"`
}

// Message is the subset of a Telegram message the bot reads.
type Message struct {
	MessageID int    `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type Chat struct {
	ID int64 `json:"id"`
}

// CallbackQuery carries the token of a pressed menu button plus the
// message the menu was attached to.
type CallbackQuery struct {
	ID      string   `json:"id"`
	Data    string   `json:"data"`
	Message *Message `json:"message"`
}

// UpdateHandler processes one update. Handlers run on their own
// goroutine; concurrent updates must not share mutable state.
type UpdateHandler func(ctx context.Context, update Update)

// StartPolling long-polls getUpdates and dispatches each update to the
// handler on its own goroutine. Blocks until ctx is cancelled and every
// dispatched handler has returned: once a request is being resolved it
// runs to completion, so handlers get a context that survives shutdown.
func (c *Client) StartPolling(ctx context.Context, handler UpdateHandler) {
	var inflight sync.WaitGroup
	defer inflight.Wait()

	offset := 0

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Telegram polling stopped, waiting for in-flight requests")
			return
		default:
		}

		updates, err := c.getUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info(ctx, "Telegram polling stopped, waiting for in-flight requests")
				return
			}
			logger.Warn(ctx, "Polling request failed", "error", err)
			time.Sleep(5 * time.Second)
			continue
		}

		for _, update := range updates {
			offset = update.UpdateID + 1
			if update.Message == nil && update.CallbackQuery == nil {
				continue
			}
			inflight.Add(1)
			go func(u Update) {
				defer inflight.Done()
				handler(context.WithoutCancel(ctx), u)
			}(update)
		}
	}
}

func (c *Client) getUpdates(ctx context.Context, offset int) ([]Update, error) {
	apiURL := fmt.Sprintf("%s/bot%s/getUpdates?offset=%d&timeout=%d",
		c.baseURL, c.token, offset, c.pollTimeout)

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create polling request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read polling response: %w", err)
	}

	var result struct {
		OK          bool     `json:"ok"`
		Description string   `json:"description"`
		Result      []Update `json:"result"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode polling response: %w", err)
	}
	if !result.OK {
		return nil, fmt.Errorf("telegram API error: %s", result.Description)
	}
	return result.Result, nil
}

// Package telegram is a minimal Telegram Bot API client covering exactly
// what the bot needs: send text, send an inline-keyboard menu, edit a
// sent message, acknowledge a button press, and long-poll for updates.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"fx-analysis-bot/internal/interfaces"
	"fx-analysis-bot/internal/trace"
	"fx-analysis-bot/internal/types"
)

var _ interfaces.Messenger = (*Client)(nil)

// Client talks to the Telegram Bot API over HTTP.
type Client struct {
	token       string
	baseURL     string
	pollTimeout int
	httpc       *http.Client
}

// New creates a client with optional proxy support. pollTimeoutSeconds
// is the getUpdates long-poll window.
func New(token, proxyURL string, pollTimeoutSeconds int) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		token:       token,
		baseURL:     "https://api.telegram.org",
		pollTimeout: pollTimeoutSeconds,
		httpc: &http.Client{
			// The poll window plus headroom; ordinary calls finish well within it
			Timeout:   time.Duration(pollTimeoutSeconds+5) * time.Second,
			Transport: transport,
		},
	}
}

// SendMessage sends plain text and returns the new message ID.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) (int, error) {
	return c.send(ctx, chatID, text, nil)
}

// SendMenu sends text with an inline keyboard, one button per row, in
// the given order.
func (c *Client) SendMenu(ctx context.Context, chatID int64, text string, buttons []types.Button) (int, error) {
	return c.send(ctx, chatID, text, buttons)
}

func (c *Client) send(ctx context.Context, chatID int64, text string, buttons []types.Button) (int, error) {
	payload := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if len(buttons) > 0 {
		rows := make([][]map[string]string, 0, len(buttons))
		for _, b := range buttons {
			rows = append(rows, []map[string]string{{"text": b.Label, "callback_data": b.Data}})
		}
		payload["reply_markup"] = map[string]any{"inline_keyboard": rows}
	}

	var result struct {
		MessageID int `json:"message_id"`
	}
	if err := c.call(ctx, "sendMessage", payload, &result); err != nil {
		return 0, err
	}
	return result.MessageID, nil
}

// EditMessageText replaces the text of a previously sent message.
func (c *Client) EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error {
	payload := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
	}
	return c.call(ctx, "editMessageText", payload, nil)
}

// AnswerCallbackQuery acknowledges a button press.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID string) error {
	return c.call(ctx, "answerCallbackQuery", map[string]any{"callback_query_id": callbackID}, nil)
}

// call posts one Bot API method and decodes the result envelope.
func (c *Client) call(ctx context.Context, method string, payload any, out any) error {
	ctx, span := trace.StartSpan(ctx, "telegram-api-call")
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", method, err)
	}

	apiURL := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", method, err)
	}

	var envelope struct {
		OK          bool            `json:"ok"`
		Description string          `json:"description"`
		Result      json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if !envelope.OK {
		return fmt.Errorf("telegram API error on %s: status %d, %s", method, resp.StatusCode, envelope.Description)
	}
	if out != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
	}
	return nil
}

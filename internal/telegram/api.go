package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// API is a minimal Telegram Bot API client covering what the bot needs:
// getMe, long-poll getUpdates, sendChatAction and sendMessage.
type API struct {
	http    *http.Client
	baseURL string
	token   string
}

func NewAPI(httpClient *http.Client, baseURL, token string) *API {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}
	return &API{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

// RequestError is a non-2xx or ok=false answer from the Bot API.
type RequestError struct {
	StatusCode  int
	ErrorCode   int
	Description string
}

func (e *RequestError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("telegram http %d: %s", e.StatusCode, e.Description)
	}
	return fmt.Sprintf("telegram http %d", e.StatusCode)
}

type okResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

type getMeResponse struct {
	OK     bool `json:"ok"`
	Result User `json:"result"`
}

type getUpdatesResponse struct {
	OK     bool     `json:"ok"`
	Result []Update `json:"result"`
}

func (api *API) GetMe(ctx context.Context) (*User, error) {
	url := fmt.Sprintf("%s/bot%s/getMe", api.baseURL, api.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := api.http.Do(req)
	if err != nil {
		return nil, err
	}
	raw, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{StatusCode: resp.StatusCode, Description: strings.TrimSpace(string(raw))}
	}
	var out getMeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if !out.OK {
		return nil, fmt.Errorf("telegram getMe: ok=false")
	}
	return &out.Result, nil
}

// GetUpdates long-polls for new updates and returns them together with the
// next offset to acknowledge what was seen.
func (api *API) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, int64, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	secs := int(timeout.Seconds())
	if secs < 1 {
		secs = 1
	}
	url := fmt.Sprintf("%s/bot%s/getUpdates?timeout=%d", api.baseURL, api.token, secs)
	// offset -1 asks for only the newest pending update; used to drop the
	// backlog on boot.
	if offset != 0 {
		url += fmt.Sprintf("&offset=%d", offset)
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout+5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, offset, err
	}
	resp, err := api.http.Do(req)
	if err != nil {
		return nil, offset, err
	}
	raw, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, offset, &RequestError{StatusCode: resp.StatusCode, Description: strings.TrimSpace(string(raw))}
	}

	var out getUpdatesResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, offset, err
	}
	if !out.OK {
		return nil, offset, fmt.Errorf("telegram getUpdates: ok=false")
	}

	next := offset
	for _, u := range out.Result {
		if u.UpdateID >= next {
			next = u.UpdateID + 1
		}
	}
	return out.Result, next, nil
}

type sendMessageRequest struct {
	ChatID           int64                 `json:"chat_id"`
	Text             string                `json:"text"`
	ParseMode        string                `json:"parse_mode,omitempty"`
	ReplyToMessageID int64                 `json:"reply_to_message_id,omitempty"`
	ReplyMarkup      *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

type sendChatActionRequest struct {
	ChatID int64  `json:"chat_id"`
	Action string `json:"action"`
}

// SendTyping signals a "typing…" indicator; best-effort by contract, the
// caller decides whether a failure matters.
func (api *API) SendTyping(ctx context.Context, chatID int64) error {
	return api.postJSON(ctx, "sendChatAction", sendChatActionRequest{ChatID: chatID, Action: "typing"})
}

// SendMessage sends text with Markdown formatting, falling back to plain
// text when Telegram rejects the markup.
func (api *API) SendMessage(ctx context.Context, chatID int64, text string, replyTo int64) error {
	text = strings.TrimSpace(text)
	if text == "" {
		text = "(empty)"
	}
	err := api.postJSON(ctx, "sendMessage", sendMessageRequest{
		ChatID:           chatID,
		Text:             text,
		ParseMode:        "Markdown",
		ReplyToMessageID: replyTo,
	})
	if err == nil {
		return nil
	}
	if !isMarkdownParseError(err) {
		return err
	}
	slog.Warn("telegram markdown send rejected; retrying as plain text", "error", err)
	return api.postJSON(ctx, "sendMessage", sendMessageRequest{
		ChatID:           chatID,
		Text:             text,
		ReplyToMessageID: replyTo,
	})
}

// SendMessageMarkup sends Markdown text with an inline keyboard attached.
// Same plain-text fallback as SendMessage; the keyboard survives it.
func (api *API) SendMessageMarkup(ctx context.Context, chatID int64, text string, markup *InlineKeyboardMarkup) error {
	err := api.postJSON(ctx, "sendMessage", sendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   "Markdown",
		ReplyMarkup: markup,
	})
	if err == nil || !isMarkdownParseError(err) {
		return err
	}
	return api.postJSON(ctx, "sendMessage", sendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: markup,
	})
}

func (api *API) postJSON(ctx context.Context, method string, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/bot%s/%s", api.baseURL, api.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := api.http.Do(req)
	if err != nil {
		return err
	}
	raw, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	var out okResponse
	decodeErr := json.Unmarshal(raw, &out)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := &RequestError{StatusCode: resp.StatusCode}
		if decodeErr == nil {
			reqErr.ErrorCode = out.ErrorCode
			reqErr.Description = out.Description
		} else {
			reqErr.Description = strings.TrimSpace(string(raw))
		}
		return reqErr
	}
	if decodeErr != nil {
		return decodeErr
	}
	if !out.OK {
		return &RequestError{StatusCode: resp.StatusCode, ErrorCode: out.ErrorCode, Description: out.Description}
	}
	return nil
}

func isMarkdownParseError(err error) bool {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		return false
	}
	if reqErr.StatusCode != http.StatusBadRequest {
		return false
	}
	desc := strings.ToLower(reqErr.Description)
	return strings.Contains(desc, "can't parse entities") || strings.Contains(desc, "parse")
}

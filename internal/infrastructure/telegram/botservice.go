// Package telegram is a thin client over the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/config"
)

const (
	// Telegram caps downloadable bot files at 20MB; cap reads a little above.
	maxFileDownloadSize = 21 << 20

	requestTimeout = 30 * time.Second
)

// BotService provides Telegram Bot API operations.
type BotService struct {
	config     config.TelegramConfig
	httpClient *http.Client
	baseURL    string
	fileURL    string
}

func NewBotService(cfg config.TelegramConfig) *BotService {
	return &BotService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: fmt.Sprintf("https://api.telegram.org/bot%s", cfg.BotToken),
		fileURL: fmt.Sprintf("https://api.telegram.org/file/bot%s", cfg.BotToken),
	}
}

// GetUpdates retrieves updates via long polling. The context cancels the
// in-flight poll for graceful shutdown.
func (s *BotService) GetUpdates(ctx context.Context, offset int64, timeout int) ([]Update, error) {
	body := map[string]any{
		"timeout":         timeout,
		"allowed_updates": []string{"message", "callback_query", "pre_checkout_query"},
	}
	if offset > 0 {
		body["offset"] = offset
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	// Long polling needs a client timeout beyond the poll window.
	client := &http.Client{
		Timeout: time.Duration(timeout+10) * time.Second,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/getUpdates", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		OK          bool     `json:"ok"`
		Result      []Update `json:"result"`
		Description string   `json:"description,omitempty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !result.OK {
		return nil, fmt.Errorf("telegram API error: %s", result.Description)
	}

	return result.Result, nil
}

// SendMessage sends an HTML-formatted message, splitting it when it
// exceeds Telegram's length limit.
func (s *BotService) SendMessage(chatID int64, text string) error {
	for _, chunk := range splitMessage(text, maxMessageLength) {
		body := map[string]any{
			"chat_id":    chatID,
			"text":       chunk,
			"parse_mode": "HTML",
		}
		if err := s.makeRequest("sendMessage", body); err != nil {
			return err
		}
	}
	return nil
}

// SendMessagePlain sends a message without formatting. Used as the
// fallback when HTML rendering produced something Telegram rejects.
func (s *BotService) SendMessagePlain(chatID int64, text string) error {
	for _, chunk := range splitMessage(text, maxMessageLength) {
		body := map[string]any{
			"chat_id": chatID,
			"text":    chunk,
		}
		if err := s.makeRequest("sendMessage", body); err != nil {
			return err
		}
	}
	return nil
}

// SendMessageWithInlineKeyboard sends an HTML message with an inline keyboard.
func (s *BotService) SendMessageWithInlineKeyboard(chatID int64, text string, keyboard *InlineKeyboardMarkup) error {
	body := map[string]any{
		"chat_id":      chatID,
		"text":         text,
		"parse_mode":   "HTML",
		"reply_markup": keyboard,
	}
	return s.makeRequest("sendMessage", body)
}

// SendChatAction shows "typing..." (or similar) while a reply is prepared.
func (s *BotService) SendChatAction(chatID int64, action string) error {
	body := map[string]any{
		"chat_id": chatID,
		"action":  action,
	}
	return s.makeRequest("sendChatAction", body)
}

// SendStarsInvoice sends a Telegram Stars invoice. Stars invoices use
// the XTR currency and an empty provider token.
func (s *BotService) SendStarsInvoice(chatID int64, title, description, payload string, stars int) error {
	body := map[string]any{
		"chat_id":        chatID,
		"title":          title,
		"description":    description,
		"payload":        payload,
		"provider_token": "",
		"currency":       "XTR",
		"prices":         []LabeledPrice{{Label: title, Amount: stars}},
	}
	return s.makeRequest("sendInvoice", body)
}

// AnswerPreCheckoutQuery approves or declines a pending payment.
func (s *BotService) AnswerPreCheckoutQuery(queryID string, ok bool, errorMessage string) error {
	body := map[string]any{
		"pre_checkout_query_id": queryID,
		"ok":                    ok,
	}
	if !ok && errorMessage != "" {
		body["error_message"] = errorMessage
	}
	return s.makeRequest("answerPreCheckoutQuery", body)
}

// AnswerCallbackQuery acknowledges an inline keyboard press.
func (s *BotService) AnswerCallbackQuery(callbackQueryID, text string) error {
	body := map[string]any{
		"callback_query_id": callbackQueryID,
	}
	if text != "" {
		body["text"] = text
	}
	return s.makeRequest("answerCallbackQuery", body)
}

// SetMyCommands publishes the command menu.
func (s *BotService) SetMyCommands(commands []BotCommand) error {
	body := map[string]any{
		"commands": commands,
	}
	return s.makeRequest("setMyCommands", body)
}

// SetWebhook registers the webhook URL with Telegram.
func (s *BotService) SetWebhook(webhookURL, secret string) error {
	body := map[string]any{
		"url":             webhookURL,
		"allowed_updates": []string{"message", "callback_query", "pre_checkout_query"},
	}
	if secret != "" {
		body["secret_token"] = secret
	}
	return s.makeRequest("setWebhook", body)
}

// DeleteWebhook removes the webhook so long polling can take over.
func (s *BotService) DeleteWebhook() error {
	return s.makeRequest("deleteWebhook", nil)
}

// DownloadFile fetches a file's bytes by file ID (voice notes, photos).
func (s *BotService) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := s.getFile(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if file.FilePath == "" {
		return nil, fmt.Errorf("file %s has no download path", fileID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.fileURL+"/"+file.FilePath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code downloading file: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFileDownloadSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read file body: %w", err)
	}
	return data, nil
}

func (s *BotService) getFile(ctx context.Context, fileID string) (*File, error) {
	jsonBody, err := json.Marshal(map[string]any{"file_id": fileID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/getFile", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		OK          bool   `json:"ok"`
		Result      *File  `json:"result"`
		Description string `json:"description,omitempty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !result.OK {
		return nil, fmt.Errorf("telegram API error: %s", result.Description)
	}

	return result.Result, nil
}

func (s *BotService) makeRequest(method string, body map[string]any) error {
	url := s.baseURL + "/" + method

	var req *http.Request
	var err error

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		req, err = http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonBody))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, err = http.NewRequest(http.MethodPost, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description,omitempty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("telegram API error: %s", result.Description)
	}

	return nil
}

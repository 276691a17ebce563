package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/housebill/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// TelegramClient sends messages through the Telegram Bot API.
// A disabled or unconfigured client degrades to a logged no-op so the
// rest of the system never has to care whether the bot is set up.
type TelegramClient struct {
	enabled  bool
	botToken string
	baseURL  string
	client   *http.Client
	logger   *zap.Logger
}

// NewTelegramClient creates a Telegram Bot API client from configuration
func NewTelegramClient(cfg config.TelegramConfig, logger *zap.Logger) *TelegramClient {
	return &TelegramClient{
		enabled:  cfg.Enabled,
		botToken: cfg.BotToken,
		baseURL:  cfg.BaseURL,
		client:   &http.Client{Timeout: cfg.Timeout},
		logger:   logger,
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage posts an HTML-formatted message to the given chat.
// Missing credentials or an empty chat ID are logged and swallowed;
// only transport and API failures surface as errors.
func (c *TelegramClient) SendMessage(ctx context.Context, chatID, text string) error {
	if !c.enabled {
		return nil
	}
	if c.botToken == "" {
		c.logger.Warn("Telegram bot token is not configured")
		return nil
	}
	if chatID == "" {
		c.logger.Warn("Telegram chat ID is empty")
		return nil
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("telegram: failed to encode message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("Failed to send Telegram message",
			zap.String("chat_id", chatID),
			zap.Error(err))
		return fmt.Errorf("telegram: failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Telegram API rejected message",
			zap.String("chat_id", chatID),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", respBody))
		return fmt.Errorf("telegram: sendMessage returned status %d", resp.StatusCode)
	}

	return nil
}

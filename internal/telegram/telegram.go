// Package telegram delivers the finished bulletin to a chat or channel.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"cgnews/internal/retry"
)

// Telegram caps messages around 4096 chars; split a little earlier so
// HTML entities never straddle the boundary.
const maxMessageLen = 4000

var client = &http.Client{Timeout: 30 * time.Second}

// SendBulletin sends the bulletin text, splitting into several messages
// when it exceeds the Telegram limit.
func SendBulletin(ctx context.Context, token, chatID, text string) error {
	for _, part := range splitMessage(text) {
		if err := SendMessage(ctx, token, chatID, part); err != nil {
			return err
		}
	}
	return nil
}

// SendMessage sends one message with retry and linear backoff.
func SendMessage(ctx context.Context, token, chatID, text string) error {
	cfg := retry.Config{MaxAttempts: 3, Delay: 2 * time.Second, Backoff: true}

	err := retry.WithRetry(ctx, cfg, func() error {
		return sendMessageOnce(ctx, token, chatID, text)
	})
	if err != nil {
		return fmt.Errorf("can't send message: %w", err)
	}
	return nil
}

func sendMessageOnce(ctx context.Context, token, chatID, text string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", token)

	payload := map[string]interface{}{
		"chat_id":                  chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error make JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error HTTP request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Printf("Warning: failed to close response body: %v", err)
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error: status %d", resp.StatusCode)
	}
	return nil
}

// splitMessage breaks long text on line boundaries.
func splitMessage(text string) []string {
	if len(text) <= maxMessageLen {
		return []string{text}
	}

	var parts []string
	var current bytes.Buffer

	for _, line := range bytes.Split([]byte(text), []byte("\n")) {
		if current.Len()+len(line)+1 > maxMessageLen && current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.Write(line)
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

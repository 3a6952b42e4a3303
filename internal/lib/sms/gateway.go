// Package sms реализует клиент HTTP-шлюза отправки SMS.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/magabrotheeeer/vip-marketplace/internal/config"
)

// Gateway отправляет SMS через внешний HTTP API.
type Gateway struct {
	apiURL     string
	apiKey     string
	senderID   string
	httpClient *http.Client
}

// NewGateway создает клиент шлюза из конфигурации.
func NewGateway(cfg config.SMSGateway) *Gateway {
	timeout := cfg.TimeoutSMS
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Gateway{
		apiURL:     cfg.APIURL,
		apiKey:     cfg.APIKey,
		senderID:   cfg.SenderID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type sendRequest struct {
	Sender  string `json:"sender"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type sendResponse struct {
	Status string `json:"status"`
}

// SendSMS отправляет сообщение на номер телефона.
func (g *Gateway) SendSMS(ctx context.Context, phone, text string) error {
	body := sendRequest{
		Sender:  g.senderID,
		Phone:   phone,
		Message: text,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL+"/messages", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return errors.New("unexpected status: " + resp.Status)
	}
	var result sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	if result.Status != "queued" && result.Status != "sent" {
		return errors.New("gateway rejected message: " + result.Status)
	}
	return nil
}

package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	logrus "github.com/sirupsen/logrus"

	"storedash/internal/config"
)

// SMSSender delivers a text message. Implementations are best-effort:
// the workflow never blocks or fails on a delivery error.
type SMSSender interface {
	SendSMS(to, text string) error
}

// PushSender delivers a push notification to a device token.
type PushSender interface {
	SendPush(token, title, body string) error
}

const (
	vonageURL = "https://rest.nexmo.com/sms/json"
	fcmURL    = "https://fcm.googleapis.com/fcm/send"
)

// VonageClient sends SMS through the Vonage REST API.
type VonageClient struct {
	cfg  config.SMSConfig
	http *http.Client
}

func NewVonageClient(cfg config.SMSConfig) *VonageClient {
	return &VonageClient{
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

type vonageResponse struct {
	Messages []struct {
		Status    string `json:"status"`
		ErrorText string `json:"error-text"`
	} `json:"messages"`
}

func (v *VonageClient) SendSMS(to, text string) error {
	payload := map[string]string{
		"api_key":    v.cfg.APIKey,
		"api_secret": v.cfg.APISecret,
		"from":       v.cfg.From,
		"to":         to,
		"text":       text,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := v.http.Post(vonageURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var out vonageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	// Vonage reports per-message status; "0" is success.
	if len(out.Messages) == 0 || out.Messages[0].Status != "0" {
		errText := "no messages in response"
		if len(out.Messages) > 0 {
			errText = out.Messages[0].ErrorText
		}
		return fmt.Errorf("vonage: %s", errText)
	}
	return nil
}

// FCMClient sends push notifications through the FCM HTTP API.
type FCMClient struct {
	cfg  config.PushConfig
	http *http.Client
}

func NewFCMClient(cfg config.PushConfig) *FCMClient {
	return &FCMClient{
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

type fcmMessage struct {
	To           string          `json:"to"`
	Priority     string          `json:"priority"`
	Notification fcmNotification `json:"notification"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (f *FCMClient) SendPush(token, title, body string) error {
	msg := fcmMessage{
		To:       token,
		Priority: "high",
		Notification: fcmNotification{
			Title: title,
			Body:  body,
		},
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, fcmURL, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+f.cfg.ServerKey)

	resp, err := f.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fcm: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// LogFailure records a swallowed notification error. Callers treat
// delivery as fire-and-forget, so this is the only trace left behind.
func LogFailure(kind string, err error) {
	if err != nil {
		logrus.WithError(err).Warnf("%s notification failed", kind)
	}
}

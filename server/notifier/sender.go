// Package notifier polls for due events and fans alerts out to the
// configured channels. Delivery is best effort: each send reports a
// boolean outcome, there are no retries, and a failed channel never
// blocks the others.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/parkjy76/haruplan/internal/profile"
)

// Sender delivers one alert over one channel.
type Sender interface {
	Name() string
	Send(ctx context.Context, title, message string) error
}

// ConsoleSender writes alerts to standard output, the fallback channel
// that is always configured.
type ConsoleSender struct {
	Out io.Writer
}

func (s *ConsoleSender) Name() string { return "console" }

func (s *ConsoleSender) Send(_ context.Context, title, message string) error {
	_, err := fmt.Fprintf(s.Out, "[NOTIFY] %s: %s\n", title, message)
	return err
}

const (
	defaultTelegramBaseURL = "https://api.telegram.org"
	kakaoMemoURL           = "https://kapi.kakao.com/v2/api/talk/memo/default/send"
	senderTimeout          = 10 * time.Second
)

// TelegramSender posts alerts through the Telegram Bot API.
type TelegramSender struct {
	Token   string
	ChatID  string
	BaseURL string
	Client  *http.Client
}

func (s *TelegramSender) Name() string { return "telegram" }

func (s *TelegramSender) Send(ctx context.Context, title, message string) error {
	if s.Token == "" || s.ChatID == "" {
		return errors.New("telegram sender not configured")
	}
	baseURL := s.BaseURL
	if baseURL == "" {
		baseURL = defaultTelegramBaseURL
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id": s.ChatID,
		"text":    title + "\n" + message,
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", baseURL, s.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return s.do(req)
}

func (s *TelegramSender) do(req *http.Request) error {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: senderTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return errors.Errorf("telegram send failed: status %d", resp.StatusCode)
	}
	return nil
}

// KakaoSender posts alerts to the user's own KakaoTalk via the
// talk/memo API.
type KakaoSender struct {
	AccessToken string
	URL         string
	Client      *http.Client
}

func (s *KakaoSender) Name() string { return "kakao" }

func (s *KakaoSender) Send(ctx context.Context, title, message string) error {
	if s.AccessToken == "" {
		return errors.New("kakao sender not configured")
	}
	endpoint := s.URL
	if endpoint == "" {
		endpoint = kakaoMemoURL
	}

	templateObject, err := json.Marshal(map[string]any{
		"object_type": "text",
		"text":        title + "\n" + message,
		"link": map[string]string{
			"web_url":        "https://developers.kakao.com",
			"mobile_web_url": "https://developers.kakao.com",
		},
	})
	if err != nil {
		return err
	}

	form := url.Values{"template_object": {string(templateObject)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.AccessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: senderTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return errors.Errorf("kakao send failed: status %d", resp.StatusCode)
	}
	return nil
}

// SendersFromProfile assembles the configured channels. Console is
// always present so a bare setup still surfaces alerts.
func SendersFromProfile(p *profile.Profile, out io.Writer) []Sender {
	senders := []Sender{&ConsoleSender{Out: out}}
	if p.TelegramBotToken != "" && p.TelegramChatID != "" {
		senders = append(senders, &TelegramSender{Token: p.TelegramBotToken, ChatID: p.TelegramChatID})
	}
	if p.KakaoAccessToken != "" {
		senders = append(senders, &KakaoSender{AccessToken: p.KakaoAccessToken})
	}
	return senders
}

package notifiers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/daybrief/daybrief/config"
	"github.com/daybrief/daybrief/digest"
	"github.com/daybrief/daybrief/enums"
)

// Notifier delivers a rendered report to one chat endpoint.
type Notifier interface {
	Name() enums.NotifierType
	Send(ctx context.Context, report *digest.Report) error
}

// New selects the notifier variant from config. Credentials are validated at
// startup; the checks here keep the constructors safe on their own.
func New(cfg *config.Config, client *http.Client) (Notifier, error) {
	switch cfg.NotifierType {
	case enums.NotifierTelegram:
		if cfg.TelegramBotToken == "" || cfg.TelegramChatID == "" {
			return nil, errors.New("telegram notifier requires bot token and chat id")
		}
		return NewTelegram(client, cfg.TelegramBotToken, cfg.TelegramChatID), nil
	case enums.NotifierDingTalk:
		if cfg.DingTalkWebhook == "" {
			return nil, errors.New("dingtalk notifier requires webhook url")
		}
		return NewDingTalk(client, cfg.DingTalkWebhook, cfg.DingTalkSecret), nil
	case enums.NotifierFeishu:
		if cfg.FeishuWebhook == "" {
			return nil, errors.New("feishu notifier requires webhook url")
		}
		return NewFeishu(client, cfg.FeishuWebhook), nil
	case enums.NotifierWeCom:
		if cfg.WeComWebhook == "" {
			return nil, errors.New("wecom notifier requires webhook url")
		}
		return NewWeCom(client, cfg.WeComWebhook), nil
	default:
		return nil, errors.Errorf("unsupported notifier type: %s", cfg.NotifierType)
	}
}

func postJSON(ctx context.Context, client *http.Client, url string, payload any) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, respBody, nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}

package notifiers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pkg/errors"

	"github.com/daybrief/daybrief/digest"
	"github.com/daybrief/daybrief/enums"
	"github.com/daybrief/daybrief/models"
)

const telegramBaseURL = "https://api.telegram.org"

type Telegram struct {
	client  *http.Client
	token   string
	chatID  string
	baseURL string
}

func NewTelegram(client *http.Client, token, chatID string) *Telegram {
	return &Telegram{
		client:  client,
		token:   token,
		chatID:  chatID,
		baseURL: telegramBaseURL,
	}
}

func (n *Telegram) Name() enums.NotifierType { return enums.NotifierTelegram }

// Send posts the rendered report through the bot API. The API signals errors
// with non-200 statuses, so that is the whole success check.
func (n *Telegram) Send(ctx context.Context, report *digest.Report) error {
	payload := models.TelegramSendMessage{
		ChatID:                n.chatID,
		Text:                  digest.Render(report),
		ParseMode:             "Markdown",
		DisableWebPagePreview: true,
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)
	status, body, err := postJSON(ctx, n.client, url, payload)
	if err != nil {
		return errors.Wrap(err, "telegram: send message")
	}
	if status != http.StatusOK {
		return errors.Errorf("telegram: status %d: %s", status, truncate(string(body), 300))
	}

	slog.Info("report sent", "notifier", n.Name())
	return nil
}

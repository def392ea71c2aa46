package notifiers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pkg/errors"

	"github.com/daybrief/daybrief/digest"
	"github.com/daybrief/daybrief/enums"
	"github.com/daybrief/daybrief/models"
)

type Feishu struct {
	client  *http.Client
	webhook string
}

func NewFeishu(client *http.Client, webhook string) *Feishu {
	return &Feishu{
		client:  client,
		webhook: webhook,
	}
}

func (n *Feishu) Name() enums.NotifierType { return enums.NotifierFeishu }

// Send delivers the report as plain text. The text surface cannot render
// markdown links, so they are rewritten to "label: url" first.
func (n *Feishu) Send(ctx context.Context, report *digest.Report) error {
	payload := models.FeishuMessage{
		MsgType: "text",
		Content: models.FeishuContent{
			Text: digest.StripMarkdownLinks(digest.Render(report)),
		},
	}

	status, body, err := postJSON(ctx, n.client, n.webhook, payload)
	if err != nil {
		return errors.Wrap(err, "feishu: send message")
	}
	if status != http.StatusOK {
		return errors.Errorf("feishu: status %d: %s", status, truncate(string(body), 300))
	}

	var result models.FeishuResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return errors.Wrap(err, "feishu: decode response")
	}
	if result.StatusCode != 0 {
		return errors.Errorf("feishu: status code %d: %s", result.StatusCode, truncate(string(body), 300))
	}

	slog.Info("report sent", "notifier", n.Name())
	return nil
}

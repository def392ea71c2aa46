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

type WeCom struct {
	client  *http.Client
	webhook string
}

func NewWeCom(client *http.Client, webhook string) *WeCom {
	return &WeCom{
		client:  client,
		webhook: webhook,
	}
}

func (n *WeCom) Name() enums.NotifierType { return enums.NotifierWeCom }

func (n *WeCom) Send(ctx context.Context, report *digest.Report) error {
	payload := models.WeComMessage{
		MsgType: "markdown",
		Markdown: models.WeComMarkdown{
			Content: digest.Render(report),
		},
	}

	status, body, err := postJSON(ctx, n.client, n.webhook, payload)
	if err != nil {
		return errors.Wrap(err, "wecom: send message")
	}
	if status != http.StatusOK {
		return errors.Errorf("wecom: status %d: %s", status, truncate(string(body), 300))
	}

	var result models.WeComResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return errors.Wrap(err, "wecom: decode response")
	}
	if result.ErrCode != 0 {
		return errors.Errorf("wecom: errcode %d: %s", result.ErrCode, result.ErrMsg)
	}

	slog.Info("report sent", "notifier", n.Name())
	return nil
}

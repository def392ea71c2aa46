package notifiers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	neturl "net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/daybrief/daybrief/digest"
	"github.com/daybrief/daybrief/enums"
	"github.com/daybrief/daybrief/models"
)

type DingTalk struct {
	client  *http.Client
	webhook string
	secret  string
}

func NewDingTalk(client *http.Client, webhook, secret string) *DingTalk {
	return &DingTalk{
		client:  client,
		webhook: webhook,
		secret:  secret,
	}
}

func (n *DingTalk) Name() enums.NotifierType { return enums.NotifierDingTalk }

func (n *DingTalk) Send(ctx context.Context, report *digest.Report) error {
	payload := models.DingTalkMessage{
		MsgType: "markdown",
		Markdown: models.DingTalkMarkdown{
			Title: "📊 Daily Brief",
			Text:  digest.Render(report),
		},
	}

	url := n.webhook
	if n.secret != "" {
		timestamp := time.Now().UnixMilli()
		url = fmt.Sprintf("%s&timestamp=%d&sign=%s", n.webhook, timestamp, dingTalkSign(n.secret, timestamp))
	}

	status, body, err := postJSON(ctx, n.client, url, payload)
	if err != nil {
		return errors.Wrap(err, "dingtalk: send message")
	}
	if status != http.StatusOK {
		return errors.Errorf("dingtalk: status %d: %s", status, truncate(string(body), 300))
	}

	var result models.DingTalkResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return errors.Wrap(err, "dingtalk: decode response")
	}
	if result.ErrCode != 0 {
		return errors.Errorf("dingtalk: errcode %d: %s", result.ErrCode, result.ErrMsg)
	}

	slog.Info("report sent", "notifier", n.Name())
	return nil
}

// dingTalkSign implements the webhook signing scheme: HMAC-SHA256 over
// "<millis>\n<secret>" keyed with the secret, base64ed, query escaped.
func dingTalkSign(secret string, timestamp int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d\n%s", timestamp, secret)
	return neturl.QueryEscape(base64.StdEncoding.EncodeToString(mac.Sum(nil)))
}

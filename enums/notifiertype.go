package enums

// NotifierType selects which delivery channel receives the digest.
// Exactly one notifier is active per run.
type NotifierType string

const (
	NotifierTelegram NotifierType = "telegram"
	NotifierDingTalk NotifierType = "dingtalk"
	NotifierFeishu   NotifierType = "feishu"
	NotifierWeCom    NotifierType = "wecom"
)

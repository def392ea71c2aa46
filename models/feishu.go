package models

type FeishuMessage struct {
	MsgType string        `json:"msg_type"`
	Content FeishuContent `json:"content"`
}

type FeishuContent struct {
	Text string `json:"text"`
}

type FeishuResponse struct {
	StatusCode int    `json:"StatusCode"`
	Code       int    `json:"code"`
	Msg        string `json:"msg"`
}

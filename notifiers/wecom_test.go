package notifiers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daybrief/daybrief/models"
)

func TestWeComSend_PostsMarkdownContent(t *testing.T) {
	var payload models.WeComMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(`{"errcode":0,"errmsg":"ok"}`))
	}))
	defer server.Close()

	err := NewWeCom(server.Client(), server.URL).Send(context.Background(), testReport())
	assert.NoError(t, err)

	assert.Equal(t, "markdown", payload.MsgType)
	assert.Contains(t, payload.Markdown.Content, "Good morning")
}

func TestWeComSend_APIErrorCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errcode":93000,"errmsg":"invalid webhook url"}`))
	}))
	defer server.Close()

	err := NewWeCom(server.Client(), server.URL).Send(context.Background(), testReport())
	assert.ErrorContains(t, err, "errcode 93000")
	assert.ErrorContains(t, err, "invalid webhook url")
}

func TestWeComSend_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error</html>`))
	}))
	defer server.Close()

	err := NewWeCom(server.Client(), server.URL).Send(context.Background(), testReport())
	assert.ErrorContains(t, err, "decode response")
}

package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestZalo(baseURL string) *zaloChannel {
	return &zaloChannel{
		accessToken: "test-token",
		recipientID: "admin-123",
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: 5 * time.Second},
	}
}

func TestZaloSend_Success(t *testing.T) {
	var gotPath, gotToken string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("access_token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	z := newTestZalo(srv.URL)
	err := z.Send(context.Background(), testOrder)
	require.NoError(t, err)

	assert.Equal(t, "/oa/message/push", gotPath)
	assert.Equal(t, "test-token", gotToken)

	recipient := gotBody["recipient"].(map[string]interface{})
	assert.Equal(t, "admin-123", recipient["user_id"])

	message := gotBody["message"].(map[string]interface{})
	assert.Contains(t, message["text"], "order #17")
	assert.Contains(t, message["text"], "130000")
}

func TestZaloSend_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid token"}`))
	}))
	defer srv.Close()

	z := newTestZalo(srv.URL)
	err := z.Send(context.Background(), testOrder)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid token")
}

func TestZaloSend_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	z := newTestZalo(srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := z.Send(ctx, testOrder)
	assert.Error(t, err)
}

func TestFormatZaloMessage_ReceiverPhoneFallback(t *testing.T) {
	data := testOrder
	data.Phone = "0901234567"
	data.ReceiverPhone = ""

	msg := formatZaloMessage(data)
	assert.Contains(t, msg, "Receiver phone: 0901234567")

	data.ReceiverPhone = "0987654321"
	msg = formatZaloMessage(data)
	assert.Contains(t, msg, "Receiver phone: 0987654321")
}

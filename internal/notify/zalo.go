package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"flowermart-be/internal/config"
)

const zaloBaseURL = "https://openapi.zalo.me/v3.0"

// zaloChannel pushes a plain-text order summary to the admin's Zalo OA
// conversation.
type zaloChannel struct {
	accessToken string
	recipientID string
	baseURL     string
	httpClient  *http.Client
}

func NewZaloChannel(cfg *config.Config) Channel {
	return &zaloChannel{
		accessToken: cfg.ZaloAccessToken,
		recipientID: cfg.ZaloAdminUserID,
		baseURL:     zaloBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (z *zaloChannel) Name() string { return "zalo" }

func (z *zaloChannel) Send(ctx context.Context, data OrderData) error {
	body := map[string]interface{}{
		"recipient": map[string]string{"user_id": z.recipientID},
		"message":   map[string]string{"text": formatZaloMessage(data)},
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", z.baseURL+"/oa/message/push", bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("access_token", z.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := z.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("zalo push returned %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

func formatZaloMessage(data OrderData) string {
	receiverPhone := data.ReceiverPhone
	if receiverPhone == "" {
		receiverPhone = data.Phone
	}

	return fmt.Sprintf(
		"New order #%d\nCustomer: %s\nPhone: %s\nAddress: %s\nReceiver: %s\nReceiver phone: %s\nDelivery: %s\nTotal: %dd",
		data.OrderID,
		data.CustomerName,
		data.Phone,
		data.Address,
		data.ReceiverName,
		receiverPhone,
		data.DeliveryTime,
		data.TotalAmount,
	)
}

package notify

import (
	"context"
	"fmt"
	"strings"

	"flowermart-be/internal/config"

	"gopkg.in/gomail.v2"
)

// mailSender is the slice of gomail.Dialer the channel needs; tests
// substitute their own.
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailChannel struct {
	sender     mailSender
	from       string
	adminEmail string
}

func NewEmailChannel(cfg *config.Config) Channel {
	return &emailChannel{
		sender:     gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:       cfg.SenderEmail,
		adminEmail: cfg.AdminEmail,
	}
}

func (e *emailChannel) Name() string { return "email" }

// Send delivers the admin alert and the customer confirmation in one
// SMTP session. Both ride the same attempt; a failure counts once.
func (e *emailChannel) Send(ctx context.Context, data OrderData) error {
	adminMsg := gomail.NewMessage()
	adminMsg.SetHeader("From", e.from)
	adminMsg.SetHeader("To", e.adminEmail)
	adminMsg.SetHeader("Subject", fmt.Sprintf("New order #%d", data.OrderID))
	adminMsg.SetBody("text/plain", adminBody(data))

	messages := []*gomail.Message{adminMsg}

	if data.Email != "" {
		customerMsg := gomail.NewMessage()
		customerMsg.SetHeader("From", e.from)
		customerMsg.SetHeader("To", data.Email)
		customerMsg.SetHeader("Subject", fmt.Sprintf("Order confirmation #%d", data.OrderID))
		customerMsg.SetBody("text/plain", customerBody(data))
		messages = append(messages, customerMsg)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return e.sender.DialAndSend(messages...)
}

func itemLines(items []Item) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "- %s x%d @ %dd\n", it.Name, it.Quantity, it.Price)
	}
	return b.String()
}

func adminBody(data OrderData) string {
	return fmt.Sprintf(
		"New order #%d\nCustomer: %s\nPhone: %s\nAddress: %s\nReceiver: %s (%s)\nDelivery: %s\n\nItems:\n%s\nTotal: %dd\n",
		data.OrderID, data.CustomerName, data.Phone, data.Address,
		data.ReceiverName, data.ReceiverPhone, data.DeliveryTime,
		itemLines(data.Items), data.TotalAmount,
	)
}

func customerBody(data OrderData) string {
	return fmt.Sprintf(
		"Hi %s,\n\nThank you for your order #%d.\n\nItems:\n%s\nTotal: %dd\n\nWe will deliver to: %s\n",
		data.CustomerName, data.OrderID,
		itemLines(data.Items), data.TotalAmount, data.Address,
	)
}

package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/adorzia/adorzia-backend/pkg/db/models"
	"github.com/adorzia/adorzia-backend/pkg/email"
	"github.com/adorzia/adorzia-backend/pkg/logger"
)

// Notifier is the outbound-notification surface consumed by other services.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
}

// Service composes and sends transactional email. A nil sender disables
// delivery without changing callers.
type Service struct {
	sender email.Sender
	logg   *logger.Logger
}

// NewService builds the notification service.
func NewService(sender email.Sender, logg *logger.Logger) *Service {
	return &Service{sender: sender, logg: logg}
}

// SendOrderConfirmation emails the order receipt to the order's address.
// Orders without an email address are skipped silently.
func (s *Service) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	if s == nil || s.sender == nil {
		return nil
	}
	if order == nil || order.Email == nil || *order.Email == "" {
		return nil
	}

	subject := fmt.Sprintf("Your Adorzia order %s is confirmed", order.OrderNumber)
	msg := email.Message{
		To:      []string{*order.Email},
		Subject: subject,
		HTML:    confirmationHTML(order),
		Text:    confirmationText(order),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("sending order confirmation: %w", err)
	}
	if s.logg != nil {
		s.logg.Info(ctx, "order confirmation sent "+order.OrderNumber)
	}
	return nil
}

func confirmationHTML(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>Thank you for your order</h1>")
	fmt.Fprintf(&b, "<p>Order <strong>%s</strong> is confirmed.</p>", order.OrderNumber)
	b.WriteString("<ul>")
	for _, item := range order.Items {
		name := item.Title
		if label := item.Variant.Label(); label != "" {
			name = fmt.Sprintf("%s (%s)", name, label)
		}
		fmt.Fprintf(&b, "<li>%d × %s — %s</li>", item.Quantity, name, dollars(item.TotalCents))
	}
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "<p>Shipping: %s</p>", dollars(order.ShippingCents))
	fmt.Fprintf(&b, "<p>Total: <strong>%s</strong></p>", dollars(order.TotalCents))
	return b.String()
}

func confirmationText(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order.\n\nOrder %s is confirmed.\n\n", order.OrderNumber)
	for _, item := range order.Items {
		name := item.Title
		if label := item.Variant.Label(); label != "" {
			name = fmt.Sprintf("%s (%s)", name, label)
		}
		fmt.Fprintf(&b, "  %d x %s - %s\n", item.Quantity, name, dollars(item.TotalCents))
	}
	fmt.Fprintf(&b, "\nShipping: %s\nTotal: %s\n", dollars(order.ShippingCents), dollars(order.TotalCents))
	return b.String()
}

func dollars(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

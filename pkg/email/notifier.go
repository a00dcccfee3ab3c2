package email

import (
	"context"
	"fmt"
)

// StatusNotifier emails an operations address whenever an order's status
// changes. Errors are logged inside the sender and swallowed here; a failed
// notification never affects the status transition itself.
type StatusNotifier struct {
	sender    Sender
	templates *TemplateManager
	to        string
}

// NewStatusNotifier wires a sender and template set to a recipient address.
func NewStatusNotifier(sender Sender, templates *TemplateManager, to string) *StatusNotifier {
	return &StatusNotifier{sender: sender, templates: templates, to: to}
}

// NotifyStatusChange sends a best-effort status-change email.
func (n *StatusNotifier) NotifyStatusChange(ctx context.Context, orderID int, status string) {
	subject := fmt.Sprintf("Order #%d is now %s", orderID, status)
	text := fmt.Sprintf("Order #%d status changed to %s.", orderID, status)

	html, err := n.templates.GenerateStatusUpdateEmailHTML(StatusUpdateData{OrderID: orderID, Status: status})
	if err != nil {
		logger.Error().Err(err).Int("order_id", orderID).Msg("failed to render status-update email")
		return
	}

	if err := n.sender.SendEmail(ctx, n.to, subject, text, html); err != nil {
		logger.Warn().Int("order_id", orderID).Str("status", status).Msg("status notification not delivered")
	}
}

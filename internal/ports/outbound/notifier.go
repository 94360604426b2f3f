package outbound

import (
	"context"

	"nofa-store-service/internal/domain/bid"
	"nofa-store-service/internal/domain/item"
	"nofa-store-service/internal/domain/shared"
)

// Notifier defines the interface for best-effort admin notifications.
// Implementations must never let a delivery failure reach the caller:
// the bid-acceptance path treats notification as fire-and-forget.
type Notifier interface {
	// NotifyNewBid announces an accepted bid to the shop admin.
	// Always returns nil; transport errors are logged and swallowed.
	NotifyNewBid(ctx context.Context, item *item.Item, bid *bid.Bid) error

	// SendTest performs one synchronous delivery attempt so the admin
	// can verify the SMTP settings. Unlike NotifyNewBid it reports
	// the transport error.
	SendTest(ctx context.Context) error

	// Settings returns a presence-only snapshot of the mail settings
	Settings() shared.MailSettings
}

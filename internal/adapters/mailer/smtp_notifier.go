package mailer

import (
	"context"
	"fmt"
	"time"

	"nofa-store-service/internal/config"
	"nofa-store-service/internal/domain/bid"
	"nofa-store-service/internal/domain/item"
	"nofa-store-service/internal/domain/shared"

	"github.com/alitto/pond"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// sendTimeout bounds one delivery attempt. A stuck SMTP peer must never
// delay a bidder's response or the pool's other deliveries.
const sendTimeout = 10 * time.Second

// SMTPNotifier sends best-effort admin emails over SMTP. When the SMTP
// settings are incomplete it degrades to a no-op that reports success.
// Deliveries run on a small bounded worker pool so the bid-acceptance
// path never waits on the mail transport. One attempt per bid, no retry.
type SMTPNotifier struct {
	smtp       config.SMTPConfig
	adminEmail string
	enabled    bool
	pool       *pond.WorkerPool
	send       func(m *gomail.Message) error
	logger     zerolog.Logger
}

type SMTPNotifierParams struct {
	SMTP       config.SMTPConfig
	AdminEmail string
	Logger     zerolog.Logger
}

// NewSMTPNotifier creates a new SMTP notifier
func NewSMTPNotifier(params SMTPNotifierParams) *SMTPNotifier {
	n := &SMTPNotifier{
		smtp:       params.SMTP,
		adminEmail: params.AdminEmail,
		enabled:    params.SMTP.Complete(params.AdminEmail),
		pool:       pond.New(config.MailerMaxWorkers, config.MailerMaxCapacity, pond.Strategy(pond.Balanced())),
		logger:     params.Logger.With().Str("component", "smtp_notifier").Logger(),
	}
	n.send = n.dialAndSend

	if !n.enabled {
		n.logger.Warn().Msg("SMTP settings incomplete, bid notifications disabled")
	}

	return n
}

// NotifyNewBid announces an accepted bid to the shop admin. The delivery
// attempt is queued on the worker pool; transport failures are logged and
// swallowed so the caller always sees success.
func (n *SMTPNotifier) NotifyNewBid(ctx context.Context, it *item.Item, b *bid.Bid) error {
	if !n.enabled {
		n.logger.Debug().Str("bid_id", b.ID.String()).Msg("Mailer disabled, skipping bid notification")
		return nil
	}

	subject := fmt.Sprintf("New bid on %s", it.Name)
	body := fmt.Sprintf("A new bid of €%.2f was placed by %s (%s) on item %s - %s",
		b.Amount, b.BidderName, b.BidderEmail, it.ID, it.Name)
	bidID := b.ID.String()

	n.pool.Submit(func() {
		if err := n.sendWithTimeout(subject, body); err != nil {
			n.logger.Error().Err(err).Str("bid_id", bidID).Msg("Failed to send bid notification")
			return
		}
		n.logger.Info().Str("bid_id", bidID).Str("to", n.adminEmail).Msg("Bid notification sent")
	})

	return nil
}

// SendTest performs one synchronous delivery attempt and reports the
// transport error, so the admin can verify the SMTP settings.
func (n *SMTPNotifier) SendTest(ctx context.Context) error {
	if !n.enabled {
		return shared.ErrMailerNotConfigured
	}

	if err := n.sendWithTimeout("NOFA Vintage test mail", "Test message from the admin test-email endpoint"); err != nil {
		n.logger.Error().Err(err).Msg("Test email failed")
		return fmt.Errorf("%w: %v", shared.ErrMailerSendFailed, err)
	}

	n.logger.Info().Str("to", n.adminEmail).Msg("Test email sent")
	return nil
}

// Settings returns a presence-only snapshot of the mail settings
func (n *SMTPNotifier) Settings() shared.MailSettings {
	return shared.MailSettings{
		SMTPServer:   n.smtp.Server != "",
		SMTPPort:     n.smtp.Port != 0,
		SMTPUsername: n.smtp.Username != "",
		SMTPPassword: n.smtp.Password != "",
		FromEmail:    n.smtp.From != "",
		AdminEmail:   n.adminEmail != "",
	}
}

// Stop drains the worker pool, waiting for queued deliveries
func (n *SMTPNotifier) Stop() {
	n.pool.StopAndWait()
}

func (n *SMTPNotifier) sendWithTimeout(subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.smtp.From)
	m.SetHeader("To", n.adminEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	done := make(chan error, 1)
	go func() {
		done <- n.send(m)
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(sendTimeout):
		return fmt.Errorf("smtp send timed out after %s", sendTimeout)
	}
}

func (n *SMTPNotifier) dialAndSend(m *gomail.Message) error {
	dialer := gomail.NewDialer(n.smtp.Server, n.smtp.Port, n.smtp.Username, n.smtp.Password)
	// Port 465 is implicit TLS; everything else negotiates STARTTLS
	dialer.SSL = n.smtp.UseTLS && n.smtp.Port == 465
	return dialer.DialAndSend(m)
}

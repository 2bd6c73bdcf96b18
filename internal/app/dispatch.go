package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"medicine_reminder/internal/domain/intake"
	"medicine_reminder/internal/domain/medicine"
	"medicine_reminder/internal/domain/notify"
	"medicine_reminder/internal/domain/user"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Dispatcher fans out best-effort notifications. Every send is bounded by a
// timeout and every failure is logged and swallowed: the ledger is the source
// of truth, notification is advisory.
type Dispatcher struct {
	mailer   notify.Notifier
	telegram notify.Notifier // nil when the Telegram channel is not configured
	timeout  time.Duration
	logger   *logrus.Logger
}

func NewDispatcher(mailer, telegram notify.Notifier, timeout time.Duration, logger *logrus.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{mailer: mailer, telegram: telegram, timeout: timeout, logger: logger}
}

// SendReminder delivers a reminder-due message to the user: over Telegram when
// the user has linked a chat and the channel is configured, by email otherwise.
func (d *Dispatcher) SendReminder(ctx context.Context, u *user.User, med *medicine.Medicine, hhmm string) {
	subject := "Medicine Reminder"
	body := fmt.Sprintf(
		"<h3>Time to take your medicine</h3>"+
			"<p><b>Medicine:</b> %s</p>"+
			"<p><b>Dosage:</b> %s</p>"+
			"<p><b>Time:</b> %s</p>",
		med.Name, med.Dosage, hhmm)

	if d.telegram != nil && u.TelegramChatID.Valid {
		d.send(ctx, d.telegram, notify.Message{
			To:      strconv.FormatInt(u.TelegramChatID.Int64, 10),
			Subject: subject,
			Body:    body,
		})
		return
	}
	d.send(ctx, d.mailer, notify.Message{To: u.Email, Subject: subject, Body: body})
}

// SendGuardianAlert tells the user's guardian about a recorded dose outcome.
// Callers are expected to have checked GuardianEmail and NotifyGuardian.
func (d *Dispatcher) SendGuardianAlert(ctx context.Context, u *user.User, med *medicine.Medicine, date time.Time, hhmm string, status intake.Status) {
	var msg notify.Message
	msg.To = u.GuardianEmail.String

	if status == intake.StatusTaken {
		msg.Subject = "Medicine Taken Alert"
		msg.Body = fmt.Sprintf(
			"<h3>Medicine Intake Notification</h3>"+
				"<p><strong>%s</strong> has taken their medicine.</p>"+
				"<p><strong>Medicine:</strong> %s</p>"+
				"<p><strong>Dosage:</strong> %s</p>"+
				"<p><strong>Date:</strong> %s</p>"+
				"<p><strong>Time:</strong> %s</p>"+
				"<hr/><small>Medicine Reminder System</small>",
			u.Name, med.Name, med.Dosage, date.Format("2006-01-02"), hhmm)
	} else {
		msg.Subject = "Medicine Missed Alert"
		msg.Body = fmt.Sprintf(
			"<h3>Missed Dose Alert</h3>"+
				"<p><strong>%s</strong> missed a scheduled medicine.</p>"+
				"<p><strong>Medicine:</strong> %s</p>"+
				"<p><strong>Time:</strong> %s</p>",
			u.Name, med.Name, hhmm)
	}
	d.send(ctx, d.mailer, msg)
}

func (d *Dispatcher) send(ctx context.Context, n notify.Notifier, msg notify.Message) {
	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	// Delivery ID correlates the attempt across log lines and provider support
	// tickets.
	entry := d.logger.WithFields(logrus.Fields{
		"delivery_id": uuid.NewString(),
		"to":          msg.To,
		"subject":     msg.Subject,
	})
	if err := n.Send(sendCtx, msg); err != nil {
		entry.WithError(err).Warn("Notification send failed")
		return
	}
	entry.Debug("Notification sent")
}

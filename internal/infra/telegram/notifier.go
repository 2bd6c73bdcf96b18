// internal/infra/telegram/notifier.go
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"medicine_reminder/internal/domain/notify"

	"gopkg.in/telebot.v3"
)

// TelebotNotifier implements the notify.Notifier interface using the
// gopkg.in/telebot.v3 library. Message.To carries the recipient chat ID in
// decimal form; the HTML body is passed through, Telegram understands the
// small tag subset the dispatcher emits.
type TelebotNotifier struct {
	bot *telebot.Bot
}

func NewTelebotNotifier(token string) (*TelebotNotifier, error) {
	bot, err := telebot.NewBot(telebot.Settings{Token: token, Offline: false})
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	return &TelebotNotifier{bot: bot}, nil
}

func (n *TelebotNotifier) Send(ctx context.Context, msg notify.Message) error {
	chatID, err := strconv.ParseInt(msg.To, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid Telegram chat ID %q: %w", msg.To, err)
	}

	text := msg.Body
	if msg.Subject != "" {
		text = "<b>" + msg.Subject + "</b>\n" + text
	}
	// Telegram HTML does not know these block tags.
	text = strings.NewReplacer("<h3>", "<b>", "</h3>", "</b>\n", "<p>", "", "</p>", "\n", "<hr/>", "\n", "<small>", "", "</small>", "").Replace(text)

	recipient := &telebot.User{ID: chatID}
	_, err = n.bot.Send(recipient, text, &telebot.SendOptions{ParseMode: telebot.ModeHTML})
	return err
}

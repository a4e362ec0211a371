// internal/infra/telegram/notifier.go
package telegram

import (
	"fmt"

	"gopkg.in/telebot.v3"
)

// TelebotNotifier implements the app.FailureNotifier interface using the
// gopkg.in/telebot.v3 library, sending failure alerts to the configured
// admin chat.
type TelebotNotifier struct {
	bot         *telebot.Bot
	adminChatID int64
}

func NewTelebotNotifier(token string, adminChatID int64) (*TelebotNotifier, error) {
	// Only the send path is used, so no poller is configured or started.
	// NewBot still verifies the token against the API at startup.
	bot, err := telebot.NewBot(telebot.Settings{Token: token})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &TelebotNotifier{bot: bot, adminChatID: adminChatID}, nil
}

// NotifyFailure sends a short alert naming the failed job and its error.
func (n *TelebotNotifier) NotifyFailure(jobName string, jobErr error) error {
	recipient := &telebot.User{ID: n.adminChatID}
	text := fmt.Sprintf("CRM maintenance job %q failed: %v", jobName, jobErr)
	_, err := n.bot.Send(recipient, text)
	return err
}

package bot

import (
	"strconv"

	"github.com/krex38/subgate/config"
	"github.com/krex38/subgate/pkg/log"
	tb "gopkg.in/tucnak/telebot.v2"
)

// NotifyUser sends a best-effort DM. Implements service.Notifier.
func (b *Bot) NotifyUser(userID string, message string) error {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return err
	}
	_, err = b.Bot.Send(&tb.User{ID: id}, message, tb.Silent)
	return err
}

// GrantRole lifts the restrictions for the user in the subscribers chat,
// which is what the subscriber role maps to on this platform. Implements
// service.RoleGranter.
func (b *Bot) GrantRole(userID string) error {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return err
	}
	chatID := config.GetConfig().SubscribersChatID
	if chatID != 0 {
		member := &tb.ChatMember{
			User: &tb.User{ID: id},
			Rights: tb.Rights{
				CanSendMessages: true,
				CanSendMedia:    true,
				CanSendOther:    true,
				CanAddPreviews:  true,
			},
		}
		if err := b.Bot.Restrict(&tb.Chat{ID: chatID}, member); err != nil {
			return err
		}
	}
	// the grant itself succeeded; the congratulation is best-effort
	if _, err := b.Bot.Send(&tb.User{ID: id},
		"Verification successful! Your subscriber role has been assigned and you now have access to subscriber chats.",
		tb.Silent); err != nil {
		log.Warn("success notification for %v: %v", userID, err)
	}
	return nil
}

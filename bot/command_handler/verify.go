package command_handler

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/krex38/subgate/bot"
	"github.com/krex38/subgate/config"
	"github.com/krex38/subgate/model"
	"github.com/krex38/subgate/pkg/log"
	"github.com/krex38/subgate/service"
	tb "gopkg.in/tucnak/telebot.v2"
)

func init() {
	bot.RegisterCommands("verify", Verify)
}

// Verify issues a one-time verification session and DMs the upload link with
// the instructions built from the current settings.
func Verify(b *bot.Bot, m *tb.Message, params []string) {
	userID := strconv.FormatInt(m.Sender.ID, 10)
	banned, err := b.Blacklist.IsBanned(userID)
	if err != nil {
		log.Warn("Verify: blacklist check for %v: %v", userID, err)
	}
	if banned {
		_, _ = b.Bot.Reply(m, "Access denied: your account has been blacklisted for attempting to use fake screenshots. This action is permanent.", tb.Silent)
		return
	}

	setting, err := service.GetSetting()
	if err != nil {
		log.Warn("Verify: %v", err)
		_, _ = b.Bot.Reply(m, "Failed to create verification link. Please try again.", tb.Silent)
		return
	}
	// refresh the latest-video display text while like/comment evidence is
	// asked for
	if (setting.RequiredActions.Like || setting.RequiredActions.Comment) && b.YouTube != nil && setting.ChannelID != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		video, err := b.YouTube.GetLatestVideo(ctx, setting.ChannelID)
		cancel()
		if err != nil {
			log.Warn("Verify: latest video: %v", err)
		} else if video.ID != setting.LatestVideoID {
			setting.LatestVideoID = video.ID
			setting.LatestVideoTitle = video.Title
			if err := service.SaveSetting(setting); err != nil {
				log.Warn("Verify: %v", err)
			}
		}
	}

	token, err := b.Sessions.Create(userID)
	if err != nil {
		log.Error("Verify: create session: %v", err)
		_, _ = b.Bot.Reply(m, "Failed to create verification link. Please try again.", tb.Silent)
		return
	}
	u := url.URL{
		Scheme:   "https",
		Host:     config.GetConfig().Host,
		Path:     "verify",
		RawQuery: url.Values{"userid": {userID}, "token": {token}}.Encode(),
	}
	_, err = b.Bot.Send(m.Sender, instructions(setting, u.String()), tb.Silent, tb.NoPreview)
	if err != nil {
		log.Warn("Verify: DM to %v: %v", userID, err)
		_, _ = b.Bot.Reply(m, "Cannot send you a DM. Please allow messages from this bot and try again.", tb.Silent)
	}
}

func instructions(setting *model.Setting, link string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v subscription verification\n\n", setting.ChannelTitle)
	sb.WriteString("1. Open the link below\n")
	fmt.Fprintf(&sb, "2. Upload a screenshot showing you are subscribed to %v\n", setting.ChannelTitle)
	step := 3
	if setting.RequiredActions.Like {
		fmt.Fprintf(&sb, "%v. Like the latest video and make sure the like button is filled\n", step)
		step++
	}
	if setting.RequiredActions.Comment {
		fmt.Fprintf(&sb, "%v. Leave a comment and show it in your screenshot\n", step)
	}
	if setting.LatestVideoTitle != "" {
		fmt.Fprintf(&sb, "\nLatest video: %v\n", setting.LatestVideoTitle)
	}
	fmt.Fprintf(&sb, "\n%v", link)
	return sb.String()
}

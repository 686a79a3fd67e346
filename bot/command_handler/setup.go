package command_handler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/krex38/subgate/bot"
	"github.com/krex38/subgate/config"
	"github.com/krex38/subgate/model"
	"github.com/krex38/subgate/pkg/log"
	"github.com/krex38/subgate/service"
	tb "gopkg.in/tucnak/telebot.v2"
)

func init() {
	bot.RegisterCommands("setup", Setup)
}

// Setup persists the verification requirements:
// /setup <channelID> <like:true|false> <comment:true|false> [name variants...]
func Setup(b *bot.Bot, m *tb.Message, params []string) {
	if m.Sender.ID != config.GetConfig().AdminID {
		_, _ = b.Bot.Reply(m, "Only administrators can use this command.", tb.Silent)
		return
	}
	if len(params) < 3 {
		_, _ = b.Bot.Reply(m, "Usage: /setup <channelID> <like:true|false> <comment:true|false> [name variants...]", tb.Silent)
		return
	}
	channelID := params[0]
	requireLike, err := strconv.ParseBool(params[1])
	if err != nil {
		_, _ = b.Bot.Reply(m, "Usage: /setup <channelID> <like:true|false> <comment:true|false> [name variants...]", tb.Silent)
		return
	}
	requireComment, err := strconv.ParseBool(params[2])
	if err != nil {
		_, _ = b.Bot.Reply(m, "Usage: /setup <channelID> <like:true|false> <comment:true|false> [name variants...]", tb.Silent)
		return
	}

	title := channelID
	var subscribers, videos uint64
	if b.YouTube != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		info, err := b.YouTube.GetChannelInfo(ctx, channelID)
		cancel()
		if err != nil {
			log.Warn("Setup: %v", err)
			_, _ = b.Bot.Reply(m, "Could not find the YouTube channel. Please check the ID.", tb.Silent)
			return
		}
		title = info.Title
		subscribers = info.SubscriberCount
		videos = info.VideoCount
	}

	variants := append([]string{service.Normalize(title)}, params[3:]...)
	setting := &model.Setting{
		ChannelID:       channelID,
		ChannelTitle:    title,
		ChannelVariants: variants,
		RequiredActions: model.RequiredActions{
			Subscribe: true,
			Like:      requireLike,
			Comment:   requireComment,
		},
	}
	if err := service.SaveSetting(setting); err != nil {
		log.Error("Setup: %v", err)
		_, _ = b.Bot.Reply(m, "Failed to save the settings.", tb.Silent)
		return
	}
	_, _ = b.Bot.Reply(m, fmt.Sprintf(
		"Verification requirements updated.\nChannel: %v\nSubscribers: %v\nVideos: %v\nLike required: %v\nComment required: %v",
		title, subscribers, videos, requireLike, requireComment,
	), tb.Silent)
}

package command_handler

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/krex38/subgate/bot"
	"github.com/krex38/subgate/config"
	"github.com/krex38/subgate/pkg/log"
	tb "gopkg.in/tucnak/telebot.v2"
)

func init() {
	bot.RegisterCommands("watermark", Watermark)
}

const uploadWindow = 30 * time.Second

// Watermark registers a decoy image: /watermark <adminkey> with an attached
// image, or followed by the image within the upload window.
func Watermark(b *bot.Bot, m *tb.Message, params []string) {
	adminKey := config.GetConfig().AdminKey
	if adminKey == "" || len(params) < 1 || params[0] != adminKey {
		_, _ = b.Bot.Reply(m, "Invalid admin key.", tb.Silent)
		return
	}

	if f := imageFile(m); f != nil {
		processWatermark(b, m, f)
		return
	}
	_, _ = b.Bot.Reply(m, fmt.Sprintf("Please upload the watermark image. Waiting %v...", uploadWindow), tb.Silent)
	collected, err := b.Collectors.Wait(m.Sender.ID, uploadWindow, func(mm *tb.Message) bool {
		return imageFile(mm) != nil
	})
	if err != nil {
		if err == bot.WaitTimeoutErr {
			_, _ = b.Bot.Reply(m, fmt.Sprintf("No image was uploaded within %v.", uploadWindow), tb.Silent)
		} else {
			_, _ = b.Bot.Reply(m, err.Error(), tb.Silent)
		}
		return
	}
	processWatermark(b, collected, imageFile(collected))
}

func imageFile(m *tb.Message) *tb.File {
	switch {
	case m.Photo != nil:
		return &m.Photo.File
	case m.Document != nil && strings.HasPrefix(m.Document.MIME, "image/"):
		return &m.Document.File
	}
	return nil
}

func processWatermark(b *bot.Bot, m *tb.Message, f *tb.File) {
	rc, err := b.Bot.GetFile(f)
	if err != nil {
		log.Warn("Watermark: %v", err)
		_, _ = b.Bot.Reply(m, "Failed to download the image.", tb.Silent)
		return
	}
	defer rc.Close()
	imageBytes, err := io.ReadAll(rc)
	if err != nil {
		log.Warn("Watermark: %v", err)
		_, _ = b.Bot.Reply(m, "Failed to download the image.", tb.Silent)
		return
	}
	hash, err := b.Decoys.RegisterDecoy(imageBytes)
	if err != nil {
		log.Warn("Watermark: %v", err)
		_, _ = b.Bot.Reply(m, "Failed to process the image.", tb.Silent)
		return
	}
	log.Info("watermark registered: %v", hash)
	_, _ = b.Bot.Reply(m, fmt.Sprintf("Watermark added to the detection system.\nHash: %v", hash), tb.Silent)
}

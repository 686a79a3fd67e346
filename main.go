package main

import (
	"context"
	"time"

	"github.com/krex38/subgate/bot"
	_ "github.com/krex38/subgate/bot/command_handler"
	"github.com/krex38/subgate/config"
	"github.com/krex38/subgate/pkg/log"
	"github.com/krex38/subgate/pkg/ocr"
	"github.com/krex38/subgate/pkg/youtube"
	"github.com/krex38/subgate/service"
	"github.com/krex38/subgate/webserver/controller"
	"github.com/krex38/subgate/webserver/router"
)

func main() {
	conf := config.GetConfig()

	sessions := service.NewSessionStore(time.Duration(conf.VerificationTimeout) * time.Second)
	blacklist := service.NewBlacklist(conf.Config)
	decoys, err := service.NewDecoyStore(conf.Config)
	if err != nil {
		log.Fatal("decoy store: %v", err)
	}
	phrases, err := service.LoadPhrases(conf.PhrasesFile)
	if err != nil {
		log.Fatal("phrases: %v", err)
	}
	engine := ocr.New(conf.OcrLanguage, time.Duration(conf.OcrTimeout)*time.Second, conf.OcrConcurrency)

	var yt *youtube.Client
	if conf.YouTubeAPIKey != "" {
		yt, err = youtube.New(context.Background(), conf.YouTubeAPIKey)
		if err != nil {
			log.Fatal("youtube: %v", err)
		}
	}

	verifier := &service.Verifier{
		Sessions:  sessions,
		Blacklist: blacklist,
		Decoys:    decoys,
		Text:      service.NewTextVerifier(engine, phrases),
		Settings:  service.GetSetting,
	}

	if conf.BotToken != "" {
		b, err := bot.New(conf.BotToken, nil, bot.Options{
			Sessions:  sessions,
			Blacklist: blacklist,
			Decoys:    decoys,
			YouTube:   yt,
		})
		if err != nil {
			log.Fatal("Bot: %v", err)
		}
		blacklist.Notifier = b
		verifier.Roles = b
		go b.Start()
	}

	GoBackgrounds(sessions, yt)

	controller.Init(verifier, decoys, conf.AdminKey)
	if err := router.Run(); err != nil {
		log.Fatal("%v", err)
	}
}

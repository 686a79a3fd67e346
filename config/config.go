package config

import (
	log2 "log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/krex38/subgate/common"
	"github.com/krex38/subgate/db"
	"github.com/krex38/subgate/pkg/log"
	"github.com/stevenroose/gonfig"
)

type Params struct {
	Address             string `id:"address" short:"a" default:"0.0.0.0:3000" desc:"Listening address"`
	Config              string `id:"config" short:"c" default:"$HOME/.config/subgate" desc:"Subgate configuration directory"`
	Host                string `id:"host" default:"localhost:3000" desc:"Public host used in verification links"`
	BotToken            string `id:"bot-token" desc:"Telegram bot token"`
	AdminKey            string `id:"admin-key" desc:"Shared secret for watermark administration"`
	AdminID             int64  `id:"admin-id" desc:"Telegram user ID allowed to run /setup"`
	SubscribersChatID   int64  `id:"subscribers-chat" desc:"Chat whose membership the subscriber role maps to"`
	YouTubeAPIKey       string `id:"youtube-api-key" desc:"YouTube Data API key for channel/video lookups"`
	VerificationTimeout int64  `id:"verification-timeout" default:"300" desc:"Verification session lifetime in seconds"`
	OcrLanguage         string `id:"ocr-language" default:"eng" desc:"Tesseract language"`
	OcrTimeout          int64  `id:"ocr-timeout" default:"30" desc:"OCR extraction timeout in seconds"`
	OcrConcurrency      int64  `id:"ocr-concurrency" default:"2" desc:"Maximum concurrent OCR extractions"`
	PhrasesFile         string `id:"phrases-file" desc:"JSON array of locale-variant subscribe phrases (default: translations.json under the config dir)"`
	LogLevel            string `id:"log-level" default:"info" desc:"Optional values: trace, debug, info, warn or error"`
	LogFile             string `id:"log-file" desc:"The path of log file"`
	LogMaxDays          int64  `id:"log-max-days" default:"3" desc:"Maximum number of days to keep log files"`
	LogDisableColor     bool   `id:"log-disable-color"`
	LogDisableTimestamp bool   `id:"log-disable-timestamp"`
}

var params Params

func initFunc() {
	err := gonfig.Load(&params, gonfig.Conf{
		FileDisable:       true,
		FlagIgnoreUnknown: false,
		EnvPrefix:         "SUBGATE_",
	})
	if err != nil {
		if err.Error() != "unexpected word while parsing flags: '-test.v'" {
			log2.Fatal(err)
		}
	}
	// replace all dots of the filename with underlines
	params.Config = filepath.Join(
		filepath.Dir(params.Config),
		strings.ReplaceAll(filepath.Base(params.Config), ".", "_"),
	)
	// expand '~' with user home
	params.Config, err = common.HomeExpand(params.Config)
	if err != nil {
		log2.Fatal(err)
	}
	params.LogFile, err = common.HomeExpand(params.LogFile)
	if err != nil {
		log2.Fatal(err)
	}
	if strings.Contains(params.Config, "$HOME") {
		if h, err := os.UserHomeDir(); err == nil {
			params.Config = strings.ReplaceAll(params.Config, "$HOME", h)
		}
	}
	if err := os.MkdirAll(params.Config, 0700); err != nil {
		log2.Fatal(err)
	}
	if params.PhrasesFile == "" {
		params.PhrasesFile = filepath.Join(params.Config, "translations.json")
	}
	logWay := "console"
	if params.LogFile != "" {
		logWay = "file"
	}
	log.InitLog(logWay, params.LogFile, params.LogLevel, params.LogMaxDays, params.LogDisableColor, params.LogDisableTimestamp)
	db.InitDB(params.Config)
}

var once sync.Once

func GetConfig() *Params {
	once.Do(initFunc)
	return &params
}

package bot

import (
	"strings"
	"time"

	"github.com/krex38/subgate/pkg/youtube"
	"github.com/krex38/subgate/service"
	tb "gopkg.in/tucnak/telebot.v2"
)

type Bot struct {
	Bot        *tb.Bot
	Sessions   *service.SessionStore
	Blacklist  *service.Blacklist
	Decoys     *service.DecoyStore
	YouTube    *youtube.Client
	Collectors *CollectorSet
}

type CommandHandler func(b *Bot, m *tb.Message, params []string)

var GlobalCommandMapper = make(map[string]CommandHandler)

func RegisterCommands(command string, f CommandHandler) {
	GlobalCommandMapper[command] = f
}

type Options struct {
	Sessions  *service.SessionStore
	Blacklist *service.Blacklist
	Decoys    *service.DecoyStore
	YouTube   *youtube.Client
}

// New builds the bot without starting it; call Start to begin polling.
func New(token string, poller *tb.LongPoller, opts Options) (*Bot, error) {
	if poller == nil {
		poller = &tb.LongPoller{Timeout: 15 * time.Second}
	}
	b, err := tb.NewBot(tb.Settings{
		Token:  token,
		Poller: poller,
	})
	if err != nil {
		return nil, err
	}
	bot := &Bot{
		Bot:        b,
		Sessions:   opts.Sessions,
		Blacklist:  opts.Blacklist,
		Decoys:     opts.Decoys,
		YouTube:    opts.YouTube,
		Collectors: NewCollectorSet(),
	}
	b.Handle(tb.OnText, func(m *tb.Message) {
		if !strings.HasPrefix(m.Text, "/") || len(m.Text) <= 1 {
			return
		}
		text := strings.TrimPrefix(m.Text, "/")
		fields := strings.Fields(text)
		if handler, ok := GlobalCommandMapper[fields[0]]; ok {
			handler(bot, m, fields[1:])
		}
	})
	// images outside a command go to whatever collector is waiting for them
	b.Handle(tb.OnPhoto, func(m *tb.Message) {
		bot.Collectors.Offer(m)
	})
	b.Handle(tb.OnDocument, func(m *tb.Message) {
		bot.Collectors.Offer(m)
	})
	return bot, nil
}

func (b *Bot) Start() {
	b.Bot.Start()
}

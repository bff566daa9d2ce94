package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"deriv_bot/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Notifier interface {
	Send(msg string)
	Sendf(format string, args ...any)
}

// botAPI — часть *tgbot.BotAPI, которой пользуется нотифайер.
type botAPI interface {
	Send(c tgbot.Chattable) (tgbot.Message, error)
	GetUpdatesChan(config tgbot.UpdateConfig) tgbot.UpdatesChannel
	StopReceivingUpdates()
}

// CommandFunc отвечает текстом на команду из чата.
type CommandFunc func(ctx context.Context) string

// Telegram — пассивный нотифайер + ответы на команды владельца чата.
type Telegram struct {
	bot    botAPI
	chatID int64

	mu       sync.Mutex
	commands map[string]CommandFunc
	started  bool
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return newTelegram(b, chatID), nil
}

func newTelegram(b botAPI, chatID int64) *Telegram {
	return &Telegram{
		bot:      b,
		chatID:   chatID,
		commands: make(map[string]CommandFunc),
	}
}

func (t *Telegram) Send(msg string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	if _, err := t.bot.Send(tgbot.NewMessage(t.chatID, msg)); err != nil {
		logger.Error("[TG] send error: %v", err)
	}
}

func (t *Telegram) Sendf(format string, args ...any) { t.Send(fmt.Sprintf(format, args...)) }

// Handle регистрирует команду (без слэша). Регистрировать до Start.
func (t *Telegram) Handle(command string, fn CommandFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.commands[strings.TrimPrefix(command, "/")] = fn
}

// dispatch отвечает на команду; чужие чаты и не-команды игнорируются.
func (t *Telegram) dispatch(ctx context.Context, msg *tgbot.Message) {
	if msg == nil || msg.Chat == nil || msg.Chat.ID != t.chatID || !msg.IsCommand() {
		return
	}
	t.mu.Lock()
	fn, ok := t.commands[msg.Command()]
	t.mu.Unlock()
	if !ok {
		t.Sendf("Неизвестная команда /%s", msg.Command())
		return
	}
	t.Send(fn(ctx))
}

// Start: long-polling для messages.
func (t *Telegram) Start(ctx context.Context) error {
	if t == nil || t.bot == nil {
		return nil
	}

	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message"}

	updates := t.bot.GetUpdatesChan(u)
	t.mu.Lock()
	t.started = true
	t.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case upd, ok := <-updates:
				if !ok {
					return
				}
				t.dispatch(ctx, upd.Message)
			}
		}
	}()
	return nil
}

func (t *Telegram) Stop() {
	if t == nil || t.bot == nil {
		return
	}
	t.mu.Lock()
	started := t.started
	t.started = false
	t.mu.Unlock()
	if started {
		t.bot.StopReceivingUpdates()
	}
}

// Stdout — без токена Telegram всё уходит в лог.
type Stdout struct{}

func NewStdout() *Stdout                           { return &Stdout{} }
func (s *Stdout) Send(msg string)                  { logger.Info("%s", msg) }
func (s *Stdout) Sendf(format string, args ...any) { logger.Info(format, args...) }

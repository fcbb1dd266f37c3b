package telegram

import (
	"context"
	"time"

	"strategy-backtest/config"
	"strategy-backtest/pkg/logger"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// Notifier pushes backtest reports to a configured chat. Outbound only,
// no command handlers.
type Notifier struct {
	cfg           *config.TelegramConfig
	log           *logger.Logger
	bot           *telebot.Bot
	globalLimiter *rate.Limiter
}

func NewNotifier(cfg *config.TelegramConfig, log *logger.Logger) (*Notifier, error) {
	pref := telebot.Settings{
		Token:  cfg.BotToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		return nil, err
	}

	return &Notifier{
		cfg:           cfg,
		log:           log,
		bot:           bot,
		globalLimiter: rate.NewLimiter(rate.Limit(cfg.MaxGlobalRequestPerSecond), cfg.MaxGlobalRequestPerSecond),
	}, nil
}

// SendReport formats and delivers one backtest report, respecting the
// global send rate.
func (n *Notifier) SendReport(ctx context.Context, report Report) error {
	if err := n.globalLimiter.Wait(ctx); err != nil {
		return err
	}

	_, err := n.bot.Send(
		&telebot.Chat{ID: n.cfg.ChatID},
		FormatBacktestReport(report),
		&telebot.SendOptions{ParseMode: telebot.ModeMarkdown},
	)
	if err != nil {
		n.log.ErrorContext(ctx, "Failed to send telegram report", logger.ErrorField(err))
		return err
	}
	return nil
}

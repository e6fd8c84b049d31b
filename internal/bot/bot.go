package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mortal-bot/internal/bot/session"
	"mortal-bot/internal/config"
	"mortal-bot/internal/storage"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	gw       Gateway
	logger   *zap.Logger
	cfg      *config.Config
	sessions *session.Manager
	storage  *storage.Storage
	forward  *Forwarder
	mu       sync.Mutex
	handlers map[string]func(context.Context, *session.Session, string)
}

func New(cfg *config.Config, store *storage.Storage, logger *zap.Logger) (*Bot, error) {
	var api *tgbotapi.BotAPI

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to Telegram Bot API...")

	err := backoff.RetryNotify(
		func() error {
			var err error
			api, err = tgbotapi.NewBotAPI(cfg.TelegramToken)
			if err != nil {
				return fmt.Errorf("authorize: %w", err)
			}
			return nil
		},
		retryPolicy,
		func(err error, duration time.Duration) {
			logger.Warn("Telegram authorization failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect after retries: %w", err)
	}

	api.Debug = cfg.Debug

	logger.Info("Bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID))

	b := newBot(cfg, newTelegramGateway(api, cfg.HTTPRequestTimeout, logger), store, logger)
	b.api = api
	return b, nil
}

func newBot(cfg *config.Config, gw Gateway, store *storage.Storage, logger *zap.Logger) *Bot {
	b := &Bot{
		gw:       gw,
		logger:   logger,
		cfg:      cfg,
		sessions: session.NewManager(),
		storage:  store,
		forward:  NewForwarder(store, gw, logger, cfg.AdminID, cfg.SendDelay),
	}
	b.registerHandlers()
	return b
}

func (b *Bot) registerHandlers() {
	b.handlers = map[string]func(context.Context, *session.Session, string){
		session.StepMainColor:          b.handleMainColor,
		session.StepTextColor:          b.handleTextColor,
		session.StepText:               b.handleInscriptionText,
		session.StepAdditionalElements: b.handleAdditionalElements,
		session.StepAdditionalFile:     b.handleAdditionalFileText,
		session.StepElementsPosition:   b.handleElementsPosition,
		session.StepAgeHeight:          b.handleAgeHeight,
		session.StepFont:               b.handleFont,
	}
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down bot")
			return nil

		case update := <-updates:
			b.mu.Lock()
			if update.Message != nil {
				b.processMessage(ctx, update.Message)
			} else if update.CallbackQuery != nil {
				b.processCallback(ctx, update.CallbackQuery)
			}
			b.mu.Unlock()
		}
	}
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	chatID := msg.Chat.ID
	userID := msg.From.ID

	b.logger.Debug("Processing message",
		zap.Int64("chat_id", chatID),
		zap.Int64("user_id", userID),
		zap.String("text", msg.Text))

	if len(msg.Photo) > 0 || msg.Document != nil {
		b.processFile(ctx, msg)
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// An active (non-terminal) session routes the message into the
	// design flow; everything else is menu handling.
	if b.sessions.Active(userID) {
		sess := b.sessions.Get(userID)
		if handler, exists := b.handlers[sess.Step]; exists {
			handler(ctx, sess, msg.Text)
			return
		}
		b.logger.Error("No handler for session step",
			zap.Int64("user_id", userID),
			zap.String("step", sess.Step))
	}

	b.handleMenu(ctx, chatID, msg)
}

func (b *Bot) processCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil || callback.From == nil {
		return
	}

	b.logger.Debug("Processing callback",
		zap.Int64("chat_id", callback.Message.Chat.ID),
		zap.String("data", callback.Data))

	cmd := session.StartCommand{
		UserID:    callback.From.ID,
		Username:  callback.From.UserName,
		FirstName: callback.From.FirstName,
		ChatID:    callback.Message.Chat.ID,
	}

	switch callback.Data {
	case CallbackDesignSingleLayer:
		b.answerCallback(callback.ID, "Разработка дизайна однослойной капы")
		b.startDesignFlow(ctx, cmd, CapaTypeSingleLayer)
	case CallbackDesignDoubleLayer:
		b.answerCallback(callback.ID, "Разработка дизайна двухслойной капы")
		b.startDesignFlow(ctx, cmd, CapaTypeDoubleLayer)
	default:
		b.answerCallback(callback.ID, "")
	}
}

func (b *Bot) answerCallback(callbackID, text string) {
	if err := b.gw.AnswerCallback(callbackID, text); err != nil {
		b.logger.Warn("Failed to answer callback",
			zap.String("callback_id", callbackID),
			zap.Error(err))
	}
}

func (b *Bot) send(chatID int64, text string) {
	if err := b.gw.SendText(chatID, text); err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err))
	}
}

func (b *Bot) sendWithMarkup(chatID int64, text string, markup interface{}) {
	if err := b.gw.SendTextWithMarkup(chatID, text, markup); err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err))
	}
}

func (b *Bot) sendError(chatID int64, text string) {
	b.send(chatID, "❌ "+text)
}

package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mortal-bot/internal/bot/session"
	"mortal-bot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg)
	case "help":
		b.handleHelp(msg.Chat.ID)
	case "send_to_admin":
		b.handleSendToAdmin(ctx, msg)
	default:
		b.sendError(msg.Chat.ID, "Неизвестная команда. Пожалуйста, используйте /start для начала работы.")
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	// /start drops the user out of any in-flight design flow.
	b.sessions.Reset(msg.From.ID)

	welcome := "Здравствуйте! 👋 Рады приветствовать вас в MORTAL в разделе по изготовлению стандартных и индивидуальных кап с личным дизайном!"
	b.sendWithMarkup(msg.Chat.ID, welcome, mainMenuKeyboard())
}

func (b *Bot) handleHelp(chatID int64) {
	helpText := `Доступные команды:
	/start - Главное меню
	/send_to_admin - Отправить готовую заявку администратору
	/help - Показать эту справку

	Если у вас возникли проблемы, свяжитесь с менеджером ` + managerContact
	b.send(chatID, helpText)
}

func (b *Bot) handleSendToAdmin(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	_, err := b.forward.Forward(ctx, userID)
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrCorrupt):
		b.sendError(chatID, "У вас нет сохранённой заявки. Сначала заполните анкету через /start")
		return
	case err != nil:
		b.logger.Error("Failed to forward submission",
			zap.Int64("user_id", userID),
			zap.Error(err))
		b.sendError(chatID, "Произошла ошибка при отправке заявки. Попробуйте ещё раз или свяжитесь с администратором.")
		return
	}

	b.send(chatID, "✅ Ваша заявка отправлена администратору!\n\nМы свяжемся с вами в ближайшее время.")
}

// handleMenu routes free text outside a design flow to the static
// catalog sections.
func (b *Bot) handleMenu(ctx context.Context, chatID int64, msg *tgbotapi.Message) {
	switch msg.Text {
	case ButtonPopularDesigns:
		b.sendPopularDesigns(chatID)
	case ButtonSingleLayer:
		b.sendSingleLayer(chatID)
	case ButtonDoubleLayer:
		b.sendDoubleLayer(chatID)
	case ButtonCustom:
		b.sendCustomMouthguard(chatID)
	case ButtonWholesale:
		b.sendWholesale(chatID)
	case ButtonMerch:
		b.sendMerch(chatID)
	default:
		b.sendError(chatID, "Я не понимаю эту команду. Пожалуйста, используйте меню.")
	}
}

// startDesignFlow opens a fresh session and asks the first question.
// Both the menu buttons and the inline callbacks land here.
func (b *Bot) startDesignFlow(ctx context.Context, cmd session.StartCommand, capaType string) {
	sess := b.sessions.Start(cmd, capaType)

	b.logger.Info("Design flow started",
		zap.Int64("user_id", cmd.UserID),
		zap.String("capa_type", capaType))

	text := fmt.Sprintf(
		"Отлично! Вы выбрали %s капу. Давайте создадим макет.\n\n"+
			"1. Укажите основной цвет капы или прикрепите фото/изображение для фона в хорошем качестве (не скриншот).\n\n"+
			"Напишите название цвета или отправьте изображение:",
		strings.ToLower(capaType))
	b.sendWithMarkup(sess.ChatID, text, tgbotapi.NewRemoveKeyboard(true))
}

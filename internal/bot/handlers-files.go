package bot

import (
	"context"
	"strings"

	"mortal-bot/internal/bot/session"
	"mortal-bot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// processFile handles an inbound photo or document. Files are only
// accepted in the two states that ask for one; everywhere else they are
// rejected without a state change.
func (b *Bot) processFile(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if !b.sessions.Active(userID) {
		b.sendError(chatID, "Сначала начните процесс разработки дизайна через меню")
		return
	}
	sess := b.sessions.Get(userID)

	var slot string
	switch sess.Step {
	case session.StepMainColor:
		slot = storage.SlotMainColor
	case session.StepAdditionalFile:
		slot = storage.SlotAdditional
	default:
		b.sendError(chatID, "Сейчас нельзя отправлять файлы. Продолжайте отвечать на вопросы.")
		return
	}

	fileID, ext := fileReference(msg)

	payload, err := b.gw.DownloadFile(ctx, fileID)
	if err != nil {
		b.logger.Error("Failed to download file",
			zap.Int64("user_id", userID),
			zap.String("file_id", fileID),
			zap.Error(err))
		b.sendError(chatID, "Ошибка при обработке файла. Попробуйте ещё раз.")
		return
	}

	path, err := b.storage.SaveAttachment(userID, slot, ext, payload)
	if err != nil {
		b.logger.Error("Failed to save attachment",
			zap.Int64("user_id", userID),
			zap.String("slot", slot),
			zap.Error(err))
		b.sendError(chatID, "Ошибка при обработке файла. Попробуйте ещё раз.")
		return
	}

	// The stored path stands in for the text answer of the slot.
	reference := "Файл: " + path

	switch sess.Step {
	case session.StepMainColor:
		sess.MainColor = reference
		sess.Step = session.StepTextColor
		b.send(chatID, "✅ Файл основного цвета сохранён!\n\n"+promptTextColor)
	case session.StepAdditionalFile:
		sess.AdditionalElements = reference
		sess.Step = session.StepElementsPosition
		b.send(chatID, "✅ Дополнительный файл сохранён!\n\n"+promptElementsPosition)
	}
}

// fileReference picks the file id to download and the extension for the
// stored name: the largest photo size for photos, the document filename
// extension otherwise.
func fileReference(msg *tgbotapi.Message) (fileID, ext string) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, "jpg"
	}

	doc := msg.Document
	ext = "bin"
	if i := strings.LastIndex(doc.FileName, "."); i >= 0 && i < len(doc.FileName)-1 {
		ext = doc.FileName[i+1:]
	}
	return doc.FileID, ext
}

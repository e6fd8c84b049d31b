package bot

import (
	"context"
	"time"

	"mortal-bot/internal/bot/session"
	"mortal-bot/internal/storage"

	"go.uber.org/zap"
)

// Question prompts of the design flow, shared between the text and the
// file entry points.
const (
	promptTextColor = "2. Какой цвет должен быть у надписи?\n\n" +
		"Укажите цвет текста:"
	promptInscription = "3. Напишите текст для нанесения.\n\n" +
		"Укажите именно так, как должно быть отображено (например, \"ИВАНОВ\", \"Победитель\" или \"чемпион\"):"
	promptAdditionalElements = "4. Планируются ли дополнительные элементы (логотип, картинка, фото)?\n\n" +
		"Если да, пожалуйста, прикрепите файл в хорошем качестве (не скриншот).\n" +
		"Сначала выберите <Да> либо <Нет>"
	promptAdditionalFile   = "Пожалуйста, прикрепите файл с дополнительными элементами:"
	promptElementsPosition = "5. Опишите расположение всех элементов на капе.\n\n" +
		"Где и как именно должны находиться надпись, логотип и другие детали?"
	promptAgeHeight = "6. Подтвердите, пожалуйста:\n" +
		"• Ваш возраст\n" +
		"• Ваш рост\n\n" +
		"Укажите в формате: Возраст, Рост\n" +
		"Например: 16, 175"
	promptFont = "7. Выберите шрифт:"
)

func (b *Bot) handleMainColor(ctx context.Context, sess *session.Session, text string) {
	if text == "" {
		b.sendError(sess.ChatID, "Напишите название цвета или отправьте изображение.")
		return
	}

	sess.MainColor = text
	sess.Step = session.StepTextColor
	b.send(sess.ChatID, promptTextColor)
}

func (b *Bot) handleTextColor(ctx context.Context, sess *session.Session, text string) {
	if text == "" {
		b.sendError(sess.ChatID, "Укажите цвет текста.")
		return
	}

	sess.TextColor = text
	sess.Step = session.StepText
	b.send(sess.ChatID, promptInscription)
}

func (b *Bot) handleInscriptionText(ctx context.Context, sess *session.Session, text string) {
	if text == "" {
		b.sendError(sess.ChatID, "Напишите текст для нанесения.")
		return
	}

	sess.Text = text
	sess.Step = session.StepAdditionalElements
	b.sendWithMarkup(sess.ChatID, promptAdditionalElements, yesNoKeyboard())
}

func (b *Bot) handleAdditionalElements(ctx context.Context, sess *session.Session, text string) {
	switch text {
	case ButtonYes:
		sess.AdditionalElements = AnswerYesFileExpected
		sess.Step = session.StepAdditionalFile
		b.sendWithMarkup(sess.ChatID, promptAdditionalFile, removeKeyboard())
	case ButtonNo:
		sess.AdditionalElements = AnswerNo
		sess.Step = session.StepElementsPosition
		b.sendWithMarkup(sess.ChatID, promptElementsPosition, removeKeyboard())
	default:
		b.sendError(sess.ChatID, "Пожалуйста, выберите «Да» либо «Нет».")
	}
}

// handleAdditionalFileText fires when plain text arrives while a file
// is awaited. The user stays in the state and the file prompt repeats.
func (b *Bot) handleAdditionalFileText(ctx context.Context, sess *session.Session, text string) {
	b.sendError(sess.ChatID, "Сейчас я жду файл. "+promptAdditionalFile)
}

func (b *Bot) handleElementsPosition(ctx context.Context, sess *session.Session, text string) {
	if text == "" {
		b.sendError(sess.ChatID, "Опишите расположение элементов.")
		return
	}

	sess.ElementsPosition = text
	sess.Step = session.StepAgeHeight
	b.send(sess.ChatID, promptAgeHeight)
}

func (b *Bot) handleAgeHeight(ctx context.Context, sess *session.Session, text string) {
	age, height, err := ParseAgeHeight(text)
	if err != nil {
		b.sendError(sess.ChatID, "Пожалуйста, укажите в правильном формате:\n"+
			"Возраст, Рост\n"+
			"Например: 16, 175")
		return
	}

	sess.Age = age
	sess.Height = height
	sess.Step = session.StepFont

	if err := b.gw.SendPhoto(sess.ChatID, b.cfg.FontChartPath, promptFont); err != nil {
		b.logger.Warn("Failed to send font chart, sending plain prompt",
			zap.Int64("chat_id", sess.ChatID),
			zap.Error(err))
		b.send(sess.ChatID, promptFont)
	}
}

func (b *Bot) handleFont(ctx context.Context, sess *session.Session, text string) {
	if text == "" {
		b.sendError(sess.ChatID, "Укажите шрифт.")
		return
	}

	sess.Font = text
	sess.CompletedAt = time.Now()

	if _, err := b.storage.SaveSubmission(userInfoFrom(sess), answersFrom(sess)); err != nil {
		b.logger.Error("Failed to save submission",
			zap.Int64("user_id", sess.UserID),
			zap.Error(err))
		// No partial commit: the answer is dropped and the step stays,
		// so the user can resend the font after the storage recovers.
		sess.Font = ""
		sess.CompletedAt = time.Time{}
		b.sendError(sess.ChatID, "Не удалось сохранить заявку. Попробуйте отправить шрифт ещё раз.")
		return
	}

	sess.Step = session.StepCompleted

	b.sendWithMarkup(sess.ChatID,
		"✅ Все ответы сохранены в ваш персональный файл!\n\n"+
			"Используйте команды:\n"+
			"/send_to_admin - отправить заявку администратору\n"+
			"/start - вернуться в главное меню",
		completedKeyboard())
}

func userInfoFrom(sess *session.Session) storage.UserInfo {
	return storage.UserInfo{
		UserID:    sess.UserID,
		Username:  sess.Username,
		FirstName: sess.FirstName,
		Timestamp: sess.CompletedAt,
	}
}

func answersFrom(sess *session.Session) storage.Answers {
	return storage.Answers{
		CapaType:           sess.CapaType,
		MainColor:          sess.MainColor,
		TextColor:          sess.TextColor,
		Text:               sess.Text,
		AdditionalElements: sess.AdditionalElements,
		ElementsPosition:   sess.ElementsPosition,
		Age:                sess.Age,
		Height:             sess.Height,
		Font:               sess.Font,
	}
}

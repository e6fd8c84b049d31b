package bot

import (
	"fmt"

	"mortal-bot/internal/storage"
)

// FormatSubmissionNotification renders the admin notification for a
// saved submission. The timestamp is truncated to minute precision for
// display.
func FormatSubmissionNotification(sub *storage.Submission) string {
	return fmt.Sprintf(
		"📋 НОВАЯ ЗАЯВКА НА КАПУ\n\n"+
			"👤 Пользователь: %s\n"+
			"📛 Username: @%s\n"+
			"🆔 User ID: %d\n"+
			"⏰ Время: %s\n\n"+
			"📝 ОТВЕТЫ:\n"+
			"1. Тип капы: %s\n"+
			"2. Основной цвет: %s\n"+
			"3. Цвет надписи: %s\n"+
			"4. Текст: %s\n"+
			"5. Дополнительные элементы: %s\n"+
			"6. Расположение элементов: %s\n"+
			"7. Возраст: %s\n"+
			"8. Рост: %s\n"+
			"9. Шрифт: %s",
		sub.UserInfo.FirstName,
		sub.UserInfo.Username,
		sub.UserInfo.UserID,
		sub.UserInfo.Timestamp.Format("2006-01-02 15:04"),
		sub.Answers.CapaType,
		sub.Answers.MainColor,
		sub.Answers.TextColor,
		sub.Answers.Text,
		sub.Answers.AdditionalElements,
		sub.Answers.ElementsPosition,
		sub.Answers.Age,
		sub.Answers.Height,
		sub.Answers.Font,
	)
}

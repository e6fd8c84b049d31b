package bot

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Main menu buttons and flow constants.
const (
	ButtonPopularDesigns = "Самые продаваемые дизайны стандартных кап"
	ButtonSingleLayer    = "Стандартная однослойная"
	ButtonDoubleLayer    = "Стандартная двухслойная"
	ButtonCustom         = "Индивидуальная капа по слепкам"
	ButtonWholesale      = "Оптовый заказ"
	ButtonMerch          = "МЕРЧ"

	ButtonYes = "Да"
	ButtonNo  = "Нет"

	AnswerYesFileExpected = "Да (ожидается файл)"
	AnswerNo              = "Нет"

	CapaTypeSingleLayer = "Однослойная"
	CapaTypeDoubleLayer = "Двухслойная"

	CallbackDesignSingleLayer = "design_single_layer"
	CallbackDesignDoubleLayer = "design_double_layer"

	managerContact = "@mortal_shop_team"
	managerURL     = "https://t.me/mortal_shop_team"
)

const (
	popularDesignsText = "<b>Цена капы с готовым дизайном: 2.500руб.</b>\n\n" +
		"Для заказа напишите : " + managerContact

	singleLayerText = "<b>· Однослойная капа — 2 500 ₽</b>\n" +
		"<b>· Разработка макета — бесплатно!</b>\n\n" +
		"Выберите действие:"

	doubleLayerText = "<b>· Двухслойная капа — 3 000 ₽</b>\n" +
		"<b>· Разработка макета — бесплатно!</b>\n\n" +
		"Выберите действие:"

	customMouthguardText = `<b>Цены на индивидуальные капы:</b>

1. ИНДИВИДУАЛЬНАЯ ПРОЗРАЧНАЯ КАПА - 9.000₽
2. ИНДИВИДУАЛЬНАЯ ЦВЕТНАЯ КАПА - 10.000₽
3. ИНДИВИДУАЛЬНАЯ КАПА С НАДПИСЬЮ,ЛОГО - 11.000₽
4. ИНДИВИДУАЛЬНАЯ ЦВЕТНАЯ КАПА С ЛИЧНЫМ ДИЗАЙНОМ - 12.000₽
5. ИНДИВИДУАЛЬНАЯ ХОККЕЙНАЯ КАПА - 13.000₽

При заказе вы будете перенаправлены менеджеру ` + managerContact

	wholesaleText = `<b>Оптовые цены кап под ключ однослойные:</b>

10-19шт - 1000руб/шт
20-99 штук 900руб/шт
100-499 штук 800руб/шт
500+ штук 700руб/шт

Разработка упаковки и наклейки для футляра 3000руб. разово, если брендированная упаковка не нужна, то отправляем в базовой.

При заказе вы будете перенаправлены менеджеру ` + managerContact

	merchPriceListText = `<b>Ассортимент МЕРЧ:</b>

<b>Майки «ME vs ME»</b>
• Синий цвет - 3.000руб
• Красный цвет - 3.000руб
• Чёрный цвет - 3.000руб

<b>Футболки:</b>
• «FRIENDS OR MONEY» - 3.500руб
• «YOUR GRANDMOTHER» - 3.500руб
• «CHIKO» - 4.500руб
• «NO BOXING» - 4.500руб
• «BABY» - 4.500руб

При заказе вы будете перенаправлены менеджеру ` + managerContact

	tankTopsCaption = "<b>Майки «ME vs ME»</b>\n\nСиний, красный, черный цвета - 3.000руб"
	tshirtsCaption  = "<b>Футболки MORTAL</b>\n\n«FRIENDS OR MONEY», «YOUR GRANDMOTHER» и другие - от 3.500руб"
)

func (b *Bot) sendPopularDesigns(chatID int64) {
	photo := filepath.Join(b.cfg.AssetsDir, "popular_designs.jpg")
	if err := b.gw.SendPhoto(chatID, photo, popularDesignsText); err != nil {
		b.logger.Warn("Failed to send popular designs photo",
			zap.String("path", photo),
			zap.Error(err))
		b.sendCatalogText(chatID, popularDesignsText, orderKeyboard())
		return
	}
	b.sendCatalogText(chatID, "Для заказа нажмите кнопку ниже:", orderKeyboard())
}

func (b *Bot) sendSingleLayer(chatID int64) {
	b.sendCatalogText(chatID, singleLayerText, designKeyboard(CallbackDesignSingleLayer))
}

func (b *Bot) sendDoubleLayer(chatID int64) {
	b.sendCatalogText(chatID, doubleLayerText, designKeyboard(CallbackDesignDoubleLayer))
}

func (b *Bot) sendCustomMouthguard(chatID int64) {
	b.sendCatalogText(chatID, customMouthguardText, orderKeyboard())
}

func (b *Bot) sendWholesale(chatID int64) {
	b.sendCatalogText(chatID, wholesaleText, orderKeyboard())
}

func (b *Bot) sendMerch(chatID int64) {
	b.sendMerchAlbum(chatID, filepath.Join(b.cfg.AssetsDir, "maiki"), tankTopsCaption)
	b.sendMerchAlbum(chatID, filepath.Join(b.cfg.AssetsDir, "tshirts"), tshirtsCaption)
	b.sendCatalogText(chatID, merchPriceListText, orderKeyboard())
}

// sendMerchAlbum sends all photos in dir as one media group, falling
// back to individual sends when the group fails.
func (b *Bot) sendMerchAlbum(chatID int64, dir, caption string) {
	photos := listPhotos(dir)
	if len(photos) == 0 {
		b.logger.Warn("No merch photos found", zap.String("dir", dir))
		b.send(chatID, "Фото мерча временно недоступны")
		return
	}

	if err := b.gw.SendMediaGroup(chatID, photos, caption); err != nil {
		b.logger.Warn("Failed to send media group, sending photos individually",
			zap.String("dir", dir),
			zap.Error(err))
		for _, photo := range photos {
			if err := b.gw.SendPhoto(chatID, photo, ""); err != nil {
				b.logger.Warn("Failed to send merch photo",
					zap.String("path", photo),
					zap.Error(err))
			}
		}
	}
}

func (b *Bot) sendCatalogText(chatID int64, text string, markup interface{}) {
	if err := b.gw.SendHTML(chatID, text, markup); err != nil {
		b.logger.Error("Failed to send catalog message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

func listPhotos(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var photos []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png":
			photos = append(photos, filepath.Join(dir, entry.Name()))
		}
	}
	return photos
}

package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Gateway abstracts outbound messaging and file transfer so handlers
// can be exercised without a live Telegram connection.
type Gateway interface {
	SendText(chatID int64, text string) error
	SendTextWithMarkup(chatID int64, text string, markup interface{}) error
	SendHTML(chatID int64, text string, markup interface{}) error
	SendPhoto(chatID int64, path string, caption string) error
	SendDocument(chatID int64, path string, caption string) error
	SendMediaGroup(chatID int64, paths []string, caption string) error
	AnswerCallback(callbackID string, text string) error
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

type telegramGateway struct {
	api        *tgbotapi.BotAPI
	httpClient *http.Client
	logger     *zap.Logger
}

func newTelegramGateway(api *tgbotapi.BotAPI, timeout time.Duration, logger *zap.Logger) *telegramGateway {
	return &telegramGateway{
		api: api,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (g *telegramGateway) SendText(chatID int64, text string) error {
	return g.SendTextWithMarkup(chatID, text, nil)
}

func (g *telegramGateway) SendTextWithMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := g.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func (g *telegramGateway) SendHTML(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := g.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func (g *telegramGateway) SendPhoto(chatID int64, path string, caption string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(path))
	photo.Caption = caption
	if _, err := g.api.Send(photo); err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	return nil
}

func (g *telegramGateway) SendDocument(chatID int64, path string, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = caption
	if _, err := g.api.Send(doc); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

func (g *telegramGateway) SendMediaGroup(chatID int64, paths []string, caption string) error {
	var media []interface{}
	for i, path := range paths {
		photo := tgbotapi.NewInputMediaPhoto(tgbotapi.FilePath(path))
		if i == 0 {
			photo.Caption = caption
			photo.ParseMode = tgbotapi.ModeHTML
		}
		media = append(media, photo)
	}
	if len(media) == 0 {
		return fmt.Errorf("send media group: no files")
	}

	group := tgbotapi.NewMediaGroup(chatID, media)
	if _, err := g.api.SendMediaGroup(group); err != nil {
		return fmt.Errorf("send media group: %w", err)
	}
	return nil
}

func (g *telegramGateway) AnswerCallback(callbackID string, text string) error {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := g.api.Request(callback); err != nil {
		return fmt.Errorf("answer callback: %w", err)
	}
	return nil
}

// DownloadFile resolves a Telegram file id to its download URL and
// fetches the payload.
func (g *telegramGateway) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := g.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return payload, nil
}

package bot

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"mortal-bot/internal/storage"

	"go.uber.org/zap"
)

// Extensions delivered as photos; everything else goes as a document.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// Forwarder relays a user's saved submission and attachments to the
// administrator.
type Forwarder struct {
	storage   *storage.Storage
	gw        Gateway
	logger    *zap.Logger
	adminID   int64
	sendDelay time.Duration
}

func NewForwarder(store *storage.Storage, gw Gateway, logger *zap.Logger, adminID int64, sendDelay time.Duration) *Forwarder {
	return &Forwarder{
		storage:   store,
		gw:        gw,
		logger:    logger,
		adminID:   adminID,
		sendDelay: sendDelay,
	}
}

// Forward loads the saved submission, sends the answers block to the
// administrator and then delivers every attachment individually, newest
// first, with a fixed delay between sends. Individual attachment
// failures are logged and skipped; the admin gets an aggregate count.
// Returns the number of files delivered.
func (f *Forwarder) Forward(ctx context.Context, userID int64) (int, error) {
	sub, err := f.storage.LoadSubmission(userID)
	if err != nil {
		return 0, err
	}

	if err := f.gw.SendText(f.adminID, FormatSubmissionNotification(sub)); err != nil {
		return 0, fmt.Errorf("notify admin: %w", err)
	}

	files, err := f.storage.ListAttachments(userID)
	if err != nil {
		return 0, fmt.Errorf("list attachments: %w", err)
	}

	sent := 0
	for _, file := range files {
		caption := fmt.Sprintf("📎 Файл от пользователя: %s", file.Name)

		var sendErr error
		if imageExtensions[strings.ToLower(filepath.Ext(file.Name))] {
			sendErr = f.gw.SendPhoto(f.adminID, file.Path, caption)
		} else {
			sendErr = f.gw.SendDocument(f.adminID, file.Path, caption)
		}
		if sendErr != nil {
			f.logger.Warn("Failed to deliver attachment, skipping",
				zap.Int64("user_id", userID),
				zap.String("file", file.Path),
				zap.Error(sendErr))
			continue
		}
		sent++

		// Fixed pause between sends to stay under gateway rate limits.
		select {
		case <-ctx.Done():
			return sent, ctx.Err()
		case <-time.After(f.sendDelay):
		}
	}

	summary := "📭 Файлы от пользователя отсутствуют"
	if sent > 0 {
		summary = fmt.Sprintf("✅ Всего отправлено файлов: %d", sent)
	}
	if err := f.gw.SendText(f.adminID, summary); err != nil {
		f.logger.Warn("Failed to send delivery summary",
			zap.Int64("user_id", userID),
			zap.Error(err))
	}

	f.logger.Info("Submission forwarded",
		zap.Int64("user_id", userID),
		zap.Int("files_sent", sent))

	return sent, nil
}

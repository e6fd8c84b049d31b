package bot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mortal-bot/internal/storage"

	"go.uber.org/zap"
)

func newTestForwarder(t *testing.T) (*Forwarder, *fakeGateway, *storage.Storage) {
	t.Helper()

	store, err := storage.New(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("storage.New failed: %v", err)
	}

	gw := newFakeGateway()
	f := NewForwarder(store, gw, zap.NewNop(), testAdminID, time.Millisecond)
	return f, gw, store
}

func savedSubmission(t *testing.T, store *storage.Storage) {
	t.Helper()
	user := storage.UserInfo{
		UserID:    testUserID,
		Username:  "champ",
		FirstName: "Иван",
		Timestamp: time.Date(2024, 3, 5, 10, 42, 57, 0, time.UTC),
	}
	answers := storage.Answers{
		CapaType:           CapaTypeSingleLayer,
		MainColor:          "красный",
		TextColor:          "белый",
		Text:               "ИВАНОВ",
		AdditionalElements: AnswerNo,
		ElementsPosition:   "по центру",
		Age:                "16",
		Height:             "175",
		Font:               "Arial",
	}
	if _, err := store.SaveSubmission(user, answers); err != nil {
		t.Fatalf("SaveSubmission failed: %v", err)
	}
}

func writeAttachment(t *testing.T, store *storage.Storage, name string, mtime time.Time) {
	t.Helper()
	dir := store.PhotosDir(testUserID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir photos dir: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", name, err)
	}
}

func TestForwardWithoutSubmission(t *testing.T) {
	f, gw, _ := newTestForwarder(t)

	sent, err := f.Forward(context.Background(), testUserID)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if sent != 0 {
		t.Errorf("expected no files sent, got %d", sent)
	}
	if len(gw.calls) != 0 {
		t.Errorf("admin must not be contacted, got %d calls", len(gw.calls))
	}
}

func TestForwardCorruptSubmission(t *testing.T) {
	f, gw, store := newTestForwarder(t)

	savedSubmission(t, store)
	path := filepath.Join(filepath.Dir(store.PhotosDir(testUserID)), "user_101.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("write corrupt record: %v", err)
	}

	_, err := f.Forward(context.Background(), testUserID)
	if !errors.Is(err, storage.ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	if len(gw.calls) != 0 {
		t.Errorf("admin must not be contacted, got %d calls", len(gw.calls))
	}
}

func TestForwardNoAttachments(t *testing.T) {
	f, gw, store := newTestForwarder(t)
	savedSubmission(t, store)

	sent, err := f.Forward(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if sent != 0 {
		t.Errorf("expected no files sent, got %d", sent)
	}

	calls := gw.callsTo(testAdminID)
	if len(calls) != 2 {
		t.Fatalf("expected notification and summary, got %d calls", len(calls))
	}
	if !strings.Contains(calls[0].Text, "НОВАЯ ЗАЯВКА НА КАПУ") {
		t.Errorf("first message should be the answers block, got %q", calls[0].Text)
	}
	if calls[1].Text != "📭 Файлы от пользователя отсутствуют" {
		t.Errorf("expected the empty-files notice, got %q", calls[1].Text)
	}
}

func TestForwardDeliversAttachmentsNewestFirst(t *testing.T) {
	f, gw, store := newTestForwarder(t)
	savedSubmission(t, store)

	base := time.Now().Add(-time.Hour)
	writeAttachment(t, store, "additional_20240301_100000.pdf", base)
	writeAttachment(t, store, "main_color_20240301_110000.jpg", base.Add(10*time.Minute))

	sent, err := f.Forward(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if sent != 2 {
		t.Errorf("expected 2 files sent, got %d", sent)
	}

	calls := gw.callsTo(testAdminID)
	if len(calls) != 4 {
		t.Fatalf("expected notification, 2 files and summary, got %d calls", len(calls))
	}

	// Newest attachment goes first; images as photos, the rest as documents.
	if calls[1].Op != "send_photo" || !strings.HasSuffix(calls[1].Path, ".jpg") {
		t.Errorf("expected the jpg first as a photo, got %+v", calls[1])
	}
	if !strings.Contains(calls[1].Caption, "Файл от пользователя") {
		t.Errorf("expected the per-file caption, got %q", calls[1].Caption)
	}
	if calls[2].Op != "send_document" || !strings.HasSuffix(calls[2].Path, ".pdf") {
		t.Errorf("expected the pdf second as a document, got %+v", calls[2])
	}
	if calls[3].Text != "✅ Всего отправлено файлов: 2" {
		t.Errorf("unexpected summary %q", calls[3].Text)
	}
}

func TestForwardSkipsFailedAttachment(t *testing.T) {
	f, gw, store := newTestForwarder(t)
	savedSubmission(t, store)

	base := time.Now().Add(-time.Hour)
	writeAttachment(t, store, "main_color_20240301_100000.jpg", base)
	writeAttachment(t, store, "additional_20240301_110000.jpg", base.Add(10*time.Minute))

	gw.failOnce("send_photo", errors.New("flood limit"))

	sent, err := f.Forward(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("Forward should not fail on a single attachment: %v", err)
	}
	if sent != 1 {
		t.Errorf("expected 1 file delivered after the skip, got %d", sent)
	}
	if !gw.sentTextContaining(testAdminID, "Всего отправлено файлов: 1") {
		t.Error("summary should count only delivered files")
	}
}

func TestForwardStopsOnCancelledContext(t *testing.T) {
	f, _, store := newTestForwarder(t)
	savedSubmission(t, store)

	base := time.Now().Add(-time.Hour)
	writeAttachment(t, store, "main_color_20240301_100000.jpg", base)
	writeAttachment(t, store, "additional_20240301_110000.jpg", base.Add(10*time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sent, err := f.Forward(ctx, testUserID)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if sent != 1 {
		t.Errorf("expected delivery to stop after the first file, got %d", sent)
	}
}

func TestFormatSubmissionNotification(t *testing.T) {
	sub := &storage.Submission{
		UserInfo: storage.UserInfo{
			UserID:    testUserID,
			Username:  "champ",
			FirstName: "Иван",
			Timestamp: time.Date(2024, 3, 5, 10, 42, 57, 0, time.UTC),
		},
		Answers: storage.Answers{
			CapaType:           CapaTypeSingleLayer,
			MainColor:          "красный",
			TextColor:          "белый",
			Text:               "ИВАНОВ",
			AdditionalElements: AnswerNo,
			ElementsPosition:   "по центру",
			Age:                "16",
			Height:             "175",
			Font:               "Arial",
		},
	}

	got := FormatSubmissionNotification(sub)

	for _, want := range []string{
		"📋 НОВАЯ ЗАЯВКА НА КАПУ",
		"@champ",
		"User ID: 101",
		"2024-03-05 10:42",
		"1. Тип капы: Однослойная",
		"9. Шрифт: Arial",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("notification missing %q:\n%s", want, got)
		}
	}

	if strings.Contains(got, "10:42:57") {
		t.Error("timestamp should be truncated to minute precision")
	}
}

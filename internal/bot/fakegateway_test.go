package bot

import (
	"context"
	"strings"
	"sync"
)

// gatewayCall records one outbound operation for assertions.
type gatewayCall struct {
	Op      string
	ChatID  int64
	Text    string
	Path    string
	Caption string
	Paths   []string
}

// fakeGateway implements Gateway without a live connection. Each entry
// in failNext makes the next call of that operation fail once.
type fakeGateway struct {
	mu          sync.Mutex
	calls       []gatewayCall
	failNext    map[string]error
	payload     []byte
	downloadErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		failNext: make(map[string]error),
		payload:  []byte("file payload"),
	}
}

func (f *fakeGateway) failOnce(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failNext[op] = err
}

func (f *fakeGateway) take(op string) error {
	if err, ok := f.failNext[op]; ok {
		delete(f.failNext, op)
		return err
	}
	return nil
}

func (f *fakeGateway) record(op string, call gatewayCall) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.take(op); err != nil {
		return err
	}
	call.Op = op
	f.calls = append(f.calls, call)
	return nil
}

func (f *fakeGateway) SendText(chatID int64, text string) error {
	return f.record("send_text", gatewayCall{ChatID: chatID, Text: text})
}

func (f *fakeGateway) SendTextWithMarkup(chatID int64, text string, markup interface{}) error {
	return f.record("send_text", gatewayCall{ChatID: chatID, Text: text})
}

func (f *fakeGateway) SendHTML(chatID int64, text string, markup interface{}) error {
	return f.record("send_html", gatewayCall{ChatID: chatID, Text: text})
}

func (f *fakeGateway) SendPhoto(chatID int64, path string, caption string) error {
	return f.record("send_photo", gatewayCall{ChatID: chatID, Path: path, Caption: caption})
}

func (f *fakeGateway) SendDocument(chatID int64, path string, caption string) error {
	return f.record("send_document", gatewayCall{ChatID: chatID, Path: path, Caption: caption})
}

func (f *fakeGateway) SendMediaGroup(chatID int64, paths []string, caption string) error {
	return f.record("send_media_group", gatewayCall{ChatID: chatID, Paths: paths, Caption: caption})
}

func (f *fakeGateway) AnswerCallback(callbackID string, text string) error {
	return f.record("answer_callback", gatewayCall{Text: text})
}

func (f *fakeGateway) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	return f.payload, nil
}

func (f *fakeGateway) callsTo(chatID int64) []gatewayCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []gatewayCall
	for _, c := range f.calls {
		if c.ChatID == chatID {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeGateway) lastText(chatID int64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		c := f.calls[i]
		if c.ChatID == chatID && (c.Op == "send_text" || c.Op == "send_html") {
			return c.Text
		}
	}
	return ""
}

func (f *fakeGateway) sentTextContaining(chatID int64, substr string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c.ChatID == chatID && strings.Contains(c.Text, substr) {
			return true
		}
	}
	return false
}

func (f *fakeGateway) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

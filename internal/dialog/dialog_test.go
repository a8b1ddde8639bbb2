package dialog

import (
	"context"
	"errors"
	"testing"

	"fx-analysis-bot/internal/analyzer"
	"fx-analysis-bot/internal/telegram"
	"fx-analysis-bot/internal/timeframe"
	"fx-analysis-bot/internal/types"
)

// recorder implements interfaces.Messenger and captures every outbound call.
type recorder struct {
	nextMessageID int
	sent          []string
	menus         []menuCall
	edits         []editCall
	answered      []string
}

type menuCall struct {
	text    string
	buttons []types.Button
}

type editCall struct {
	chatID    int64
	messageID int
	text      string
}

func (r *recorder) SendMessage(ctx context.Context, chatID int64, text string) (int, error) {
	r.sent = append(r.sent, text)
	r.nextMessageID++
	return r.nextMessageID, nil
}

func (r *recorder) SendMenu(ctx context.Context, chatID int64, text string, buttons []types.Button) (int, error) {
	r.menus = append(r.menus, menuCall{text: text, buttons: buttons})
	r.nextMessageID++
	return r.nextMessageID, nil
}

func (r *recorder) EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error {
	r.edits = append(r.edits, editCall{chatID: chatID, messageID: messageID, text: text})
	return nil
}

func (r *recorder) AnswerCallbackQuery(ctx context.Context, callbackID string) error {
	r.answered = append(r.answered, callbackID)
	return nil
}

// stubAnalyzer satisfies interfaces.Analyzer directly.
type stubAnalyzer struct {
	text  string
	ok    bool
	calls int
}

func (s *stubAnalyzer) Analyze(ctx context.Context, symbol, label, code string) (string, bool) {
	s.calls++
	return s.text, s.ok
}

// Fetcher/generator stubs for wiring the real orchestrator end to end.
type stubFetcher struct {
	payload types.Payload
	err     error
}

func (s *stubFetcher) Fetch(ctx context.Context, symbol, code string) (types.Payload, error) {
	return s.payload, s.err
}

func (s *stubFetcher) Name() string { return "stub" }

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	return s.text, s.err
}

func command(text string) telegram.Update {
	return telegram.Update{Message: &telegram.Message{MessageID: 1, Chat: telegram.Chat{ID: 1001}, Text: text}}
}

func selection(data string) telegram.Update {
	return telegram.Update{CallbackQuery: &telegram.CallbackQuery{
		ID:      "cb1",
		Data:    data,
		Message: &telegram.Message{MessageID: 7, Chat: telegram.Chat{ID: 1001}},
	}}
}

func TestStartCommand(t *testing.T) {
	rec := &recorder{}
	bot := New(rec, &stubAnalyzer{})

	bot.HandleUpdate(context.Background(), command("/start"))

	if len(rec.sent) != 1 || rec.sent[0] != greetingText {
		t.Errorf("Expected greeting, got %v", rec.sent)
	}
}

func TestAnalyzeCommandWrongArity(t *testing.T) {
	rec := &recorder{}
	bot := New(rec, &stubAnalyzer{})

	for _, cmd := range []string{"/analyze", "/analyze EURUSD GBPUSD"} {
		bot.HandleUpdate(context.Background(), command(cmd))
	}

	if len(rec.menus) != 0 {
		t.Errorf("Expected no menu for malformed commands, got %d", len(rec.menus))
	}
	if len(rec.sent) != 2 {
		t.Fatalf("Expected 2 usage messages, got %d", len(rec.sent))
	}
	for _, s := range rec.sent {
		if s != usageText {
			t.Errorf("Expected fixed usage text, got %q", s)
		}
	}
}

func TestAnalyzeCommandRejectsBadSymbol(t *testing.T) {
	rec := &recorder{}
	bot := New(rec, &stubAnalyzer{})

	for _, cmd := range []string{"/analyze EUR|USD", "/analyze eur/usd", "/analyze E_URUSD"} {
		bot.HandleUpdate(context.Background(), command(cmd))
	}

	if len(rec.menus) != 0 {
		t.Errorf("Expected no menu for non-alphanumeric symbols, got %d", len(rec.menus))
	}
	if len(rec.sent) != 3 {
		t.Fatalf("Expected 3 usage messages, got %d", len(rec.sent))
	}
	for _, s := range rec.sent {
		if s != usageText {
			t.Errorf("Expected fixed usage text, got %q", s)
		}
	}
}

func TestAnalyzeCommandRendersMenu(t *testing.T) {
	rec := &recorder{}
	bot := New(rec, &stubAnalyzer{})

	bot.HandleUpdate(context.Background(), command("/analyze eurusd"))

	if len(rec.menus) != 1 {
		t.Fatalf("Expected one menu, got %d", len(rec.menus))
	}
	menu := rec.menus[0]
	if menu.text != menuText {
		t.Errorf("Unexpected menu text %q", menu.text)
	}
	entries := timeframe.Entries()
	if len(menu.buttons) != len(entries) {
		t.Fatalf("Expected %d buttons, got %d", len(entries), len(menu.buttons))
	}
	for i, btn := range menu.buttons {
		if btn.Label != entries[i].Label {
			t.Errorf("Button %d label = %q, want %q", i, btn.Label, entries[i].Label)
		}
		sym, code, err := DecodeToken(btn.Data)
		if err != nil {
			t.Fatalf("Button %d token %q does not decode: %v", i, btn.Data, err)
		}
		if sym != "EURUSD" || code != entries[i].Code {
			t.Errorf("Button %d token decodes to (%s, %s), want (EURUSD, %s)", i, sym, code, entries[i].Code)
		}
	}
}

func TestSelectionSuccessFrame(t *testing.T) {
	rec := &recorder{}
	fetcher := &stubFetcher{payload: types.Payload{Snapshot: &types.Snapshot{Summary: "BUY", Oscillators: "NEUTRAL", MovingAverages: "BUY"}}}
	gen := &stubGenerator{text: "Trend: bullish."}
	bot := New(rec, analyzer.New(fetcher, gen))

	bot.HandleUpdate(context.Background(), selection("EURUSD|D"))

	if len(rec.answered) != 1 {
		t.Error("Expected callback query to be answered")
	}
	if len(rec.edits) != 2 {
		t.Fatalf("Expected placeholder edit then final edit, got %d edits", len(rec.edits))
	}
	if rec.edits[0].text != "Fetching data and analyzing EURUSD on 1 day... please wait." {
		t.Errorf("Unexpected placeholder: %q", rec.edits[0].text)
	}
	want := "Market structure analysis for EURUSD (1 day):\n\nTrend: bullish."
	if rec.edits[1].text != want {
		t.Errorf("Final edit = %q, want %q", rec.edits[1].text, want)
	}
	if rec.edits[0].messageID != 7 || rec.edits[1].messageID != 7 {
		t.Error("Edits must target the menu message")
	}
}

func TestSelectionFetchFailure(t *testing.T) {
	rec := &recorder{}
	gen := &stubGenerator{text: "never"}
	bot := New(rec, analyzer.New(&stubFetcher{err: errors.New("provider down")}, gen))

	bot.HandleUpdate(context.Background(), selection("GBPJPY|60"))

	if len(rec.edits) != 2 {
		t.Fatalf("Expected 2 edits, got %d", len(rec.edits))
	}
	if rec.edits[1].text != analyzer.DataUnavailableText {
		t.Errorf("Final edit = %q, want verbatim data-unavailable text", rec.edits[1].text)
	}
	if gen.calls != 0 {
		t.Errorf("Generator must not run on fetch failure, got %d calls", gen.calls)
	}
}

func TestSelectionBadTokenIsDefensive(t *testing.T) {
	rec := &recorder{}
	an := &stubAnalyzer{text: "x", ok: true}
	bot := New(rec, an)

	bot.HandleUpdate(context.Background(), selection("garbage-without-separator"))

	if an.calls != 0 {
		t.Error("Analyzer must not run for an undecodable token")
	}
	if len(rec.edits) != 0 {
		t.Errorf("No edits expected for an undecodable token, got %v", rec.edits)
	}
}

func TestUnknownCommand(t *testing.T) {
	rec := &recorder{}
	bot := New(rec, &stubAnalyzer{})

	bot.HandleUpdate(context.Background(), command("/help"))
	if len(rec.sent) != 1 || rec.sent[0] != unknownText {
		t.Errorf("Expected unknown-command text, got %v", rec.sent)
	}

	// Plain chatter is ignored entirely
	bot.HandleUpdate(context.Background(), command("hello there"))
	if len(rec.sent) != 1 {
		t.Errorf("Expected plain text to be ignored, got %v", rec.sent)
	}
}

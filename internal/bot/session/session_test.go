package session

import "testing"

func testCommand() StartCommand {
	return StartCommand{
		UserID:    42,
		Username:  "champ",
		FirstName: "Иван",
		ChatID:    42,
	}
}

func TestStartInitializesSession(t *testing.T) {
	m := NewManager()

	sess := m.Start(testCommand(), "Однослойная")

	if sess.Step != StepMainColor {
		t.Errorf("expected first step %q, got %q", StepMainColor, sess.Step)
	}
	if sess.UserID != 42 || sess.Username != "champ" || sess.FirstName != "Иван" {
		t.Errorf("identity not captured: %+v", sess)
	}
	if sess.CapaType != "Однослойная" {
		t.Errorf("expected capa type recorded, got %q", sess.CapaType)
	}
	if got := m.Get(42); got != sess {
		t.Error("Get should return the started session")
	}
}

func TestStartOverwritesPreviousSession(t *testing.T) {
	m := NewManager()

	first := m.Start(testCommand(), "Однослойная")
	first.MainColor = "red"
	first.Font = "Arial"
	first.Step = StepCompleted

	second := m.Start(testCommand(), "Двухслойная")

	if second.MainColor != "" || second.Font != "" {
		t.Errorf("new session must not inherit answers: %+v", second)
	}
	if second.CapaType != "Двухслойная" {
		t.Errorf("expected new capa type, got %q", second.CapaType)
	}
	if m.Get(42) != second {
		t.Error("manager should hold the new session")
	}
}

func TestActive(t *testing.T) {
	m := NewManager()

	if m.Active(42) {
		t.Error("no session should not be active")
	}

	m.Start(testCommand(), "Однослойная")
	if !m.Active(42) {
		t.Error("mid-flow session should be active")
	}

	m.Get(42).Step = StepCompleted
	if m.Active(42) {
		t.Error("completed session should not be active")
	}
}

func TestResetMarksTerminal(t *testing.T) {
	m := NewManager()

	m.Start(testCommand(), "Однослойная")
	m.Reset(42)

	if m.Active(42) {
		t.Error("reset session should not be active")
	}
	if sess := m.Get(42); sess == nil || sess.Step != StepCompleted {
		t.Errorf("reset should keep the session in the terminal step, got %+v", sess)
	}

	// Resetting a user with no session is a no-op.
	m.Reset(7)
}

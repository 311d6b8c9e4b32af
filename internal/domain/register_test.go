package domain

import (
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestStateOf(t *testing.T) {
	if got := StateOf(nil); got != StateUnknown {
		t.Fatalf("nil record: want unknown, got %s", got)
	}
	u := &User{ChatID: 1, Name: "Ada"}
	if got := StateOf(u); got != StateAwaitingHour {
		t.Fatalf("no hour: want awaiting-hour, got %s", got)
	}
	u.AlertHour = intPtr(14)
	if got := StateOf(u); got != StateConfigured {
		t.Fatalf("hour set: want configured, got %s", got)
	}
}

func TestDecide_Unknown_CreatesRecord(t *testing.T) {
	now := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	d := Decide(StateUnknown, nil, 42, "Ada", "hello", now)

	if d.Write == nil {
		t.Fatal("expected a record write")
	}
	if d.Write.ChatID != 42 || d.Write.Name != "Ada" {
		t.Fatalf("unexpected record: %+v", d.Write)
	}
	if d.Write.AlertHour != nil {
		t.Fatal("hour must stay unset on first contact")
	}
	if !d.ShowKeyboard {
		t.Fatal("greeting must offer the hour keyboard")
	}
	if d.Continue {
		t.Fatal("first contact is terminal for this message")
	}
	want := "Nice to meet you Ada, when do you want to be notified?"
	if d.Reply != want {
		t.Fatalf("want %q, got %q", want, d.Reply)
	}
}

func TestDecide_AwaitingHour_StoresHour(t *testing.T) {
	u := &User{ChatID: 42, Name: "Ada"}
	d := Decide(StateAwaitingHour, u, 42, "Ada", "14", time.Now())

	if d.Write == nil || d.Write.AlertHour == nil {
		t.Fatal("expected hour write")
	}
	if *d.Write.AlertHour != 14 || !d.Write.AlertEnabled {
		t.Fatalf("unexpected record: %+v", d.Write)
	}
	if d.Reply != "Perfect! You'll be notified at 14" {
		t.Fatalf("unexpected reply: %q", d.Reply)
	}
	if d.Continue {
		t.Fatal("hour confirmation is terminal for this message")
	}
	// Original record must not be mutated in place.
	if u.AlertHour != nil {
		t.Fatal("input record mutated")
	}
}

func TestDecide_AwaitingHour_RejectsInvalidInput(t *testing.T) {
	u := &User{ChatID: 42, Name: "Ada"}
	for _, text := range []string{"25", "-1", "noon", "14:00", ""} {
		d := Decide(StateAwaitingHour, u, 42, "Ada", text, time.Now())
		if d.Write != nil {
			t.Fatalf("input %q: must not write", text)
		}
		if !d.ShowKeyboard {
			t.Fatalf("input %q: must re-prompt with keyboard", text)
		}
	}
}

func TestDecide_Configured_EchoesSettings(t *testing.T) {
	u := &User{ChatID: 42, Name: "Ada", AlertHour: intPtr(9), AlertEnabled: true}
	d := Decide(StateConfigured, u, 42, "Ada", "anything", time.Now())

	if d.Write != nil {
		t.Fatal("configured state must not write")
	}
	if !d.Continue {
		t.Fatal("configured state allows chaining")
	}
	if d.Reply != "Hi Ada, you'll be notified at 9!" {
		t.Fatalf("unexpected reply: %q", d.Reply)
	}
}

func TestDecide_MismatchedState_FollowsRecord(t *testing.T) {
	// The stored record wins over whatever state the caller claims.
	d := Decide(StateConfigured, nil, 42, "Ada", "hello", time.Now())
	if d.Write == nil || d.Write.ChatID != 42 {
		t.Fatalf("nil record with configured claim: expected first-contact write, got %+v", d)
	}
	if !d.ShowKeyboard {
		t.Fatal("nil record with configured claim: must offer the hour keyboard")
	}

	u := &User{ChatID: 42, Name: "Ada"}
	d = Decide(StateConfigured, u, 42, "Ada", "14", time.Now())
	if d.Write == nil || d.Write.AlertHour == nil || *d.Write.AlertHour != 14 {
		t.Fatalf("hourless record with configured claim: expected hour write, got %+v", d)
	}
}

func TestParseHour(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"0", 0, true},
		{"23", 23, true},
		{" 14 ", 14, true},
		{"24", 0, false},
		{"-1", 0, false},
		{"nine", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, err := ParseHour(c.in)
		if c.ok && (err != nil || got != c.want) {
			t.Fatalf("ParseHour(%q) = %d, %v; want %d", c.in, got, err, c.want)
		}
		if !c.ok && err == nil {
			t.Fatalf("ParseHour(%q): expected error", c.in)
		}
	}
}

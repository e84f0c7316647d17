package engine

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestRunCommands(t *testing.T) {
	fx := newConsoleFixture(t, "10")
	if err := fx.console.Post(context.Background(), catalogEvent()); err != nil {
		t.Fatal(err)
	}

	script := strings.Join([]string{
		"# comment",
		"focus",
		"type 15 USD",
		"fav R_100",
		"select EURUSD",
		"tab Forex",
		"bogus",
		"show",
	}, "\n")

	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := RunCommands(ctx, strings.NewReader(script), &out, fx.console); err != nil {
		t.Fatalf("RunCommands failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		`error: unknown command "bogus"`,
		"instrument: EURUSD",
		"stake: 15 USD (committed 15)",
		"[Forex]",
		"EUR/USD <",
		"USD/JPY (closed)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, got)
		}
	}
	if fx.trade.Stake() != "15" {
		t.Errorf("Expected stake 15, got %s", fx.trade.Stake())
	}
}

func TestRunCommands_Quit(t *testing.T) {
	fx := newConsoleFixture(t, "10")

	var out bytes.Buffer
	err := RunCommands(context.Background(), strings.NewReader("quit\ninc\n"), &out, fx.console)
	if err != nil {
		t.Fatal(err)
	}
	fx.post(t)
	if fx.trade.Stake() != "10" {
		t.Errorf("Commands after quit must be ignored, stake %s", fx.trade.Stake())
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line    string
		wantErr bool
	}{
		{"inc", false},
		{"tab", true},
		{"select", true},
		{"currency eur", false},
		{"search", false},
		{"launch", true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			name, arg, _ := strings.Cut(tt.line, " ")
			_, err := parseCommand(name, arg)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseCommand(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
		})
	}
}

func TestParseCommand_ErrorMessages(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"bogus", `unknown command "bogus" (try help)`},
		{"bogus now", `unknown command "bogus" (try help)`},
		{"fav", "fav: missing argument"},
		{"currency", "currency: missing argument"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			name, arg, _ := strings.Cut(tt.line, " ")
			_, err := parseCommand(name, arg)
			if err == nil || err.Error() != tt.want {
				t.Errorf("Expected error %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSplitCaret(t *testing.T) {
	raw, caret := splitCaret("12 USD @2")
	if raw != "12 USD" || caret != 2 {
		t.Errorf("Expected (12 USD, 2), got (%q, %d)", raw, caret)
	}

	raw, caret = splitCaret("12 USD")
	if raw != "12 USD" || caret != 6 {
		t.Errorf("Expected caret at end, got (%q, %d)", raw, caret)
	}
}

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/onestroke/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		want     core.Action
		wantQuit bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"w", runeKey('w'), core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space", runeKey(' '), core.ActionConfirm, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"hint", runeKey('h'), core.ActionHint, false},
		{"question mark", runeKey('?'), core.ActionHint, false},
		{"restart", runeKey('r'), core.ActionRestart, false},
		{"pause", runeKey('p'), core.ActionPause, false},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := km.MapKey(tt.msg)
			if got != tt.want || quit != tt.wantQuit {
				t.Errorf("MapKey(%q) = %v,%v want %v,%v", tt.msg.String(), got, quit, tt.want, tt.wantQuit)
			}
		})
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		action tea.MouseAction
		button tea.MouseButton
		want   bool
	}{
		{"left press", tea.MouseActionPress, tea.MouseButtonLeft, true},
		{"left drag", tea.MouseActionMotion, tea.MouseButtonLeft, true},
		{"left release", tea.MouseActionRelease, tea.MouseButtonLeft, false},
		{"right press", tea.MouseActionPress, tea.MouseButtonRight, false},
		{"hover", tea.MouseActionMotion, tea.MouseButtonNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			msg := tea.MouseMsg{X: 5, Y: 7, Action: tt.action, Button: tt.button}
			if got := km.MapMouseToFrame(msg, &frame); got != tt.want {
				t.Fatalf("MapMouseToFrame = %v, want %v", got, tt.want)
			}
			if tt.want && (len(frame.Touches) != 1 || frame.Touches[0] != (core.Point{X: 5, Y: 7})) {
				t.Errorf("touches = %v", frame.Touches)
			}
			if !tt.want && len(frame.Touches) != 0 {
				t.Errorf("unexpected touches %v", frame.Touches)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	cases := map[string]struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		"up":    {tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		"j":     {runeKey('j'), MenuActionDown},
		"enter": {tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		"esc":   {tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		"tab":   {tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		"q":     {runeKey('q'), MenuActionQuit},
		"other": {runeKey('x'), MenuActionNone},
	}
	for name, c := range cases {
		if got := km.MapKeyToMenuAction(c.msg); got != c.want {
			t.Errorf("%s: got %v, want %v", name, got, c.want)
		}
	}
}

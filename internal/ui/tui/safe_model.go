package tui

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
)

const panicNotice = "Unexpected error (see logs)"

// safeModel keeps a panic in Update or View from tearing down the terminal.
// After a panic in Update the browser falls back to the endpoint list.
type safeModel struct {
	m   model
	log *slog.Logger
}

func wrapSafe(m model, log *slog.Logger) safeModel {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return safeModel{m: m, log: log}
}

func (s safeModel) Init() tea.Cmd {
	return s.m.Init()
}

func (s safeModel) Update(msg tea.Msg) (tm tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			s.report("tui.update", r, "msg", fmt.Sprintf("%T", msg))
			s.m.scr = screenList
			s.m.running = false
			s.m.probing = ""
			s.m.toast = panicNotice
			tm, cmd = s, nil
		}
	}()

	inner, c := s.m.Update(msg)
	if mm, ok := inner.(model); ok {
		s.m = mm
	}
	return s, c
}

func (s safeModel) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.report("tui.view", r)
			out = s.m.theme.Fail.Render(panicNotice) + "\n" + s.m.theme.Help.Render("ctrl+c quit")
		}
	}()
	return s.m.View()
}

func (s safeModel) report(where string, r any, attrs ...any) {
	args := append([]any{"where", where, "panic", fmt.Sprint(r)}, attrs...)
	args = append(args, "stack", string(debug.Stack()))
	s.log.Error("panic.recovered", args...)
}

var _ tea.Model = safeModel{}

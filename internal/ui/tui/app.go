package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
)

type screen int

const (
	screenList screen = iota
	screenResult
)

type endpointItem struct {
	ep     domain.Endpoint
	latest bool
}

func (i endpointItem) Title() string {
	if i.latest {
		return i.ep.Name + " ★"
	}
	return i.ep.Name
}

func (i endpointItem) Description() string {
	updated := i.ep.LastUpdated
	if updated == "" {
		updated = "never"
	}
	return clampString(i.ep.URL, 60) + " • updated " + updated
}

func (i endpointItem) FilterValue() string { return i.ep.Name }

type model struct {
	theme Theme
	deps  Deps

	scr      screen
	list     list.Model
	spin     spinner.Model
	running  bool
	probing  string
	source   string
	loadErr  error
	result   *probeDoneMsg
	toast    string
	noResult bool
}

func Run(deps Deps) error {
	p := tea.NewProgram(wrapSafe(newModel(deps), deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "MCP endpoints"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return model{
		theme:  DefaultTheme(),
		deps:   deps,
		scr:    screenList,
		list:   l,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		source: deps.ConfigPath,
	}
}

func (m model) Init() tea.Cmd { return cmdLoadCatalog(m.deps) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-8, msg.Height-10)
		return m, nil

	case catalogLoadedMsg:
		return m.applyCatalog(msg), nil

	case probeDoneMsg:
		m.running = false
		m.probing = ""
		m.result = &msg
		m.scr = screenResult
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.scr == screenList && m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.scr == screenList {
				return m, tea.Quit
			}
			m.scr = screenList
			return m, nil

		case "esc", "b":
			if m.scr == screenResult {
				m.scr = screenList
				return m, nil
			}

		case "r":
			if m.scr == screenList && !m.running {
				m.toast = "Reloading…"
				return m, cmdLoadCatalog(m.deps)
			}

		case "enter":
			if m.scr != screenList || m.running {
				return m, nil
			}
			it, ok := m.list.SelectedItem().(endpointItem)
			if !ok {
				return m, nil
			}
			m.running = true
			m.probing = it.ep.Name
			m.toast = ""
			return m, tea.Batch(m.spin.Tick, cmdProbe(m.deps, it.ep.Name))
		}
	}

	if m.scr == screenList {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) applyCatalog(msg catalogLoadedMsg) model {
	m.toast = ""
	m.loadErr = msg.err
	if msg.err != nil {
		m.list.SetItems(nil)
		m.noResult = false
		return m
	}
	if msg.cat.Source != "" {
		m.source = msg.cat.Source
	}

	latest := domain.MostRecentIndex(msg.cat.Endpoints)
	items := make([]list.Item, 0, len(msg.cat.Endpoints))
	for i, ep := range msg.cat.Endpoints {
		items = append(items, endpointItem{ep: ep, latest: i == latest})
	}
	m.list.SetItems(items)
	m.noResult = latest < 0
	if latest >= 0 {
		m.list.Select(latest)
	}
	return m
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("unified-mcp") + "\n" +
		m.theme.Subtitle.Render(fmt.Sprintf("Config: %s", m.source)) + "\n"

	switch m.scr {
	case screenList:
		var body string
		switch {
		case m.loadErr != nil:
			body = m.theme.Card.Render(m.theme.Fail.Render("✗ ") + UserMessage(m.loadErr) + "\n\n" +
				m.theme.Help.Render("Fix the config and press r to reload."))
		case m.noResult:
			body = m.theme.Card.Render(m.theme.Warn.Render("No endpoint selected") + "\n\n" +
				m.theme.Help.Render("Add endpoints to the config and press r to reload."))
		default:
			body = m.theme.Card.Render(m.list.View())
		}

		status := m.theme.Help.Render("↑/↓ navigate • enter probe • / search • r reload • q quit")
		if m.running {
			status = m.spin.View() + " probing " + m.probing + "…"
		} else if m.toast != "" {
			status = m.theme.Help.Render(m.toast)
		}
		return wrap.Render(header + "\n" + body + "\n" + status)

	case screenResult:
		return wrap.Render(header + "\n" + m.theme.Card.Render(m.resultView()) + "\n" +
			m.theme.Help.Render("esc/b back • q back • ctrl+c quit"))

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}

func (m model) resultView() string {
	if m.result == nil {
		return ""
	}
	if m.result.err != nil {
		return m.theme.Fail.Render("✗ ") + UserMessage(m.result.err)
	}
	out := m.result.out
	if !out.Selected() {
		return m.theme.Warn.Render("No endpoint selected")
	}

	s := m.theme.Title.Render(out.Endpoint.Name) + "\n\n" + renderProbe(m.theme, out.Result)
	if out.Result.Failed() {
		s += "\n\n" + m.theme.Fail.Render(UserMessage(&ProbeFailure{Result: out.Result}))
	}
	if out.ArtifactID != "" {
		s += "\n\n" + m.theme.Help.Render("saved: "+out.ArtifactID)
	}
	return s
}

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/onestroke/internal/core"
	"github.com/vovakirdan/onestroke/internal/games/onestroke"
)

// MenuItem is an entry of the main menu.
type MenuItem struct {
	Title       string
	Description string
	GameID      string // Empty for entries that open a sub screen
}

// Main menu entries
const (
	menuCampaign = iota
	menuEndless
	menuSelectLevel
	menuScores
)

// MenuSelection is what the player picked in the menu.
type MenuSelection struct {
	GameID string
	Level  int // 0 = start from beginning, 1-N = specific campaign level
}

// MenuModel is the Bubble Tea model for the mode and level picker.
type MenuModel struct {
	items         []MenuItem
	cursor        int
	levelNames    []string
	levelCursor   int
	scrollOffset  int
	inLevelSelect bool
	width         int
	height        int
	config        core.RuntimeConfig
	keyMapper     *KeyMapper
	theme         Theme
	quitting      bool
	selected      *MenuSelection
	scoreboard    bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	campaign, endless := onestroke.New(), onestroke.NewEndless()
	items := []MenuItem{
		menuCampaign:    {Title: "Campaign", Description: campaign.Description(), GameID: campaign.ID()},
		menuEndless:     {Title: "Endless", Description: endless.Description(), GameID: endless.ID()},
		menuSelectLevel: {Title: "Select Level", Description: "Start the campaign at any level"},
		menuScores:      {Title: "High Scores", Description: "Best runs and recent clears"},
	}

	return MenuModel{
		items:      items,
		levelNames: onestroke.LevelNames(),
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		theme:      GetTheme(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelKey(action)
		}
		return m.handleMenuKey(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleMenuKey processes input on the main menu.
func (m MenuModel) handleMenuKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionScoreboard:
		m.scoreboard = true
		return m, tea.Quit

	case MenuActionSelect:
		switch m.cursor {
		case menuSelectLevel:
			if len(m.levelNames) > 0 {
				m.inLevelSelect = true
				m.levelCursor = 0
				m.scrollOffset = 0
			}
		case menuScores:
			m.scoreboard = true
			return m, tea.Quit
		default:
			m.selected = &MenuSelection{GameID: m.items[m.cursor].GameID}
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleLevelKey processes input on the level picker.
func (m MenuModel) handleLevelKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levelNames)-1 {
			m.levelCursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		m.selected = &MenuSelection{GameID: onestroke.IDCampaign, Level: m.levelCursor + 1}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

// visibleLevels is the number of level rows that fit below the header.
func (m MenuModel) visibleLevels() int {
	return max(m.height-10, 3)
}

// updateScroll keeps the level cursor visible.
func (m *MenuModel) updateScroll() {
	visible := m.visibleLevels()
	if m.levelCursor < m.scrollOffset {
		m.scrollOffset = m.levelCursor
	} else if m.levelCursor >= m.scrollOffset+visible {
		m.scrollOffset = m.levelCursor - visible + 1
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("O N E S T R O K E"), m.width))
	b.WriteString("\n\n")

	if m.inLevelSelect {
		m.viewLevels(&b)
	} else {
		m.viewItems(&b)
	}

	return b.String()
}

func (m MenuModel) viewItems(b *strings.Builder) {
	b.WriteString(centerText(m.theme.MenuDescription.Render("Paint every cell in one stroke"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		b.WriteString(centerText(style.Render(cursor+item.Title), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render(m.items[m.cursor].Description), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.Controls.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")
}

func (m MenuModel) viewLevels(b *strings.Builder) {
	b.WriteString(centerText(m.theme.MenuDescription.Render("Select a level:"), m.width))
	b.WriteString("\n\n")

	end := min(m.scrollOffset+m.visibleLevels(), len(m.levelNames))
	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.levelCursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		line := style.Render(fmt.Sprintf("%s%2d. %s", cursor, i+1, m.levelNames[i]))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	if end < len(m.levelNames) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Controls.Render("Up/Down: Navigate  |  Enter: Play  |  Esc: Back  |  Q: Quit"), m.width))
	b.WriteString("\n")
}

// Selected returns the selection, or nil if none was made.
func (m MenuModel) Selected() *MenuSelection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.scoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Selection       *MenuSelection
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.Selection = m.Selected()
	default:
		result.Quit = true
	}
	return result, nil
}

package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type state int

const (
	stateLogin state = iota
	stateFeed
)

type RootModel struct {
	State    state
	Client   *Client
	Login    LoginModel
	Feed     FeedModel
	PageSize int
	Quitting bool
	height   int
}

func NewRootModel(c *Client, pageSize int) RootModel {
	return RootModel{
		State:    stateLogin,
		Client:   c,
		Login:    NewLoginModel(c),
		PageSize: pageSize,
	}
}

func (m RootModel) Init() tea.Cmd {
	return m.Login.Init()
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		if m.State == stateFeed {
			m.Feed.Table.SetHeight(max(msg.Height-10, 5))
		}
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Quitting = true
			return m, tea.Quit
		}
	case loginResultMsg:
		if msg.err == nil {
			m.State = stateFeed
			m.Feed = NewFeedModel(m.Client, m.PageSize, m.height)
			return m, m.Feed.Init()
		}
	}

	var cmd tea.Cmd
	switch m.State {
	case stateLogin:
		m.Login, cmd = m.Login.Update(msg)
	case stateFeed:
		m.Feed, cmd = m.Feed.Update(msg)
	}
	return m, cmd
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Bye!\n"
	}
	switch m.State {
	case stateLogin:
		return m.Login.View()
	case stateFeed:
		return m.Feed.View()
	}
	return "Unknown state"
}

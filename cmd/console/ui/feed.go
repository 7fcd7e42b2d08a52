package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"feedgate/backend/app/dto"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var sortOrder = []string{"date", "title", "description"}

type feedLoadedMsg struct {
	feed *dto.FeedResponse
	err  error
}

type postDeletedMsg struct {
	postID string
	err    error
}

type FeedModel struct {
	Client *Client
	Table  table.Model
	Query  dto.FeedQuery
	Posts  []dto.FeedPost
	Status string
	Err    error
}

func NewFeedModel(c *Client, limit, height int) FeedModel {
	columns := []table.Column{
		{Title: "Post ID", Width: 36},
		{Title: "Title", Width: 24},
		{Title: "Description", Width: 40},
		{Title: "Date", Width: 16},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 5)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return FeedModel{Client: c, Table: t, Query: dto.FeedQuery{Page: 1, Limit: limit, Sort: "date"}}
}

func (m FeedModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m FeedModel) loadCmd() tea.Cmd {
	c, q := m.Client, m.Query
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		feed, err := c.Feed(ctx, q)
		return feedLoadedMsg{feed: feed, err: err}
	}
}

func (m FeedModel) deleteCmd(postID string) tea.Cmd {
	c := m.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return postDeletedMsg{postID: postID, err: c.DeletePost(ctx, postID)}
	}
}

func nextSort(cur string) string {
	for i, s := range sortOrder {
		if s == cur {
			return sortOrder[(i+1)%len(sortOrder)]
		}
	}
	return sortOrder[0]
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (m *FeedModel) setPosts(posts []dto.FeedPost) {
	m.Posts = posts
	rows := make([]table.Row, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, table.Row{p.PostID, truncate(p.Title, 24), truncate(p.Description, 40), p.Date.Local().Format("2006-01-02 15:04")})
	}
	m.Table.SetRows(rows)
	m.Table.SetCursor(0)
}

func (m FeedModel) Update(msg tea.Msg) (FeedModel, tea.Cmd) {
	switch msg := msg.(type) {
	case feedLoadedMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Err = nil
		m.setPosts(msg.feed.AllPosts)
		return m, nil

	case postDeletedMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Status = "deleted " + msg.postID
		return m, m.loadCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.Status = ""
			return m, m.loadCmd()
		case "n":
			if len(m.Posts) < m.Query.Limit {
				m.Status = "already on the last page"
				return m, nil
			}
			m.Query.Page++
			return m, m.loadCmd()
		case "p":
			if m.Query.Page > 1 {
				m.Query.Page--
				return m, m.loadCmd()
			}
			return m, nil
		case "s":
			m.Query.Sort = nextSort(m.Query.Sort)
			m.Query.Page = 1
			return m, m.loadCmd()
		case "d":
			if row := m.Table.SelectedRow(); len(row) > 0 {
				return m, m.deleteCmd(row[0])
			}
			return m, nil
		case "q":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m FeedModel) View() string {
	var b strings.Builder
	header := fmt.Sprintf("Moderator Feed - page %d, sort %s", m.Query.Page, m.Query.Sort)
	b.WriteString(titleStyle.Render(header) + "\n\n")
	b.WriteString(m.Table.View())
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("n/p page, s sort, d delete post, r refresh, q quit"))
	if m.Status != "" {
		b.WriteString("\n" + statusMessageStyle(m.Status))
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return docStyle.Render(b.String())
}
